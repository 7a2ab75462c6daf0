package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/jhoicas/company-service/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/company-service/pkg/config"
	"github.com/jhoicas/company-service/pkg/logger"
)

type migrateFunc func(ctx context.Context, db *sql.DB) error

func newRootCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Migraciones de esquema de company-service (goose)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "tiempo máximo de ejecución")

	cmd.AddCommand(
		newStepCmd("up", "Aplica las migraciones pendientes", migrations.Up, &timeout),
		newStepCmd("down", "Revierte la última migración", migrations.Down, &timeout),
		newStepCmd("status", "Muestra el estado de las migraciones", migrations.Status, &timeout),
	)
	return cmd
}

func newStepCmd(use, short string, run migrateFunc, timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

			ctx, cancel := context.WithTimeout(cmd.Context(), *timeout)
			defer cancel()

			db, err := sql.Open("pgx", cfg.DB.ConnectionString())
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			start := time.Now()
			if err := run(ctx, db); err != nil {
				return fmt.Errorf("migrate %s: %w", use, err)
			}
			log.Info().Str("command", use).Dur("duration", time.Since(start)).Msg("migración completada")
			return nil
		},
	}
}

func execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
