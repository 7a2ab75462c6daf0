package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/company-service/internal/application/ports"
	"github.com/jhoicas/company-service/internal/application/usecase"
	"github.com/jhoicas/company-service/internal/domain/repository"
	"github.com/jhoicas/company-service/internal/infrastructure/identity"
	"github.com/jhoicas/company-service/internal/infrastructure/memory"
	"github.com/jhoicas/company-service/internal/infrastructure/metrics"
	"github.com/jhoicas/company-service/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/company-service/internal/interfaces/http"
	"github.com/jhoicas/company-service/pkg/config"
	"github.com/jhoicas/company-service/pkg/logger"

	_ "github.com/jhoicas/company-service/docs"
)

// @title        Company Service API
// @version      1.0
// @description  Sucursales, almacenes y asignaciones por empresa. La autenticación se delega al servicio de identidad.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Str("identity", cfg.Identity.Mode).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		branchRepo    repository.BranchRepository
		warehouseRepo repository.WarehouseRepository
		linkRepo      repository.AssignmentRepository
		txRunner      ports.TxRunner
	)
	switch cfg.App.StorageDriver {
	case "memory":
		store := memory.NewStore()
		branchRepo, warehouseRepo, linkRepo, txRunner = store.Branches(), store.Warehouses(), store.Assignments(), store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		branchRepo = postgres.NewBranchRepository(pool)
		warehouseRepo = postgres.NewWarehouseRepository(pool)
		linkRepo = postgres.NewAssignmentRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	var m *metrics.Metrics
	if cfg.App.MetricsEnabled {
		m = metrics.New("company_service")
	}

	var gateway ports.IdentityGateway
	switch cfg.Identity.Mode {
	case "jwt":
		gateway = identity.NewJWTGateway(cfg.Identity.JWTSecret, cfg.Identity.JWTIssuer, m)
	default:
		gateway = identity.NewRemoteGateway(cfg.Identity.BaseURL, cfg.Identity.ResolvePath, cfg.Identity.Timeout, m, log)
	}

	swaggerFile := ""
	if cfg.App.SwaggerEnabled {
		swaggerFile = "./docs/swagger.json"
	}

	app := httpRouter.NewServer(httpRouter.ServerDeps{
		Name:        cfg.App.Name,
		Log:         log,
		Metrics:     m,
		SwaggerFile: swaggerFile,
		Router: httpRouter.RouterDeps{
			BranchUC:        usecase.NewBranchUseCase(branchRepo, txRunner),
			WarehouseUC:     usecase.NewWarehouseUseCase(warehouseRepo, txRunner),
			AssignmentUC:    usecase.NewAssignmentUseCase(branchRepo, warehouseRepo, linkRepo),
			Identity:        gateway,
			IdentityTimeout: cfg.Identity.Timeout,
			RateLimitRPS:    cfg.RateLimit.RPS,
			RateLimitBurst:  cfg.RateLimit.Burst,
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
