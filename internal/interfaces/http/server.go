package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/company-service/internal/infrastructure/metrics"
	"github.com/jhoicas/company-service/pkg/logger"
)

// ServerDeps dependencias de la app Fiber completa.
type ServerDeps struct {
	Name        string
	Log         *logger.Logger
	Metrics     *metrics.Metrics // nil = sin /metrics
	SwaggerFile string           // "" o inexistente = sin /docs
	Router      RouterDeps
}

// NewServer construye la app: middlewares comunes, rutas públicas y rutas protegidas.
func NewServer(deps ServerDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler,
	})
	app.Use(RequestID())
	if deps.Metrics != nil {
		app.Use(Metrics(deps.Metrics))
	}
	app.Use(AccessLog(deps.Log))
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if deps.SwaggerFile != "" {
		if _, err := os.Stat(deps.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.SwaggerFile,
				Path:     "docs",
				Title:    "Company Service API",
			}))
		} else {
			deps.Log.Warn().Str("file", deps.SwaggerFile).Msg("swagger.json no encontrado, /docs desactivado")
		}
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": deps.Name, "message": "company service: sucursales, almacenes y asignaciones"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.Name})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	Router(app, deps.Router)
	return app
}
