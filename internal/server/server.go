package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"

	"imgconv/docs"
	"imgconv/internal/config"
	"imgconv/internal/converter"
	handlers "imgconv/internal/http/handler"
	"imgconv/internal/http/middleware"
	"imgconv/internal/service"
	"imgconv/internal/storage"
)

// New prepares the storage layout and returns the fully wired Fiber app.
// Collectors are registered on reg, which is also exposed on /metrics.
func New(cfg *config.AppConfig, reg *prometheus.Registry) (*fiber.App, error) {
	layout := storage.NewLayout(cfg.Storage.BaseDir)
	if err := layout.EnsureLayout(); err != nil {
		return nil, fmt.Errorf("ensure storage layout: %w", err)
	}

	backend, err := converter.New(cfg.Converter)
	if err != nil {
		return nil, err
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, fmt.Errorf("register http metrics: %w", err)
	}
	pipelineMetrics, err := service.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("register pipeline metrics: %w", err)
	}

	imgSvc := service.NewImageService(
		layout,
		storage.NewDiskStore(layout.OriginalDir),
		backend,
		service.WithMetrics(pipelineMetrics),
		service.WithConvertTimeout(time.Duration(cfg.Converter.TimeoutSec)*time.Second),
	)

	fiberCfg := fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	}
	if cfg.MaxUploadMB > 0 {
		fiberCfg.BodyLimit = cfg.MaxUploadMB << 20
	}
	app := fiber.New(fiberCfg)

	app.Use(otelfiber.Middleware())
	// RequestID must run before Logger so the log line carries the id
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, layout, imgSvc, handlers.RouteOptions{
		ServeFiles: cfg.Storage.ServeFiles,
		Gatherer:   reg,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	return app, nil
}
