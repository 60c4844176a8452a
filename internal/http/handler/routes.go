package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"imgconv/internal/http/middleware"
	"imgconv/internal/service"
	"imgconv/internal/storage"
)

// RouteOptions toggles the optional routes.
type RouteOptions struct {
	// ServeFiles exposes original/ and converted/ for the result page's links.
	ServeFiles bool
	// Gatherer, when set, is exposed on GET /metrics.
	Gatherer prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, layout storage.Layout, imgSvc service.ImageService, opts RouteOptions) {
	app.Get("/health", HealthCheck(layout))
	app.Get("/healthz", LivenessProbe())

	app.Post("/upload", UploadImage(imgSvc))
	// CGI deployments mount the program itself as the form action.
	app.Post("/", UploadImage(imgSvc))

	if opts.ServeFiles {
		app.Static("/original", layout.OriginalDir, fiber.Static{Browse: false})
		app.Static("/converted", layout.ConvertedDir, fiber.Static{Browse: false})
	}

	if opts.Gatherer != nil {
		app.Get("/metrics", MetricsHandler(opts.Gatherer))
	}
}

// UploadImage godoc
// @Summary      Upload an image and convert it to grayscale
// @Description  Accepts a JPEG or PNG in the multipart field "image". Always answers 200 with an HTML page: the result page on success, the error page otherwise.
// @Tags         images
// @Accept       multipart/form-data
// @Produce      html
// @Param        image  formData  file  true  "JPEG or PNG image"
// @Success      200  {string}  string  "result or error page"
// @Router       /upload [post]
func UploadImage(svc service.ImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Type("html")

		form, err := c.MultipartForm()
		if err != nil {
			// Not multipart or no body at all: the validator reports a missing file.
			slog.Debug("multipart form unavailable",
				"request_id", middleware.RequestIDFromContext(c.UserContext()),
				"error", err.Error(),
			)
			form = nil
		}

		page := svc.Process(c.UserContext(), form)
		return c.Status(fiber.StatusOK).SendString(page)
	}
}

// HealthCheck reports 503 when the storage layout is missing.
func HealthCheck(layout storage.Layout) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := layout.Check(); err != nil {
			slog.Warn("health check failed", "error", err.Error())
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "storage unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// MetricsHandler serves the prometheus exposition format for g.
func MetricsHandler(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
