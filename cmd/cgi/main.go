// Command cgi serves a single upload per process behind a CGI-capable web
// server: the page goes to stdout, diagnostics to stderr.
package main

import (
	"fmt"
	"log"
	"net/http/cgi"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"imgconv/internal/config"
	"imgconv/internal/logging"
	"imgconv/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("cgi: %v", err)
	}
}

// run answers the request described by the CGI environment and stdin.
func run() error {
	cfg := config.Load()
	logging.New(cfg.Log)

	app, err := server.New(cfg, prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	return cgi.Serve(adaptor.FiberApp(app))
}
