package api

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"

	"github.com/Fantasim/viteassets/internal/api/handlers"
	"github.com/Fantasim/viteassets/internal/api/middleware"
	"github.com/Fantasim/viteassets/internal/config"
	"github.com/Fantasim/viteassets/internal/vite"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Version is set at build time via ldflags.
var Version = "dev"

// IndexTemplate is the page rendered at "/".
const IndexTemplate = "index.html"

// NewRouter creates the Chi router, wires Vite into the page templates parsed
// from templatesFS and mounts the static build output.
func NewRouter(cfg *config.Config, templatesFS fs.FS) (chi.Router, *vite.Resolver, error) {
	r := chi.NewRouter()

	// Middleware stack (order matters)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.RateLimit(cfg.RateLimitRPS))
	r.Use(middleware.CORS(cfg.CORSOrigins, cfg.DevServerHost(), cfg.IsDevMode()))

	slog.Info("router initialized",
		"middleware", []string{"realIP", "recoverer", "requestLogging", "rateLimit", "cors"},
	)

	tmpl := template.New("pages")
	resolver := vite.Setup(r, tmpl, &cfg.ViteConfig)

	if _, err := tmpl.ParseFS(templatesFS, "*.html"); err != nil {
		return nil, nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if tmpl.Lookup(IndexTemplate) == nil {
		return nil, nil, fmt.Errorf("template %q not found", IndexTemplate)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HealthHandler(resolver, Version))
	})

	r.Get("/", handlers.PageHandler(tmpl, IndexTemplate, "viteassets"))

	return r, resolver, nil
}
