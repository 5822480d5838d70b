package vite

import (
	"html/template"
	"log/slog"
	"net/http"
	"os"

	"github.com/Fantasim/viteassets/internal/config"
	"github.com/go-chi/chi/v5"
)

// Setup wires Vite into a chi router and a template set:
//  1. registers vite_asset and vite_hmr_client on tmpl (call before Parse)
//  2. mounts the build output at cfg.StaticURLPrefix if the directory exists now
//
// A missing assets directory is logged and skipped; it is not retried later.
func Setup(r chi.Router, tmpl *template.Template, cfg *config.ViteConfig) *Resolver {
	if cfg == nil {
		cfg = config.DefaultViteConfig()
	}

	resolver := NewResolver(cfg, nil)

	if tmpl != nil {
		tmpl.Funcs(resolver.FuncMap())
	}

	MountStatic(r, cfg)

	slog.Info("vite integration configured",
		"devMode", cfg.IsDevMode(),
		"devServer", cfg.DevServerHost(),
		"manifest", cfg.FullManifestPath(),
		"staticPrefix", cfg.StaticURLPrefix,
	)

	return resolver
}

// MountStatic mounts the static file handler for the assets directory and
// reports whether it did.
func MountStatic(r chi.Router, cfg *config.ViteConfig) bool {
	assetsDir := cfg.FullAssetsPath()

	info, err := os.Stat(assetsDir)
	if err != nil || !info.IsDir() {
		slog.Warn("vite assets directory not found, static route not mounted",
			"assetsDir", assetsDir,
			"prefix", cfg.StaticURLPrefix,
		)
		return false
	}

	prefix := cfg.StaticPrefix()
	handler := http.StripPrefix(prefix, StaticHandler(os.DirFS(assetsDir)))
	r.Handle(prefix+"/*", handler)

	slog.Info("vite static route mounted",
		"prefix", cfg.StaticURLPrefix,
		"assetsDir", assetsDir,
	)
	return true
}
