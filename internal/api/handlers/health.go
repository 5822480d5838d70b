package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Fantasim/viteassets/internal/config"
	"github.com/Fantasim/viteassets/internal/httputil"
	"github.com/Fantasim/viteassets/internal/vite"
)

// HealthResponse is the payload of GET /api/health.
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	DevMode      bool   `json:"devMode"`
	DevServer    string `json:"devServer,omitempty"`
	Manifest     string `json:"manifest"`
	Chunks       int    `json:"chunks"`
	StaticPrefix string `json:"staticPrefix"`
}

// HealthHandler returns a handler for the GET /api/health endpoint.
// In production it loads the manifest and reports a malformed one as 500.
func HealthHandler(resolver *vite.Resolver, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("health check requested", "remoteAddr", r.RemoteAddr)

		cfg := resolver.Config()
		resp := HealthResponse{
			Status:       "ok",
			Version:      version,
			DevMode:      cfg.IsDevMode(),
			Manifest:     cfg.FullManifestPath(),
			StaticPrefix: cfg.StaticURLPrefix,
		}

		if resp.DevMode {
			resp.DevServer = cfg.DevServerHost()
		} else {
			m, err := resolver.Manifest().Load()
			if err != nil {
				slog.Error("health check: manifest unavailable", "error", err)
				httputil.Error(w, http.StatusInternalServerError, config.ErrorManifest, err.Error())
				return
			}
			resp.Chunks = len(m)
		}

		httputil.JSON(w, http.StatusOK, resp)
	}
}
