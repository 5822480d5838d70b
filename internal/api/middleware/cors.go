package middleware

import (
	"log/slog"
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the given browser origins. In dev mode the Vite dev server
// origin is added so pages it serves can call the Go backend.
func CORS(origins []string, devServer string, devMode bool) func(http.Handler) http.Handler {
	allowed := append([]string(nil), origins...)
	if devMode && devServer != "" {
		allowed = append(allowed, devServer)
	}

	// rs/cors treats an empty list as "allow all".
	if len(allowed) == 0 {
		slog.Info("CORS disabled, no allowed origins")
		return func(next http.Handler) http.Handler { return next }
	}

	slog.Info("CORS configured", "allowedOrigins", allowed)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           3600,
	})
	return c.Handler
}
