package vite

import (
	"bytes"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Fantasim/viteassets/internal/config"
)

// StaticHandler serves the Vite build output. Hashed files under assets/ are
// cached forever; everything else must be revalidated. The .vite/ metadata
// directory and directory listings are never served.
func StaticHandler(staticFS fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cleanPath := strings.TrimPrefix(r.URL.Path, "/")

		if cleanPath == "" || strings.HasSuffix(cleanPath, "/") || !fs.ValidPath(cleanPath) {
			http.NotFound(w, r)
			return
		}
		if cleanPath == config.ViteMetaDir || strings.HasPrefix(cleanPath, config.ViteMetaDir+"/") {
			slog.Debug("blocked request for vite metadata", "path", r.URL.Path)
			http.NotFound(w, r)
			return
		}

		f, err := staticFS.Open(cleanPath)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		if strings.HasPrefix(cleanPath, config.HashedAssetsDir) {
			w.Header().Set("Cache-Control", config.CacheControlImmutable)
		} else {
			w.Header().Set("Cache-Control", config.CacheControlNoCache)
		}

		// ServeContent, unlike ServeFileFS, does not redirect .../index.html to ./
		content, ok := f.(io.ReadSeeker)
		if !ok {
			data, err := io.ReadAll(f)
			if err != nil {
				slog.Error("failed to read static file", "path", cleanPath, "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			content = bytes.NewReader(data)
		}

		http.ServeContent(w, r, info.Name(), info.ModTime(), content)
	}
}
