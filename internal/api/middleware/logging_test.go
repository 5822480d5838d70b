package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/Fantasim/viteassets/internal/vite"
)

// captureLogs routes the default slog logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// lastRequestLog decodes the last "http request" record written to buf.
func lastRequestLog(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var last map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var rec map[string]any
		if err := json.Unmarshal(line, &rec); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		if rec["msg"] == "http request" {
			last = rec
		}
	}
	if last == nil {
		t.Fatalf("no http request log record in %q", buf.String())
	}
	return last
}

func staticRoute() http.Handler {
	staticFS := fstest.MapFS{
		"assets/main-abc123.js": {Data: []byte("console.log('main')"), ModTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		".vite/manifest.json":   {Data: []byte(`{}`)},
	}
	return RequestLogging(http.StripPrefix("/static", vite.StaticHandler(staticFS)))
}

func TestRequestLogging_StaticAsset(t *testing.T) {
	buf := captureLogs(t)

	req := httptest.NewRequest("GET", "/static/assets/main-abc123.js", nil)
	w := httptest.NewRecorder()
	staticRoute().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	rec := lastRequestLog(t, buf)
	if rec["method"] != "GET" {
		t.Errorf("method = %v, want GET", rec["method"])
	}
	if rec["path"] != "/static/assets/main-abc123.js" {
		t.Errorf("path = %v, want the full request path", rec["path"])
	}
	if rec["status"] != float64(http.StatusOK) {
		t.Errorf("status = %v, want 200", rec["status"])
	}
	if rec["size"] != float64(len("console.log('main')")) {
		t.Errorf("size = %v, want %d", rec["size"], len("console.log('main')"))
	}
}

func TestRequestLogging_BlockedManifestLogged404(t *testing.T) {
	buf := captureLogs(t)

	req := httptest.NewRequest("GET", "/static/.vite/manifest.json", nil)
	w := httptest.NewRecorder()
	staticRoute().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	rec := lastRequestLog(t, buf)
	if rec["status"] != float64(http.StatusNotFound) {
		t.Errorf("status = %v, want 404", rec["status"])
	}
	if rec["path"] != "/static/.vite/manifest.json" {
		t.Errorf("path = %v, want /static/.vite/manifest.json", rec["path"])
	}
}

func TestRequestLogging_NotModifiedAsset(t *testing.T) {
	buf := captureLogs(t)
	handler := staticRoute()

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest("GET", "/static/assets/main-abc123.js", nil))
	lastModified := first.Header().Get("Last-Modified")
	if lastModified == "" {
		t.Fatal("Last-Modified header missing")
	}

	req := httptest.NewRequest("GET", "/static/assets/main-abc123.js", nil)
	req.Header.Set("If-Modified-Since", lastModified)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	rec := lastRequestLog(t, buf)
	if rec["status"] != float64(http.StatusNotModified) {
		t.Errorf("status = %v, want 304", rec["status"])
	}
	if rec["size"] != float64(0) {
		t.Errorf("size = %v, want 0 for a 304", rec["size"])
	}
}

// TestResponseWriter_ImplementsFlusher verifies that the logging middleware's
// responseWriter implements http.Flusher.
func TestResponseWriter_ImplementsFlusher(t *testing.T) {
	handler := RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			t.Fatal("responseWriter does not implement http.Flusher")
		}
		flusher.Flush()

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("expected body 'ok', got %q", w.Body.String())
	}
}

// TestResponseWriter_Unwrap verifies http.ResponseController can reach the underlying writer.
func TestResponseWriter_Unwrap(t *testing.T) {
	handler := RequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw, ok := w.(*responseWriter)
		if !ok {
			t.Fatal("expected *responseWriter")
		}
		if rw.Unwrap() == nil {
			t.Fatal("Unwrap() returned nil")
		}
		if err := http.NewResponseController(w).Flush(); err != nil {
			t.Errorf("ResponseController.Flush() error = %v", err)
		}
	}))

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
}
