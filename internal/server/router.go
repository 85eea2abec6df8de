// Configures the HTTP routes.

package server

import (
	"embed"
	"io"
	"io/fs"
	"net/http"

	"github.com/rosterd/rosterd/frontend"
	"github.com/rosterd/rosterd/internal/config"
	"github.com/rosterd/rosterd/internal/roster"
	"github.com/rosterd/rosterd/internal/server/handlers"
	"github.com/rosterd/rosterd/internal/server/ratelimit"
)

// NewRouter creates and configures the HTTP router.
// Serves API endpoints at /api/* and the embedded frontend at /.
func NewRouter(store *roster.Store, views *roster.Views, cfg *config.Config, version string) http.Handler {
	mux := &http.ServeMux{}

	rh := handlers.NewRosterHandler(store, views, cfg)
	reph := handlers.NewReportHandler(views, cfg, nil)
	uh := handlers.NewUploadHandler(store, views, cfg)
	hh := handlers.NewHealthHandler(version)

	// Health check
	mux.Handle("GET /api/health", Wrap(hh.Health))

	// Dataset lifecycle
	uploadLimiter := ratelimit.NewLimiter(cfg.UploadsPerMinute, cfg.UploadBurst)
	mux.Handle("POST /api/roster", rateLimited(uploadLimiter, http.HandlerFunc(uh.Upload)))
	mux.Handle("DELETE /api/roster", Wrap(rh.Clear))
	mux.Handle("GET /api/roster", Wrap(rh.Query))

	// Record mutations
	mux.Handle("POST /api/roster/records", Wrap(rh.Append))
	mux.Handle("PUT /api/roster/records", Wrap(rh.Update))

	// Derived views
	mux.Handle("GET /api/roster/options", Wrap(reph.Options))
	mux.Handle("GET /api/roster/metrics", Wrap(reph.Metrics))
	mux.Handle("GET /api/roster/classes", Wrap(reph.Classes))
	mux.Handle("GET /api/roster/completion", Wrap(reph.Completion))
	mux.Handle("GET /api/roster/distribution", Wrap(reph.Distribution))

	// Download
	mux.HandleFunc("GET /api/roster/export", uh.Export)

	// Serve the embedded frontend with fallback to index.html
	mux.Handle("/", NewEmbeddedStaticHandler(frontend.Files))

	return accessLog(mux)
}

// EmbeddedStaticHandler serves an embedded single-page frontend with
// fallback to index.html.
type EmbeddedStaticHandler struct {
	fs embed.FS
}

// NewEmbeddedStaticHandler creates a handler for the embedded frontend.
func NewEmbeddedStaticHandler(f embed.FS) *EmbeddedStaticHandler {
	return &EmbeddedStaticHandler{fs: f}
}

// ServeHTTP implements http.Handler.
func (h *EmbeddedStaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Try to serve the exact file from static/
	path := "static" + r.URL.Path
	f, err := h.fs.Open(path)
	if err == nil {
		_ = f.Close()
		fsys, _ := fs.Sub(h.fs, "static")
		fileServer := http.FileServer(http.FS(fsys))
		if containsDot(r.URL.Path) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		fileServer.ServeHTTP(w, r)
		return
	}

	// File not found - fall back to index.html
	indexFile, err := h.fs.Open("static/index.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer func() { _ = indexFile.Close() }()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	_, _ = io.Copy(w, indexFile)
}

// containsDot checks if a path contains a dot (file extension).
func containsDot(path string) bool {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return false
		}
		if path[i] == '.' {
			return true
		}
	}
	return false
}
