package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPAHandler serves the built frontend from a directory, falling back to
// index.html for any path that is not a real file so client-side routing works.
type SPAHandler struct {
	staticDir string
	fs        http.Handler
}

// NewSPAHandler creates a handler serving static files from staticDir.
func NewSPAHandler(staticDir string) *SPAHandler {
	return &SPAHandler{
		staticDir: staticDir,
		fs:        http.FileServer(http.Dir(staticDir)),
	}
}

// ServeHTTP serves the requested file if it exists, otherwise index.html.
func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// API routes never fall through to the SPA.
	if strings.HasPrefix(r.URL.Path, "/api/") {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		h.fs.ServeHTTP(w, r)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
}
