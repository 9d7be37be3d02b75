package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticHandler serves the compiled single-page frontend. Unknown paths fall
// back to index.html so client-side routing works on hard refresh.
type StaticHandler struct {
	dir        string
	fileServer http.Handler
}

// NewStaticHandler creates a static asset handler rooted at dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{
		dir:        dir,
		fileServer: http.FileServer(http.Dir(dir)),
	}
}

// ServeHTTP serves a file when it exists, index.html otherwise.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// API misses should 404 as JSON, not as the SPA shell.
	if strings.HasPrefix(r.URL.Path, "/api/") {
		respondWithError(w, http.StatusNotFound, "not found")
		return
	}

	path := filepath.Join(h.dir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		h.fileServer.ServeHTTP(w, r)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}
