package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/careloop/backend/internal/api/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaticDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>shell</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	return dir
}

func TestStaticHandler_ServesExistingFile(t *testing.T) {
	handler := handlers.NewStaticHandler(newStaticDir(t))

	req := httptest.NewRequest("GET", "/app.js", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "console.log")
}

func TestStaticHandler_FallsBackToIndex(t *testing.T) {
	handler := handlers.NewStaticHandler(newStaticDir(t))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "shell")
}

func TestStaticHandler_APIMissIsJSON404(t *testing.T) {
	handler := handlers.NewStaticHandler(newStaticDir(t))

	req := httptest.NewRequest("GET", "/api/unknown", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestStaticHandler_RejectsNonGET(t *testing.T) {
	handler := handlers.NewStaticHandler(newStaticDir(t))

	req := httptest.NewRequest("POST", "/index.html", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
