package http

import (
	"errors"
	"io/fs"
	nethttp "net/http"
	"os"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"scireda/backend/internal/logger"
)

// spaHandler serves the built web client. Unknown paths fall back to
// index.html so that client side routes such as /networks/42 survive a reload.
type spaHandler struct {
	files fs.FS
	index []byte
}

func newSPAHandler(dir string) (*spaHandler, error) {
	files := os.DirFS(dir)
	index, err := fs.ReadFile(files, "index.html")
	if err != nil {
		return nil, err
	}
	return &spaHandler{files: files, index: index}, nil
}

func (h *spaHandler) serve(c echo.Context) error {
	requestPath := c.Request().URL.Path
	if requestPath == "/api" || strings.HasPrefix(requestPath, "/api/") {
		return echo.ErrNotFound
	}

	name := strings.TrimPrefix(path.Clean("/"+requestPath), "/")
	if name == "" || name == "index.html" {
		return h.serveIndex(c)
	}

	info, err := fs.Stat(h.files, name)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("static stat failed", "module", "http", "action", "fetch", "resource", "static", "result", "failed", "path", name, "error", err)
		}
		return h.serveIndex(c)
	}

	// Vite emits content hashed file names under assets/.
	if strings.HasPrefix(name, "assets/") {
		c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	}
	return c.FileFS(name, h.files)
}

func (h *spaHandler) serveIndex(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(nethttp.StatusOK, h.index)
}

func registerStatic(e *echo.Echo, dir string) {
	if dir == "" {
		return
	}
	h, err := newSPAHandler(dir)
	if err != nil {
		logger.Warn("static assets disabled", "module", "http", "action", "init", "resource", "static", "result", "skipped", "dir", dir, "error", err)
		return
	}
	logger.Info("static assets enabled", "module", "http", "action", "init", "resource", "static", "result", "ok", "dir", dir)
	e.GET("/*", h.serve)
}
