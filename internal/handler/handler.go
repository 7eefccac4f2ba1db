package handler

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"sort"
	"time"

	"github.com/a-h/templ"

	"kmbeta/internal/config"
	"kmbeta/internal/dashboard"
	"kmbeta/web"
)

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	src     dashboard.Source
	builder *dashboard.Builder
	cfg     *config.Config
	logger  *slog.Logger
	version string // content hash of static assets, for cache busting
	now     func() time.Time
}

// New creates a Handler.
func New(src dashboard.Source, cfg *config.Config, logger *slog.Logger) *Handler {
	v := computeAssetVersion(web.StaticFiles)
	logger.Info("asset version computed", "version", v)

	return &Handler{
		src:     src,
		builder: dashboard.NewBuilder(src),
		cfg:     cfg,
		logger:  logger,
		version: v,
		now:     time.Now,
	}
}

// computeAssetVersion hashes all CSS and JS files in the embedded static
// tree to produce a short version string. Changes to any file produce a new
// version.
func computeAssetVersion(files fs.FS) string {
	h := md5.New()
	var paths []string
	fs.WalkDir(files, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if ext := path.Ext(p); ext == ".css" || ext == ".js" {
			paths = append(paths, p)
		}
		return nil
	})
	sort.Strings(paths) // deterministic order
	for _, p := range paths {
		f, err := files.Open(p)
		if err != nil {
			continue
		}
		io.Copy(h, f)
		f.Close()
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:8]
}

// refreshSeconds is the refresh interval in whole seconds, at least 1.
func (h *Handler) refreshSeconds() int {
	s := int(h.cfg.RefreshInterval / time.Second)
	if s < 1 {
		return 1
	}
	return s
}

// render writes c as HTML. The component is rendered to a buffer first so
// a failure can still become a 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, c templ.Component, what string) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		h.logger.Error("rendering "+what, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
