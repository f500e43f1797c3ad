// Package web implements the HTML driving adapter using templ components.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	vm "github.com/ericfisherdev/devfolio/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/devfolio/internal/application"
	"github.com/ericfisherdev/devfolio/internal/domain/port/driven"
)

// ErrPortfolioUnavailable is returned by RenderStatic when neither GitHub nor
// the cache produced anything to show.
var ErrPortfolioUnavailable = errors.New("portfolio unavailable")

// Portfolio is the subset of the portfolio service the web adapter drives.
type Portfolio interface {
	Username() string
	Load(ctx context.Context, r driven.Renderer) error
	Retry(ctx context.Context, r driven.Renderer) error
}

// Handler is the web driving adapter that serves the portfolio page.
type Handler struct {
	portfolio Portfolio
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(portfolio Portfolio, logger *slog.Logger) *Handler {
	return &Handler{
		portfolio: portfolio,
		logger:    logger,
	}
}

// Page renders the portfolio page.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collect(r, h.portfolio.Load)
	if !ok {
		return
	}
	h.write(w, r, c)
}

// Retry re-runs the pipeline on explicit request. A successful retry leaves a
// fresh cache entry behind and redirects to the page; a failed one renders the
// notice directly.
func (h *Handler) Retry(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collect(r, h.portfolio.Retry)
	if !ok {
		return
	}
	if notice := c.Notice(); notice == nil || !notice.Fatal {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.write(w, r, c)
}

// collect runs load into a fresh Collector. It reports false when the client
// went away and nothing should be written.
func (h *Handler) collect(r *http.Request, load func(context.Context, driven.Renderer) error) (*application.Collector, bool) {
	c := application.NewCollector()

	if err := load(r.Context(), c); err != nil {
		if r.Context().Err() != nil {
			h.logger.Debug("portfolio request abandoned", "error", err)
			return nil, false
		}
		// A fatal notice has been collected; the page shows it.
		h.logger.Warn("portfolio unavailable", "error", err)
	}

	return c, true
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, c *application.Collector) {
	page := toPageViewModel(h.portfolio.Username(), c)

	var buf bytes.Buffer
	if err := renderPage(r.Context(), &buf, page); err != nil {
		h.logger.Error("failed to render page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Debug("failed to write page", "error", err)
	}
}

func renderPage(ctx context.Context, w io.Writer, page vm.PageViewModel) error {
	return Layout(page.Title, page.Username, PortfolioPage(page)).Render(ctx, w)
}

// RenderStatic loads the portfolio once and writes a self-contained page to
// w. Nothing is written when the load ends with a fatal notice.
func RenderStatic(ctx context.Context, portfolio Portfolio, w io.Writer) error {
	c := application.NewCollector()

	if err := portfolio.Load(ctx, c); err != nil {
		return fmt.Errorf("%w: %w", ErrPortfolioUnavailable, err)
	}

	page := toPageViewModel(portfolio.Username(), c)
	// There is no server behind a static page to retry against.
	page.RetryURL = ""

	var buf bytes.Buffer
	if err := renderPage(ctx, &buf, page); err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write page: %w", err)
	}

	return nil
}

// WriteStaticAssets copies the embedded static assets into dir/static.
func WriteStaticAssets(dir string) error {
	return fs.WalkDir(StaticFS, "static", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		target := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		data, err := StaticFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}

		return nil
	})
}
