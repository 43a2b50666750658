package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/MeKo-Tech/colorengine/internal/archive"
)

// ArchiveHandler serves sheets from a swatch archive.
type ArchiveHandler struct {
	reader       *archive.Reader
	logger       *slog.Logger
	cacheControl string
}

// ArchiveConfig configures the archive handler.
type ArchiveConfig struct {
	ArchivePath  string
	CacheControl string
}

// NewArchiveHandler opens the archive read-only.
func NewArchiveHandler(cfg ArchiveConfig, logger *slog.Logger) (*ArchiveHandler, error) {
	reader, err := archive.OpenReader(cfg.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	return &ArchiveHandler{
		reader:       reader,
		logger:       logger,
		cacheControl: cfg.CacheControl,
	}, nil
}

// Handler serves /swatches/<rrggbb>[@2x].png from the archive.
func (h *ArchiveHandler) Handler() http.Handler {
	return http.HandlerFunc(h.serveSheet)
}

func (h *ArchiveHandler) serveSheet(w http.ResponseWriter, r *http.Request) {
	base, suffix, ok := parseSwatchPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	data, err := h.reader.ReadSheet(base, suffix)
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.log().Error("Failed to read sheet", "base", base.Hex(), "suffix", suffix, "error", err)
		http.Error(w, "failed to read sheet", http.StatusInternalServerError)
		return
	}

	if h.cacheControl != "" {
		w.Header().Set("Cache-Control", h.cacheControl)
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(data); err != nil {
		h.log().Error("Failed to write response", "error", err)
	}
}

// Close closes the archive.
func (h *ArchiveHandler) Close() error {
	return h.reader.Close()
}

func (h *ArchiveHandler) log() *slog.Logger {
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}
