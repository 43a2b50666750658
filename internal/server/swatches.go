package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MeKo-Tech/colorengine/internal/colorconv"
	"github.com/MeKo-Tech/colorengine/internal/swatch"
)

// Generator renders a sheet into the sheets directory and returns its path.
type Generator interface {
	Generate(ctx context.Context, base colorconv.Color, force bool, suffix string) (string, error)
}

// OnDemandSwatchesConfig configures on-demand sheet serving.
type OnDemandSwatchesConfig struct {
	SheetsDir            string
	CacheControl         string
	MaxConcurrentRenders int
	RenderTimeout        time.Duration
	GenerateMissing      bool
	DisableCache         bool
}

// RenderStatus reports render counters.
type RenderStatus struct {
	ActiveRenders int      `json:"active_renders"`
	TotalRendered int64    `json:"total_rendered"`
	TotalFailed   int64    `json:"total_failed"`
	CurrentSheets []string `json:"current_sheets"`
	MaxConcurrent int      `json:"max_concurrent"`
}

// OnDemandSwatches serves sheets from disk and renders missing ones.
type OnDemandSwatches struct {
	gen    Generator
	logger *slog.Logger
	sem    chan struct{}
	locks  sync.Map
	cfg    OnDemandSwatchesConfig

	activeRenders  atomic.Int32
	totalRendered  atomic.Int64
	totalFailed    atomic.Int64
	currentRenders sync.Map // sheet name -> start time
}

// NewOnDemandSwatches applies defaults and returns the handler state.
func NewOnDemandSwatches(gen Generator, cfg OnDemandSwatchesConfig, logger *slog.Logger) *OnDemandSwatches {
	if cfg.SheetsDir == "" {
		cfg.SheetsDir = "./swatches"
	}
	if cfg.MaxConcurrentRenders <= 0 {
		cfg.MaxConcurrentRenders = 1
	}
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = 30 * time.Second
	}
	if cfg.CacheControl == "" {
		cfg.CacheControl = "no-store"
	}

	return &OnDemandSwatches{
		gen:    gen,
		cfg:    cfg,
		logger: logger,
		sem:    make(chan struct{}, cfg.MaxConcurrentRenders),
	}
}

// Handler serves /swatches/<rrggbb>[@2x].png.
func (s *OnDemandSwatches) Handler() http.Handler {
	return http.HandlerFunc(s.serveSheet)
}

// Status returns the current render counters.
func (s *OnDemandSwatches) Status() RenderStatus {
	current := []string{}
	s.currentRenders.Range(func(key, _ any) bool {
		current = append(current, key.(string))
		return true
	})

	return RenderStatus{
		ActiveRenders: int(s.activeRenders.Load()),
		TotalRendered: s.totalRendered.Load(),
		TotalFailed:   s.totalFailed.Load(),
		CurrentSheets: current,
		MaxConcurrent: s.cfg.MaxConcurrentRenders,
	}
}

// StatusHandler serves Status as JSON.
func (s *OnDemandSwatches) StatusHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if err := json.NewEncoder(w).Encode(s.Status()); err != nil {
			s.log().Error("failed to encode status", "error", err)
			http.Error(w, "failed to encode status", http.StatusInternalServerError)
		}
	})
}

func (s *OnDemandSwatches) serveSheet(w http.ResponseWriter, r *http.Request) {
	base, suffix, ok := parseSwatchPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	name := swatch.SheetName(base, suffix)
	fullPath := filepath.Join(s.cfg.SheetsDir, name)

	w.Header().Set("Cache-Control", s.cfg.CacheControl)

	if !s.cfg.DisableCache && fileExists(fullPath) {
		http.ServeFile(w, r, fullPath)
		return
	}

	if !s.cfg.GenerateMissing {
		http.Error(w, fmt.Sprintf("sheet not found: %s", name), http.StatusNotFound)
		return
	}

	mu := s.getLock(name)
	mu.Lock()
	defer mu.Unlock()

	// Another request may have rendered it while we waited.
	if !s.cfg.DisableCache && fileExists(fullPath) {
		http.ServeFile(w, r, fullPath)
		return
	}

	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-r.Context().Done():
		http.Error(w, "request cancelled", http.StatusRequestTimeout)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RenderTimeout)
	defer cancel()

	start := time.Now()
	s.activeRenders.Add(1)
	s.currentRenders.Store(name, start)

	renderedPath, err := s.gen.Generate(ctx, base, s.cfg.DisableCache, suffix)

	s.activeRenders.Add(-1)
	s.currentRenders.Delete(name)

	if err != nil {
		s.totalFailed.Add(1)
		s.log().Error("failed to render sheet", "sheet", name, "error", err)
		http.Error(w, fmt.Sprintf("failed to render sheet %s: %v", name, err), http.StatusInternalServerError)
		return
	}
	s.totalRendered.Add(1)
	s.log().Info("sheet rendered on-demand", "sheet", name, "ms", time.Since(start).Milliseconds())

	if renderedPath == "" || !fileExists(renderedPath) {
		http.Error(w, "sheet rendered but file missing on disk", http.StatusInternalServerError)
		return
	}

	http.ServeFile(w, r, renderedPath)
}

func (s *OnDemandSwatches) getLock(key string) *sync.Mutex {
	if v, ok := s.locks.Load(key); ok {
		return v.(*sync.Mutex)
	}
	actual, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

func (s *OnDemandSwatches) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// parseSwatchPath parses /swatches/336699.png or /swatches/336699@2x.png.
func parseSwatchPath(requestPath string) (colorconv.Color, string, bool) {
	if !strings.HasPrefix(requestPath, "/swatches/") {
		return 0, "", false
	}
	base := path.Base(requestPath)
	if !strings.HasSuffix(base, ".png") {
		return 0, "", false
	}
	name := strings.TrimSuffix(base, ".png")
	suffix := ""
	if strings.HasSuffix(name, swatch.HiDPISuffix) {
		suffix = swatch.HiDPISuffix
		name = strings.TrimSuffix(name, swatch.HiDPISuffix)
	}

	// Only the canonical six-digit form, so each sheet has one URL.
	if len(name) != 6 || strings.ToLower(name) != name {
		return 0, "", false
	}
	c, err := colorconv.ParseColor(name)
	if err != nil {
		return 0, "", false
	}
	return c, suffix, true
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	if err != nil {
		return false
	}
	return !st.IsDir()
}
