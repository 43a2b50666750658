package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/MeKo-Tech/colorengine/internal/colorconv"
	"github.com/MeKo-Tech/colorengine/internal/palette"
)

// ConvertResponse is the body of /api/convert.
type ConvertResponse struct {
	Hex       string        `json:"hex"`
	Int       uint32        `json:"int"`
	RGB       colorconv.RGB `json:"rgb"`
	HSL       colorconv.HSL `json:"hsl"`
	Luminance float64       `json:"luminance"`
	Text      string        `json:"text"`
}

// ContrastResponse is the body of /api/contrast.
type ContrastResponse struct {
	Color      string  `json:"color"`
	Background string  `json:"background"`
	Ratio      float64 `json:"ratio"`
}

// PickResponse is the body of /api/pick. Color is null when no candidates
// were given.
type PickResponse struct {
	Color *string `json:"color"`
}

// API serves the engine's conversions as JSON.
type API struct {
	logger *slog.Logger
}

// NewAPI creates the JSON API.
func NewAPI(logger *slog.Logger) *API {
	return &API{logger: logger}
}

// Register mounts the API routes on mux.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/convert", a.handleConvert)
	mux.HandleFunc("/api/contrast", a.handleContrast)
	mux.HandleFunc("/api/pick", a.handlePick)
}

func (a *API) handleConvert(w http.ResponseWriter, r *http.Request) {
	c, ok := a.colorParam(w, r, "color")
	if !ok {
		return
	}

	text, _ := colorconv.ContrastColor(c, palette.DefaultTextCandidates)
	a.writeJSON(w, ConvertResponse{
		Hex:       c.Hex(),
		Int:       uint32(c),
		RGB:       c.RGB(),
		HSL:       colorconv.RGBToHSL(c),
		Luminance: colorconv.Luminance(c),
		Text:      text,
	})
}

func (a *API) handleContrast(w http.ResponseWriter, r *http.Request) {
	fg, ok := a.colorParam(w, r, "color")
	if !ok {
		return
	}
	bg, ok := a.colorParam(w, r, "background")
	if !ok {
		return
	}

	a.writeJSON(w, ContrastResponse{
		Color:      fg.Hex(),
		Background: bg.Hex(),
		Ratio:      colorconv.ContrastRatio(fg, bg),
	})
}

func (a *API) handlePick(w http.ResponseWriter, r *http.Request) {
	base, ok := a.colorParam(w, r, "base")
	if !ok {
		return
	}

	var candidates []colorconv.Color
	if raw := r.URL.Query().Get("candidates"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			c, err := colorconv.ParseColor(strings.TrimSpace(part))
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			candidates = append(candidates, c)
		}
	}

	var resp PickResponse
	if hex, found := colorconv.ContrastColor(base, candidates); found {
		resp.Color = &hex
	}
	a.writeJSON(w, resp)
}

// colorParam parses a required hex query parameter and writes a 400 when it
// is missing or invalid.
func (a *API) colorParam(w http.ResponseWriter, r *http.Request, name string) (colorconv.Color, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		http.Error(w, "missing parameter: "+name, http.StatusBadRequest)
		return 0, false
	}

	c, err := colorconv.ParseColor(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return c, true
}

func (a *API) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log().Error("failed to encode response", "error", err)
	}
}

func (a *API) log() *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return slog.Default()
}
