package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MeKo-Tech/colorengine/internal/colorconv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux() *http.ServeMux {
	return NewMux(Routes{API: NewAPI(nil)})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	return httptestDo(h, http.MethodGet, target)
}

func httptestDo(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestMux(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestConvert(t *testing.T) {
	rec := get(t, newTestMux(), "/api/convert?color=%23336699")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "#336699", resp.Hex)
	assert.Equal(t, uint32(0x336699), resp.Int)
	assert.Equal(t, colorconv.RGB{Red: 0x33, Green: 0x66, Blue: 0x99}, resp.RGB)
	assert.Equal(t, colorconv.HSL{Hue: 210, Saturation: 50, Lightness: 40}, resp.HSL)
	assert.InDelta(t, colorconv.Luminance(0x336699), resp.Luminance, 1e-12)
	assert.Equal(t, "#ffffff", resp.Text)
}

func TestConvertRejectsBadInput(t *testing.T) {
	mux := newTestMux()

	rec := get(t, mux, "/api/convert")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, mux, "/api/convert?color=nothex")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid color format")
}

func TestContrast(t *testing.T) {
	rec := get(t, newTestMux(), "/api/contrast?color=000000&background=ffffff")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ContrastResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "#000000", resp.Color)
	assert.Equal(t, "#ffffff", resp.Background)
	assert.InDelta(t, 21.0, resp.Ratio, 1e-9)

	rec = get(t, newTestMux(), "/api/contrast?color=000000")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPick(t *testing.T) {
	rec := get(t, newTestMux(), "/api/pick?base=000000&candidates=ffffff,808080")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PickResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Color)
	assert.Equal(t, "#ffffff", *resp.Color)
}

func TestPickWithoutCandidates(t *testing.T) {
	rec := get(t, newTestMux(), "/api/pick?base=000000")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"color": null}`, rec.Body.String())

	rec = get(t, newTestMux(), "/api/pick?base=000000&candidates=fff,zz")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
