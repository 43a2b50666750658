package server

import "net/http"

// Routes holds the handlers mounted by NewMux. Nil handlers are skipped.
type Routes struct {
	API      *API
	Swatches http.Handler
	Status   http.Handler
}

// NewMux wires the health check, API, status and swatch handlers.
func NewMux(routes Routes) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	if routes.API != nil {
		routes.API.Register(mux)
	}
	if routes.Status != nil {
		mux.Handle("/api/status", routes.Status)
	}
	if routes.Swatches != nil {
		mux.Handle("/swatches/", WithCORS(routes.Swatches))
	}

	return mux
}
