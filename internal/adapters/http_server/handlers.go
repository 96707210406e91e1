package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"appstore_reviews/internal/app"
)

type Handlers struct{ Progress *app.Progress }

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.mux.Get("/progress", h.getProgress)
}

func (h *Handlers) getProgress(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Progress.Snapshot()); err != nil {
		log.Error().Err(err).Msg("write progress snapshot failed")
	}
}
