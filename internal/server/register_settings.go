package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kk-code-lab/plugtrack/internal/tracker"
)

func (s *APIServer) registerSettingsHandlers(r *mux.Router) {
	r.HandleFunc("/settings", s.getSettings).Methods(http.MethodGet)
	r.HandleFunc("/settings", s.putSettings).Methods(http.MethodPut)
}

func (s *APIServer) getSettings(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Settings(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, st)
}

func (s *APIServer) putSettings(w http.ResponseWriter, r *http.Request) {
	var st tracker.Settings
	if err := decodeBody(w, r, &st); err != nil {
		Error(w, r, err)
		return
	}
	saved, err := s.svc.SaveSettings(r.Context(), st)
	if err != nil {
		Error(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, saved)
}
