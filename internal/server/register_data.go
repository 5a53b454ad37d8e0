package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kk-code-lab/plugtrack/internal/source"
	"github.com/kk-code-lab/plugtrack/internal/store"
	"github.com/kk-code-lab/plugtrack/internal/tracker"
)

func (s *APIServer) registerDataHandlers(r *mux.Router) {
	r.HandleFunc("/export", s.exportData).Methods(http.MethodGet)
	r.HandleFunc("/import", s.importData).Methods(http.MethodPost)
	r.HandleFunc("/reset", s.resetData).Methods(http.MethodPost)
}

func (s *APIServer) exportData(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Export(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="plugtrack-export.json"`)
	WriteJSON(w, http.StatusOK, snap)
}

func (s *APIServer) importData(w http.ResponseWriter, r *http.Request) {
	text, err := source.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize), maxBodySize)
	if err != nil {
		Error(w, r, fmt.Errorf("%w: %w", tracker.ErrInvalid, err))
		return
	}
	snap, err := store.ParseSnapshot([]byte(text))
	if err != nil {
		Error(w, r, fmt.Errorf("%w: %v", tracker.ErrInvalid, err))
		return
	}
	if err := s.svc.Import(r.Context(), snap); err != nil {
		Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *APIServer) resetData(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Reset(r.Context()); err != nil {
		Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
