package server

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/kk-code-lab/plugtrack/internal/source"
)

func (s *APIServer) registerRenderHandlers(r *mux.Router) {
	// The body is raw markup text; the response is the rendered HTML.
	r.HandleFunc("/render", s.render).Methods(http.MethodPost)
}

func (s *APIServer) render(w http.ResponseWriter, r *http.Request) {
	text, err := source.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize), maxBodySize)
	if err != nil {
		Error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := s.svc.Renderer().RenderTo(w, text); err != nil {
		log.Errorf("unable to write rendered markup: %q", err)
	}
}
