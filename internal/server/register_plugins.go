package server

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/kk-code-lab/plugtrack/internal/tracker"
)

func (s *APIServer) registerPluginsHandlers(r *mux.Router) {
	r.HandleFunc("/plugins", s.listPlugins).Methods(http.MethodGet)
	r.HandleFunc("/plugins", s.createPlugin).Methods(http.MethodPost)
	r.HandleFunc("/plugins/{id}", s.getPlugin).Methods(http.MethodGet)
	r.HandleFunc("/plugins/{id}", s.updatePlugin).Methods(http.MethodPut)
	r.HandleFunc("/plugins/{id}", s.deletePlugin).Methods(http.MethodDelete)
	r.HandleFunc("/plugins/{id}/description", s.pluginDescription).Methods(http.MethodGet)
}

func (s *APIServer) listPlugins(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	plugins, err := s.svc.Plugins(r.Context(), tracker.Filter{
		AppID:   q.Get("app"),
		GroupID: q.Get("group"),
		Query:   q.Get("q"),
	})
	if err != nil {
		Error(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, plugins)
}

func (s *APIServer) getPlugin(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Plugin(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		Error(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

func (s *APIServer) createPlugin(w http.ResponseWriter, r *http.Request) {
	var p tracker.Plugin
	if err := decodeBody(w, r, &p); err != nil {
		Error(w, r, err)
		return
	}
	p.ID = ""
	saved, err := s.svc.SavePlugin(r.Context(), p)
	if err != nil {
		Error(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, saved)
}

func (s *APIServer) updatePlugin(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.svc.Plugin(r.Context(), id); err != nil {
		Error(w, r, err)
		return
	}
	var p tracker.Plugin
	if err := decodeBody(w, r, &p); err != nil {
		Error(w, r, err)
		return
	}
	p.ID = id
	saved, err := s.svc.SavePlugin(r.Context(), p)
	if err != nil {
		Error(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, saved)
}

func (s *APIServer) deletePlugin(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeletePlugin(r.Context(), mux.Vars(r)["id"]); err != nil {
		Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *APIServer) pluginDescription(w http.ResponseWriter, r *http.Request) {
	html, err := s.svc.DescriptionHTML(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		Error(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(html)); err != nil {
		log.Errorf("unable to send description: %q", err)
	}
}
