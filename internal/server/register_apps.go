package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

type nameRequest struct {
	Name string `json:"name"`
}

func (s *APIServer) registerAppsHandlers(r *mux.Router) {
	r.HandleFunc("/apps", s.listApps).Methods(http.MethodGet)
	r.HandleFunc("/apps", s.createApp).Methods(http.MethodPost)
	r.HandleFunc("/apps/{id}", s.renameApp).Methods(http.MethodPut)
	r.HandleFunc("/apps/{id}", s.deleteApp).Methods(http.MethodDelete)
	r.HandleFunc("/apps/{id}/groups", s.listGroups).Methods(http.MethodGet)
	r.HandleFunc("/apps/{id}/groups", s.createGroup).Methods(http.MethodPost)
	r.HandleFunc("/groups/{id}", s.renameGroup).Methods(http.MethodPut)
	r.HandleFunc("/groups/{id}", s.deleteGroup).Methods(http.MethodDelete)
}

func (s *APIServer) listApps(w http.ResponseWriter, r *http.Request) {
	apps, err := s.svc.Apps(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, apps)
}

func (s *APIServer) createApp(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeBody(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}
	app, err := s.svc.AddApp(r.Context(), req.Name)
	if err != nil {
		Error(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, app)
}

func (s *APIServer) renameApp(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeBody(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}
	app, err := s.svc.RenameApp(r.Context(), mux.Vars(r)["id"], req.Name)
	if err != nil {
		Error(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, app)
}

func (s *APIServer) deleteApp(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteApp(r.Context(), mux.Vars(r)["id"]); err != nil {
		Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *APIServer) listGroups(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.svc.App(r.Context(), id); err != nil {
		Error(w, r, err)
		return
	}
	groups, err := s.svc.Groups(r.Context(), id)
	if err != nil {
		Error(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, groups)
}

func (s *APIServer) createGroup(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeBody(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}
	group, err := s.svc.AddGroup(r.Context(), mux.Vars(r)["id"], req.Name)
	if err != nil {
		Error(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, group)
}

func (s *APIServer) renameGroup(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeBody(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}
	group, err := s.svc.RenameGroup(r.Context(), mux.Vars(r)["id"], req.Name)
	if err != nil {
		Error(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, group)
}

func (s *APIServer) deleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteGroup(r.Context(), mux.Vars(r)["id"]); err != nil {
		Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
