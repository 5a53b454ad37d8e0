// Package server exposes the tracker and the markup renderer over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/kk-code-lab/plugtrack/internal/tracker"
)

type APIServer struct {
	http.Server
	svc    *tracker.Service
	router *mux.Router
}

// NewServer builds the API server for svc listening on addr.
func NewServer(svc *tracker.Service, addr string) *APIServer {
	router := mux.NewRouter()
	s := &APIServer{svc: svc, router: router}

	// Middleware only wraps matched routes, so the not-found handler is
	// wrapped by hand.
	logged := loggingHandler()
	router.NotFoundHandler = logged(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errors.New(http.StatusText(http.StatusNotFound)))
	}))
	router.Use(logged)

	api := router.PathPrefix("/api").Subrouter()
	for _, register := range []func(*mux.Router){
		s.registerRenderHandlers,
		s.registerAppsHandlers,
		s.registerPluginsHandlers,
		s.registerSettingsHandlers,
		s.registerDataHandlers,
	} {
		register(api)
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
			path, err := route.GetPathTemplate()
			if err != nil {
				path = ""
			}
			methods, err := route.GetMethods()
			if err != nil {
				methods = []string{}
			}
			log.Debugf("Methods: %s Path: %s", strings.Join(methods, ", "), path)
			return nil
		})
	}

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 20 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}
	return s
}

// Handler returns the router wrapped in panic recovery and compression.
func (s *APIServer) Handler() http.Handler {
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(log.StandardLogger()),
		handlers.PrintRecoveryStack(true),
	)
	return recovery(handlers.CompressHandler(s.router))
}

// Serve accepts connections on l until ctx is cancelled, then shuts down
// gracefully.
func (s *APIServer) Serve(ctx context.Context, l net.Listener) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.Server.Serve(l)
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start API server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Failed to cleanly shutdown API server: %v", err)
		return err
	}
	return nil
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *APIServer) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Addr, err)
	}
	log.Infof("API server listening on http://%s", l.Addr())
	return s.Serve(ctx, l)
}
