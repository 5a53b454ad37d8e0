package server

import (
	"errors"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"

	"github.com/kk-code-lab/plugtrack/internal/source"
	"github.com/kk-code-lab/plugtrack/internal/store"
	"github.com/kk-code-lab/plugtrack/internal/tracker"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodySize bounds request bodies. Larger bodies get 413.
const maxBodySize = source.DefaultLimit

type errorResponse struct {
	Error string `json:"error"`
}

// WriteJSON encodes value as the response body.
func WriteJSON(w http.ResponseWriter, code int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	coder := json.NewEncoder(w)
	coder.SetEscapeHTML(true)
	if err := coder.Encode(value); err != nil {
		log.Errorf("unable to write json: %q", err)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	WriteJSON(w, code, errorResponse{Error: err.Error()})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, source.ErrTooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tracker.ErrInvalid),
		errors.Is(err, store.ErrMissingID),
		errors.Is(err, source.ErrBinary):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err with the status it maps to.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		log.WithField("path", r.URL.Path).Errorf("request failed: %v", err)
	} else {
		log.Infof("Failed Request: (%d:%s) for %s:'%s': %v", code, http.StatusText(code), r.Method, r.URL.String(), err)
	}
	writeError(w, code, err)
}

// decodeBody decodes a JSON request body into v. Malformed bodies are
// reported as tracker.ErrInvalid.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %w", tracker.ErrInvalid, err)
	}
	return nil
}
