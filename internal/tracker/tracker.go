// Package tracker is the plugin-tracker domain: apps, their plugin groups,
// the plugins themselves, and display settings. Records live in a store.Store.
package tracker

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/kk-code-lab/plugtrack/internal/markup"
	"github.com/kk-code-lab/plugtrack/internal/store"
)

var (
	// ErrInvalid marks input rejected by validation.
	ErrInvalid = errors.New("invalid input")
	// ErrNotFound is store.ErrNotFound, re-exported for callers of this package.
	ErrNotFound = store.ErrNotFound
)

// App is a host application that plugins are installed into.
type App struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Group is a named bucket of plugins within one app.
type Group struct {
	ID    string `json:"id"`
	AppID string `json:"appId"`
	Name  string `json:"name"`
}

// Plugin is a tracked plugin. Description is markup source.
type Plugin struct {
	ID          string `json:"id"`
	AppID       string `json:"appId"`
	GroupID     string `json:"groupId"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Installed   bool   `json:"installed"`
}

// Service implements the tracker operations on top of a store.
type Service struct {
	store    store.Store
	renderer markup.Renderer
}

// New returns a Service backed by s. Plugin descriptions are rendered with r.
func New(s store.Store, r markup.Renderer) *Service {
	return &Service{store: s, renderer: r}
}

// Store returns the underlying store.
func (s *Service) Store() store.Store {
	return s.store
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify lowercases name and replaces whitespace runs with "-".
func Slugify(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
}

func cleanName(kind, name string) (string, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return "", fmt.Errorf("%s name is empty: %w", kind, ErrInvalid)
	}
	return name, nil
}
