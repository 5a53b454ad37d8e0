package tracker

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/kk-code-lab/plugtrack/internal/store"
)

// SettingsID is the key given to a settings record created here.
const SettingsID = "settings"

// Settings holds display preferences.
type Settings struct {
	ID         string `json:"id"`
	Theme      string `json:"theme"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
}

var (
	Themes      = []string{"light", "dark"}
	Backgrounds = []string{"glow", "ribbons", "blueprint"}
)

var accentPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() Settings {
	return Settings{ID: SettingsID, Theme: "dark", Accent: "#7c5cff", Background: "glow"}
}

// Validate normalizes and checks the settings values.
func (st *Settings) Validate() error {
	if st.ID == "" {
		st.ID = SettingsID
	}
	st.Theme = strings.ToLower(strings.TrimSpace(st.Theme))
	st.Background = strings.ToLower(strings.TrimSpace(st.Background))
	st.Accent = strings.ToLower(strings.TrimSpace(st.Accent))
	if !contains(Themes, st.Theme) {
		return fmt.Errorf("theme %q: %w", st.Theme, ErrInvalid)
	}
	if !contains(Backgrounds, st.Background) {
		return fmt.Errorf("background %q: %w", st.Background, ErrInvalid)
	}
	if !accentPattern.MatchString(st.Accent) {
		return fmt.Errorf("accent %q: %w", st.Accent, ErrInvalid)
	}
	return nil
}

// Set assigns one field by name: theme, accent or background.
func (st *Settings) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		st.Theme = value
	case "accent":
		st.Accent = value
	case "background":
		st.Background = value
	default:
		return fmt.Errorf("unknown setting %q: %w", key, ErrInvalid)
	}
	return st.Validate()
}

// Settings returns the first stored settings record, or the defaults if
// there is none. Imported data may carry any id for it.
func (s *Service) Settings(ctx context.Context) (Settings, error) {
	all, err := store.All[Settings](ctx, s.store, store.Settings)
	if err != nil {
		return Settings{}, err
	}
	if len(all) == 0 {
		return DefaultSettings(), nil
	}
	return all[0], nil
}

// SaveSettings validates st and stores it over the current record, keeping
// that record's id.
func (s *Service) SaveSettings(ctx context.Context, st Settings) (Settings, error) {
	current, err := s.Settings(ctx)
	if err != nil {
		return Settings{}, err
	}
	st.ID = current.ID
	if err := st.Validate(); err != nil {
		return Settings{}, err
	}
	if err := s.store.Put(ctx, store.Settings, st.ID, st); err != nil {
		return Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return st, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
