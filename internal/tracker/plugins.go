package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/kk-code-lab/plugtrack/internal/markup"
	"github.com/kk-code-lab/plugtrack/internal/store"
)

// AllGroups is the GroupID filter value that matches every group.
const AllGroups = "all"

// Filter selects plugins. Empty fields match everything.
type Filter struct {
	AppID   string
	GroupID string
	// Query is matched case-insensitively against the plugin name and its
	// group's name.
	Query string
}

// Plugins lists plugins matching f in insertion order.
func (s *Service) Plugins(ctx context.Context, f Filter) ([]Plugin, error) {
	plugins, err := store.All[Plugin](ctx, s.store, store.Plugins)
	if err != nil {
		return nil, err
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))
	var groupNames map[string]string
	if query != "" {
		groups, err := store.All[Group](ctx, s.store, store.Groups)
		if err != nil {
			return nil, err
		}
		groupNames = make(map[string]string, len(groups))
		for _, g := range groups {
			groupNames[g.ID] = strings.ToLower(g.Name)
		}
	}

	out := make([]Plugin, 0, len(plugins))
	for _, p := range plugins {
		if f.AppID != "" && p.AppID != f.AppID {
			continue
		}
		if f.GroupID != "" && f.GroupID != AllGroups && p.GroupID != f.GroupID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(groupNames[p.GroupID], query) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Plugin returns one plugin.
func (s *Service) Plugin(ctx context.Context, id string) (Plugin, error) {
	return store.One[Plugin](ctx, s.store, store.Plugins, id)
}

// SavePlugin validates p and stores it. A plugin without an ID is created
// with a fresh one.
func (s *Service) SavePlugin(ctx context.Context, p Plugin) (Plugin, error) {
	name, err := cleanName("plugin", p.Name)
	if err != nil {
		return Plugin{}, err
	}
	p.Name = name
	p.URL = strings.TrimSpace(p.URL)
	p.Description = strings.TrimSpace(p.Description)

	if _, err := s.App(ctx, p.AppID); err != nil {
		return Plugin{}, fmt.Errorf("plugin app %q: %w", p.AppID, err)
	}
	if p.GroupID != "" {
		g, err := s.Group(ctx, p.GroupID)
		if err != nil {
			return Plugin{}, fmt.Errorf("plugin group %q: %w", p.GroupID, err)
		}
		if g.AppID != p.AppID {
			return Plugin{}, fmt.Errorf("group %q belongs to another app: %w", p.GroupID, ErrInvalid)
		}
	}

	if p.ID == "" {
		p.ID = store.NewID()
	}
	if err := s.store.Put(ctx, store.Plugins, p.ID, p); err != nil {
		return Plugin{}, fmt.Errorf("save plugin: %w", err)
	}
	return p, nil
}

// DeletePlugin removes one plugin.
func (s *Service) DeletePlugin(ctx context.Context, id string) error {
	if _, err := s.Plugin(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, store.Plugins, id)
}

// DescriptionHTML renders a plugin's description.
func (s *Service) DescriptionHTML(ctx context.Context, id string) (string, error) {
	p, err := s.Plugin(ctx, id)
	if err != nil {
		return "", err
	}
	return s.renderer.Render(p.Description), nil
}

// Renderer returns the markup renderer used for descriptions.
func (s *Service) Renderer() markup.Renderer {
	return s.renderer
}

func (s *Service) deletePluginsWhere(ctx context.Context, match func(Plugin) bool) error {
	plugins, err := store.All[Plugin](ctx, s.store, store.Plugins)
	if err != nil {
		return err
	}
	for _, p := range plugins {
		if !match(p) {
			continue
		}
		if err := s.store.Delete(ctx, store.Plugins, p.ID); err != nil {
			return err
		}
	}
	return nil
}
