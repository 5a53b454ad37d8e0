package tracker

import (
	"context"
	"fmt"

	"github.com/kk-code-lab/plugtrack/internal/store"
)

// Apps lists every app in insertion order.
func (s *Service) Apps(ctx context.Context) ([]App, error) {
	return store.All[App](ctx, s.store, store.Apps)
}

// App returns one app.
func (s *Service) App(ctx context.Context, id string) (App, error) {
	return store.One[App](ctx, s.store, store.Apps, id)
}

// AddApp creates an app named name.
func (s *Service) AddApp(ctx context.Context, name string) (App, error) {
	name, err := cleanName("app", name)
	if err != nil {
		return App{}, err
	}
	app := App{ID: store.NewID(), Name: name, Slug: Slugify(name)}
	if err := s.store.Add(ctx, store.Apps, app.ID, app); err != nil {
		return App{}, fmt.Errorf("add app: %w", err)
	}
	return app, nil
}

// RenameApp changes an app's name and slug.
func (s *Service) RenameApp(ctx context.Context, id, name string) (App, error) {
	name, err := cleanName("app", name)
	if err != nil {
		return App{}, err
	}
	app, err := s.App(ctx, id)
	if err != nil {
		return App{}, err
	}
	app.Name = name
	app.Slug = Slugify(name)
	if err := s.store.Put(ctx, store.Apps, app.ID, app); err != nil {
		return App{}, fmt.Errorf("rename app: %w", err)
	}
	return app, nil
}

// DeleteApp removes an app with all of its groups and plugins.
func (s *Service) DeleteApp(ctx context.Context, id string) error {
	if _, err := s.App(ctx, id); err != nil {
		return err
	}
	groups, err := s.Groups(ctx, id)
	if err != nil {
		return err
	}
	for _, g := range groups {
		if err := s.store.Delete(ctx, store.Groups, g.ID); err != nil {
			return err
		}
	}
	if err := s.deletePluginsWhere(ctx, func(p Plugin) bool { return p.AppID == id }); err != nil {
		return err
	}
	return s.store.Delete(ctx, store.Apps, id)
}

// Groups lists the groups of one app.
func (s *Service) Groups(ctx context.Context, appID string) ([]Group, error) {
	all, err := store.All[Group](ctx, s.store, store.Groups)
	if err != nil {
		return nil, err
	}
	out := make([]Group, 0, len(all))
	for _, g := range all {
		if g.AppID == appID {
			out = append(out, g)
		}
	}
	return out, nil
}

// Group returns one group.
func (s *Service) Group(ctx context.Context, id string) (Group, error) {
	return store.One[Group](ctx, s.store, store.Groups, id)
}

// AddGroup creates a group in an existing app.
func (s *Service) AddGroup(ctx context.Context, appID, name string) (Group, error) {
	name, err := cleanName("group", name)
	if err != nil {
		return Group{}, err
	}
	if _, err := s.App(ctx, appID); err != nil {
		return Group{}, err
	}
	g := Group{ID: store.NewID(), AppID: appID, Name: name}
	if err := s.store.Add(ctx, store.Groups, g.ID, g); err != nil {
		return Group{}, fmt.Errorf("add group: %w", err)
	}
	return g, nil
}

// RenameGroup changes a group's name.
func (s *Service) RenameGroup(ctx context.Context, id, name string) (Group, error) {
	name, err := cleanName("group", name)
	if err != nil {
		return Group{}, err
	}
	g, err := s.Group(ctx, id)
	if err != nil {
		return Group{}, err
	}
	g.Name = name
	if err := s.store.Put(ctx, store.Groups, g.ID, g); err != nil {
		return Group{}, fmt.Errorf("rename group: %w", err)
	}
	return g, nil
}

// DeleteGroup removes a group and its plugins.
func (s *Service) DeleteGroup(ctx context.Context, id string) error {
	if _, err := s.Group(ctx, id); err != nil {
		return err
	}
	if err := s.deletePluginsWhere(ctx, func(p Plugin) bool { return p.GroupID == id }); err != nil {
		return err
	}
	return s.store.Delete(ctx, store.Groups, id)
}
