package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/kk-code-lab/plugtrack/internal/store"
)

// Seed loads DefaultSeed when the store has no apps.
func (s *Service) Seed(ctx context.Context) (bool, error) {
	snap, err := DefaultSeed()
	if err != nil {
		return false, err
	}
	return store.SeedIfEmpty(ctx, s.store, snap)
}

// Reset replaces all data with DefaultSeed.
func (s *Service) Reset(ctx context.Context) error {
	snap, err := DefaultSeed()
	if err != nil {
		return err
	}
	return store.Import(ctx, s.store, snap)
}

// Export snapshots all data.
func (s *Service) Export(ctx context.Context) (*store.Snapshot, error) {
	return store.Export(ctx, s.store)
}

// Import replaces all data with snap.
func (s *Service) Import(ctx context.Context, snap *store.Snapshot) error {
	if err := store.Import(ctx, s.store, snap); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return nil
}

// DefaultSeed returns the sample data loaded into an empty store.
func DefaultSeed() (*store.Snapshot, error) {
	apps := []App{
		{ID: "app-live", Name: "Ableton Live", Slug: Slugify("Ableton Live")},
		{ID: "app-code", Name: "VS Code", Slug: Slugify("VS Code")},
	}
	groups := []Group{
		{ID: "group-live-synths", AppID: "app-live", Name: "Synths"},
		{ID: "group-live-fx", AppID: "app-live", Name: "Effects"},
		{ID: "group-code-lang", AppID: "app-code", Name: "Languages"},
		{ID: "group-code-look", AppID: "app-code", Name: "Appearance"},
	}
	plugins := []Plugin{
		{
			ID: "plugin-vital", AppID: "app-live", GroupID: "group-live-synths",
			Name: "Vital", URL: "https://vital.audio",
			Description: "# Vital\nSpectral warping **wavetable** synth.\n\n- free tier\n- `.vitalbank` presets",
			Installed:   true,
		},
		{
			ID: "plugin-valhalla", AppID: "app-live", GroupID: "group-live-fx",
			Name: "Valhalla Supermassive", URL: "https://valhalladsp.com",
			Description: "Huge *delays* and reverbs.\nSee [the manual](https://valhalladsp.com/shop/reverb/valhalla-supermassive/).",
		},
		{
			ID: "plugin-gopls", AppID: "app-code", GroupID: "group-code-lang",
			Name: "Go", URL: "https://marketplace.visualstudio.com/items?itemName=golang.go",
			Description: "## Go\nRuns `gopls` for **completion** and diagnostics.",
			Installed:   true,
		},
		{
			ID: "plugin-theme", AppID: "app-code", GroupID: "group-code-look",
			Name: "Catppuccin", URL: "https://catppuccin.com",
			Description: "Pastel theme.\n\n* latte\n* mocha",
		},
	}

	snap := &store.Snapshot{Version: store.SnapshotVersion, ExportedAt: time.Unix(0, 0).UTC()}
	for _, a := range apps {
		raw, err := store.Encode(a)
		if err != nil {
			return nil, err
		}
		snap.Apps = append(snap.Apps, raw)
	}
	for _, g := range groups {
		raw, err := store.Encode(g)
		if err != nil {
			return nil, err
		}
		snap.Groups = append(snap.Groups, raw)
	}
	for _, p := range plugins {
		raw, err := store.Encode(p)
		if err != nil {
			return nil, err
		}
		snap.Plugins = append(snap.Plugins, raw)
	}
	settings, err := store.Encode(DefaultSettings())
	if err != nil {
		return nil, err
	}
	snap.Settings = settings
	return snap, nil
}
