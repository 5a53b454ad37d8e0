package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SnapshotVersion is the export format version written by Export.
const SnapshotVersion = 1

// Snapshot is the portable form of a whole store.
type Snapshot struct {
	Version    int               `json:"version"`
	ExportedAt time.Time         `json:"exportedAt"`
	Apps       []json.RawMessage `json:"apps"`
	Groups     []json.RawMessage `json:"groups"`
	Plugins    []json.RawMessage `json:"plugins"`
	Settings   json.RawMessage   `json:"settings"`
}

// ParseSnapshot decodes an exported document.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := codec.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version > SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than supported version %d", snap.Version, SnapshotVersion)
	}
	return &snap, nil
}

// Marshal encodes the snapshot with indentation.
func (s *Snapshot) Marshal() ([]byte, error) {
	return codec.MarshalIndent(s, "", "  ")
}

// Export reads every collection into a Snapshot.
func Export(ctx context.Context, s Store) (*Snapshot, error) {
	snap := &Snapshot{Version: SnapshotVersion, ExportedAt: time.Now().UTC()}
	var err error
	if snap.Apps, err = s.GetAll(ctx, Apps); err != nil {
		return nil, err
	}
	if snap.Groups, err = s.GetAll(ctx, Groups); err != nil {
		return nil, err
	}
	if snap.Plugins, err = s.GetAll(ctx, Plugins); err != nil {
		return nil, err
	}
	settings, err := s.GetAll(ctx, Settings)
	if err != nil {
		return nil, err
	}
	if len(settings) > 0 {
		snap.Settings = settings[0]
	}
	return snap, nil
}

// Import replaces the contents of every collection with snap. Record ids are
// checked before anything is cleared, and stores implementing Transactor
// apply the replacement all or nothing.
func Import(ctx context.Context, s Store, snap *Snapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}
	batches := map[string][]json.RawMessage{
		Apps:    snap.Apps,
		Groups:  snap.Groups,
		Plugins: snap.Plugins,
	}
	if len(snap.Settings) > 0 && string(snap.Settings) != "null" {
		batches[Settings] = []json.RawMessage{snap.Settings}
	}

	ids := make(map[string][]string, len(batches))
	for _, collection := range Collections {
		for i, raw := range batches[collection] {
			id, err := RecordID(raw)
			if err != nil {
				return fmt.Errorf("%s record %d: %w", collection, i, err)
			}
			ids[collection] = append(ids[collection], id)
		}
	}

	replace := func(s Store) error {
		for _, collection := range Collections {
			if err := s.Clear(ctx, collection); err != nil {
				return err
			}
			for i, raw := range batches[collection] {
				if err := s.Put(ctx, collection, ids[collection][i], raw); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if tx, ok := s.(Transactor); ok {
		return tx.InTx(ctx, replace)
	}
	return replace(s)
}

// SeedIfEmpty imports snap when the apps collection is empty. It reports
// whether the seed was applied.
func SeedIfEmpty(ctx context.Context, s Store, snap *Snapshot) (bool, error) {
	apps, err := s.GetAll(ctx, Apps)
	if err != nil {
		return false, err
	}
	if len(apps) > 0 {
		return false, nil
	}
	if err := Import(ctx, s, snap); err != nil {
		return false, err
	}
	return true, nil
}
