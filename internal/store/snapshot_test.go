package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryStore()
	require.NoError(t, src.Put(ctx, Apps, "a1", doc{ID: "a1", Name: "Live"}))
	require.NoError(t, src.Put(ctx, Groups, "g1", doc{ID: "g1", Name: "Delay"}))
	require.NoError(t, src.Put(ctx, Plugins, "p1", doc{ID: "p1", Name: "Echo"}))
	require.NoError(t, src.Put(ctx, Settings, "settings", doc{ID: "settings", Name: "dark"}))

	snap, err := Export(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.Len(t, snap.Apps, 1)
	assert.NotNil(t, snap.Settings)

	data, err := snap.Marshal()
	require.NoError(t, err)
	parsed, err := ParseSnapshot(data)
	require.NoError(t, err)

	dst := NewMemoryStore()
	require.NoError(t, dst.Put(ctx, Apps, "old", doc{ID: "old"}))
	require.NoError(t, Import(ctx, dst, parsed))

	apps, err := All[doc](ctx, dst, Apps)
	require.NoError(t, err)
	assert.Equal(t, []doc{{ID: "a1", Name: "Live"}}, apps)

	settings, err := One[doc](ctx, dst, Settings, "settings")
	require.NoError(t, err)
	assert.Equal(t, "dark", settings.Name)
}

func TestImportValidatesBeforeClearing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Put(ctx, Apps, "keep", doc{ID: "keep"}))

	snap := &Snapshot{Apps: []json.RawMessage{json.RawMessage(`{"name":"no id"}`)}}
	err := Import(ctx, s, snap)
	assert.ErrorIs(t, err, ErrMissingID)

	apps, err := s.GetAll(ctx, Apps)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestImportNullSettingsClearsSettings(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Put(ctx, Settings, "settings", doc{ID: "settings"}))

	snap, err := ParseSnapshot([]byte(`{"version":1,"apps":[],"groups":[],"plugins":[],"settings":null}`))
	require.NoError(t, err)
	require.NoError(t, Import(ctx, s, snap))

	all, err := s.GetAll(ctx, Settings)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestParseSnapshotRejectsNewerVersion(t *testing.T) {
	_, err := ParseSnapshot([]byte(`{"version":2}`))
	assert.Error(t, err)
}

func TestSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	snap := &Snapshot{Apps: []json.RawMessage{json.RawMessage(`{"id":"a1"}`)}}

	applied, err := SeedIfEmpty(ctx, s, snap)
	require.NoError(t, err)
	assert.True(t, applied)

	snap2 := &Snapshot{Apps: []json.RawMessage{json.RawMessage(`{"id":"a2"}`)}}
	applied, err = SeedIfEmpty(ctx, s, snap2)
	require.NoError(t, err)
	assert.False(t, applied)

	_, err = s.Get(ctx, Apps, "a1")
	assert.NoError(t, err)
}

// flakyStore fails every Put after the first few.
type flakyStore struct {
	*MemoryStore
	puts int
}

var errDiskFull = errors.New("disk full")

func (f *flakyStore) Put(ctx context.Context, collection, id string, value any) error {
	if f.puts == 0 {
		return errDiskFull
	}
	f.puts--
	return f.MemoryStore.Put(ctx, collection, id, value)
}

func (f *flakyStore) InTx(ctx context.Context, fn func(Store) error) error {
	return f.MemoryStore.InTx(ctx, func(Store) error { return fn(f) })
}

func TestImportIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	require.NoError(t, mem.Put(ctx, Apps, "old", doc{ID: "old", Name: "Old"}))
	require.NoError(t, mem.Put(ctx, Plugins, "p-old", doc{ID: "p-old", Name: "Old plugin"}))

	snap := &Snapshot{
		Version: SnapshotVersion,
		Apps:    []json.RawMessage{json.RawMessage(`{"id":"new","name":"New"}`)},
		Plugins: []json.RawMessage{json.RawMessage(`{"id":"p-new","name":"New plugin"}`)},
	}
	err := Import(ctx, &flakyStore{MemoryStore: mem, puts: 1}, snap)
	require.ErrorIs(t, err, errDiskFull)

	apps, err := All[doc](ctx, mem, Apps)
	require.NoError(t, err)
	assert.Equal(t, []doc{{ID: "old", Name: "Old"}}, apps)
	plugins, err := All[doc](ctx, mem, Plugins)
	require.NoError(t, err)
	assert.Equal(t, []doc{{ID: "p-old", Name: "Old plugin"}}, plugins)
}
