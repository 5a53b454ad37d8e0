package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestStoreCRUD(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Add(ctx, Apps, "a", doc{ID: "a", Name: "Alpha"}))
			require.NoError(t, s.Add(ctx, Apps, "b", doc{ID: "b", Name: "Beta"}))

			got, err := One[doc](ctx, s, Apps, "a")
			require.NoError(t, err)
			assert.Equal(t, "Alpha", got.Name)

			err = s.Add(ctx, Apps, "a", doc{ID: "a"})
			assert.ErrorIs(t, err, ErrExists)

			require.NoError(t, s.Put(ctx, Apps, "a", doc{ID: "a", Name: "Alpha 2"}))
			all, err := All[doc](ctx, s, Apps)
			require.NoError(t, err)
			assert.Equal(t, []doc{{ID: "a", Name: "Alpha 2"}, {ID: "b", Name: "Beta"}}, all)

			require.NoError(t, s.Delete(ctx, Apps, "a"))
			require.NoError(t, s.Delete(ctx, Apps, "a"))
			_, err = s.Get(ctx, Apps, "a")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Clear(ctx, Apps))
			raws, err := s.GetAll(ctx, Apps)
			require.NoError(t, err)
			assert.Empty(t, raws)
		})
	}
}

func TestStoreUnknownCollection(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.GetAll(ctx, "widgets")
			assert.ErrorIs(t, err, ErrUnknownCollection)
			err = s.Put(ctx, "widgets", "x", doc{ID: "x"})
			assert.ErrorIs(t, err, ErrUnknownCollection)
		})
	}
}

func TestStoreRejectsInvalidRawJSON(t *testing.T) {
	s := NewMemoryStore()
	err := s.Put(context.Background(), Apps, "x", json.RawMessage(`{"id":`))
	assert.Error(t, err)
}

func TestSQLiteStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "plugtrack.db")

	s, err := NewSQLiteStore(Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, Plugins, "p1", doc{ID: "p1", Name: "Reverb"}))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(Config{Path: path})
	require.NoError(t, err)
	defer s.Close()
	got, err := One[doc](ctx, s, Plugins, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Reverb", got.Name)
	assert.Equal(t, path, s.Path())
}

func TestNewStoreDrivers(t *testing.T) {
	s, err := NewStore(Config{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = NewStore(Config{Driver: "postgres"})
	assert.Error(t, err)
}

func TestGetDBPathUsesXDGDataHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	path, err := GetDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "plugtrack", "plugtrack.db"), path)
}

func TestRecordID(t *testing.T) {
	id, err := RecordID(json.RawMessage(`{"id":"x","name":"y"}`))
	require.NoError(t, err)
	assert.Equal(t, "x", id)

	_, err = RecordID(json.RawMessage(`{"name":"y"}`))
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestNewIDIsUnique(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestInTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put(ctx, Apps, "a", doc{ID: "a", Name: "Alpha"}))
			tx, ok := s.(Transactor)
			require.True(t, ok)

			boom := errors.New("boom")
			err := tx.InTx(ctx, func(in Store) error {
				require.NoError(t, in.Clear(ctx, Apps))
				require.NoError(t, in.Put(ctx, Apps, "b", doc{ID: "b", Name: "Beta"}))
				return boom
			})
			assert.ErrorIs(t, err, boom)

			all, err := All[doc](ctx, s, Apps)
			require.NoError(t, err)
			assert.Equal(t, []doc{{ID: "a", Name: "Alpha"}}, all)

			require.NoError(t, tx.InTx(ctx, func(in Store) error {
				return in.Put(ctx, Apps, "b", doc{ID: "b", Name: "Beta"})
			}))
			all, err = All[doc](ctx, s, Apps)
			require.NoError(t, err)
			assert.Len(t, all, 2)
		})
	}
}
