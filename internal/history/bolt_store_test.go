package history

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openTestStore(t *testing.T, opts Options) *boltStore {
	t.Helper()
	raw, err := openBolt(filepath.Join(t.TempDir(), "nested", "history.db"), normalizeOptions(opts))
	require.NoError(t, err)
	store := raw.(*boltStore)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBoltStoreRecordsAndListsInOrder(t *testing.T) {
	store := openTestStore(t, Options{})

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	second := Entry{ID: "b", Kind: KindUpload, Subject: "cat.png", CreatedAt: base.Add(time.Minute)}
	first := Entry{
		ID:        "a",
		Kind:      KindShortURL,
		Subject:   "https://example.com",
		Response:  json.RawMessage(`{"shortUrl":"https://s.id/abc"}`),
		CreatedAt: base,
	}
	require.NoError(t, store.Record(second))
	require.NoError(t, store.Record(first))

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, KindShortURL, entries[0].Kind)
	assert.JSONEq(t, `{"shortUrl":"https://s.id/abc"}`, string(entries[0].Response))
	assert.Equal(t, "b", entries[1].ID)
}

func TestBoltStoreRejectsEntryWithoutID(t *testing.T) {
	store := openTestStore(t, Options{})
	require.Error(t, store.Record(Entry{Kind: KindUpload}))
}

func TestBoltStoreExpiresEntries(t *testing.T) {
	store := openTestStore(t, Options{
		EntryTTL:        time.Hour,
		CleanupInterval: time.Minute,
	})

	now := time.Now()
	store.now = func() time.Time { return now }
	require.NoError(t, store.Record(Entry{ID: "old", Kind: KindUpload}))

	now = now.Add(2 * time.Hour)
	entries, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Cleanup ran, so the key is gone from the bucket too.
	count := 0
	require.NoError(t, store.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(entryBucket)).ForEach(func(_, _ []byte) error {
			count++
			return nil
		})
	}))
	assert.Zero(t, count)
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	require.NoError(t, err)
	require.NoError(t, store.Record(Entry{ID: "x"}))
	entries, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewStoreValidatesType(t *testing.T) {
	_, err := NewStore("bbolt", " ", Options{})
	require.Error(t, err)

	_, err = NewStore("redis", "x", Options{})
	require.Error(t, err)
}
