package categories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogwire/blogwire/internal/entity"
)

func testKey() Key {
	return Key{Host: "blog.example.com", BlogID: "1", Username: "alice"}
}

func testList() []entity.Category {
	return []entity.Category{
		{Name: "Funny", ID: "42"},
		{Name: "Serious", ID: "7"},
		{Name: "Funny", ID: "99"},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.WriteSnapshot(ctx, testKey(), testList()))

	list, err := store.ReadSnapshot(ctx, testKey())
	require.NoError(t, err)
	assert.Equal(t, testList(), list)
}

func TestFileStoreMissingSnapshot(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, err := store.ReadSnapshot(context.Background(), testKey())

	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestCacheLoadsPersistedSnapshot(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.WriteSnapshot(ctx, testKey(), testList()))

	cache := NewCache(testKey(), store)
	cache.Load(ctx)

	assert.False(t, cache.Empty())
	assert.Equal(t, testList(), cache.List())
}

func TestCacheLoadSkipsIncompleteKey(t *testing.T) {
	store := NewFileStore(t.TempDir())
	cache := NewCache(Key{Host: "blog.example.com"}, store)

	cache.Load(context.Background())

	assert.True(t, cache.Empty())
}

func TestCacheReplacePersists(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	cache := NewCache(testKey(), store)
	cache.Replace(ctx, testList())

	fresh := NewCache(testKey(), store)
	fresh.Load(ctx)

	assert.Equal(t, testList(), fresh.List())
}

func TestLookupsFirstMatchWins(t *testing.T) {
	cache := NewCache(testKey(), NewFileStore(t.TempDir()))
	cache.Replace(context.Background(), testList())

	tests := []struct {
		name   string
		lookup func() (string, bool)
		want   string
		found  bool
	}{
		{
			name:   "duplicate name resolves to the first id",
			lookup: func() (string, bool) { return cache.IDByName("Funny") },
			want:   "42",
			found:  true,
		},
		{
			name:   "id resolves to its name",
			lookup: func() (string, bool) { return cache.NameByID("7") },
			want:   "Serious",
			found:  true,
		},
		{
			name:   "unknown name is absent",
			lookup: func() (string, bool) { return cache.IDByName("Politics") },
			want:   "",
			found:  false,
		},
		{
			name:   "unknown id is absent, not an error",
			lookup: func() (string, bool) { return cache.NameByID("1000") },
			want:   "",
			found:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.lookup()

			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
