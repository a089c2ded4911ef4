package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookcourier/bookcourier/internal/domain"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "wishlist.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestLoad_EmptyDatabase(t *testing.T) {
	c := openTestCache(t)

	items, err := c.Load()

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	c := openTestCache(t)
	added := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, c.Save([]domain.WishlistItem{
		{BookID: "b1", BookName: "Dune", Author: "Herbert", Price: 20, AddedAt: added},
		{BookID: "b2", BookName: "Hyperion", Price: 15},
	}))

	items, err := c.Load()
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := map[string]domain.WishlistItem{}
	for _, item := range items {
		byID[item.BookID] = item
	}
	assert.Equal(t, "Dune", byID["b1"].BookName)
	assert.Equal(t, "Herbert", byID["b1"].Author)
	assert.Equal(t, float64(20), byID["b1"].Price)
	assert.True(t, byID["b1"].AddedAt.Equal(added))
	assert.True(t, byID["b2"].AddedAt.IsZero())
}

func TestSave_ReplacesWholesale(t *testing.T) {
	c := openTestCache(t)

	require.NoError(t, c.Save([]domain.WishlistItem{
		{BookID: "b1", BookName: "Dune"},
		{BookID: "b2", BookName: "Hyperion"},
	}))
	require.NoError(t, c.Save([]domain.WishlistItem{
		{BookID: "b3", BookName: "Messiah"},
	}))

	items, err := c.Load()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "b3", items[0].BookID)
}

func TestClear(t *testing.T) {
	c := openTestCache(t)
	require.NoError(t, c.Save([]domain.WishlistItem{{BookID: "b1", BookName: "Dune"}}))

	require.NoError(t, c.Clear())

	items, err := c.Load()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOpen_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wishlist.db")

	c, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, c.Save([]domain.WishlistItem{{BookID: "b1", BookName: "Dune"}}))
	require.NoError(t, c.Close())

	c2, err := Open(path)
	require.NoError(t, err)
	defer c2.Close()

	items, err := c2.Load()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dune", items[0].BookName)
}
