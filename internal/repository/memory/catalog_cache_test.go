package memory

import (
	"testing"
	"time"

	"saga-be/pkg/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCache(t *testing.T) {
	c := NewCatalogCache(time.Minute)
	key := CatalogKey("tmdb_movie", "  Matrix ", 5)
	assert.Equal(t, "tmdb_movie|matrix|5", key)

	_, found := c.Get(key)
	assert.False(t, found)

	c.Save(key, []catalog.Item{{Title: "The Matrix", ExternalId: "603"}})
	items, found := c.Get(key)
	require.True(t, found)
	assert.Equal(t, "603", items[0].ExternalId)

	c.Delete(key)
	_, found = c.Get(key)
	assert.False(t, found)
}
