package memory

import (
	"fmt"
	"strings"
	"time"

	"saga-be/pkg/catalog"

	"github.com/patrickmn/go-cache"
)

// CatalogCache keeps external catalog search results for a short while so
// repeated identify calls do not hit TMDB and the book APIs again.
type CatalogCache struct {
	cache *cache.Cache
}

func NewCatalogCache(ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CatalogCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func CatalogKey(source, query string, limit int) string {
	return fmt.Sprintf("%s|%s|%d", source, strings.ToLower(strings.TrimSpace(query)), limit)
}

func (r *CatalogCache) Save(key string, items []catalog.Item) {
	r.cache.Set(key, items, cache.DefaultExpiration)
}

func (r *CatalogCache) Get(key string) ([]catalog.Item, bool) {
	if x, found := r.cache.Get(key); found {
		return x.([]catalog.Item), true
	}
	return nil, false
}

func (r *CatalogCache) Delete(key string) {
	r.cache.Delete(key)
}
