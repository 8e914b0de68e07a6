package timing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/f1log/stint-analyzer-go/pkg/model"
)

// Cache stores raw provider responses on disk. Entries never expire: a
// finished session's lap data does not change.
type Cache struct {
	dir string
}

func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// cacheKey derives the cache file name from the request parameters.
func cacheKey(meta model.SessionMeta) string {
	hasher := sha256.New()
	fmt.Fprintf(hasher, "%d|%s|%s", meta.Year, meta.Event, meta.SessionCode)
	return hex.EncodeToString(hasher.Sum(nil))
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func (c *Cache) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *Cache) Put(key string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.path(key), data, 0o644)
}
