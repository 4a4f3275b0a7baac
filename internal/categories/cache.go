package categories

import (
	"context"
	"log/slog"

	"github.com/blogwire/blogwire/internal/app"
	"github.com/blogwire/blogwire/internal/entity"
)

// Cache is the in-memory category list of one blog account, backed by a
// Store snapshot. Loading never touches the network: an empty cache is only
// populated from the server through an explicit category listing, whose
// result is handed to Replace.
type Cache struct {
	key    Key
	store  Store
	loaded bool
	list   []entity.Category
	logger *slog.Logger
}

func NewCache(key Key, store Store) *Cache {
	return &Cache{
		key:    key,
		store:  store,
		logger: app.Logger(),
	}
}

// Load reads the persisted snapshot into memory. It is idempotent: only the
// first call per Cache instance does anything. The list stays empty when no
// snapshot exists or the key is incomplete.
func (c *Cache) Load(ctx context.Context) {
	if c.loaded {
		return
	}

	c.loaded = true

	if !c.key.Complete() {
		c.logger.Debug("categories: need host, blog id and username for a unique snapshot key")
		return
	}

	list, err := c.store.ReadSnapshot(ctx, c.key)

	if err != nil {
		if err != ErrNoSnapshot {
			c.logger.Warn("categories: could not load snapshot", "key", c.key.String(), "error", err)
		}

		return
	}

	c.list = list
}

// Replace swaps in a freshly listed category set and persists it.
func (c *Cache) Replace(ctx context.Context, list []entity.Category) {
	c.loaded = true
	c.list = list
	c.save(ctx)
}

func (c *Cache) save(ctx context.Context) {
	if !c.key.Complete() {
		c.logger.Debug("categories: need host, blog id and username for a unique snapshot key")
		return
	}

	if err := c.store.WriteSnapshot(ctx, c.key, c.list); err != nil {
		c.logger.Warn("categories: could not save snapshot", "key", c.key.String(), "error", err)
	}
}

// Empty reports whether the cache holds no categories.
func (c *Cache) Empty() bool {
	return len(c.list) == 0
}

// List returns the cached categories in server order.
func (c *Cache) List() []entity.Category {
	return c.list
}

// IDByName resolves a category name to its server id. On duplicate names
// the first list entry wins.
func (c *Cache) IDByName(name string) (string, bool) {
	for _, cat := range c.list {
		if cat.Name == name {
			return cat.ID, true
		}
	}

	return "", false
}

// NameByID resolves a server category id to its name. Ids with no match are
// reported as absent, not as an error: the cache may be stale or
// incomplete.
func (c *Cache) NameByID(id string) (string, bool) {
	for _, cat := range c.list {
		if cat.ID == id {
			return cat.Name, true
		}
	}

	return "", false
}
