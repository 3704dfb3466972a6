package product

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyAll       = "products:all"
	keyPerSeller = "products:seller:%s"

	cacheTTL = time.Minute
)

// Cache is a read-through cache for product listings. A nil *Cache or a
// Cache built over a nil client is a no-op, so callers never branch on it.
type Cache struct{ rdb *redis.Client }

func NewCache(rdb *redis.Client) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb}
}

func (c *Cache) GetList(ctx context.Context, sellerID string) ([]Product, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, listKey(sellerID)).Bytes()
	if err != nil {
		return nil, false
	}
	var out []Product
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (c *Cache) SetList(ctx context.Context, sellerID string, items []Product) {
	if c == nil {
		return
	}
	b, err := json.Marshal(items)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, listKey(sellerID), b, cacheTTL)
}

// Invalidate drops every listing key. Called on any product mutation,
// including the stock decrements done by order creation.
func (c *Cache) Invalidate(ctx context.Context, sellerIDs ...string) {
	if c == nil {
		return
	}
	keys := []string{keyAll}
	for _, id := range sellerIDs {
		if id != "" {
			keys = append(keys, listKey(id))
		}
	}
	c.rdb.Del(ctx, keys...)
}

func listKey(sellerID string) string {
	if sellerID == "" {
		return keyAll
	}
	return fmt.Sprintf(keyPerSeller, sellerID)
}
