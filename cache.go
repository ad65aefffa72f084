package ogengine

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// RecordCache is an in-memory TTL cache in front of a RecordSource.
// Only successful lookups are cached, so a store outage or a missing row
// is retried on the next request.
type RecordCache struct {
	source RecordSource
	items  *cache.Cache
}

// NewRecordCache creates a RecordCache backed by source.
func NewRecordCache(source RecordSource, ttl time.Duration) *RecordCache {
	return &RecordCache{
		source: source,
		items:  cache.New(ttl, 2*ttl),
	}
}

// BlogPostBySlug returns the cached post or loads it from the source.
func (c *RecordCache) BlogPostBySlug(ctx context.Context, slug string) (BlogPostRecord, error) {
	key := "blog:" + slug
	if v, ok := c.items.Get(key); ok {
		return v.(BlogPostRecord), nil
	}
	rec, err := c.source.BlogPostBySlug(ctx, slug)
	if err != nil {
		return BlogPostRecord{}, err
	}
	c.items.Set(key, rec, cache.DefaultExpiration)
	return rec, nil
}

// PropertyBySlug returns the cached property or loads it from the source.
func (c *RecordCache) PropertyBySlug(ctx context.Context, slug string) (PropertyRecord, error) {
	key := "property:" + slug
	if v, ok := c.items.Get(key); ok {
		return v.(PropertyRecord), nil
	}
	rec, err := c.source.PropertyBySlug(ctx, slug)
	if err != nil {
		return PropertyRecord{}, err
	}
	c.items.Set(key, rec, cache.DefaultExpiration)
	return rec, nil
}

// Invalidate clears the cache so the next read goes to the source.
func (c *RecordCache) Invalidate() {
	c.items.Flush()
}

// Len reports the number of cached records, expired ones included until
// the janitor runs.
func (c *RecordCache) Len() int {
	return c.items.ItemCount()
}
