package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// CachedClient adds a short-TTL read cache in front of collection fetches.
// Writes invalidate the touched collection, so a reader never sees its own
// write stale; unrelated collections age out after the TTL.
type CachedClient struct {
	*Client
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	raw     json.RawMessage
	fetched time.Time
}

// NewCachedClient wraps client with a read cache of the given TTL.
func NewCachedClient(client *Client, ttl time.Duration) *CachedClient {
	return &CachedClient{
		Client:  client,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// GetAll serves the collection from cache when fresh, otherwise fetches and
// caches the raw payload.
func (c *CachedClient) GetAll(ctx context.Context, collection string, out any) error {
	c.mu.Lock()
	entry, ok := c.entries[collection]
	c.mu.Unlock()
	if ok && time.Since(entry.fetched) < c.ttl {
		return json.Unmarshal(entry.raw, out)
	}

	var raw json.RawMessage
	if err := c.Client.GetAll(ctx, collection, &raw); err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[collection] = cacheEntry{raw: raw, fetched: time.Now()}
	c.mu.Unlock()

	return json.Unmarshal(raw, out)
}

// Create stores a record and invalidates the collection.
func (c *CachedClient) Create(ctx context.Context, collection string, record any) error {
	c.invalidate(collection)
	return c.Client.Create(ctx, collection, record)
}

// Replace overwrites a record and invalidates the collection.
func (c *CachedClient) Replace(ctx context.Context, collection, id string, record any) error {
	c.invalidate(collection)
	return c.Client.Replace(ctx, collection, id, record)
}

// Delete removes a record and invalidates the collection.
func (c *CachedClient) Delete(ctx context.Context, collection, id string) error {
	c.invalidate(collection)
	return c.Client.Delete(ctx, collection, id)
}

func (c *CachedClient) invalidate(collection string) {
	c.mu.Lock()
	delete(c.entries, collection)
	c.mu.Unlock()
}
