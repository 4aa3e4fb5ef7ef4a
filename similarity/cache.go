package similarity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
)

// Cache provides content-addressed caching for embeddings. Keys are a
// cryptographic hash of the text content so identical property texts
// dedupe across templates and runs.
type Cache interface {
	// Get retrieves a cached embedding for the given content hash.
	// Returns an error on a miss.
	Get(ctx context.Context, contentHash string) ([]float32, error)

	// Put stores an embedding under the given content hash.
	Put(ctx context.Context, contentHash string, embedding []float32) error
}

// ContentHash generates a SHA-256 hash of text content for use as a
// cache key.
func ContentHash(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

// MemoryCache is a process-local Cache. It is the default cache of
// EmbedderProvider and is safe for concurrent use.
type MemoryCache struct {
	mu         sync.RWMutex
	embeddings map[string][]float32
}

// NewMemoryCache returns an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{embeddings: make(map[string][]float32)}
}

// Get retrieves a cached embedding by content hash.
func (c *MemoryCache) Get(_ context.Context, contentHash string) ([]float32, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	embedding, ok := c.embeddings[contentHash]
	if !ok {
		return nil, fmt.Errorf("cache miss: %s", contentHash)
	}
	return embedding, nil
}

// Put stores an embedding under the given content hash.
func (c *MemoryCache) Put(_ context.Context, contentHash string, embedding []float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.embeddings[contentHash] = embedding
	return nil
}

// Len returns the number of cached embeddings.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.embeddings)
}
