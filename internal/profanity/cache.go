package profanity

import (
	"context"
	"sync"
	"time"

	"github.com/chatwii/backend/internal/logger"
	"github.com/chatwii/backend/internal/repository"
	"go.uber.org/zap"
)

// Word categories. Nickname words apply to signup names, chat words to
// message text; the lists are independent.
const (
	CategoryNickname = "nickname"
	CategoryChat     = "chat"
)

// DefaultTTL is the maximum staleness of a category's word set before
// the next lookup reloads it from the store.
const DefaultTTL = 5 * time.Minute

// ValidCategory reports whether category names a known word list
func ValidCategory(category string) bool {
	return category == CategoryNickname || category == CategoryChat
}

// Cache mirrors the persisted word lists in memory, one lowercase word
// set per category. It is process-local: every instance rebuilds its own
// sets, and a mutation made by another instance is only observed after
// the TTL expires.
//
// Mutations after a successful persisted write go straight into the live
// set, so same-process checks see them immediately without a reload.
type Cache struct {
	store repository.WordStore
	ttl   time.Duration
	log   *zap.Logger

	mu            sync.RWMutex
	words         map[string]map[string]struct{}
	lastRefreshed map[string]time.Time
}

// NewCache creates an empty cache over the given store.
// A non-positive ttl falls back to DefaultTTL.
func NewCache(store repository.WordStore, ttl time.Duration, log *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		store:         store,
		ttl:           ttl,
		log:           log,
		words:         make(map[string]map[string]struct{}),
		lastRefreshed: make(map[string]time.Time),
	}
}

// EnsureFresh reloads the category's word set from the store when it is
// older than the TTL. The new set is built outside the lock and swapped
// in whole; concurrent callers may both reload, which only costs one
// redundant store read. A store failure is swallowed and the last-known
// set kept, so text checks degrade to stale data instead of failing.
func (c *Cache) EnsureFresh(ctx context.Context, category string) {
	c.mu.RLock()
	fresh := time.Since(c.lastRefreshed[category]) <= c.ttl
	c.mu.RUnlock()
	if fresh {
		return
	}

	rows, err := c.store.List(ctx, category)
	if err != nil {
		c.log.Warn("profanity cache refresh failed, keeping stale set",
			logger.WithCategory(category), zap.Error(err))
		return
	}

	set := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		set[row.Word] = struct{}{}
	}

	c.mu.Lock()
	c.words[category] = set
	c.lastRefreshed[category] = time.Now()
	c.mu.Unlock()
}

// AddWord inserts a word into the live set without a store round-trip.
// Called after a successful persisted insert.
func (c *Cache) AddWord(word, category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.words[category]
	if !ok {
		set = make(map[string]struct{})
		c.words[category] = set
	}
	set[word] = struct{}{}
}

// RemoveWord deletes a word from the live set, mirroring a persisted delete
func (c *Cache) RemoveWord(word, category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if set, ok := c.words[category]; ok {
		delete(set, word)
	}
}

// Clear empties the category's set and resets its timestamp so the next
// lookup forces a reload.
func (c *Cache) Clear(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.words[category] = make(map[string]struct{})
	c.lastRefreshed[category] = time.Time{}
}

// Words returns a snapshot of the category's word set.
// Enumeration order is not stable across rebuilds; callers must not
// depend on it.
func (c *Cache) Words(category string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	set := c.words[category]
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	return out
}

// LastRefreshed returns when the category's set was last reloaded
func (c *Cache) LastRefreshed(category string) time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRefreshed[category]
}
