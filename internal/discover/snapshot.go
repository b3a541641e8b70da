package discover

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/cache"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/logger"
)

// Snapshot serves feed pages stale-while-revalidate: a cached page
// comes back immediately and a background refresh replaces it, so the
// common read never waits on ranking. Misses fall through to the
// service synchronously.
type Snapshot struct {
	service *Service
	cache   *cache.Cache
	ttl     time.Duration

	mu        sync.Mutex
	keys      map[string]bool // every cached page key, for invalidation
	refreshes map[string]bool // keys with an in-flight background refresh
}

func NewSnapshot(service *Service, c *cache.Cache, ttl time.Duration) *Snapshot {
	return &Snapshot{
		service:   service,
		cache:     c,
		ttl:       ttl,
		keys:      make(map[string]bool),
		refreshes: make(map[string]bool),
	}
}

func snapshotKey(userID, category string, page int) string {
	return fmt.Sprintf("feed:%s:%s:%d", userID, category, page)
}

// Feed returns the cached page when one exists, kicking off a
// background recompute, and computes synchronously otherwise.
func (s *Snapshot) Feed(ctx context.Context, userID, category string, page int) (Page, error) {
	key := snapshotKey(userID, category, page)

	if cached, ok := s.cache.Get(key); ok {
		if snap, ok := cached.(Page); ok {
			s.refreshAsync(key, userID, category, page)
			return snap, nil
		}
	}

	fresh, err := s.service.Feed(ctx, userID, category, page)
	if err != nil {
		return Page{}, err
	}
	s.put(key, fresh)
	return fresh, nil
}

// Invalidate drops every cached page. Called after ingestion lands new
// articles and after an interaction changes a profile.
func (s *Snapshot) Invalidate() {
	s.mu.Lock()
	keys := s.keys
	s.keys = make(map[string]bool)
	s.mu.Unlock()

	for key := range keys {
		s.cache.Delete(key)
	}
}

func (s *Snapshot) put(key string, page Page) {
	s.mu.Lock()
	s.keys[key] = true
	s.mu.Unlock()
	s.cache.Set(key, page, s.ttl)
}

func (s *Snapshot) refreshAsync(key, userID, category string, page int) {
	s.mu.Lock()
	if s.refreshes[key] {
		s.mu.Unlock()
		return
	}
	s.refreshes[key] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.refreshes, key)
			s.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		fresh, err := s.service.Feed(ctx, userID, category, page)
		if err != nil {
			logger.Warn("snapshot refresh failed, serving stale", "key", key, "error", err)
			return
		}
		s.put(key, fresh)
	}()
}
