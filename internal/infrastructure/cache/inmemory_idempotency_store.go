package cache

import (
	"context"
	"sync"
	"time"

	"github.com/vendorhub/backend/internal/domain/shared"
)

// DefaultSweepInterval is how often expired claims are dropped
const DefaultSweepInterval = 5 * time.Minute

// InMemoryIdempotencyStore keeps processed event IDs in process memory. It
// suits a single API instance; replicas do not see each other's claims.
type InMemoryIdempotencyStore struct {
	mu        sync.Mutex
	expiry    map[string]time.Time
	now       func() time.Time
	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore starts a store that sweeps expired claims
// every DefaultSweepInterval
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return newInMemoryIdempotencyStore(DefaultSweepInterval, time.Now)
}

func newInMemoryIdempotencyStore(sweep time.Duration, now func() time.Time) *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		expiry: make(map[string]time.Time),
		now:    now,
		stop:   make(chan struct{}),
	}
	s.wg.Add(1)
	go s.sweepLoop(sweep)
	return s
}

// MarkProcessed claims eventID for ttl. It reports false when a live claim
// already exists.
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, eventID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if exp, ok := s.expiry[eventID]; ok && now.Before(exp) {
		return false, nil
	}
	s.expiry[eventID] = now.Add(ttl)
	return true, nil
}

// IsProcessed reports whether eventID holds a live claim
func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.expiry[eventID]
	return ok && s.now().Before(exp), nil
}

// Close stops the sweeper. Safe to call more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()
	})
	return nil
}

// Size returns the number of claims held, live or not yet swept
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expiry)
}

func (s *InMemoryIdempotencyStore) sweepLoop(every time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *InMemoryIdempotencyStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.expiry {
		if !now.Before(exp) {
			delete(s.expiry, id)
		}
	}
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
