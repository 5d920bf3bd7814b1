// Package memory holds in-process implementations of the core stores, for
// single-instance deployments and development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

const defaultSweepInterval = time.Minute

type challengeEntry struct {
	challenge domain.Challenge
	expiresAt time.Time
}

// ChallengeStore is a process-local challenge cache with TTL eviction.
// Expired entries are invisible to Take and removed by a periodic sweep.
type ChallengeStore struct {
	mu      sync.Mutex
	entries map[string]challengeEntry
	now     func() time.Time
}

func NewChallengeStore() *ChallengeStore {
	return &ChallengeStore{entries: make(map[string]challengeEntry), now: time.Now}
}

func (s *ChallengeStore) Put(_ context.Context, c *domain.Challenge, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[c.NationalID] = challengeEntry{challenge: *c, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *ChallengeStore) Take(_ context.Context, nationalID string) (*domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[nationalID]
	if !ok {
		return nil, domain.ErrChallengeNotFound
	}
	delete(s.entries, nationalID)
	if !s.now().Before(e.expiresAt) {
		return nil, domain.ErrChallengeNotFound
	}
	c := e.challenge
	return &c, nil
}

// Sweep drops expired entries and returns how many were removed.
func (s *ChallengeStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, expired or not.
func (s *ChallengeStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Run sweeps every interval until ctx is cancelled.
func (s *ChallengeStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}
