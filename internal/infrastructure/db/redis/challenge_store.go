package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vozciudadana/civic-core/internal/core/domain"
)

// ChallengeStore keeps outstanding ceremony challenges in Redis.
// Key format: challenge:<national_id>
type ChallengeStore struct {
	client *redis.Client
}

// NewChallengeStore creates a ChallengeStore wrapping the given Redis client.
func NewChallengeStore(client *redis.Client) *ChallengeStore {
	return &ChallengeStore{client: client}
}

// Put overwrites any outstanding challenge for the identity.
func (s *ChallengeStore) Put(ctx context.Context, c *domain.Challenge, ttl time.Duration) error {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode challenge: %w", err)
	}
	if err := s.client.Set(ctx, s.key(c.NationalID), b, ttl).Err(); err != nil {
		return fmt.Errorf("store challenge: %w", err)
	}
	return nil
}

// Take reads and deletes the challenge in one round trip, so two finishes
// racing for the same challenge cannot both get it.
func (s *ChallengeStore) Take(ctx context.Context, nationalID string) (*domain.Challenge, error) {
	b, err := s.client.GetDel(ctx, s.key(nationalID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrChallengeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("take challenge: %w", err)
	}

	var c domain.Challenge
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode challenge: %w", err)
	}
	return &c, nil
}

func (s *ChallengeStore) key(nationalID string) string {
	return fmt.Sprintf("challenge:%s", nationalID)
}
