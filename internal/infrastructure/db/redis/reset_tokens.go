package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
)

const resetKeyPrefix = "reset:"

// ResetTokenStore holds password reset tokens with a TTL.
// Key format: reset:<token> → user id.
type ResetTokenStore struct {
	client *redis.Client
}

func NewResetTokenStore(client *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{client: client}
}

func (s *ResetTokenStore) Set(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, resetKeyPrefix+token, userID, ttl).Err()
}

func (s *ResetTokenStore) Get(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, resetKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNoSession
		}
		return "", err
	}
	return userID, nil
}

func (s *ResetTokenStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, resetKeyPrefix+token).Err()
}
