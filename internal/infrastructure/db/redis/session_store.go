package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore persists session bindings in Redis as JSON documents keyed by
// token, expiring with the token TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, token string, identity *domain.Identity) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+token, payload, s.ttl).Err()
}

// Load returns the identity bound to token. An absent key and a corrupt
// payload both yield domain.ErrNoSession; a corrupt payload is additionally
// removed so the logout path fully applies.
func (s *SessionStore) Load(ctx context.Context, token string) (*domain.Identity, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNoSession
		}
		return nil, err
	}

	var identity domain.Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		_ = s.client.Del(ctx, sessionKeyPrefix+token).Err()
		return nil, domain.ErrNoSession
	}
	if identity.Username == "" {
		_ = s.client.Del(ctx, sessionKeyPrefix+token).Err()
		return nil, domain.ErrNoSession
	}
	return &identity, nil
}

func (s *SessionStore) Clear(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
