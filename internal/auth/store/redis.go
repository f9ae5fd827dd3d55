package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"barangay/internal/auth/models"
	"barangay/pkg/platform/sentinel"
)

const sessionKeyPrefix = "session:"

// RedisSessions keeps sessions in Redis with a TTL matching their expiry, so
// abandoned sessions clean themselves up.
type RedisSessions struct {
	client *redis.Client
}

func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client}
}

func (s *RedisSessions) Save(ctx context.Context, session *models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return sentinel.ErrInvalidState
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID.String(), payload, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisSessions) Find(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var session models.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessions) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id.String()).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
