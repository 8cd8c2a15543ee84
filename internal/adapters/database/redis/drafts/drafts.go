package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/internal/domain/service"
	"github.com/redis/go-redis/v9"
)

// Storage keeps one draft editing session per user for a limited time.
type Storage struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStorage(client *redis.Client, ttl time.Duration) *Storage {
	return &Storage{
		redis: client,
		ttl:   ttl,
	}
}

func key(userID int64) string {
	return fmt.Sprintf("draft:%d", userID)
}

func (s *Storage) Get(ctx context.Context, userID int64) (service.SessionState, error) {
	data, err := s.redis.Get(ctx, key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return service.SessionState{}, errorz.ErrDraftNotFound
		}
		return service.SessionState{}, err
	}
	var state service.SessionState
	if err = json.Unmarshal(data, &state); err != nil {
		return service.SessionState{}, fmt.Errorf("decode draft: %w", err)
	}
	return state, nil
}

// Set stores the draft and restarts its expiration.
func (s *Storage) Set(ctx context.Context, userID int64, state service.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, key(userID), data, s.ttl).Err()
}

func (s *Storage) Clear(ctx context.Context, userID int64) error {
	return s.redis.Del(ctx, key(userID)).Err()
}
