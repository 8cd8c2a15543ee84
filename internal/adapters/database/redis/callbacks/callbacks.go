package callbacks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Storage keeps inline button payloads that do not fit into Telegram callback data.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Get(ctx context.Context, callbackID string) (string, error) {
	return s.redis.Get(ctx, callbackID).Result()
}

// Set stores callback data in redis at random uuid key (callbackID).
// Returns callbackID and error
func (s *Storage) Set(ctx context.Context, data string, expiration time.Duration) (string, error) {
	callbackID := uuid.New().String()
	if err := s.redis.Set(ctx, callbackID, data, expiration).Err(); err != nil {
		return "", err
	}
	return callbackID, nil
}

func (s *Storage) Delete(ctx context.Context, callbackID string) {
	s.redis.Del(ctx, callbackID)
}
