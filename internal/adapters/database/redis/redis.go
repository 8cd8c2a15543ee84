package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/Badsnus/qr-studio/internal/adapters/database/redis/callbacks"
	"github.com/Badsnus/qr-studio/internal/adapters/database/redis/drafts"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	Drafts    *drafts.Storage
	Callbacks *callbacks.Storage
}

type Options struct {
	Host     string
	Port     string
	Password string
	DraftTTL time.Duration
}

func connect(ctx context.Context, opts Options, db int, name string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping %s storage: %w", name, err)
	}
	return client, nil
}

func New(opts Options) (*Client, error) {
	ctx := context.Background()

	draftStorage, err := connect(ctx, opts, 0, "drafts")
	if err != nil {
		return nil, err
	}
	callbackStorage, err := connect(ctx, opts, 1, "callbacks")
	if err != nil {
		return nil, err
	}

	return &Client{
		Drafts:    drafts.NewStorage(draftStorage, opts.DraftTTL),
		Callbacks: callbacks.NewStorage(callbackStorage),
	}, nil
}
