package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher publishes JSON payloads to a single Redis channel.
type Publisher struct {
	client  *redis.Client
	channel string
	timeout time.Duration
}

// Connect creates a Redis client from the configuration and verifies it with a ping.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// NewPublisher wraps a client for publishing to channel.
func NewPublisher(client *redis.Client, channel string, timeout time.Duration) *Publisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Publisher{client: client, channel: channel, timeout: timeout}
}

// Channel returns the channel name.
func (p *Publisher) Channel() string {
	return p.channel
}

// Publish marshals payload to JSON and publishes it.
// It returns the number of subscribers that received the message.
func (p *Publisher) Publish(ctx context.Context, payload any) (int64, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	n, err := p.client.Publish(ctx, p.channel, data).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to publish to %s: %w", p.channel, err)
	}
	return n, nil
}

// Close closes the underlying client.
func (p *Publisher) Close() error {
	return p.client.Close()
}
