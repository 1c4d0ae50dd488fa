package broker

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client, err := Connect(context.Background(), Config{Addr: addr, TimeoutSeconds: 1})
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestConnect_Unreachable(t *testing.T) {
	client, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", TimeoutSeconds: 1})
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestPublisher_Publish(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	pub := NewPublisher(client, "storage-bridge:test", time.Second)

	sub := client.Subscribe(ctx, pub.Channel())
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	n, err := pub.Publish(ctx, map[string]string{"event": "updateItems"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"updateItems"}`, msg.Payload)
}

func TestPublisher_MarshalError(t *testing.T) {
	pub := NewPublisher(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), "c", time.Second)
	defer pub.Close()

	_, err := pub.Publish(context.Background(), make(chan int))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "marshal")
}
