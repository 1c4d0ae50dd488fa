package bridge

import (
	"context"
	"testing"
	"time"

	"storage-bridge/feature/inventory"
	"storage-bridge/feature/inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestScheduler_InvalidInterval(t *testing.T) {
	s := NewScheduler(nil, 0, zap.NewNop())
	assert.ErrorIs(t, s.Start(context.Background()), ErrInvalidInterval)
	s.Stop()
}

func TestScheduler_SweepsOnInterval(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	f := newFixture(t, Config{CraftCooldownSeconds: 3600})
	ctx := context.Background()
	_, err := f.processor.Process(ctx, "conn", inventory.Snapshot{rec("a", "stone", 1, true)})
	require.NoError(t, err)
	require.NoError(t, f.store.SaveLimit(ctx, &models.ItemLimit{Fingerprint: "a", Min: ptr(4)}))

	out := f.emitter.Register("conn")
	s := NewScheduler(f.processor, 10*time.Millisecond, zap.NewNop())
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Start(ctx), "second start is a no-op")

	select {
	case cmd := <-out:
		assert.Equal(t, CraftItem("stone", "minecraft", 3), cmd)
	case <-time.After(2 * time.Second):
		t.Fatal("no craft request from sweep")
	}

	s.Stop()
	s.Stop()
	closeDB(f.db)
}
