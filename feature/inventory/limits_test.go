package inventory

import (
	"context"
	"sync"
	"testing"

	"storage-bridge/feature/inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sentLimit struct {
	Fingerprint string
	Min, Max    *int64
}

type sentCraft struct {
	ItemID, ModID string
	Amount        int64
}

// recordingDispatcher records every command it is handed.
type recordingDispatcher struct {
	mu        sync.Mutex
	connected int
	limits    []sentLimit
	crafts    []sentCraft
}

func (d *recordingDispatcher) SetLimit(fingerprint string, min, max *int64) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.limits = append(d.limits, sentLimit{Fingerprint: fingerprint, Min: min, Max: max})
	return d.connected
}

func (d *recordingDispatcher) Craft(itemID, modID string, amount int64) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.crafts = append(d.crafts, sentCraft{ItemID: itemID, ModID: modID, Amount: amount})
	return d.connected
}

func newTestService(t *testing.T, d Dispatcher, f Finder) *Service {
	return NewService(newTestStore(t), d, f, zap.NewNop())
}

func TestUpdateLimits_Validation(t *testing.T) {
	tests := []struct {
		name    string
		in      LimitInput
		wantErr bool
	}{
		{name: "min equals max", in: LimitInput{Min: ptr(50), Max: ptr(50)}, wantErr: true},
		{name: "max below min", in: LimitInput{Min: ptr(50), Max: ptr(40)}, wantErr: true},
		{name: "negative min", in: LimitInput{Min: ptr(-1)}, wantErr: true},
		{name: "negative max", in: LimitInput{Max: ptr(-5)}, wantErr: true},
		{name: "valid range", in: LimitInput{Min: ptr(50), Max: ptr(60)}},
		{name: "min only", in: LimitInput{Min: ptr(0)}},
		{name: "max only", in: LimitInput{Max: ptr(10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &recordingDispatcher{}
			svc := newTestService(t, d, nil)

			limit, err := svc.UpdateLimits(context.Background(), "fp", tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLimit)
				assert.Nil(t, limit)
				assert.Empty(t, d.limits, "rejected rules are not forwarded")

				stored, err := svc.store.GetLimit(context.Background(), "fp")
				require.NoError(t, err)
				assert.Nil(t, stored)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.in.Min, limit.Min)
			assert.Equal(t, tt.in.Max, limit.Max)
			assert.Equal(t, []sentLimit{{Fingerprint: "fp", Min: tt.in.Min, Max: tt.in.Max}}, d.limits)
		})
	}
}

func TestUpdateLimits_EmptyFingerprint(t *testing.T) {
	svc := newTestService(t, nil, nil)
	_, err := svc.UpdateLimits(context.Background(), "", LimitInput{Max: ptr(1)})
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestUpdateLimits_BothAbsentDeletes(t *testing.T) {
	ctx := context.Background()
	d := &recordingDispatcher{}
	svc := newTestService(t, d, nil)

	_, err := svc.UpdateLimits(ctx, "fp", LimitInput{Min: ptr(1), Max: ptr(2)})
	require.NoError(t, err)

	limit, err := svc.UpdateLimits(ctx, "fp", LimitInput{})
	require.NoError(t, err)
	assert.Nil(t, limit)

	stored, err := svc.store.GetLimit(ctx, "fp")
	require.NoError(t, err)
	assert.Nil(t, stored)

	require.Len(t, d.limits, 2)
	assert.Equal(t, sentLimit{Fingerprint: "fp"}, d.limits[1])
}

func TestResetLimit(t *testing.T) {
	ctx := context.Background()
	d := &recordingDispatcher{}
	svc := newTestService(t, d, nil)

	require.NoError(t, svc.store.SaveLimit(ctx, &models.ItemLimit{Fingerprint: "fp", Min: ptr(3)}))
	require.NoError(t, svc.ResetLimit(ctx, "fp"))

	stored, err := svc.store.GetLimit(ctx, "fp")
	require.NoError(t, err)
	assert.Nil(t, stored)
	assert.Equal(t, []sentLimit{{Fingerprint: "fp"}}, d.limits)
}
