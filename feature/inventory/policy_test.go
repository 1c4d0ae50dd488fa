package inventory

import (
	"testing"

	"storage-bridge/feature/inventory/models"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		amount     int64
		craftable  bool
		rule       *models.ItemLimit
		wantAction Action
		wantAmount int64
	}{
		{name: "no rule", amount: 5, rule: nil, wantAction: ActionNone},
		{name: "empty rule", amount: 5, rule: &models.ItemLimit{}, wantAction: ActionNone},
		{name: "max breach", amount: 150, rule: &models.ItemLimit{Max: ptr(100)}, wantAction: ActionDiscardExcess, wantAmount: 50},
		{name: "at max", amount: 100, rule: &models.ItemLimit{Max: ptr(100)}, wantAction: ActionNone},
		{name: "min breach craftable", amount: 5, craftable: true, rule: &models.ItemLimit{Min: ptr(20)}, wantAction: ActionRequestMore, wantAmount: 15},
		{name: "min breach not craftable", amount: 5, rule: &models.ItemLimit{Min: ptr(20)}, wantAction: ActionUnremediable},
		{name: "at min", amount: 20, craftable: true, rule: &models.ItemLimit{Min: ptr(20)}, wantAction: ActionNone},
		{name: "within range", amount: 50, craftable: true, rule: &models.ItemLimit{Min: ptr(20), Max: ptr(100)}, wantAction: ActionNone},
		{name: "zero amount craftable", amount: 0, craftable: true, rule: &models.ItemLimit{Min: ptr(1)}, wantAction: ActionRequestMore, wantAmount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := models.StoredItem{Fingerprint: "fp", ItemID: "stone", ModID: "minecraft", Amount: tt.amount, IsCraftable: tt.craftable}
			d := Evaluate(item, tt.rule)

			assert.Equal(t, tt.wantAction, d.Action)
			assert.Equal(t, tt.wantAmount, d.Amount)
			assert.Equal(t, tt.amount, d.Current)
			assert.Equal(t, "fp", d.Fingerprint)
		})
	}
}

func TestEvaluateAll_SkipsNone(t *testing.T) {
	items := []models.LimitedItem{
		{Item: models.StoredItem{Fingerprint: "ok", Amount: 10}, Limit: models.ItemLimit{Max: ptr(20)}},
		{Item: models.StoredItem{Fingerprint: "low", Amount: 1, IsCraftable: true}, Limit: models.ItemLimit{Min: ptr(4)}},
	}

	decisions := EvaluateAll(items)
	assert.Equal(t, []Decision{{Fingerprint: "low", Action: ActionRequestMore, Amount: 3, Current: 1}}, decisions)
}
