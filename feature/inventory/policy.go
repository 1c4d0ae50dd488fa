package inventory

import (
	"storage-bridge/feature/inventory/models"
)

// Action is the remediation a Decision asks for.
type Action string

const (
	ActionNone          Action = "none"
	ActionRequestMore   Action = "request_more"
	ActionDiscardExcess Action = "discard_excess"
	// ActionUnremediable is a min breach on an item the storage system cannot craft.
	ActionUnremediable Action = "unremediable"
)

// Decision is the outcome of evaluating one item against its rule.
type Decision struct {
	Fingerprint string `json:"fingerprint"`
	ItemID      string `json:"itemId"`
	ModID       string `json:"modId"`
	Action      Action `json:"action"`
	// Amount is the quantity to craft or discard. Zero for None and Unremediable.
	Amount int64 `json:"amount"`
	// Current is the stored amount the decision was made on.
	Current int64 `json:"current"`
}

// Evaluate decides the remediation for one item. A nil or empty rule yields None.
// A max breach takes priority over a min breach.
func Evaluate(item models.StoredItem, rule *models.ItemLimit) Decision {
	d := Decision{
		Fingerprint: item.Fingerprint,
		ItemID:      item.ItemID,
		ModID:       item.ModID,
		Action:      ActionNone,
		Current:     item.Amount,
	}
	if rule.Empty() {
		return d
	}

	switch {
	case rule.Max != nil && item.Amount > *rule.Max:
		d.Action = ActionDiscardExcess
		d.Amount = item.Amount - *rule.Max
	case rule.Min != nil && item.Amount < *rule.Min && item.IsCraftable:
		d.Action = ActionRequestMore
		d.Amount = *rule.Min - item.Amount
	case rule.Min != nil && item.Amount < *rule.Min:
		d.Action = ActionUnremediable
	}
	return d
}

// EvaluateAll evaluates every item and returns only the decisions that need action.
func EvaluateAll(items []models.LimitedItem) []Decision {
	out := []Decision{}
	for i := range items {
		d := Evaluate(items[i].Item, &items[i].Limit)
		if d.Action != ActionNone {
			out = append(out, d)
		}
	}
	return out
}
