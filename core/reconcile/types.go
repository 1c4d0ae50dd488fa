package reconcile

import "sort"

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionInsert creates an item absent from the persisted state.
	ActionInsert ActionType = "insert"
	// ActionUpdate overwrites a changed item in place.
	ActionUpdate ActionType = "update"
	// ActionReplace deletes and re-inserts an item whose identity moved.
	ActionReplace ActionType = "replace"
	// ActionDelete removes an item absent from the snapshot.
	ActionDelete ActionType = "delete"
)

// Action represents a planned mutation operation.
type Action[T any] struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the entity identifier.
	Key string `json:"key"`

	// Stored is the persisted item, zero for inserts.
	Stored T `json:"-"`

	// Item is the incoming item, zero for deletes.
	Item T `json:"-"`
}

// Plan contains the actions computed for one snapshot.
type Plan[T any] struct {
	// Actions contains planned mutation operations in key order.
	Actions []Action[T] `json:"actions"`

	// Unchanged lists keys present on both sides with no observable change.
	Unchanged []string `json:"unchanged"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	Inserts   int `json:"inserts"`
	Updates   int `json:"updates"`
	Replaces  int `json:"replaces"`
	Deletes   int `json:"deletes"`
	Unchanged int `json:"unchanged"`
}

// Empty reports whether the plan mutates nothing.
func (p *Plan[T]) Empty() bool {
	return len(p.Actions) == 0
}

// Result is the per-cycle outcome, split by change kind.
// Replaced keys are reported as inserted. Every slice is sorted.
type Result struct {
	Inserted  []string `json:"inserted"`
	Updated   []string `json:"updated"`
	Removed   []string `json:"removed"`
	Unchanged []string `json:"unchanged"`
}

// Changed returns inserted and updated keys, sorted.
func (r *Result) Changed() []string {
	out := make([]string, 0, len(r.Inserted)+len(r.Updated))
	out = append(out, r.Inserted...)
	out = append(out, r.Updated...)
	sort.Strings(out)
	return out
}

// Empty reports whether the cycle changed nothing.
func (r *Result) Empty() bool {
	return len(r.Inserted) == 0 && len(r.Updated) == 0 && len(r.Removed) == 0
}

// MembershipChanged reports whether the set of keys changed.
func (r *Result) MembershipChanged() bool {
	return len(r.Inserted) > 0 || len(r.Removed) > 0
}

// Result converts the plan into a Result.
func (p *Plan[T]) Result() *Result {
	res := &Result{
		Inserted:  []string{},
		Updated:   []string{},
		Removed:   []string{},
		Unchanged: append([]string{}, p.Unchanged...),
	}
	for _, a := range p.Actions {
		switch a.Type {
		case ActionInsert, ActionReplace:
			res.Inserted = append(res.Inserted, a.Key)
		case ActionUpdate:
			res.Updated = append(res.Updated, a.Key)
		case ActionDelete:
			res.Removed = append(res.Removed, a.Key)
		}
	}
	sort.Strings(res.Inserted)
	sort.Strings(res.Updated)
	sort.Strings(res.Removed)
	sort.Strings(res.Unchanged)
	return res
}
