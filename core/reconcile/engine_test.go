package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Key   string
	Owner string
	Value int
}

// memAdapter is an in-memory adapter over a map.
type memAdapter struct {
	rows      map[string]row
	loadErr   error
	updateErr error
	deletes   [][]string
}

func newMemAdapter(rows ...row) *memAdapter {
	m := &memAdapter{rows: map[string]row{}}
	for _, r := range rows {
		m.rows[r.Key] = r
	}
	return m
}

func (m *memAdapter) Name() string                     { return "mem" }
func (m *memAdapter) Key(item row) string              { return item.Key }
func (m *memAdapter) SameIdentity(stored, in row) bool { return stored.Owner == in.Owner }
func (m *memAdapter) Equal(stored, in row) bool        { return stored.Value == in.Value }

func (m *memAdapter) LoadIndex(ctx context.Context) (map[string]row, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make(map[string]row, len(m.rows))
	for k, v := range m.rows {
		out[k] = v
	}
	return out, nil
}

func (m *memAdapter) Insert(ctx context.Context, item row) error {
	m.rows[item.Key] = item
	return nil
}

func (m *memAdapter) Update(ctx context.Context, stored, in row) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.rows[in.Key] = in
	return nil
}

func (m *memAdapter) Delete(ctx context.Context, keys []string) error {
	m.deletes = append(m.deletes, keys)
	for _, k := range keys {
		delete(m.rows, k)
	}
	return nil
}

// readOnly implements Adapter but not Mutator.
type readOnly struct{ inner *memAdapter }

func (r readOnly) Name() string                     { return "readonly" }
func (r readOnly) Key(item row) string              { return item.Key }
func (r readOnly) SameIdentity(stored, in row) bool { return true }
func (r readOnly) Equal(stored, in row) bool        { return false }
func (r readOnly) LoadIndex(ctx context.Context) (map[string]row, error) {
	return r.inner.LoadIndex(ctx)
}

func TestBuildPlan(t *testing.T) {
	adapter := newMemAdapter(
		row{Key: "a", Owner: "x", Value: 1},
		row{Key: "b", Owner: "x", Value: 2},
		row{Key: "c", Owner: "x", Value: 3},
		row{Key: "d", Owner: "x", Value: 4},
	)
	index, err := adapter.LoadIndex(context.Background())
	require.NoError(t, err)

	plan, err := BuildPlan[row](adapter, index, []row{
		{Key: "a", Owner: "x", Value: 1},
		{Key: "b", Owner: "x", Value: 20},
		{Key: "c", Owner: "y", Value: 3},
		{Key: "e", Owner: "x", Value: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, PlanSummary{Inserts: 1, Updates: 1, Replaces: 1, Deletes: 1, Unchanged: 1}, plan.Summary)

	res := plan.Result()
	assert.Equal(t, []string{"c", "e"}, res.Inserted)
	assert.Equal(t, []string{"b"}, res.Updated)
	assert.Equal(t, []string{"d"}, res.Removed)
	assert.Equal(t, []string{"a"}, res.Unchanged)
	assert.Equal(t, []string{"b", "c", "e"}, res.Changed())
	assert.True(t, res.MembershipChanged())
}

func TestBuildPlan_DuplicateKeysLastWins(t *testing.T) {
	adapter := newMemAdapter()

	plan, err := BuildPlan[row](adapter, map[string]row{}, []row{
		{Key: "a", Value: 1},
		{Key: "a", Value: 9},
	})
	require.NoError(t, err)

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, 9, plan.Actions[0].Item.Value)
}

func TestBuildPlan_EmptyKey(t *testing.T) {
	_, err := BuildPlan[row](newMemAdapter(), nil, []row{{Key: ""}})
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("ConvergesAndIsIdempotent", func(t *testing.T) {
		adapter := newMemAdapter(row{Key: "old", Value: 1})
		snapshot := []row{{Key: "a", Value: 1}, {Key: "b", Value: 2}}

		plan, err := Run[row](ctx, adapter, snapshot, Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"old"}, plan.Result().Removed)
		assert.Len(t, adapter.rows, 2)

		again, err := Run[row](ctx, adapter, snapshot, Options{})
		require.NoError(t, err)
		assert.True(t, again.Empty())
		assert.True(t, again.Result().Empty())
	})

	t.Run("EmptySnapshotClears", func(t *testing.T) {
		adapter := newMemAdapter(row{Key: "a"}, row{Key: "b"})

		plan, err := Run[row](ctx, adapter, nil, Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, plan.Result().Removed)
		assert.Empty(t, adapter.rows)
	})

	t.Run("DryRunLeavesStateAlone", func(t *testing.T) {
		adapter := newMemAdapter(row{Key: "a"})

		plan, err := Run[row](ctx, adapter, nil, Options{DryRun: true})
		require.NoError(t, err)
		assert.Equal(t, 1, plan.Summary.Deletes)
		assert.Len(t, adapter.rows, 1)
	})

	t.Run("ReplaceDeletesThenInserts", func(t *testing.T) {
		adapter := newMemAdapter(row{Key: "a", Owner: "x", Value: 1})

		_, err := Run[row](ctx, adapter, []row{{Key: "a", Owner: "y", Value: 1}}, Options{})
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"a"}}, adapter.deletes)
		assert.Equal(t, "y", adapter.rows["a"].Owner)
	})

	t.Run("LoadError", func(t *testing.T) {
		adapter := newMemAdapter()
		adapter.loadErr = errors.New("db down")

		_, err := Run[row](ctx, adapter, nil, Options{})
		assert.ErrorContains(t, err, "db down")
	})

	t.Run("UpdateError", func(t *testing.T) {
		adapter := newMemAdapter(row{Key: "a", Value: 1})
		adapter.updateErr = errors.New("constraint")

		_, err := Run[row](ctx, adapter, []row{{Key: "a", Value: 2}}, Options{})
		assert.ErrorContains(t, err, "failed to update key a")
	})

	t.Run("NotAMutator", func(t *testing.T) {
		adapter := readOnly{inner: newMemAdapter()}

		_, err := Run[row](ctx, adapter, []row{{Key: "a"}}, Options{})
		assert.ErrorContains(t, err, "does not implement Mutator")
	})
}
