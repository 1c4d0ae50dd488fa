package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `json:"name" validate:"required,max=5"`
	Amount int64  `json:"amount" validate:"gt=0"`
}

func TestDetails(t *testing.T) {
	v := New()

	err := v.Struct(sample{Name: "toolong", Amount: 0})
	require.Error(t, err)

	details := Details(err)
	require.Len(t, details, 2)
	assert.Equal(t, Detail{Field: "name", Message: "Must be at most 5 characters"}, details[0])
	assert.Equal(t, Detail{Field: "amount", Message: "Must be greater than 0"}, details[1])

	assert.Equal(t, "name: Must be at most 5 characters; amount: Must be greater than 0", Summary(err))
}

func TestDetails_PlainError(t *testing.T) {
	details := Details(errors.New("boom"))
	assert.Equal(t, []Detail{{Message: "boom"}}, details)
}

func TestValid(t *testing.T) {
	assert.NoError(t, New().Struct(sample{Name: "ok", Amount: 1}))
}
