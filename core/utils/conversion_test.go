package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
	}{
		{"nil", nil, 0},
		{"int", 7, 7},
		{"int64", int64(1 << 40), 1 << 40},
		{"float", 12.9, 12},
		{"string", "42", 42},
		{"decimal string", "150.000", 150},
		{"bytes", []byte("300"), 300},
		{"garbage", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt64(tt.in))
		})
	}
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(int64(1)))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool([]byte("1")))
	// encoding/json decodes numbers into any as float64
	assert.True(t, ToBool(float64(1)))
	assert.True(t, ToBool(float32(1)))
	assert.False(t, ToBool(float64(0)))
	assert.False(t, ToBool(0.5))
	assert.False(t, ToBool(0))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(nil))
}
