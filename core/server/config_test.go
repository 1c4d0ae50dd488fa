package server_test

import (
	"testing"

	"storage-bridge/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Addr(t *testing.T) {
	tests := []struct {
		name string
		port string
		want string
	}{
		{"BarePort", "8080", ":8080"},
		{"ColonPort", ":9000", ":9000"},
		{"HostPort", "127.0.0.1:7000", "127.0.0.1:7000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Port: tt.port}
			assert.Equal(t, tt.want, c.Addr())
		})
	}
}

func TestConfig_AuthEnabled(t *testing.T) {
	assert.False(t, server.Config{}.AuthEnabled())
	assert.True(t, server.Config{ApiKey: "k"}.AuthEnabled())
}
