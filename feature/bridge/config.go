package bridge

import (
	"strings"
	"time"
)

// Config holds configuration for the storage-system socket and the cycle processor.
type Config struct {
	// Port is the port the storage and observer sockets listen on.
	Port string `mapstructure:"port" default:"1001"`
	// OutboxSize is the number of commands buffered per storage connection.
	OutboxSize int `mapstructure:"outbox_size" default:"64"`
	// CraftCooldownSeconds suppresses repeat craft requests for one fingerprint.
	CraftCooldownSeconds int `mapstructure:"craft_cooldown_seconds" default:"30"`
	// EvaluateIntervalSeconds is the period of the limit sweep. Zero disables it.
	EvaluateIntervalSeconds int `mapstructure:"evaluate_interval_seconds" default:"60"`
	// DiscardCommands sends discardItem for max breaches instead of only logging them.
	DiscardCommands bool `mapstructure:"discard_commands" default:"false"`
	// MaxMessageBytes bounds one inbound frame. Batch snapshots need headroom.
	MaxMessageBytes int64 `mapstructure:"max_message_bytes" default:"8388608"`
	// WriteTimeoutSeconds bounds one outbound frame.
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" default:"10"`
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// CraftCooldown returns the craft throttle window.
func (c Config) CraftCooldown() time.Duration {
	return time.Duration(c.CraftCooldownSeconds) * time.Second
}

// EvaluateInterval returns the sweep period.
func (c Config) EvaluateInterval() time.Duration {
	return time.Duration(c.EvaluateIntervalSeconds) * time.Second
}

// WriteTimeout returns the per-frame write deadline.
func (c Config) WriteTimeout() time.Duration {
	if c.WriteTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

func (c Config) outboxSize() int {
	if c.OutboxSize <= 0 {
		return 64
	}
	return c.OutboxSize
}
