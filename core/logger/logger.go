package logger

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the root logger. An unknown level falls back to info.
func New(cfg *Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	if level == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	// Every limit warning of every cycle must reach the log.
	zc.Sampling = nil

	enc := &zc.EncoderConfig
	enc.LevelKey = "level"
	enc.TimeKey = "time"
	enc.MessageKey = "message"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder

	switch cfg.Format {
	case "console":
		zc.Encoding = "console"
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	default:
		zc.Encoding = "json"
		enc.EncodeLevel = zapcore.LowercaseLevelEncoder
	}

	return zc.Build()
}

// WithRayID returns l with the request's ray_id attached, if the rayid middleware set one.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if rid, ok := c.Locals("ray_id").(string); ok && rid != "" {
		return l.With(zap.String("ray_id", rid))
	}
	return l
}
