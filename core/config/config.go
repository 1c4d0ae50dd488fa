package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"storage-bridge/core/broker"
	"storage-bridge/core/database"
	"storage-bridge/core/logger"
	"storage-bridge/core/server"
	"storage-bridge/core/storage"
	"storage-bridge/feature/assets"
	"storage-bridge/feature/bridge"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full application configuration, one section per concern.
type Config struct {
	// Server holds configuration for the operator HTTP server.
	Server server.Config `mapstructure:"server"`
	// Bridge holds configuration for the storage-system socket and the cycle processor.
	Bridge bridge.Config `mapstructure:"bridge"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Assets holds configuration for the asset catalog import.
	Assets assets.Config `mapstructure:"assets"`
	// Redis holds configuration for the optional observer mirror.
	Redis broker.Config `mapstructure:"redis"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig reads dir/.env (if present) and the environment into a Config.
// Keys map to variables as SECTION_KEY, e.g. bridge.craft_cooldown_seconds is
// BRIDGE_CRAFT_COOLDOWN_SECONDS.
func LoadConfig(dir string) (*Config, error) {
	// A missing .env is normal in containers.
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerKeys(v, reflect.TypeOf(Config{}), "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that would only fail later at startup.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case database.DriverSQLite, database.DriverMySQL, database.DriverPostgres:
	default:
		return fmt.Errorf("%w: %q", database.ErrUnknownDriver, c.Database.Driver)
	}
	if c.Server.Addr() == c.Bridge.Addr() {
		return fmt.Errorf("server.port and bridge.port must differ, both are %s", c.Server.Port)
	}
	return nil
}

// registerKeys walks the mapstructure tree. Each leaf gets its `default` tag as
// default value and is bound to its environment variable, so Unmarshal sees it.
func registerKeys(v *viper.Viper, t reflect.Type, prefix string) {
	for i := range t.NumField() {
		field := t.Field(i)
		name := field.Tag.Get("mapstructure")
		if name == "" {
			continue
		}

		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		if field.Type.Kind() == reflect.Struct {
			registerKeys(v, field.Type, key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
		_ = v.BindEnv(key)
	}
}
