package broker

// Config holds configuration for the Redis pub/sub broker.
type Config struct {
	// Enabled turns the broker on. When false no Redis connection is made.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Addr is the Redis host:port.
	Addr string `mapstructure:"addr" default:"localhost:6379"`
	// Password is the Redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the Redis logical database.
	DB int `mapstructure:"db" default:"0"`
	// Channel is the pub/sub channel events are mirrored to.
	Channel string `mapstructure:"channel" default:"storage-bridge:events"`
	// TimeoutSeconds bounds dialing and each publish.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}
