package database

// Config selects and addresses the inventory database.
// For sqlite only Name is used, as the file path (":memory:" for tests).
type Config struct {
	Driver   string `mapstructure:"driver" default:"sqlite"`
	Name     string `mapstructure:"name" default:"brain.sqlite"`
	Host     string `mapstructure:"host" default:"localhost"`
	Port     int    `mapstructure:"port" default:"3306"`
	User     string `mapstructure:"user" default:"root"`
	Password string `mapstructure:"password" default:""`
	// SSLMode is passed to postgres as sslmode.
	SSLMode string `mapstructure:"ssl_mode" default:"disable"`
	// TimeoutSeconds bounds connection setup, the startup ping and mysql I/O.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
