package storage

import (
	"strings"
	"time"
)

// Config holds the S3/MinIO connection used for the asset catalog.
// A scheme prefix on Endpoint is stripped; Secure comes from UseSSL. TimeoutSeconds
// bounds dialing, TLS and response headers.
type Config struct {
	Endpoint       string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey      string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey      string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL         bool   `mapstructure:"use_ssl" default:"false"`
	Region         string `mapstructure:"region" default:""`
	Bucket         string `mapstructure:"bucket" default:"bridge-assets"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" default:"30"`
}

func (c Config) host() string {
	host := strings.TrimPrefix(c.Endpoint, "http://")
	return strings.TrimPrefix(host, "https://")
}

func (c Config) timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
