package biz

import "time"

type AuthConfig struct {
	// SecretKey signs the JWT tokens. A random key is generated at startup
	// when empty, so tokens do not survive a restart.
	SecretKey string        `conf:"secret_key" yaml:"secret_key" json:"secret_key"`
	TokenTTL  time.Duration `conf:"token_ttl" yaml:"token_ttl" json:"token_ttl"`
}

const defaultTokenTTL = 7 * 24 * time.Hour
