// Package config loads process configuration from the environment. The
// signing key is mandatory: the process refuses to start without it.
package config

import (
	"encoding/base64"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the API process.
//
// DPS_JWT_PRIVATE_KEY carries a base64-encoded RSA private key in PEM form.
// DPS_PG_DSN is optional: when empty the process runs in development mode
// with in-memory stores.
type Config struct {
	Addr          string `env:"DPS_HTTP_ADDR" envDefault:":8080"`
	DatabaseDSN   string `env:"DPS_PG_DSN"`
	SigningKeyB64 string `env:"DPS_JWT_PRIVATE_KEY,notEmpty"`
}

// Load binds configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// SigningKeyPEM decodes the transport-encoded signing key. The decoded PEM
// is parsed by the auth package; it is never logged.
func (c *Config) SigningKeyPEM() ([]byte, error) {
	pemData, err := base64.StdEncoding.DecodeString(c.SigningKeyB64)
	if err != nil {
		return nil, fmt.Errorf("config: decode signing key: %w", err)
	}
	if len(pemData) == 0 {
		return nil, fmt.Errorf("config: signing key is empty")
	}
	return pemData, nil
}
