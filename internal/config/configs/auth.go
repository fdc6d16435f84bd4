package configs

import (
	"errors"
	"time"
)

// Auth configures bearer token verification for wallet-authenticated
// routes. Tokens are HMAC-signed JWTs whose "wallet" claim carries the
// caller address. With Enabled=false the X-Wallet header is trusted, which
// is only suitable for local development.
type Auth struct {
	Enabled  bool          `env:"ENABLED" envDefault:"true"`
	Secret   string        `env:"SECRET"`
	Issuer   string        `env:"ISSUER" envDefault:"engage-escrow"`
	Audience string        `env:"AUDIENCE" envDefault:"engage-escrow-api"`
	Leeway   time.Duration `env:"LEEWAY" envDefault:"30s"`
}

// Validate requires a secret whenever verification is on.
func (c Auth) Validate() error {
	if c.Enabled && c.Secret == "" {
		return errors.New("AUTH_SECRET is required when AUTH_ENABLED is true")
	}
	return nil
}
