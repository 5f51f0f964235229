package config

import (
	"log"
	"os"
	"time"

	"main/utils"
)

type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// LoadTokenConfig reads the signing secret and token lifetime. The secret is
// process-wide configuration; it is passed explicitly to the token service
// rather than read from ambient state.
func LoadTokenConfig() TokenConfig {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("JWT Secret Key not set")
	}

	return TokenConfig{
		Secret: secret,
		TTL:    utils.GetEnvAsDuration("TOKEN_TTL", 24*time.Hour),
	}
}
