package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mbickford/accounts-service/internal/common/constants"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidSecretKey   = errors.New("SECRET_KEY must be at least 32 bytes")
)

type Config struct {
	HTTPPort       string
	DatabaseURL    string
	SecretKey      string
	RequestTimeout time.Duration

	// AccessTokenTTL is loaded for parity with the deployment environment but
	// issued tokens carry no exp claim; they stay valid until the secret is
	// rotated.
	AccessTokenTTL time.Duration
}

func Load() (Config, error) {
	secretKey, err := mustEnv("SECRET_KEY")
	if err != nil {
		return Config{}, err
	}

	if len(secretKey) < constants.JWTSecretMinLength {
		return Config{}, fmt.Errorf("%w: got %d bytes", ErrInvalidSecretKey, len(secretKey))
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:       getEnv("ACCOUNTS_HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:    databaseURL,
		SecretKey:      secretKey,
		RequestTimeout: getDurationEnv("ACCOUNTS_REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", constants.DefaultAccessTokenTTL),
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
