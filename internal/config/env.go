package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates a config struct from environment variables using
// caarlos0/env struct tags.
func parseEnv[T any]() (*T, error) {
	cfg, err := env.ParseAs[T]()
	if err != nil {
		return nil, fmt.Errorf("error parsing environment variables: %w", err)
	}

	return &cfg, nil
}
