package config

import (
	"errors"
	"fmt"
)

// Validation sentinel errors.
var (
	ErrNoListenAddress  = errors.New("server listen address is required")
	ErrNoDatabaseDSN    = errors.New("database DSN is required")
	ErrNoTokenSignKey   = errors.New("token sign key is required")
	ErrNoRemoteAddress  = errors.New("remote store address is required")
	ErrNoLocalDSN       = errors.New("local database path is required")
	ErrNoDeviceIdentity = errors.New("device id and key are required")
	ErrConfigValidation = errors.New("invalid configuration")
)

func validateServerConfig(cfg *ServerConfig) error {
	switch {
	case cfg.Server.HTTPAddress == "":
		return fmt.Errorf("%w: %w", ErrConfigValidation, ErrNoListenAddress)
	case cfg.Storage.DB.DSN == "":
		return fmt.Errorf("%w: %w", ErrConfigValidation, ErrNoDatabaseDSN)
	case cfg.App.TokenSignKey == "":
		return fmt.Errorf("%w: %w", ErrConfigValidation, ErrNoTokenSignKey)
	}
	return nil
}

func validateAgentConfig(cfg *AgentConfig) error {
	switch {
	case cfg.Adapter.HTTPAddress == "":
		return fmt.Errorf("%w: %w", ErrConfigValidation, ErrNoRemoteAddress)
	case cfg.Storage.DSN == "":
		return fmt.Errorf("%w: %w", ErrConfigValidation, ErrNoLocalDSN)
	case cfg.Device.ID == "" || cfg.Device.Key == "":
		return fmt.Errorf("%w: %w", ErrConfigValidation, ErrNoDeviceIdentity)
	}
	return nil
}
