package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldcare/clinsync/internal/config"
	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/store"
	"github.com/fieldcare/clinsync/internal/utils"
	"github.com/fieldcare/clinsync/models"
)

// authService is the concrete implementation of AuthService.
// It handles device registration, key verification, and JWT token lifecycle
// using a DeviceRepository for persistence and HMAC-SHA256 for device key
// hashing.
type authService struct {
	deviceRepository store.DeviceRepository

	// hashKey is the HMAC secret used when hashing device keys before
	// storage or comparison. Must match the value used at registration time.
	hashKey string

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// DeviceRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(deviceRepository store.DeviceRepository, cfg config.ServerApp, logger *logger.Logger) AuthService {
	return &authService{
		deviceRepository: deviceRepository,
		hashKey:          cfg.KeyHashKey,
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		logger:           logger,
	}
}

// RegisterDevice creates a new device account.
//
// It validates that both DeviceID and DeviceKey are non-empty, hashes the
// key with the configured HMAC secret, and delegates persistence to the
// DeviceRepository.
//
// Returns the persisted device or:
//   - ErrInvalidDataProvided if DeviceID or DeviceKey is empty.
//   - A wrapped storage error if the repository call fails (e.g. device id
//     already taken, see store.ErrDeviceExists).
func (a *authService) RegisterDevice(ctx context.Context, creds models.DeviceCredentials) (models.Device, error) {
	log := logger.FromContext(ctx)

	if creds.DeviceID == "" || creds.DeviceKey == "" {
		log.Error().Str("device_id", creds.DeviceID).Msg("invalid device data provided")
		return models.Device{}, ErrInvalidDataProvided
	}

	device := models.Device{
		DeviceID: creds.DeviceID,
		KeyHash:  utils.HashString(creds.DeviceKey, a.hashKey),
		Label:    creds.Label,
	}

	registered, err := a.deviceRepository.CreateDevice(ctx, device)
	if err != nil {
		log.Err(err).Str("device_id", creds.DeviceID).Msg("device registration ended with error")
		return models.Device{}, fmt.Errorf("device registration ended with error: %w", err)
	}

	return registered, nil
}

// Login authenticates an existing device by comparing the HMAC of the
// presented key against the stored hash.
//
// Returns the device record or:
//   - ErrInvalidDataProvided if DeviceID or DeviceKey is empty.
//   - A wrapped storage error if the lookup fails (see store.ErrDeviceNotFound).
//   - ErrWrongDeviceKey if the key hashes do not match.
func (a *authService) Login(ctx context.Context, creds models.DeviceCredentials) (models.Device, error) {
	log := logger.FromContext(ctx)

	if creds.DeviceID == "" || creds.DeviceKey == "" {
		log.Error().Str("device_id", creds.DeviceID).Msg("invalid device data provided")
		return models.Device{}, ErrInvalidDataProvided
	}

	found, err := a.deviceRepository.FindDevice(ctx, creds.DeviceID)
	if err != nil {
		log.Err(err).Str("device_id", creds.DeviceID).Msg("device search failed")
		return models.Device{}, fmt.Errorf("device search failed: %w", err)
	}

	if found.KeyHash != utils.HashString(creds.DeviceKey, a.hashKey) {
		log.Error().
			Str("device_id", creds.DeviceID).
			Msg("wrong device key")
		return models.Device{}, ErrWrongDeviceKey
	}

	return found, nil
}

// CreateToken issues a signed JWT for the given device.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, and expires after
// tokenDuration.
func (a *authService) CreateToken(ctx context.Context, device models.Device) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, device.DeviceID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(_ context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
