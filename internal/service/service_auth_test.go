package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fieldcare/clinsync/internal/config"
	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/mock"
	"github.com/fieldcare/clinsync/internal/store"
	"github.com/fieldcare/clinsync/internal/utils"
	"github.com/fieldcare/clinsync/models"
)

var testServerAppConfig = config.ServerApp{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "clinsync",
	TokenDuration: time.Hour,
	KeyHashKey:    "test-hash-key",
}

func newTestAuthService(t *testing.T) (AuthService, *mock.MockDeviceRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	devices := mock.NewMockDeviceRepository(ctrl)
	return NewAuthService(devices, testServerAppConfig, logger.Nop()), devices
}

func TestAuthService_RegisterDevice(t *testing.T) {
	auth, devices := newTestAuthService(t)

	creds := models.DeviceCredentials{DeviceID: "tablet-3", DeviceKey: "secret", Label: "clinic tablet 3"}
	wantHash := utils.HashString("secret", testServerAppConfig.KeyHashKey)

	devices.EXPECT().
		CreateDevice(gomock.Any(), models.Device{DeviceID: "tablet-3", KeyHash: wantHash, Label: "clinic tablet 3"}).
		Return(models.Device{ID: 1, DeviceID: "tablet-3", KeyHash: wantHash, Label: "clinic tablet 3"}, nil)

	registered, err := auth.RegisterDevice(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.ID)
	assert.Equal(t, "tablet-3", registered.DeviceID)
}

func TestAuthService_RegisterDevice_EmptyCredentials(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.RegisterDevice(context.Background(), models.DeviceCredentials{DeviceID: "tablet-3"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = auth.RegisterDevice(context.Background(), models.DeviceCredentials{DeviceKey: "secret"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_RegisterDevice_DeviceExists(t *testing.T) {
	auth, devices := newTestAuthService(t)

	devices.EXPECT().
		CreateDevice(gomock.Any(), gomock.Any()).
		Return(models.Device{}, store.ErrDeviceExists)

	_, err := auth.RegisterDevice(context.Background(), models.DeviceCredentials{DeviceID: "tablet-3", DeviceKey: "secret"})
	assert.ErrorIs(t, err, store.ErrDeviceExists)
}

func TestAuthService_Login(t *testing.T) {
	auth, devices := newTestAuthService(t)

	devices.EXPECT().
		FindDevice(gomock.Any(), "tablet-3").
		Return(models.Device{
			ID:       1,
			DeviceID: "tablet-3",
			KeyHash:  utils.HashString("secret", testServerAppConfig.KeyHashKey),
		}, nil)

	device, err := auth.Login(context.Background(), models.DeviceCredentials{DeviceID: "tablet-3", DeviceKey: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "tablet-3", device.DeviceID)
}

func TestAuthService_Login_WrongKey(t *testing.T) {
	auth, devices := newTestAuthService(t)

	devices.EXPECT().
		FindDevice(gomock.Any(), "tablet-3").
		Return(models.Device{
			DeviceID: "tablet-3",
			KeyHash:  utils.HashString("secret", testServerAppConfig.KeyHashKey),
		}, nil)

	_, err := auth.Login(context.Background(), models.DeviceCredentials{DeviceID: "tablet-3", DeviceKey: "guessed"})
	assert.ErrorIs(t, err, ErrWrongDeviceKey)
}

func TestAuthService_Login_DeviceNotFound(t *testing.T) {
	auth, devices := newTestAuthService(t)

	devices.EXPECT().
		FindDevice(gomock.Any(), "ghost").
		Return(models.Device{}, store.ErrDeviceNotFound)

	_, err := auth.Login(context.Background(), models.DeviceCredentials{DeviceID: "ghost", DeviceKey: "secret"})
	assert.ErrorIs(t, err, store.ErrDeviceNotFound)
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Login(context.Background(), models.DeviceCredentials{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_CreateAndParseToken(t *testing.T) {
	auth, _ := newTestAuthService(t)
	device := models.Device{ID: 1, DeviceID: "tablet-3"}

	token, err := auth.CreateToken(context.Background(), device)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := auth.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "tablet-3", parsed.DeviceID)
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	auth, _ := newTestAuthService(t)

	expired, err := utils.GenerateJWTToken("clinsync", "tablet-3", -time.Minute, testServerAppConfig.TokenSignKey)
	require.NoError(t, err)

	_, err = auth.ParseToken(context.Background(), expired.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_WrongIssuer(t *testing.T) {
	auth, _ := newTestAuthService(t)

	foreign, err := utils.GenerateJWTToken("someone-else", "tablet-3", time.Hour, testServerAppConfig.TokenSignKey)
	require.NoError(t, err)

	_, err = auth.ParseToken(context.Background(), foreign.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.ParseToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	auth, devices := newTestAuthService(t)

	dbErr := errors.New("connection reset")
	devices.EXPECT().FindDevice(gomock.Any(), "tablet-3").Return(models.Device{}, dbErr)

	_, err := auth.Login(context.Background(), models.DeviceCredentials{DeviceID: "tablet-3", DeviceKey: "secret"})
	assert.ErrorIs(t, err, dbErr)
}
