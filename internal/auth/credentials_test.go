package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/mock"
	"github.com/fieldcare/clinsync/internal/utils"
	"github.com/fieldcare/clinsync/models"
)

var testCreds = models.DeviceCredentials{DeviceID: "device-1", DeviceKey: "key-1"}

func signedToken(t *testing.T, ttl time.Duration) string {
	t.Helper()

	token, err := utils.GenerateJWTToken("clinsync", "device-1", ttl, "test-sign-key")
	require.NoError(t, err)
	return token.SignedString
}

func TestCredentialProvider_EnsureValid_NoToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteStore(ctrl)

	remote.EXPECT().Token().Return("")
	remote.EXPECT().Login(gomock.Any(), testCreds).Return("fresh-token", nil)

	provider := NewCredentialProvider(remote, testCreds, time.Minute, logger.Nop())
	assert.NoError(t, provider.EnsureValid(context.Background()))
}

func TestCredentialProvider_EnsureValid_FreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteStore(ctrl)

	remote.EXPECT().Token().Return(signedToken(t, time.Hour))
	// no Login expected

	provider := NewCredentialProvider(remote, testCreds, time.Minute, logger.Nop())
	assert.NoError(t, provider.EnsureValid(context.Background()))
}

func TestCredentialProvider_EnsureValid_StaleToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteStore(ctrl)

	remote.EXPECT().Token().Return(signedToken(t, 10*time.Second))
	remote.EXPECT().Login(gomock.Any(), testCreds).Return("fresh-token", nil)

	provider := NewCredentialProvider(remote, testCreds, time.Minute, logger.Nop())
	assert.NoError(t, provider.EnsureValid(context.Background()))
}

func TestCredentialProvider_EnsureValid_LoginError(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteStore(ctrl)

	loginErr := errors.New("connection refused")
	remote.EXPECT().Token().Return("")
	remote.EXPECT().Login(gomock.Any(), testCreds).Return("", loginErr)

	provider := NewCredentialProvider(remote, testCreds, time.Minute, logger.Nop())
	err := provider.EnsureValid(context.Background())
	assert.ErrorIs(t, err, loginErr)
}

func TestCredentialProvider_Invalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteStore(ctrl)

	remote.EXPECT().SetToken("")

	provider := NewCredentialProvider(remote, testCreds, time.Minute, logger.Nop())
	provider.Invalidate()
}

func TestCredentialProvider_EnsureValid_GarbageToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteStore(ctrl)

	remote.EXPECT().Token().Return("not-a-jwt")
	remote.EXPECT().Login(gomock.Any(), testCreds).Return("fresh-token", nil)

	provider := NewCredentialProvider(remote, testCreds, time.Minute, logger.Nop())
	assert.NoError(t, provider.EnsureValid(context.Background()))
}
