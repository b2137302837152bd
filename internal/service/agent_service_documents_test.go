package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fieldcare/clinsync/internal/crypto"
	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/mock"
	"github.com/fieldcare/clinsync/internal/store"
	"github.com/fieldcare/clinsync/models"
)

var testDataKey = []byte("0123456789abcdef0123456789abcdef")

func newTestAgentDocumentService(t *testing.T) (AgentDocumentService, *mock.MockLocalDocumentRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	local := mock.NewMockLocalDocumentRepository(ctrl)
	svc := NewAgentDocumentService(local, crypto.NewDocumentCipher(), logger.Nop())
	svc.SetEncryptionKey(testDataKey)
	return svc, local
}

func TestAgentDocumentService_Create(t *testing.T) {
	svc, local := newTestAgentDocumentService(t)

	var saved models.StoredDocument
	local.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, docs ...models.StoredDocument) error {
			require.Len(t, docs, 1)
			saved = docs[0]
			return nil
		})

	created, err := svc.Create(context.Background(), models.Document{
		Kind:      models.KindFormInstance,
		SessionID: "session-1",
		Fields:    map[string]any{"status": "draft"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Revision)
	assert.False(t, created.UpdatedAt.IsZero())

	assert.Equal(t, created.ID, saved.ID)
	assert.True(t, saved.Dirty)
	assert.True(t, saved.Encrypted)
	assert.NotEmpty(t, saved.Ciphertext)
	assert.Nil(t, saved.Fields)
}

func TestAgentDocumentService_Create_SessionAnchorsItself(t *testing.T) {
	svc, local := newTestAgentDocumentService(t)

	local.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	created, err := svc.Create(context.Background(), models.Document{
		Kind:      models.KindSession,
		SessionID: "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, created.SessionID)
}

func TestAgentDocumentService_Create_NoKind(t *testing.T) {
	svc, _ := newTestAgentDocumentService(t)

	_, err := svc.Create(context.Background(), models.Document{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAgentDocumentService_Create_WithoutKeyStoresPlaintext(t *testing.T) {
	svc, local := newTestAgentDocumentService(t)
	svc.SetEncryptionKey(nil)

	var saved models.StoredDocument
	local.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, docs ...models.StoredDocument) error {
			saved = docs[0]
			return nil
		})

	_, err := svc.Create(context.Background(), models.Document{
		Kind:   models.KindTimelineEvent,
		Fields: map[string]any{"note": "arrived"},
	})
	require.NoError(t, err)

	assert.False(t, saved.Encrypted)
	assert.Equal(t, map[string]any{"note": "arrived"}, saved.Fields)
}

func TestAgentDocumentService_Update_PreservesStoredRevision(t *testing.T) {
	svc, local := newTestAgentDocumentService(t)

	local.EXPECT().
		Get(gomock.Any(), "doc-1").
		Return(models.StoredDocument{ID: "doc-1", Revision: "rev-7"}, nil)

	var saved models.StoredDocument
	local.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, docs ...models.StoredDocument) error {
			saved = docs[0]
			return nil
		})

	// stale in-memory revision must not win over the stored one
	err := svc.Update(context.Background(), models.Document{
		ID:       "doc-1",
		Kind:     models.KindFormInstance,
		Revision: "rev-3",
		Fields:   map[string]any{"status": "final"},
	})
	require.NoError(t, err)

	assert.Equal(t, "rev-7", saved.Revision)
	assert.True(t, saved.Dirty)
}

func TestAgentDocumentService_Update_NotFound(t *testing.T) {
	svc, local := newTestAgentDocumentService(t)

	local.EXPECT().Get(gomock.Any(), "ghost").Return(models.StoredDocument{}, store.ErrDocumentNotFound)

	err := svc.Update(context.Background(), models.Document{ID: "ghost"})
	assert.ErrorIs(t, err, store.ErrDocumentNotFound)
}

func TestAgentDocumentService_Update_NoID(t *testing.T) {
	svc, _ := newTestAgentDocumentService(t)

	err := svc.Update(context.Background(), models.Document{Kind: models.KindReferral})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAgentDocumentService_GetRoundTrip(t *testing.T) {
	svc, local := newTestAgentDocumentService(t)

	var saved models.StoredDocument
	local.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, docs ...models.StoredDocument) error {
			saved = docs[0]
			return nil
		})

	created, err := svc.Create(context.Background(), models.Document{
		Kind:      models.KindAIRequest,
		SessionID: "session-1",
		Fields:    map[string]any{"prompt": "summarize visit", "tokens": float64(512)},
	})
	require.NoError(t, err)

	local.EXPECT().Get(gomock.Any(), created.ID).Return(saved, nil)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Fields, got.Fields)
	assert.Equal(t, created.SessionID, got.SessionID)
}

func TestAgentDocumentService_Get_EncryptedWithoutKey(t *testing.T) {
	svc, local := newTestAgentDocumentService(t)
	svc.SetEncryptionKey(nil)

	local.EXPECT().
		Get(gomock.Any(), "doc-1").
		Return(models.StoredDocument{ID: "doc-1", Encrypted: true, Ciphertext: []byte{1, 2, 3}}, nil)

	_, err := svc.Get(context.Background(), "doc-1")
	assert.ErrorIs(t, err, ErrEncryptionKeyNotSet)
}

func TestAgentDocumentService_GetBySession(t *testing.T) {
	svc, local := newTestAgentDocumentService(t)

	local.EXPECT().
		GetBySession(gomock.Any(), "session-1").
		Return([]models.StoredDocument{
			{ID: "doc-1", Kind: models.KindSession, SessionID: "session-1", Fields: map[string]any{"patient": "A"}},
			{ID: "doc-2", Kind: models.KindFormInstance, SessionID: "session-1", Fields: map[string]any{"status": "draft"}},
		}, nil)

	docs, err := svc.GetBySession(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-1", docs[0].ID)
	assert.Equal(t, map[string]any{"status": "draft"}, docs[1].Fields)
}

func TestAgentDocumentService_GetBySession_NoID(t *testing.T) {
	svc, _ := newTestAgentDocumentService(t)

	_, err := svc.GetBySession(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAgentDocumentService_GetAll_RepositoryError(t *testing.T) {
	svc, local := newTestAgentDocumentService(t)

	dbErr := errors.New("database is locked")
	local.EXPECT().GetAll(gomock.Any()).Return(nil, dbErr)

	_, err := svc.GetAll(context.Background())
	assert.ErrorIs(t, err, dbErr)
}

func TestAgentDocumentService_Create_KeepsCallerTimestamp(t *testing.T) {
	svc, local := newTestAgentDocumentService(t)

	local.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	captured := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	created, err := svc.Create(context.Background(), models.Document{
		Kind:      models.KindTimelineEvent,
		UpdatedAt: captured,
	})
	require.NoError(t, err)
	assert.Equal(t, captured, created.UpdatedAt)
}
