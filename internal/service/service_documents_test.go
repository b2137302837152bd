package service

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
	"github.com/fieldcare/clinsync/internal/store"
	"github.com/fieldcare/clinsync/models"
)

func newTestDocumentService(t *testing.T) (DocumentService, *mock.MockServerDocumentRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockServerDocumentRepository(ctrl)
	return NewDocumentService(repo, logger.Nop()), repo
}

func wireDocument(id string) models.Document {
	return models.Document{
		ID:        id,
		Kind:      models.KindFormInstance,
		SessionID: "session-1",
		UpdatedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Fields:    map[string]any{"status": "draft"},
	}
}

func TestDocumentService_Push_Accepted(t *testing.T) {
	svc, repo := newTestDocumentService(t)

	doc := wireDocument("doc-1")
	doc.Revision = "rev-1"

	var assigned string
	repo.EXPECT().
		CompareAndSwap(gomock.Any(), doc, "rev-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.Document, _ string, newRevision string) error {
			assigned = newRevision
			return nil
		})

	resp, err := svc.Push(context.Background(), models.PushRequest{
		Documents:     []models.Document{doc},
		BaseRevisions: map[string]string{"doc-1": "rev-1"},
		Length:        1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Outcomes, 1)

	outcome := resp.Outcomes[0]
	assert.Equal(t, models.PushAccepted, outcome.Status)
	assert.Equal(t, "doc-1", outcome.ID)
	assert.NotEmpty(t, assigned)
	assert.Equal(t, assigned, outcome.NewRevision)
}

func TestDocumentService_Push_FirstPushHasNoBaseRevision(t *testing.T) {
	svc, repo := newTestDocumentService(t)

	doc := wireDocument("doc-1")
	repo.EXPECT().
		CompareAndSwap(gomock.Any(), doc, "", gomock.Any()).
		Return(nil)

	resp, err := svc.Push(context.Background(), models.PushRequest{Documents: []models.Document{doc}, Length: 1})
	require.NoError(t, err)
	assert.Equal(t, models.PushAccepted, resp.Outcomes[0].Status)
}

func TestDocumentService_Push_Conflict(t *testing.T) {
	svc, repo := newTestDocumentService(t)

	doc := wireDocument("doc-1")
	doc.Revision = "rev-stale"

	remote := wireDocument("doc-1")
	remote.Revision = "rev-current"
	remote.Fields = map[string]any{"status": "final"}

	repo.EXPECT().
		CompareAndSwap(gomock.Any(), doc, "rev-stale", gomock.Any()).
		Return(store.ErrRevisionMismatch)
	repo.EXPECT().
		GetDocument(gomock.Any(), "doc-1").
		Return(remote, nil)

	resp, err := svc.Push(context.Background(), models.PushRequest{
		Documents:     []models.Document{doc},
		BaseRevisions: map[string]string{"doc-1": "rev-stale"},
		Length:        1,
	})
	require.NoError(t, err)

	outcome := resp.Outcomes[0]
	assert.Equal(t, models.PushConflict, outcome.Status)
	require.NotNil(t, outcome.RemoteDocument)
	assert.Equal(t, "rev-current", outcome.RemoteDocument.Revision)
}

func TestDocumentService_Push_ConflictButCurrentUnavailable(t *testing.T) {
	svc, repo := newTestDocumentService(t)

	doc := wireDocument("doc-1")
	repo.EXPECT().
		CompareAndSwap(gomock.Any(), doc, "", gomock.Any()).
		Return(store.ErrRevisionMismatch)
	repo.EXPECT().
		GetDocument(gomock.Any(), "doc-1").
		Return(models.Document{}, errors.New("connection reset"))

	resp, err := svc.Push(context.Background(), models.PushRequest{Documents: []models.Document{doc}, Length: 1})
	require.NoError(t, err)
	assert.Equal(t, models.PushError, resp.Outcomes[0].Status)
	assert.Contains(t, resp.Outcomes[0].Error, "conflict detected")
}

func TestDocumentService_Push_MixedBatch(t *testing.T) {
	svc, repo := newTestDocumentService(t)

	good := wireDocument("doc-good")
	bad := wireDocument("doc-bad")
	noID := wireDocument("")

	repo.EXPECT().CompareAndSwap(gomock.Any(), good, "", gomock.Any()).Return(nil)
	repo.EXPECT().CompareAndSwap(gomock.Any(), bad, "", gomock.Any()).Return(errors.New("disk full"))

	resp, err := svc.Push(context.Background(), models.PushRequest{
		Documents: []models.Document{good, bad, noID},
		Length:    3,
	})
	require.NoError(t, err)
	require.Len(t, resp.Outcomes, 3)

	assert.Equal(t, models.PushAccepted, resp.Outcomes[0].Status)
	assert.Equal(t, models.PushError, resp.Outcomes[1].Status)
	assert.Contains(t, resp.Outcomes[1].Error, "disk full")
	assert.Equal(t, models.PushError, resp.Outcomes[2].Status)
	assert.Equal(t, "document without id", resp.Outcomes[2].Error)
	assert.Equal(t, 3, resp.Length)
}

func TestDocumentService_Push_EmptyBatch(t *testing.T) {
	svc, _ := newTestDocumentService(t)

	_, err := svc.Push(context.Background(), models.PushRequest{})
	assert.ErrorIs(t, err, ErrValidationNoDocumentsProvided)
}

func TestDocumentService_WriteAuthoritative(t *testing.T) {
	svc, repo := newTestDocumentService(t)

	doc := wireDocument("doc-1")

	var assigned string
	repo.EXPECT().
		Write(gomock.Any(), doc, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.Document, newRevision string) error {
			assigned = newRevision
			return nil
		})

	resp, err := svc.WriteAuthoritative(context.Background(), models.AuthoritativeWriteRequest{Document: doc})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Revision)
	assert.Equal(t, assigned, resp.Revision)
}

func TestDocumentService_WriteAuthoritative_NoID(t *testing.T) {
	svc, _ := newTestDocumentService(t)

	_, err := svc.WriteAuthoritative(context.Background(), models.AuthoritativeWriteRequest{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestDocumentService_WriteAuthoritative_RepositoryError(t *testing.T) {
	svc, repo := newTestDocumentService(t)

	writeErr := errors.New("disk full")
	repo.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(writeErr)

	_, err := svc.WriteAuthoritative(context.Background(), models.AuthoritativeWriteRequest{Document: wireDocument("doc-1")})
	assert.ErrorIs(t, err, writeErr)
}

func TestDocumentService_Fetch(t *testing.T) {
	svc, repo := newTestDocumentService(t)

	want := []models.Document{wireDocument("doc-1"), wireDocument("doc-2")}
	repo.EXPECT().GetDocuments(gomock.Any(), []string{"doc-1", "doc-2"}).Return(want, nil)

	docs, err := svc.Fetch(context.Background(), models.FetchRequest{IDs: []string{"doc-1", "doc-2"}, Length: 2})
	require.NoError(t, err)
	assert.Equal(t, want, docs)
}

func TestDocumentService_Fetch_NoIDs(t *testing.T) {
	svc, _ := newTestDocumentService(t)

	_, err := svc.Fetch(context.Background(), models.FetchRequest{})
	assert.ErrorIs(t, err, ErrValidationNoIDsProvided)
}

func TestDocumentService_States(t *testing.T) {
	svc, repo := newTestDocumentService(t)

	want := []models.DocumentState{{ID: "doc-1", Kind: models.KindSession, Revision: "rev-1"}}
	repo.EXPECT().GetStates(gomock.Any()).Return(want, nil)

	states, err := svc.States(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, states)
}
