package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fieldcare/clinsync/internal/service"
	"github.com/fieldcare/clinsync/models"
)

// authorize arms the ParseToken expectation consumed by the auth middleware.
func (th *testHandler) authorize() {
	th.auth.EXPECT().
		ParseToken(gomock.Any(), "valid-token").
		Return(models.Token{DeviceID: "tablet-3"}, nil)
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	req.Header.Set("Authorization", "Bearer valid-token")
	return req
}

func TestHandler_Push(t *testing.T) {
	th := newTestHandler(t)
	th.authorize()

	th.documents.EXPECT().
		Push(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req models.PushRequest) (models.PushResponse, error) {
			require.Len(t, req.Documents, 1)
			assert.Equal(t, "doc-1", req.Documents[0].ID)
			assert.Equal(t, map[string]string{"doc-1": "rev-1"}, req.BaseRevisions)
			return models.PushResponse{
				Outcomes: []models.PushOutcome{{ID: "doc-1", Status: models.PushAccepted, NewRevision: "rev-2"}},
				Length:   1,
			}, nil
		})

	body := `{"documents":[{"id":"doc-1","kind":"form_instance","updated_at":"2026-03-14T10:30:00Z"}],"base_revisions":{"doc-1":"rev-1"},"length":1}`
	rec := httptest.NewRecorder()
	th.handler.Init().ServeHTTP(rec, authedRequest(http.MethodPost, "/api/docs/push", body))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var response models.PushResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Outcomes, 1)
	assert.Equal(t, models.PushAccepted, response.Outcomes[0].Status)
	assert.Equal(t, "rev-2", response.Outcomes[0].NewRevision)
}

func TestHandler_Push_EmptyBatch(t *testing.T) {
	th := newTestHandler(t)
	th.authorize()

	th.documents.EXPECT().
		Push(gomock.Any(), gomock.Any()).
		Return(models.PushResponse{}, service.ErrValidationNoDocumentsProvided)

	rec := httptest.NewRecorder()
	th.handler.Init().ServeHTTP(rec, authedRequest(http.MethodPost, "/api/docs/push", `{"documents":[]}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Push_InvalidJSON(t *testing.T) {
	th := newTestHandler(t)
	th.authorize()

	rec := httptest.NewRecorder()
	th.handler.Init().ServeHTTP(rec, authedRequest(http.MethodPost, "/api/docs/push", "{broken"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_WriteAuthoritative(t *testing.T) {
	th := newTestHandler(t)
	th.authorize()

	th.documents.EXPECT().
		WriteAuthoritative(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req models.AuthoritativeWriteRequest) (models.AuthoritativeWriteResponse, error) {
			assert.Equal(t, "doc-1", req.Document.ID)
			return models.AuthoritativeWriteResponse{Revision: "rev-9"}, nil
		})

	body := `{"document":{"id":"doc-1","kind":"form_instance","updated_at":"2026-03-14T10:30:00Z"}}`
	rec := httptest.NewRecorder()
	th.handler.Init().ServeHTTP(rec, authedRequest(http.MethodPost, "/api/docs/authoritative", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.AuthoritativeWriteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "rev-9", response.Revision)
}

func TestHandler_Fetch(t *testing.T) {
	th := newTestHandler(t)
	th.authorize()

	th.documents.EXPECT().
		Fetch(gomock.Any(), models.FetchRequest{IDs: []string{"doc-1", "doc-2"}, Length: 2}).
		Return([]models.Document{{ID: "doc-1"}, {ID: "doc-2"}}, nil)

	rec := httptest.NewRecorder()
	th.handler.Init().ServeHTTP(rec, authedRequest(http.MethodPost, "/api/docs/fetch", `{"ids":["doc-1","doc-2"],"length":2}`))

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.FetchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Length)
	require.Len(t, response.Documents, 2)
}

func TestHandler_Fetch_NoIDs(t *testing.T) {
	th := newTestHandler(t)
	th.authorize()

	th.documents.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return(nil, service.ErrValidationNoIDsProvided)

	rec := httptest.NewRecorder()
	th.handler.Init().ServeHTTP(rec, authedRequest(http.MethodPost, "/api/docs/fetch", `{"ids":[]}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_States(t *testing.T) {
	th := newTestHandler(t)
	th.authorize()

	th.documents.EXPECT().
		States(gomock.Any()).
		Return([]models.DocumentState{
			{ID: "doc-1", Kind: models.KindSession, Revision: "rev-1"},
		}, nil)

	rec := httptest.NewRecorder()
	th.handler.Init().ServeHTTP(rec, authedRequest(http.MethodGet, "/api/docs/states", ""))

	require.Equal(t, http.StatusOK, rec.Code)

	var response models.StatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Length)
	require.Len(t, response.States, 1)
	assert.Equal(t, "rev-1", response.States[0].Revision)
}
