// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fieldcare/clinsync/internal/config"
	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRemoteStore(t *testing.T, serverURL string) *httpRemoteStore {
	t.Helper()
	adapterCfg := config.AgentAdapter{HTTPAddress: serverURL}

	a, err := NewHTTPRemoteStore(adapterCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpRemoteStore)
}

// ── Base URL ────────────────────────────────────────────────────────────────

func TestNewHTTPRemoteStore_AddressValidation(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{name: "full url", address: "https://sync.example.org"},
		{name: "bare host gets http scheme", address: "sync.example.org:8080"},
		{name: "trailing slash trimmed", address: "http://sync.example.org/"},
		{name: "empty", address: "", wantErr: true},
		{name: "whitespace only", address: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHTTPRemoteStore(config.AgentAdapter{HTTPAddress: tt.address}, logger.Nop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// ── Login ───────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	creds := models.DeviceCredentials{DeviceID: "tablet-3", DeviceKey: "secret"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var got models.DeviceCredentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, creds.DeviceID, got.DeviceID)

		w.Header().Set("Authorization", "Bearer issued-token")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	token, err := a.Login(context.Background(), creds)

	require.NoError(t, err)
	assert.Equal(t, "issued-token", token)
	assert.Equal(t, "issued-token", a.Token())
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("invalid device id/key"))
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	_, err := a.Login(context.Background(), models.DeviceCredentials{DeviceID: "tablet-3"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, a.Token())
}

func TestLogin_MissingAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	_, err := a.Login(context.Background(), models.DeviceCredentials{DeviceID: "tablet-3"})

	require.Error(t, err)
	assert.Empty(t, a.Token())
}

// ── Push ────────────────────────────────────────────────────────────────────

func TestPush_Success(t *testing.T) {
	docs := []models.Document{
		{ID: "doc-1", Kind: models.KindFormInstance, SessionID: "sess-1"},
	}
	base := map[string]string{"doc-1": "rev-1"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/docs/push", r.URL.Path)
		assert.Equal(t, "Bearer device-token", r.Header.Get("Authorization"))

		var req models.PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Documents, 1)
		assert.Equal(t, base, req.BaseRevisions)
		assert.Equal(t, 1, req.Length)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.PushResponse{
			Outcomes: []models.PushOutcome{
				{ID: "doc-1", Status: models.PushAccepted, NewRevision: "rev-2"},
			},
			Length: 1,
		})
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	a.SetToken("device-token")
	outcomes, err := a.Push(context.Background(), docs, base)

	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, models.PushAccepted, outcomes[0].Status)
	assert.Equal(t, "rev-2", outcomes[0].NewRevision)
}

func TestPush_ConflictOutcomeIsNotAnError(t *testing.T) {
	remoteDoc := models.Document{ID: "doc-1", Kind: models.KindSession, Revision: "rev-9"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.PushResponse{
			Outcomes: []models.PushOutcome{
				{ID: "doc-1", Status: models.PushConflict, RemoteDocument: &remoteDoc},
			},
			Length: 1,
		})
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	outcomes, err := a.Push(context.Background(), []models.Document{{ID: "doc-1"}}, nil)

	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, models.PushConflict, outcomes[0].Status)
	require.NotNil(t, outcomes[0].RemoteDocument)
	assert.Equal(t, "rev-9", outcomes[0].RemoteDocument.Revision)
}

func TestPush_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	_, err := a.Push(context.Background(), []models.Document{{ID: "doc-1"}}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, IsAuthError(err))
	assert.False(t, IsRetriable(err))
}

func TestPush_ServerErrorIsRetriable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal server error"))
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	_, err := a.Push(context.Background(), []models.Document{{ID: "doc-1"}}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServer)
	assert.True(t, IsRetriable(err))
}

func TestPush_TransportFailureIsRetriable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	a := newTestRemoteStore(t, srv.URL)
	_, err := a.Push(context.Background(), []models.Document{{ID: "doc-1"}}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.True(t, IsRetriable(err))
}

// ── WriteAuthoritative ──────────────────────────────────────────────────────

func TestWriteAuthoritative_Success(t *testing.T) {
	doc := models.Document{ID: "doc-1", Kind: models.KindFormInstance, Fields: map[string]any{"notes": []any{"a"}}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/docs/authoritative", r.URL.Path)

		var req models.AuthoritativeWriteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, doc.ID, req.Document.ID)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.AuthoritativeWriteResponse{Revision: "rev-5"})
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	revision, err := a.WriteAuthoritative(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, "rev-5", revision)
}

func TestWriteAuthoritative_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("document without id"))
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	_, err := a.WriteAuthoritative(context.Background(), models.Document{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.False(t, IsRetriable(err))
}

// ── Fetch ───────────────────────────────────────────────────────────────────

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/docs/fetch", r.URL.Path)

		var req models.FetchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"doc-1", "doc-2"}, req.IDs)
		assert.Equal(t, 2, req.Length)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.FetchResponse{
			Documents: []models.Document{{ID: "doc-1"}, {ID: "doc-2"}},
			Length:    2,
		})
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	docs, err := a.Fetch(context.Background(), []string{"doc-1", "doc-2"})

	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestFetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("document not found"))
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	_, err := a.Fetch(context.Background(), []string{"missing"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── States ──────────────────────────────────────────────────────────────────

func TestStates_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/docs/states", r.URL.Path)
		assert.Equal(t, "Bearer device-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.StatesResponse{
			States: []models.DocumentState{
				{ID: "doc-1", Kind: models.KindSession, Revision: "rev-3"},
			},
			Length: 1,
		})
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)
	a.SetToken("device-token")
	states, err := a.States(context.Background())

	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "rev-3", states[0].Revision)
}

// ── Ping ────────────────────────────────────────────────────────────────────

func TestPing(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	a := newTestRemoteStore(t, srv.URL)

	assert.NoError(t, a.Ping(context.Background()))

	healthy = false
	err := a.Ping(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServer)
}

// ── SetToken ────────────────────────────────────────────────────────────────

func TestSetToken_TrimsWhitespace(t *testing.T) {
	a := newTestRemoteStore(t, "http://localhost:1")
	a.SetToken("  spaced-token \n")
	assert.Equal(t, "spaced-token", a.Token())
}
