package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fieldcare/clinsync/internal/config"
	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/utils"
	"github.com/fieldcare/clinsync/models"
)

type httpRemoteStore struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs an HTTP/REST implementation of [RemoteStore].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPRemoteStore(adapterCfg config.AgentAdapter, logger *logger.Logger) (RemoteStore, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid remote store address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpRemoteStore{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteStore]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpRemoteStore) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [RemoteStore].
func (h *httpRemoteStore) Token() string {
	return h.token
}

// Login implements [RemoteStore]. It POSTs the device credentials to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken.
func (h *httpRemoteStore) Login(ctx context.Context, creds models.DeviceCredentials) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		Post("/api/auth/login")
	if err != nil {
		return "", fmt.Errorf("%w: login request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return "", fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return token, nil
}

// Push implements [RemoteStore]. It POSTs the staged batch to
// POST /api/docs/push and returns the per-document outcomes. A request-level
// failure (transport, auth, server fault) is returned as an error; conflicts
// are not errors and arrive inside the outcomes.
func (h *httpRemoteStore) Push(ctx context.Context, docs []models.Document, baseRevisions map[string]string) ([]models.PushOutcome, error) {
	req := models.PushRequest{
		Documents:     docs,
		BaseRevisions: baseRevisions,
		Length:        len(docs),
	}

	var pushResp models.PushResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(h.token).
		SetBody(req).
		SetResult(&pushResp).
		Post("/api/docs/push")
	if err != nil {
		return nil, fmt.Errorf("%w: push request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	h.logger.Debug().
		Str("func", "httpRemoteStore.Push").
		Int("pushed", req.Length).
		Int("outcomes", pushResp.Length).
		Msg("push completed")

	return pushResp.Outcomes, nil
}

// WriteAuthoritative implements [RemoteStore]. It POSTs the merged document
// to POST /api/docs/authoritative and returns the revision the server
// assigned to it.
func (h *httpRemoteStore) WriteAuthoritative(ctx context.Context, doc models.Document) (string, error) {
	var writeResp models.AuthoritativeWriteResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(h.token).
		SetBody(models.AuthoritativeWriteRequest{Document: doc}).
		SetResult(&writeResp).
		Post("/api/docs/authoritative")
	if err != nil {
		return "", fmt.Errorf("%w: authoritative write request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return writeResp.Revision, nil
}

// Fetch implements [RemoteStore]. It POSTs the id list to
// POST /api/docs/fetch and returns the full documents.
func (h *httpRemoteStore) Fetch(ctx context.Context, ids []string) ([]models.Document, error) {
	var fetchResp models.FetchResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(h.token).
		SetBody(models.FetchRequest{IDs: ids, Length: len(ids)}).
		SetResult(&fetchResp).
		Post("/api/docs/fetch")
	if err != nil {
		return nil, fmt.Errorf("%w: fetch request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return fetchResp.Documents, nil
}

// States implements [RemoteStore]. It GETs GET /api/docs/states.
func (h *httpRemoteStore) States(ctx context.Context) ([]models.DocumentState, error) {
	var statesResp models.StatesResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(h.token).
		SetResult(&statesResp).
		Get("/api/docs/states")
	if err != nil {
		return nil, fmt.Errorf("%w: states request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return statesResp.States, nil
}

// Ping implements [RemoteStore]. It GETs the unauthenticated health
// endpoint.
func (h *httpRemoteStore) Ping(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/health")
	if err != nil {
		return fmt.Errorf("%w: health request: %w", ErrTransport, err)
	}
	return mapHTTPError(resp)
}
