package http

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/mock"
	"github.com/fieldcare/clinsync/internal/service"
)

type testHandler struct {
	handler   *Handler
	auth      *mock.MockAuthService
	documents *mock.MockDocumentService
}

func newTestHandler(t *testing.T) *testHandler {
	t.Helper()

	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthService(ctrl)
	documents := mock.NewMockDocumentService(ctrl)

	services := &service.Services{
		AuthService:     auth,
		DocumentService: documents,
	}

	return &testHandler{
		handler:   NewHandler(services, logger.Nop()),
		auth:      auth,
		documents: documents,
	}
}

func TestNewHandler(t *testing.T) {
	th := newTestHandler(t)

	if th.handler == nil {
		t.Fatal("expected a handler")
	}
	if th.handler.Init() == nil {
		t.Fatal("expected a router")
	}
}
