package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fieldcare/clinsync/internal/crypto"
	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/store"
	"github.com/fieldcare/clinsync/internal/utils"
	"github.com/fieldcare/clinsync/models"
)

type agentDocumentService struct {
	local  store.LocalDocumentRepository
	cipher crypto.Cipher
	uuid   *utils.UUIDGenerator
	logger *logger.Logger

	mu  sync.RWMutex
	key []byte
}

func NewAgentDocumentService(local store.LocalDocumentRepository, cipher crypto.Cipher, logger *logger.Logger) AgentDocumentService {
	return &agentDocumentService{
		local:  local,
		cipher: cipher,
		uuid:   utils.NewUUIDGenerator(),
		logger: logger,
	}
}

func (s *agentDocumentService) SetEncryptionKey(key []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
}

func (s *agentDocumentService) encryptionKey() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}

// Create captures a new document. The id is assigned here; session documents
// become their own session anchor. The document never carries a revision
// until a push is accepted.
func (s *agentDocumentService) Create(ctx context.Context, doc models.Document) (models.Document, error) {
	if doc.Kind == "" {
		return models.Document{}, ErrInvalidDataProvided
	}

	doc.ID = s.uuid.Generate()
	doc.Revision = ""
	if doc.Kind == models.KindSession {
		doc.SessionID = doc.ID
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now()
	}

	stored, err := sealDocument(s.cipher, s.encryptionKey(), doc, true)
	if err != nil {
		return models.Document{}, err
	}

	if err = s.local.Save(ctx, stored); err != nil {
		return models.Document{}, fmt.Errorf("save created document: %w", err)
	}

	s.logger.Debug().
		Str("document_id", doc.ID).
		Str("kind", string(doc.Kind)).
		Msg("document created")

	return doc, nil
}

// Update saves an edit. The stored revision is preserved from the existing
// record so a stale in-memory copy cannot roll back sync bookkeeping.
func (s *agentDocumentService) Update(ctx context.Context, doc models.Document) error {
	if doc.ID == "" {
		return ErrInvalidDataProvided
	}

	existing, err := s.local.Get(ctx, doc.ID)
	if err != nil {
		return fmt.Errorf("load document for update: %w", err)
	}

	doc.Revision = existing.Revision
	doc.UpdatedAt = time.Now()

	stored, err := sealDocument(s.cipher, s.encryptionKey(), doc, true)
	if err != nil {
		return err
	}

	if err = s.local.Save(ctx, stored); err != nil {
		return fmt.Errorf("save updated document: %w", err)
	}

	return nil
}

func (s *agentDocumentService) Get(ctx context.Context, id string) (models.Document, error) {
	stored, err := s.local.Get(ctx, id)
	if err != nil {
		return models.Document{}, err
	}

	return openDocument(s.cipher, s.encryptionKey(), stored)
}

func (s *agentDocumentService) GetAll(ctx context.Context) ([]models.Document, error) {
	stored, err := s.local.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return s.openAll(stored)
}

func (s *agentDocumentService) GetBySession(ctx context.Context, sessionID string) ([]models.Document, error) {
	if sessionID == "" {
		return nil, ErrInvalidDataProvided
	}

	stored, err := s.local.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return s.openAll(stored)
}

func (s *agentDocumentService) openAll(stored []models.StoredDocument) ([]models.Document, error) {
	key := s.encryptionKey()

	docs := make([]models.Document, 0, len(stored))
	for _, item := range stored {
		doc, err := openDocument(s.cipher, key, item)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
