package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/store"
	"github.com/fieldcare/clinsync/internal/utils"
	"github.com/fieldcare/clinsync/models"
)

// documentService is the concrete implementation of DocumentService. It
// assigns revision tokens and turns repository-level CAS failures into
// per-document conflict outcomes.
type documentService struct {
	documentRepository store.ServerDocumentRepository
	uuid               *utils.UUIDGenerator
	logger             *logger.Logger
}

func NewDocumentService(documentRepository store.ServerDocumentRepository, logger *logger.Logger) DocumentService {
	return &documentService{
		documentRepository: documentRepository,
		uuid:               utils.NewUUIDGenerator(),
		logger:             logger,
	}
}

// Push applies a replication batch one document at a time. A failed document
// never aborts the batch: the agent gets a complete outcome list and decides
// per document what to do next.
func (d *documentService) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	log := logger.FromContext(ctx)

	if len(req.Documents) == 0 {
		return models.PushResponse{}, ErrValidationNoDocumentsProvided
	}

	outcomes := make([]models.PushOutcome, 0, len(req.Documents))
	for _, doc := range req.Documents {
		if doc.ID == "" {
			outcomes = append(outcomes, models.PushOutcome{
				Status: models.PushError,
				Error:  "document without id",
			})
			continue
		}

		outcomes = append(outcomes, d.pushOne(ctx, doc, req.BaseRevisions[doc.ID]))
	}

	log.Debug().
		Int("documents", len(req.Documents)).
		Msg("push batch processed")

	return models.PushResponse{Outcomes: outcomes, Length: len(outcomes)}, nil
}

func (d *documentService) pushOne(ctx context.Context, doc models.Document, baseRevision string) models.PushOutcome {
	log := logger.FromContext(ctx)

	newRevision := d.uuid.Generate()

	err := d.documentRepository.CompareAndSwap(ctx, doc, baseRevision, newRevision)
	if err == nil {
		return models.PushOutcome{
			ID:          doc.ID,
			Status:      models.PushAccepted,
			NewRevision: newRevision,
		}
	}

	if !errors.Is(err, store.ErrRevisionMismatch) {
		log.Err(err).Str("document_id", doc.ID).Msg("push write failed")
		return models.PushOutcome{
			ID:     doc.ID,
			Status: models.PushError,
			Error:  err.Error(),
		}
	}

	current, err := d.documentRepository.GetDocument(ctx, doc.ID)
	if err != nil {
		log.Err(err).Str("document_id", doc.ID).Msg("failed to load current document for conflict outcome")
		return models.PushOutcome{
			ID:     doc.ID,
			Status: models.PushError,
			Error:  fmt.Sprintf("conflict detected but current document unavailable: %v", err),
		}
	}

	return models.PushOutcome{
		ID:             doc.ID,
		Status:         models.PushConflict,
		RemoteDocument: &current,
	}
}

// WriteAuthoritative stores a merge result as the document's next revision.
func (d *documentService) WriteAuthoritative(ctx context.Context, req models.AuthoritativeWriteRequest) (models.AuthoritativeWriteResponse, error) {
	log := logger.FromContext(ctx)

	if req.Document.ID == "" {
		return models.AuthoritativeWriteResponse{}, ErrInvalidDataProvided
	}

	newRevision := d.uuid.Generate()
	if err := d.documentRepository.Write(ctx, req.Document, newRevision); err != nil {
		log.Err(err).Str("document_id", req.Document.ID).Msg("authoritative write failed")
		return models.AuthoritativeWriteResponse{}, fmt.Errorf("authoritative write failed: %w", err)
	}

	return models.AuthoritativeWriteResponse{Revision: newRevision}, nil
}

func (d *documentService) Fetch(ctx context.Context, req models.FetchRequest) ([]models.Document, error) {
	if len(req.IDs) == 0 {
		return nil, ErrValidationNoIDsProvided
	}

	docs, err := d.documentRepository.GetDocuments(ctx, req.IDs)
	if err != nil {
		return nil, fmt.Errorf("fetch documents failed: %w", err)
	}

	return docs, nil
}

func (d *documentService) States(ctx context.Context) ([]models.DocumentState, error) {
	states, err := d.documentRepository.GetStates(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch document states failed: %w", err)
	}

	return states, nil
}
