package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/models"
)

type localDocumentRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalDocumentRepository wires the agent's document repository over an
// open SQLite connection.
func NewLocalDocumentRepository(db *DB, logger *logger.Logger) LocalDocumentRepository {
	return &localDocumentRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localDocumentRepository) Save(ctx context.Context, docs ...models.StoredDocument) error {
	log := logger.FromContext(ctx)

	for _, doc := range docs {
		payload := doc.Ciphertext
		if !doc.Encrypted {
			encoded, err := encodeFields(doc.Fields)
			if err != nil {
				return fmt.Errorf("failed to encode document fields (id=%s): %w", doc.ID, err)
			}
			payload = encoded
		}

		_, err := l.DB.ExecContext(ctx, upsertDocument,
			doc.ID,
			doc.Kind,
			doc.SessionID,
			doc.Revision,
			doc.UpdatedAt,
			doc.Encrypted,
			payload,
			doc.Dirty,
		)
		if err != nil {
			log.Err(err).
				Str("func", "localDocumentRepository.Save").
				Str("document_id", doc.ID).
				Msg("failed to execute upsert for document")
			return fmt.Errorf("failed to save document (id=%s): %w", doc.ID, err)
		}
	}

	return nil
}

func (l *localDocumentRepository) Get(ctx context.Context, id string) (models.StoredDocument, error) {
	log := logger.FromContext(ctx)

	row := l.DB.QueryRowContext(ctx, getDocument, id)

	doc, err := scanStoredDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.StoredDocument{}, ErrDocumentNotFound
		}
		log.Err(err).
			Str("func", "localDocumentRepository.Get").
			Str("document_id", id).
			Msg("failed to scan document row")
		return models.StoredDocument{}, fmt.Errorf("failed to scan document row: %w", err)
	}

	return doc, nil
}

func (l *localDocumentRepository) GetByIDs(ctx context.Context, ids []string) ([]models.StoredDocument, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args := buildSelectByIDsQuery(ids)

	return l.queryDocuments(ctx, "localDocumentRepository.GetByIDs", query, args...)
}

func (l *localDocumentRepository) GetAll(ctx context.Context) ([]models.StoredDocument, error) {
	return l.queryDocuments(ctx, "localDocumentRepository.GetAll", getAllDocuments)
}

func (l *localDocumentRepository) GetBySession(ctx context.Context, sessionID string) ([]models.StoredDocument, error) {
	return l.queryDocuments(ctx, "localDocumentRepository.GetBySession", getDocumentsBySession, sessionID)
}

func (l *localDocumentRepository) GetPending(ctx context.Context) ([]models.StoredDocument, error) {
	return l.queryDocuments(ctx, "localDocumentRepository.GetPending", getPendingDocuments)
}

func (l *localDocumentRepository) GetPendingBySession(ctx context.Context, sessionID string) ([]models.StoredDocument, error) {
	return l.queryDocuments(ctx, "localDocumentRepository.GetPendingBySession", getPendingDocumentsBySession, sessionID)
}

func (l *localDocumentRepository) CountPending(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	if err := l.DB.QueryRowContext(ctx, countPendingDocuments).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "localDocumentRepository.CountPending").
			Msg("failed to count pending documents")
		return 0, fmt.Errorf("failed to count pending documents: %w", err)
	}

	return count, nil
}

func (l *localDocumentRepository) MarkSynced(ctx context.Context, id string, revision string) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, markDocumentSynced, revision, id)
	if err != nil {
		log.Err(err).
			Str("func", "localDocumentRepository.MarkSynced").
			Str("document_id", id).
			Msg("failed to execute mark synced for document")
		return fmt.Errorf("failed to mark document synced (id=%s): %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected (id=%s): %w", id, err)
	}
	if rowsAffected == 0 {
		log.Warn().
			Str("func", "localDocumentRepository.MarkSynced").
			Str("document_id", id).
			Msg("no rows affected during mark synced: document not found")
		return fmt.Errorf("%w: id=%s", ErrDocumentNotFound, id)
	}

	return nil
}

func (l *localDocumentRepository) queryDocuments(ctx context.Context, caller, query string, args ...any) ([]models.StoredDocument, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Msg("failed to execute query for documents")
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []models.StoredDocument
	for rows.Next() {
		doc, scanErr := scanStoredDocument(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", caller).
				Msg("failed to scan document row")
			return nil, fmt.Errorf("failed to scan document row: %w", scanErr)
		}
		docs = append(docs, doc)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", caller).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating document rows: %w", rowsErr)
	}

	return docs, nil
}

// buildSelectByIDsQuery expands ids into a positional IN clause. SQLite has
// no array parameters, so the placeholder list is built per call.
func buildSelectByIDsQuery(ids []string) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := selectDocumentColumns + `
		WHERE id IN (` + strings.Join(placeholders, ", ") + `)
		ORDER BY updated_at;`

	return query, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStoredDocument(row rowScanner) (models.StoredDocument, error) {
	var (
		doc     models.StoredDocument
		payload []byte
	)

	if err := row.Scan(
		&doc.ID,
		&doc.Kind,
		&doc.SessionID,
		&doc.Revision,
		&doc.UpdatedAt,
		&doc.Encrypted,
		&payload,
		&doc.Dirty,
	); err != nil {
		return models.StoredDocument{}, err
	}

	if doc.Encrypted {
		doc.Ciphertext = payload
	} else if len(payload) > 0 {
		fields, err := decodeFields(payload)
		if err != nil {
			return models.StoredDocument{}, fmt.Errorf("failed to decode document fields (id=%s): %w", doc.ID, err)
		}
		doc.Fields = fields
	}

	return doc, nil
}
