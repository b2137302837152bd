package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/models"
)

type serverDocumentRepository struct {
	*DB
	logger *logger.Logger
}

// NewServerDocumentRepository wires the authoritative document repository
// over the server's PostgreSQL connection.
func NewServerDocumentRepository(db *DB, logger *logger.Logger) ServerDocumentRepository {
	return &serverDocumentRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *serverDocumentRepository) CompareAndSwap(ctx context.Context, doc models.Document, baseRevision, newRevision string) error {
	log := logger.FromContext(ctx)

	if baseRevision == "" {
		return r.insertNew(ctx, doc, newRevision)
	}

	query, args, err := buildUpdateDocumentCASQuery(doc, baseRevision, newRevision)
	if err != nil {
		return err
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "serverDocumentRepository.CompareAndSwap").
			Str("document_id", doc.ID).
			Msg("failed to execute conditional update for document")
		return fmt.Errorf("failed to update document (id=%s): %w", doc.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected (id=%s): %w", doc.ID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%s base=%s", ErrRevisionMismatch, doc.ID, baseRevision)
	}

	return nil
}

// insertNew handles the empty-base-revision case: a document the agent
// believes the server has never seen. A concurrent create of the same id
// surfaces as a unique violation and is reported as a revision mismatch so
// the agent re-fetches and merges.
func (r *serverDocumentRepository) insertNew(ctx context.Context, doc models.Document, newRevision string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertDocumentQuery(doc, newRevision)
	if err != nil {
		return err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: id=%s already exists", ErrRevisionMismatch, doc.ID)
		}
		log.Err(err).
			Str("func", "serverDocumentRepository.insertNew").
			Str("document_id", doc.ID).
			Msg("failed to execute insert for document")
		return fmt.Errorf("failed to insert document (id=%s): %w", doc.ID, err)
	}

	return nil
}

func (r *serverDocumentRepository) Write(ctx context.Context, doc models.Document, newRevision string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertDocumentQuery(doc, newRevision)
	if err != nil {
		return err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "serverDocumentRepository.Write").
			Str("document_id", doc.ID).
			Msg("failed to execute upsert for document")
		return fmt.Errorf("failed to write document (id=%s): %w", doc.ID, err)
	}

	return nil
}

func (r *serverDocumentRepository) GetDocument(ctx context.Context, id string) (models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectDocumentQuery(id)
	if err != nil {
		return models.Document{}, err
	}

	doc, err := scanServerDocument(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Document{}, ErrDocumentNotFound
		}
		log.Err(err).
			Str("func", "serverDocumentRepository.GetDocument").
			Str("document_id", id).
			Msg("failed to scan document row")
		return models.Document{}, fmt.Errorf("failed to scan document row: %w", err)
	}

	return doc, nil
}

func (r *serverDocumentRepository) GetDocuments(ctx context.Context, ids []string) ([]models.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	log := logger.FromContext(ctx)

	query, args, err := buildSelectDocumentsByIDsQuery(ids)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "serverDocumentRepository.GetDocuments").
			Msg("failed to execute query for documents")
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		doc, scanErr := scanServerDocument(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "serverDocumentRepository.GetDocuments").
				Msg("failed to scan document row")
			return nil, fmt.Errorf("failed to scan document row: %w", scanErr)
		}
		docs = append(docs, doc)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "serverDocumentRepository.GetDocuments").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating document rows: %w", rowsErr)
	}

	return docs, nil
}

func (r *serverDocumentRepository) GetStates(ctx context.Context) ([]models.DocumentState, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectStatesQuery()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "serverDocumentRepository.GetStates").
			Msg("failed to execute query for document states")
		return nil, fmt.Errorf("failed to query document states: %w", err)
	}
	defer rows.Close()

	var states []models.DocumentState
	for rows.Next() {
		var state models.DocumentState
		if scanErr := rows.Scan(
			&state.ID,
			&state.Kind,
			&state.SessionID,
			&state.Revision,
			&state.UpdatedAt,
		); scanErr != nil {
			log.Err(scanErr).
				Str("func", "serverDocumentRepository.GetStates").
				Msg("failed to scan document state row")
			return nil, fmt.Errorf("failed to scan document state row: %w", scanErr)
		}
		states = append(states, state)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "serverDocumentRepository.GetStates").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating document state rows: %w", rowsErr)
	}

	return states, nil
}
