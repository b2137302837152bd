// SPDX-License-Identifier: Apache-2.0

package store

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/fieldcare/clinsync/models"
)

// psql is the statement builder for the server store. PostgreSQL expects $N
// placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var documentColumns = []string{
	"id",
	"kind",
	"session_id",
	"revision",
	"updated_at",
	"fields",
}

func buildSelectStatesQuery() (string, []any, error) {
	return psql.
		Select("id", "kind", "session_id", "revision", "updated_at").
		From("documents").
		OrderBy("updated_at").
		ToSql()
}

func buildSelectDocumentsByIDsQuery(ids []string) (string, []any, error) {
	return psql.
		Select(documentColumns...).
		From("documents").
		Where(sq.Eq{"id": ids}).
		OrderBy("updated_at").
		ToSql()
}

func buildSelectDocumentQuery(id string) (string, []any, error) {
	return psql.
		Select(documentColumns...).
		From("documents").
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildInsertDocumentQuery(doc models.Document, newRevision string) (string, []any, error) {
	fields, err := encodeFields(doc.Fields)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode document fields (id=%s): %w", doc.ID, err)
	}

	return psql.
		Insert("documents").
		Columns(documentColumns...).
		Values(doc.ID, doc.Kind, doc.SessionID, newRevision, doc.UpdatedAt, fields).
		ToSql()
}

// buildUpdateDocumentCASQuery advances the document only when its stored
// revision still equals baseRevision. Zero rows affected means the base
// revision went stale.
func buildUpdateDocumentCASQuery(doc models.Document, baseRevision, newRevision string) (string, []any, error) {
	fields, err := encodeFields(doc.Fields)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode document fields (id=%s): %w", doc.ID, err)
	}

	return psql.
		Update("documents").
		Set("kind", doc.Kind).
		Set("session_id", doc.SessionID).
		Set("revision", newRevision).
		Set("updated_at", doc.UpdatedAt).
		Set("fields", fields).
		Where(sq.Eq{"id": doc.ID, "revision": baseRevision}).
		ToSql()
}

// buildUpsertDocumentQuery writes the document unconditionally. Used for
// authoritative merge results.
func buildUpsertDocumentQuery(doc models.Document, newRevision string) (string, []any, error) {
	fields, err := encodeFields(doc.Fields)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode document fields (id=%s): %w", doc.ID, err)
	}

	return psql.
		Insert("documents").
		Columns(documentColumns...).
		Values(doc.ID, doc.Kind, doc.SessionID, newRevision, doc.UpdatedAt, fields).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			kind       = excluded.kind,
			session_id = excluded.session_id,
			revision   = excluded.revision,
			updated_at = excluded.updated_at,
			fields     = excluded.fields`).
		ToSql()
}

func scanServerDocument(row rowScanner) (models.Document, error) {
	var (
		doc    models.Document
		fields []byte
	)

	if err := row.Scan(
		&doc.ID,
		&doc.Kind,
		&doc.SessionID,
		&doc.Revision,
		&doc.UpdatedAt,
		&fields,
	); err != nil {
		return models.Document{}, err
	}

	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &doc.Fields); err != nil {
			return models.Document{}, fmt.Errorf("failed to decode document fields (id=%s): %w", doc.ID, err)
		}
	}

	return doc, nil
}
