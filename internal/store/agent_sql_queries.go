// SPDX-License-Identifier: Apache-2.0

package store

const (
	upsertDocument = `
		INSERT INTO documents (
			id,
			kind,
			session_id,
			revision,
			updated_at,
			encrypted,
			payload,
			dirty
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			kind       = excluded.kind,
			session_id = excluded.session_id,
			revision   = excluded.revision,
			updated_at = excluded.updated_at,
			encrypted  = excluded.encrypted,
			payload    = excluded.payload,
			dirty      = excluded.dirty;`

	selectDocumentColumns = `
		SELECT
			id,
			kind,
			session_id,
			revision,
			updated_at,
			encrypted,
			payload,
			dirty
		FROM documents`

	getDocument = selectDocumentColumns + `
		WHERE id = $1;`

	getAllDocuments = selectDocumentColumns + `
		ORDER BY updated_at;`

	getDocumentsBySession = selectDocumentColumns + `
		WHERE session_id = $1
		ORDER BY updated_at;`

	getPendingDocuments = selectDocumentColumns + `
		WHERE dirty = 1
		ORDER BY updated_at;`

	getPendingDocumentsBySession = selectDocumentColumns + `
		WHERE dirty = 1 AND session_id = $1
		ORDER BY updated_at;`

	countPendingDocuments = `
		SELECT COUNT(*) FROM documents WHERE dirty = 1;`

	markDocumentSynced = `
		UPDATE documents
		SET revision = $1,
		    dirty    = 0
		WHERE id = $2;`

	upsertSyncState = `
		INSERT INTO sync_state (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`

	getSyncState = `
		SELECT value FROM sync_state WHERE key = $1;`
)
