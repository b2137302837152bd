// SPDX-License-Identifier: Apache-2.0

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldcare/clinsync/models"
)

func testDocument() models.Document {
	return models.Document{
		ID:        "doc-1",
		Kind:      models.KindFormInstance,
		SessionID: "sess-1",
		Revision:  "rev-2",
		UpdatedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
		Fields:    map[string]any{"notes": "bp stable"},
	}
}

func Test_buildSelectStatesQuery(t *testing.T) {
	query, args, err := buildSelectStatesQuery()
	require.NoError(t, err)
	require.Empty(t, args)

	q := strings.ToLower(query)
	require.Contains(t, q, "select")
	require.Contains(t, q, "from documents")
	require.Contains(t, q, "order by updated_at")

	// states never ship payloads
	assert.NotContains(t, q, "fields")

	for _, col := range []string{"id", "kind", "session_id", "revision", "updated_at"} {
		assert.Contains(t, q, col)
	}
}

func Test_buildSelectDocumentsByIDsQuery(t *testing.T) {
	ids := []string{"a", "b", "c"}

	query, args, err := buildSelectDocumentsByIDsQuery(ids)
	require.NoError(t, err)

	// squirrel generates IN ($1,$2,$3) for a slice.
	assert.Contains(t, query, "IN ($1,$2,$3)")
	require.Len(t, args, 3)
	assert.Equal(t, "a", args[0])
	assert.Equal(t, "c", args[2])

	q := strings.ToLower(query)
	for _, col := range documentColumns {
		assert.Contains(t, q, col)
	}
}

func Test_buildInsertDocumentQuery(t *testing.T) {
	doc := testDocument()

	query, args, err := buildInsertDocumentQuery(doc, "rev-3")
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "insert into documents")
	require.Contains(t, query, "$1")

	require.Len(t, args, 6)
	assert.Equal(t, doc.ID, args[0])
	assert.Equal(t, doc.Kind, args[1])
	assert.Equal(t, "rev-3", args[3], "insert must carry the new revision, not the document's")
	assert.Contains(t, string(args[5].([]byte)), "bp stable")
}

func Test_buildUpdateDocumentCASQuery(t *testing.T) {
	doc := testDocument()

	query, args, err := buildUpdateDocumentCASQuery(doc, "rev-2", "rev-3")
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "update documents")
	require.Contains(t, q, "where")
	require.Contains(t, q, "revision")

	// both the base revision guard and the new revision must be bound
	assert.Contains(t, args, "rev-2")
	assert.Contains(t, args, "rev-3")
}

func Test_buildUpsertDocumentQuery(t *testing.T) {
	doc := testDocument()

	query, _, err := buildUpsertDocumentQuery(doc, "rev-9")
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "insert into documents")
	require.Contains(t, q, "on conflict (id) do update set")
	require.Contains(t, q, "excluded.revision")
}

func Test_buildInsertDocumentQuery_UnencodableFields(t *testing.T) {
	doc := testDocument()
	doc.Fields = map[string]any{"bad": make(chan int)}

	_, _, err := buildInsertDocumentQuery(doc, "rev-3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode document fields")
}
