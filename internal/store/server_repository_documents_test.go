package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fieldcare/clinsync/internal/logger"
)

func newTestServerDocRepo(t *testing.T) (*serverDocumentRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &serverDocumentRepository{
		DB:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCompareAndSwap_UpdateSuccess(t *testing.T) {
	repo, mock, db := newTestServerDocRepo(t)
	defer db.Close()

	doc := testDocument()

	mock.ExpectExec("UPDATE documents").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.CompareAndSwap(context.Background(), doc, "rev-2", "rev-3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCompareAndSwap_StaleBaseRevision(t *testing.T) {
	repo, mock, db := newTestServerDocRepo(t)
	defer db.Close()

	doc := testDocument()

	mock.ExpectExec("UPDATE documents").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.CompareAndSwap(context.Background(), doc, "rev-stale", "rev-3")
	if !errors.Is(err, ErrRevisionMismatch) {
		t.Fatalf("expected ErrRevisionMismatch, got %v", err)
	}
}

func TestCompareAndSwap_EmptyBaseInserts(t *testing.T) {
	repo, mock, db := newTestServerDocRepo(t)
	defer db.Close()

	doc := testDocument()
	doc.Revision = ""

	mock.ExpectExec("INSERT INTO documents").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.CompareAndSwap(context.Background(), doc, "", "rev-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCompareAndSwap_ConcurrentCreate(t *testing.T) {
	repo, mock, db := newTestServerDocRepo(t)
	defer db.Close()

	doc := testDocument()

	mock.ExpectExec("INSERT INTO documents").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.CompareAndSwap(context.Background(), doc, "", "rev-1")
	if !errors.Is(err, ErrRevisionMismatch) {
		t.Fatalf("expected ErrRevisionMismatch on concurrent create, got %v", err)
	}
}

func TestWrite_Upsert(t *testing.T) {
	repo, mock, db := newTestServerDocRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO documents").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Write(context.Background(), testDocument(), "rev-9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	repo, mock, db := newTestServerDocRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows(documentColumns))

	_, err := repo.GetDocument(context.Background(), "missing")
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestGetDocuments_DecodesFields(t *testing.T) {
	repo, mock, db := newTestServerDocRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(documentColumns).
		AddRow("doc-1", "referral", "sess-1", "rev-1", now, []byte(`{"reason":"follow-up"}`)).
		AddRow("doc-2", "referral", "sess-1", "rev-4", now, nil)

	mock.ExpectQuery("SELECT").
		WillReturnRows(rows)

	docs, err := repo.GetDocuments(context.Background(), []string{"doc-1", "doc-2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Fields["reason"] != "follow-up" {
		t.Errorf("fields not decoded: %+v", docs[0].Fields)
	}
	if docs[1].Fields != nil {
		t.Errorf("expected nil fields for empty payload, got %+v", docs[1].Fields)
	}
}

func TestGetDocuments_Empty(t *testing.T) {
	repo, _, db := newTestServerDocRepo(t)
	defer db.Close()

	docs, err := repo.GetDocuments(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs != nil {
		t.Errorf("expected nil for empty id list, got %v", docs)
	}
}

func TestGetStates(t *testing.T) {
	repo, mock, db := newTestServerDocRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "kind", "session_id", "revision", "updated_at"}).
		AddRow("doc-1", "session", "doc-1", "rev-1", now).
		AddRow("doc-2", "form_instance", "doc-1", "rev-7", now)

	mock.ExpectQuery("SELECT").
		WillReturnRows(rows)

	states, err := repo.GetStates(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("expected 2 states, got %d", len(states))
	}
	if states[1].Revision != "rev-7" {
		t.Errorf("unexpected state: %+v", states[1])
	}
}
