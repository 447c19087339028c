package gateway

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockStore(t *testing.T) (*PGStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGStore{DB: db}, mock
}

func expectMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreQueryBuildsFilteredSelect(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "resumes" WHERE "user_id" = $1 ORDER BY "id" DESC LIMIT 2`)).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content"}).
			AddRow("r-2", "u-1", "two").
			AddRow("r-1", "u-1", "one"))

	rows, err := store.Query(context.Background(), QuerySpec{
		Table:   "resumes",
		Filters: map[string]any{"user_id": "u-1"},
		Order:   map[string]string{"id": "desc"},
		Limit:   2,
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["content"] != "two" {
		t.Fatalf("expected first row content 'two', got %v", rows[0]["content"])
	}
	expectMet(t, mock)
}

func TestPGStoreQuerySelectListIsQuoted(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "user_id", "content" FROM "resumes"`)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "content"}).AddRow("u-1", "text"))

	rows, err := store.Query(context.Background(), QuerySpec{
		Table:  "resumes",
		Select: "user_id, content",
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(rows) != 1 || rows[0]["user_id"] != "u-1" {
		t.Fatalf("unexpected rows: %v", rows)
	}
	expectMet(t, mock)
}

func TestPGStoreInsertMultiRowReturning(t *testing.T) {
	store, mock := newMockStore(t)

	// Columns are emitted in sorted order.
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "job_descriptions" ("description") VALUES ($1), ($2) RETURNING *`)).
		WithArgs("first", "second").
		WillReturnRows(sqlmock.NewRows([]string{"id", "description"}).
			AddRow(int64(1), "first").
			AddRow(int64(2), "second"))

	rows, err := store.Insert(context.Background(), "job_descriptions", []Row{
		{"description": "first"},
		{"description": "second"},
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 returned rows, got %d", len(rows))
	}
	expectMet(t, mock)
}

func TestPGStoreUpdateBuildsSetClause(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE "resumes" SET "content" = $1 WHERE "user_id" = $2 RETURNING *`)).
		WithArgs("patched", "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content"}).AddRow("r-1", "u-1", "patched"))

	rows, err := store.Update(context.Background(), "resumes", Row{"content": "patched"}, "user_id", "u-1")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(rows) != 1 || rows[0]["content"] != "patched" {
		t.Fatalf("unexpected rows: %v", rows)
	}
	expectMet(t, mock)
}

func TestPGStoreDeleteReturnsRemovedRows(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM "resumes" WHERE "user_id" = $1 RETURNING *`)).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow("r-1", "u-1"))

	rows, err := store.Delete(context.Background(), "resumes", "user_id", "u-1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 deleted row, got %d", len(rows))
	}
	expectMet(t, mock)
}

func TestPGStoreExecuteRawRows(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT run_sql_query($1, $2::jsonb)`)).
		WithArgs("SELECT id FROM resumes", "[]").
		WillReturnRows(sqlmock.NewRows([]string{"run_sql_query"}).AddRow([]byte(`[{"id": "r-1"}, {"id": "r-2"}]`)))

	result, err := store.ExecuteRaw(context.Background(), "SELECT id FROM resumes", nil)
	if err != nil {
		t.Fatalf("ExecuteRaw: %v", err)
	}
	if result.SoftError != "" {
		t.Fatalf("unexpected soft error: %s", result.SoftError)
	}
	if len(result.Rows) != 2 || result.Rows[0]["id"] != "r-1" {
		t.Fatalf("unexpected rows: %v", result.Rows)
	}
	expectMet(t, mock)
}

func TestPGStoreExecuteRawSoftError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT run_sql_query($1, $2::jsonb)`)).
		WithArgs("SELECT bogus FROM nowhere", "[]").
		WillReturnRows(sqlmock.NewRows([]string{"run_sql_query"}).
			AddRow([]byte(`{"error": "relation \"nowhere\" does not exist"}`)))

	result, err := store.ExecuteRaw(context.Background(), "SELECT bogus FROM nowhere", nil)
	if err != nil {
		t.Fatalf("ExecuteRaw: %v", err)
	}
	if result.SoftError == "" {
		t.Fatalf("expected soft error payload")
	}
	if len(result.Rows) != 0 {
		t.Fatalf("expected no rows with soft error, got %v", result.Rows)
	}
	expectMet(t, mock)
}

func TestPGStoreExecuteRawRejectionSurfacesError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT run_sql_query($1, $2::jsonb)`)).
		WithArgs("DROP TABLE resumes", "[]").
		WillReturnError(errMock("pq: Query rejected: contains forbidden keyword DROP"))

	_, err := store.ExecuteRaw(context.Background(), "DROP TABLE resumes", nil)
	if err == nil {
		t.Fatalf("expected error for rejected query")
	}
	expectMet(t, mock)
}

func TestPGStoreCreateTableComposesDDL(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "notes" ("body" TEXT, "id" SERIAL, PRIMARY KEY ("id"))`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.CreateTable(context.Background(), TableSpec{
		Name:       "notes",
		Columns:    map[string]string{"id": "SERIAL", "body": "TEXT"},
		PrimaryKey: "id",
	})
	if err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	expectMet(t, mock)
}

func TestPGStoreListTables(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM get_tables()`)).
		WillReturnRows(sqlmock.NewRows([]string{"get_tables"}).AddRow("resumes").AddRow("job_descriptions"))

	tables, err := store.ListTables(context.Background())
	if err != nil {
		t.Fatalf("ListTables: %v", err)
	}
	if len(tables) != 2 || tables[0] != "resumes" {
		t.Fatalf("unexpected tables: %v", tables)
	}
	expectMet(t, mock)
}

type errMock string

func (e errMock) Error() string { return string(e) }
