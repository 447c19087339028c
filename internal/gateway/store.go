package gateway

import "context"

// Row is a generic table row keyed by column name.
type Row map[string]any

// Column describes one column of a table schema.
type Column struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
	Nullable bool   `json:"nullable"`
}

// QuerySpec describes a filtered select against a single table.
// Select is a comma-separated column list; empty means all columns.
// Filters are equality matches. Order maps column name to "asc" or "desc".
type QuerySpec struct {
	Table   string
	Select  string
	Filters map[string]any
	Limit   int
	Order   map[string]string
}

// TableSpec describes a table to create. Column types are raw SQL type
// strings supplied by the caller and forwarded as-is.
type TableSpec struct {
	Name       string
	Columns    map[string]string
	PrimaryKey string
}

// RawResult is the outcome of a raw SQL execution. When the store-side
// function catches its own failure it returns a soft error payload instead
// of raising; SoftError carries that message and Rows is nil.
type RawResult struct {
	Rows      []Row
	SoftError string
}

// Store defines the generic data-access operations of the gateway.
type Store interface {
	ListTables(ctx context.Context) ([]string, error)
	GetSchema(ctx context.Context) (map[string][]Column, error)
	Query(ctx context.Context, spec QuerySpec) ([]Row, error)
	Insert(ctx context.Context, table string, records []Row) ([]Row, error)
	Update(ctx context.Context, table string, data Row, matchColumn string, matchValue any) ([]Row, error)
	Delete(ctx context.Context, table string, matchColumn string, matchValue any) ([]Row, error)
	ExecuteRaw(ctx context.Context, query string, params []any) (RawResult, error)
	CreateTable(ctx context.Context, spec TableSpec) error
}
