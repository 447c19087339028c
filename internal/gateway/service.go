package gateway

import (
	"context"
	"fmt"
	"strings"
)

// Service validates gateway inputs and delegates to the Store. Table and
// column names are free-form strings; whether they exist is the store's
// business, not ours.
type Service struct {
	Store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{Store: store}
}

// ListTables returns all table names.
func (s *Service) ListTables(ctx context.Context) ([]string, error) {
	return s.Store.ListTables(ctx)
}

// GetSchema returns the schema of every table.
func (s *Service) GetSchema(ctx context.Context) (map[string][]Column, error) {
	return s.Store.GetSchema(ctx)
}

// Query runs a filtered select.
func (s *Service) Query(ctx context.Context, spec QuerySpec) ([]Row, error) {
	spec.Table = strings.TrimSpace(spec.Table)
	if spec.Table == "" {
		return nil, fmt.Errorf("%w: table is required", ErrInvalidInput)
	}
	if spec.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	for col, dir := range spec.Order {
		if !strings.EqualFold(dir, "asc") && !strings.EqualFold(dir, "desc") {
			return nil, fmt.Errorf("%w: order direction for %q must be asc or desc", ErrInvalidInput, col)
		}
	}
	return s.Store.Query(ctx, spec)
}

// Insert writes the given records and returns them as stored.
func (s *Service) Insert(ctx context.Context, table string, records []Row) ([]Row, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, fmt.Errorf("%w: table is required", ErrInvalidInput)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: data must contain at least one record", ErrInvalidInput)
	}
	for i, record := range records {
		if len(record) == 0 {
			return nil, fmt.Errorf("%w: record %d is empty", ErrInvalidInput, i)
		}
	}
	return s.Store.Insert(ctx, table, records)
}

// Update applies data to rows matching matchColumn = matchValue.
func (s *Service) Update(ctx context.Context, table string, data Row, matchColumn string, matchValue any) ([]Row, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, fmt.Errorf("%w: table is required", ErrInvalidInput)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: data must not be empty", ErrInvalidInput)
	}
	matchColumn = strings.TrimSpace(matchColumn)
	if matchColumn == "" {
		return nil, fmt.Errorf("%w: match_column is required", ErrInvalidInput)
	}
	return s.Store.Update(ctx, table, data, matchColumn, matchValue)
}

// Delete removes rows matching matchColumn = matchValue.
func (s *Service) Delete(ctx context.Context, table string, matchColumn string, matchValue any) ([]Row, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, fmt.Errorf("%w: table is required", ErrInvalidInput)
	}
	matchColumn = strings.TrimSpace(matchColumn)
	if matchColumn == "" {
		return nil, fmt.Errorf("%w: match_column is required", ErrInvalidInput)
	}
	return s.Store.Delete(ctx, table, matchColumn, matchValue)
}

// ExecuteRaw forwards a raw query to the guarded store-side function.
func (s *Service) ExecuteRaw(ctx context.Context, query string, params []any) (RawResult, error) {
	if strings.TrimSpace(query) == "" {
		return RawResult{}, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	return s.Store.ExecuteRaw(ctx, query, params)
}

// CreateTable creates a table from the given spec.
func (s *Service) CreateTable(ctx context.Context, spec TableSpec) error {
	spec.Name = strings.TrimSpace(spec.Name)
	if spec.Name == "" {
		return fmt.Errorf("%w: table_name is required", ErrInvalidInput)
	}
	if len(spec.Columns) == 0 {
		return fmt.Errorf("%w: columns must not be empty", ErrInvalidInput)
	}
	if pk := strings.TrimSpace(spec.PrimaryKey); pk != "" {
		if _, ok := spec.Columns[pk]; !ok {
			return fmt.Errorf("%w: primary_key %q is not a declared column", ErrInvalidInput, pk)
		}
	}
	return s.Store.CreateTable(ctx, spec)
}
