package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// PGStore implements Store using Postgres. Table listing, schema
// introspection, and raw SQL go through the server-side functions
// get_tables(), get_schema_info(), and run_sql_query(); the generic CRUD
// operations build single-table statements with quoted identifiers and
// placeholder values.
type PGStore struct {
	DB *sql.DB
}

// ListTables returns the names of all public tables.
func (s *PGStore) ListTables(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT * FROM get_tables()`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// GetSchema returns the columns of every public table, ordered by ordinal
// position within each table.
func (s *PGStore) GetSchema(ctx context.Context) (map[string][]Column, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT table_name, column_name, data_type, is_nullable FROM get_schema_info()`)
	if err != nil {
		return nil, fmt.Errorf("get schema: %w", err)
	}
	defer rows.Close()

	schema := make(map[string][]Column)
	for rows.Next() {
		var table, column, dataType, nullable string
		if err := rows.Scan(&table, &column, &dataType, &nullable); err != nil {
			return nil, err
		}
		schema[table] = append(schema[table], Column{
			Name:     column,
			DataType: dataType,
			Nullable: strings.EqualFold(nullable, "YES"),
		})
	}
	return schema, rows.Err()
}

// Query runs a filtered select against a single table.
func (s *PGStore) Query(ctx context.Context, spec QuerySpec) ([]Row, error) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(columnList(spec.Select))
	b.WriteString(" FROM ")
	b.WriteString(quoteIdent(spec.Table))

	var args []any
	if len(spec.Filters) > 0 {
		b.WriteString(" WHERE ")
		for i, col := range sortedKeys(spec.Filters) {
			if i > 0 {
				b.WriteString(" AND ")
			}
			args = append(args, spec.Filters[col])
			fmt.Fprintf(&b, "%s = $%d", quoteIdent(col), len(args))
		}
	}
	if len(spec.Order) > 0 {
		b.WriteString(" ORDER BY ")
		cols := make([]string, 0, len(spec.Order))
		for col := range spec.Order {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		for i, col := range cols {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(quoteIdent(col))
			if strings.EqualFold(spec.Order[col], "desc") {
				b.WriteString(" DESC")
			} else {
				b.WriteString(" ASC")
			}
		}
	}
	if spec.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", spec.Limit)
	}

	rows, err := s.DB.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", spec.Table, err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Insert writes one or more records and returns them as stored.
func (s *PGStore) Insert(ctx context.Context, table string, records []Row) ([]Row, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("insert into %s: no records", table)
	}
	cols := sortedKeys(records[0])

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(quoteIdent(table))
	b.WriteString(" (")
	for i, col := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteIdent(col))
	}
	b.WriteString(") VALUES ")

	var args []any
	for i, record := range records {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j, col := range cols {
			if j > 0 {
				b.WriteString(", ")
			}
			args = append(args, record[col])
			fmt.Fprintf(&b, "$%d", len(args))
		}
		b.WriteString(")")
	}
	b.WriteString(" RETURNING *")

	rows, err := s.DB.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", table, err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Update applies data to every row where matchColumn equals matchValue and
// returns the updated rows.
func (s *PGStore) Update(ctx context.Context, table string, data Row, matchColumn string, matchValue any) ([]Row, error) {
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(quoteIdent(table))
	b.WriteString(" SET ")

	var args []any
	for i, col := range sortedKeys(data) {
		if i > 0 {
			b.WriteString(", ")
		}
		args = append(args, data[col])
		fmt.Fprintf(&b, "%s = $%d", quoteIdent(col), len(args))
	}
	args = append(args, matchValue)
	fmt.Fprintf(&b, " WHERE %s = $%d RETURNING *", quoteIdent(matchColumn), len(args))

	rows, err := s.DB.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", table, err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Delete removes every row where matchColumn equals matchValue and returns
// the deleted rows.
func (s *PGStore) Delete(ctx context.Context, table string, matchColumn string, matchValue any) ([]Row, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 RETURNING *", quoteIdent(table), quoteIdent(matchColumn))
	rows, err := s.DB.QueryContext(ctx, query, matchValue)
	if err != nil {
		return nil, fmt.Errorf("delete from %s: %w", table, err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ExecuteRaw forwards the query to run_sql_query(). A denylist rejection
// raises inside the function and surfaces here as an error; an execution
// failure comes back as a soft {"error": ...} payload in the result.
func (s *PGStore) ExecuteRaw(ctx context.Context, query string, params []any) (RawResult, error) {
	if params == nil {
		params = []any{}
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return RawResult{}, fmt.Errorf("encode params: %w", err)
	}

	var raw []byte
	err = s.DB.QueryRowContext(ctx, `SELECT run_sql_query($1, $2::jsonb)`, query, string(paramsJSON)).Scan(&raw)
	if err != nil {
		return RawResult{}, fmt.Errorf("execute raw sql: %w", err)
	}
	return parseRawResult(raw)
}

// CreateTable composes and executes a CREATE TABLE IF NOT EXISTS statement.
func (s *PGStore) CreateTable(ctx context.Context, spec TableSpec) error {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(quoteIdent(spec.Name))
	b.WriteString(" (")
	for i, col := range sortedColumnNames(spec.Columns) {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quoteIdent(col))
		b.WriteString(" ")
		b.WriteString(spec.Columns[col])
	}
	if spec.PrimaryKey != "" {
		fmt.Fprintf(&b, ", PRIMARY KEY (%s)", quoteIdent(spec.PrimaryKey))
	}
	b.WriteString(")")

	if _, err := s.DB.ExecContext(ctx, b.String()); err != nil {
		return fmt.Errorf("create table %s: %w", spec.Name, err)
	}
	return nil
}

func parseRawResult(raw []byte) (RawResult, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return RawResult{}, fmt.Errorf("decode raw sql result: %w", err)
	}
	switch v := payload.(type) {
	case []any:
		rows := make([]Row, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				rows = append(rows, Row(m))
			}
		}
		return RawResult{Rows: rows}, nil
	case map[string]any:
		if msg, ok := v["error"].(string); ok {
			return RawResult{SoftError: msg}, nil
		}
		return RawResult{Rows: []Row{Row(v)}}, nil
	default:
		return RawResult{}, fmt.Errorf("unexpected raw sql result shape")
	}
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := []Row{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// quoteIdent double-quotes an identifier so free-form table and column
// names cannot break out of their position in the statement.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func columnList(sel string) string {
	sel = strings.TrimSpace(sel)
	if sel == "" || sel == "*" {
		return "*"
	}
	parts := strings.Split(sel, ",")
	quoted := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			quoted = append(quoted, quoteIdent(trimmed))
		}
	}
	if len(quoted) == 0 {
		return "*"
	}
	return strings.Join(quoted, ", ")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedColumnNames(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ Store = (*PGStore)(nil)
