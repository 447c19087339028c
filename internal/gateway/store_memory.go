package gateway

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store in memory. It backs dev mode when no
// DATABASE_URL is configured and the handler tests. It mirrors the
// Postgres layout: the four domain tables are pre-registered and the raw
// SQL denylist behaves like run_sql_query().
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string]*memTable
	order  []string
}

type memTable struct {
	columns  []Column
	rows     []Row
	serialID bool
	nextID   int
}

// NewMemoryStore returns a store pre-seeded with the domain tables.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{tables: map[string]*memTable{}}
	s.register("resumes", false,
		Column{Name: "id", DataType: "uuid", Nullable: false},
		Column{Name: "user_id", DataType: "uuid", Nullable: false},
		Column{Name: "content", DataType: "text", Nullable: false},
		Column{Name: "created_at", DataType: "timestamp with time zone", Nullable: false},
		Column{Name: "updated_at", DataType: "timestamp with time zone", Nullable: false},
	)
	s.register("job_descriptions", true,
		Column{Name: "id", DataType: "integer", Nullable: false},
		Column{Name: "description", DataType: "text", Nullable: false},
		Column{Name: "created_at", DataType: "timestamp with time zone", Nullable: false},
		Column{Name: "updated_at", DataType: "timestamp with time zone", Nullable: false},
	)
	s.register("tailored_resumes", false,
		Column{Name: "id", DataType: "uuid", Nullable: false},
		Column{Name: "user_id", DataType: "uuid", Nullable: false},
		Column{Name: "job_id", DataType: "integer", Nullable: false},
		Column{Name: "base_resume_id", DataType: "uuid", Nullable: false},
		Column{Name: "content", DataType: "text", Nullable: false},
		Column{Name: "created_at", DataType: "timestamp with time zone", Nullable: false},
		Column{Name: "updated_at", DataType: "timestamp with time zone", Nullable: false},
	)
	s.register("resume_analysis", false,
		Column{Name: "id", DataType: "uuid", Nullable: false},
		Column{Name: "resume_id", DataType: "uuid", Nullable: false},
		Column{Name: "analysis", DataType: "text", Nullable: false},
		Column{Name: "created_at", DataType: "timestamp with time zone", Nullable: false},
	)
	return s
}

func (s *MemoryStore) register(name string, serialID bool, cols ...Column) {
	s.tables[name] = &memTable{columns: cols, serialID: serialID}
	s.order = append(s.order, name)
}

// ListTables returns all registered table names.
func (s *MemoryStore) ListTables(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out, nil
}

// GetSchema returns the registered columns per table.
func (s *MemoryStore) GetSchema(ctx context.Context) (map[string][]Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	schema := make(map[string][]Column, len(s.tables))
	for name, tbl := range s.tables {
		cols := make([]Column, len(tbl.columns))
		copy(cols, tbl.columns)
		schema[name] = cols
	}
	return schema, nil
}

// Query returns rows matching the requested equality filters, ordered and
// limited as requested.
func (s *MemoryStore) Query(ctx context.Context, spec QuerySpec) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tbl, err := s.table(spec.Table)
	if err != nil {
		return nil, err
	}

	matched := []Row{}
	for _, row := range tbl.rows {
		if rowMatches(row, spec.Filters) {
			matched = append(matched, copyRow(row))
		}
	}

	if len(spec.Order) > 0 {
		cols := make([]string, 0, len(spec.Order))
		for col := range spec.Order {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		sort.SliceStable(matched, func(i, j int) bool {
			for _, col := range cols {
				cmp := compareValues(matched[i][col], matched[j][col])
				if cmp == 0 {
					continue
				}
				if strings.EqualFold(spec.Order[col], "desc") {
					return cmp > 0
				}
				return cmp < 0
			}
			return false
		})
	}

	if spec.Limit > 0 && len(matched) > spec.Limit {
		matched = matched[:spec.Limit]
	}

	sel := strings.TrimSpace(spec.Select)
	if sel == "" || sel == "*" {
		return matched, nil
	}
	cols := splitColumns(sel)
	out := make([]Row, 0, len(matched))
	for _, row := range matched {
		projected := make(Row, len(cols))
		for _, col := range cols {
			projected[col] = row[col]
		}
		out = append(out, projected)
	}
	return out, nil
}

// Insert stores the records, filling generated id and timestamp columns
// the way the database defaults would.
func (s *MemoryStore) Insert(ctx context.Context, table string, records []Row) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tbl, err := s.table(table)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := make([]Row, 0, len(records))
	for _, record := range records {
		row := copyRow(record)
		if _, ok := row["id"]; !ok && tbl.hasColumn("id") {
			if tbl.serialID {
				tbl.nextID++
				row["id"] = tbl.nextID
			} else {
				row["id"] = uuid.NewString()
			}
		}
		if tbl.hasColumn("created_at") {
			if _, ok := row["created_at"]; !ok {
				row["created_at"] = now
			}
		}
		if tbl.hasColumn("updated_at") {
			if _, ok := row["updated_at"]; !ok {
				row["updated_at"] = now
			}
		}
		tbl.rows = append(tbl.rows, row)
		out = append(out, copyRow(row))
	}
	return out, nil
}

// Update applies data to matching rows and returns them.
func (s *MemoryStore) Update(ctx context.Context, table string, data Row, matchColumn string, matchValue any) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tbl, err := s.table(table)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	out := []Row{}
	for _, row := range tbl.rows {
		if !valueEqual(row[matchColumn], matchValue) {
			continue
		}
		for col, val := range data {
			row[col] = val
		}
		if tbl.hasColumn("updated_at") {
			row["updated_at"] = now
		}
		out = append(out, copyRow(row))
	}
	return out, nil
}

// Delete removes matching rows and returns them.
func (s *MemoryStore) Delete(ctx context.Context, table string, matchColumn string, matchValue any) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tbl, err := s.table(table)
	if err != nil {
		return nil, err
	}

	kept := tbl.rows[:0]
	out := []Row{}
	for _, row := range tbl.rows {
		if valueEqual(row[matchColumn], matchValue) {
			out = append(out, copyRow(row))
			continue
		}
		kept = append(kept, row)
	}
	tbl.rows = kept
	return out, nil
}

// ExecuteRaw applies the same denylist as run_sql_query(). It cannot run
// arbitrary SQL, so anything that passes the check comes back as a soft
// error payload, exercising the caller's soft-error path.
func (s *MemoryStore) ExecuteRaw(ctx context.Context, query string, params []any) (RawResult, error) {
	if keyword, found := forbiddenKeyword(query); found {
		return RawResult{}, fmt.Errorf("execute raw sql: query rejected: contains forbidden keyword %s", keyword)
	}
	return RawResult{SoftError: "raw SQL requires a database connection"}, nil
}

// CreateTable registers a new empty table.
func (s *MemoryStore) CreateTable(ctx context.Context, spec TableSpec) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[spec.Name]; ok {
		return nil
	}
	cols := make([]Column, 0, len(spec.Columns))
	serialID := false
	for _, name := range sortedColumnNames(spec.Columns) {
		dataType := spec.Columns[name]
		cols = append(cols, Column{Name: name, DataType: strings.ToLower(dataType), Nullable: true})
		if name == "id" && strings.Contains(strings.ToLower(dataType), "serial") {
			serialID = true
		}
	}
	s.register(spec.Name, serialID, cols...)
	return nil
}

func (s *MemoryStore) table(name string) (*memTable, error) {
	tbl, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return tbl, nil
}

func (t *memTable) hasColumn(name string) bool {
	for _, col := range t.columns {
		if col.Name == name {
			return true
		}
	}
	return false
}

// forbiddenKeywords mirrors the denylist in run_sql_query(). Substring
// match, not tokenized.
var forbiddenKeywords = []string{
	"DROP", "TRUNCATE", "DELETE FROM", "UPDATE",
	"ALTER USER", "CREATE USER", "GRANT", "REVOKE", "ROLE",
}

func forbiddenKeyword(query string) (string, bool) {
	upper := strings.ToUpper(query)
	for _, keyword := range forbiddenKeywords {
		if strings.Contains(upper, keyword) {
			return keyword, true
		}
	}
	return "", false
}

func rowMatches(row Row, filters map[string]any) bool {
	for col, want := range filters {
		if !valueEqual(row[col], want) {
			return false
		}
	}
	return true
}

// valueEqual compares loosely across numeric types since JSON decoding
// yields float64 while stored values may be int.
func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
		return false
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func compareValues(a, b any) int {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			return at.Compare(bt)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func copyRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func splitColumns(sel string) []string {
	parts := strings.Split(sel, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var _ Store = (*MemoryStore)(nil)
