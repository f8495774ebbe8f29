package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/fatih/structs"
)

// QueryParams selects and pages the entries of a table. Where and OrderBy
// are SQL fragments without their keywords, such as "Session = ?" and
// "rowid".
type QueryParams struct {
	Where   string
	Args    []any
	OrderBy string

	// Limit of 0 returns every entry after Offset.
	Limit  int
	Offset int
}

// A DataReader reads the tables a DataRecorder wrote back into entries.
type DataReader interface {
	// MapTable tells the reader which struct the entries of a table decode
	// into. Tables must be mapped before they are queried.
	MapTable(tableName string, sampleEntry any)

	// ListTables returns the mapped tables in lexical order.
	ListTables() []string

	// Query returns pointers to the selected entries, and the number of
	// entries matching Where regardless of paging.
	Query(ctx context.Context, tableName string, params QueryParams) (
		entries []any,
		total int,
		err error,
	)

	Close() error
}

type sqliteReader struct {
	db     *sql.DB
	tables map[string]reflect.Type
}

// NewReader opens a run log read-only.
func NewReader(dbFilename string) (DataReader, error) {
	db, err := sql.Open("sqlite3", "file:"+dbFilename+"?mode=ro")
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("datarecording: open %s: %w", dbFilename, err)
	}

	return NewReaderWithDB(db), nil
}

// NewReaderWithDB reads from an open database.
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		db:     db,
		tables: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	r.tables[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) ListTables() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Query selects the mapped columns plus a window count, so that one
// statement returns both the page and the total.
func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, int, error) {
	t, ok := r.tables[tableName]
	if !ok {
		return nil, 0, fmt.Errorf("datarecording: table %s is not mapped",
			tableName)
	}

	columns := structs.Names(reflect.New(t).Elem().Interface())

	rows, err := r.db.QueryContext(ctx,
		selectQuery(tableName, columns, params), params.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("datarecording: query %s: %w", tableName, err)
	}
	defer rows.Close()

	var (
		results []any
		total   int
	)

	for rows.Next() {
		entry := reflect.New(t)

		targets := make([]any, 0, len(columns)+1)
		for i := range columns {
			targets = append(targets, entry.Elem().Field(i).Addr().Interface())
		}
		targets = append(targets, &total)

		if err := rows.Scan(targets...); err != nil {
			return nil, 0, err
		}

		results = append(results, entry.Interface())
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// A page past the end has no row to carry the total.
	if len(results) == 0 && params.Offset > 0 {
		total, err = r.count(ctx, tableName, params)
	}

	return results, total, err
}

func selectQuery(table string, columns []string, p QueryParams) string {
	var b strings.Builder

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
	}

	fmt.Fprintf(&b, "SELECT %s, COUNT(*) OVER () FROM %s",
		strings.Join(quoted, ", "), quoteIdent(table))

	if p.Where != "" {
		b.WriteString(" WHERE " + p.Where)
	}

	if p.OrderBy != "" {
		b.WriteString(" ORDER BY " + p.OrderBy)
	}

	switch {
	case p.Limit > 0:
		fmt.Fprintf(&b, " LIMIT %d OFFSET %d", p.Limit, p.Offset)
	case p.Offset > 0:
		fmt.Fprintf(&b, " LIMIT -1 OFFSET %d", p.Offset)
	}

	return b.String()
}

func (r *sqliteReader) count(
	ctx context.Context,
	table string,
	p QueryParams,
) (int, error) {
	q := "SELECT COUNT(*) FROM " + quoteIdent(table)
	if p.Where != "" {
		q += " WHERE " + p.Where
	}

	var n int
	err := r.db.QueryRowContext(ctx, q, p.Args...).Scan(&n)

	return n, err
}

func (r *sqliteReader) Close() error {
	return r.db.Close()
}
