// Package datarecording keeps a run log: every command sent to the timer and
// every game attach and detach, in an SQLite database that can be inspected
// after the run.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DataRecorder stores fixed-schema entries in named tables. Entries are
// buffered and written in batches.
type DataRecorder interface {
	// CreateTable declares a table with one column per field of sampleEntry,
	// which must be a struct of scalar fields.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers an entry of the type the table was created with.
	InsertData(tableName string, entry any)

	// ListTables returns the declared tables in lexical order.
	ListTables() []string

	// Flush writes every buffered entry.
	Flush()

	// Close flushes and closes the database.
	Close() error
}

// DefaultBatchSize is the number of entries buffered before a flush.
const DefaultBatchSize = 64

// New creates a DataRecorder writing to path plus ".sqlite3". An empty path
// picks a unique name in the working directory. Buffered entries are
// written when the program exits through atexit.
func New(path string) DataRecorder {
	w := NewSQLiteWriter(path)
	w.Init()

	atexit.Register(w.Flush)

	return w
}

// NewWithDB creates a DataRecorder over an open database.
func NewWithDB(db *sql.DB) DataRecorder {
	w := NewSQLiteWriter("")
	w.DB = db

	atexit.Register(w.Flush)

	return w
}

// columnTypes maps the supported field kinds to SQLite column types.
var columnTypes = map[reflect.Kind]string{
	reflect.Bool:    "INTEGER",
	reflect.Int:     "INTEGER",
	reflect.Int8:    "INTEGER",
	reflect.Int16:   "INTEGER",
	reflect.Int32:   "INTEGER",
	reflect.Int64:   "INTEGER",
	reflect.Uint:    "INTEGER",
	reflect.Uint8:   "INTEGER",
	reflect.Uint16:  "INTEGER",
	reflect.Uint32:  "INTEGER",
	reflect.Uint64:  "INTEGER",
	reflect.Float32: "REAL",
	reflect.Float64: "REAL",
	reflect.String:  "TEXT",
}

type table struct {
	entryType reflect.Type
	insert    *sql.Stmt
	pending   []any
}

// SQLiteWriter is a DataRecorder backed by an SQLite file.
type SQLiteWriter struct {
	*sql.DB

	mu        sync.Mutex
	dbName    string
	tables    map[string]*table
	batchSize int
	pending   int
}

// NewSQLiteWriter creates a writer for path. Init must be called before use.
func NewSQLiteWriter(path string) *SQLiteWriter {
	return &SQLiteWriter{
		dbName:    path,
		batchSize: DefaultBatchSize,
		tables:    make(map[string]*table),
	}
}

// WithBatchSize sets the number of entries buffered before a flush.
func (w *SQLiteWriter) WithBatchSize(n int) *SQLiteWriter {
	if n <= 0 {
		panic("datarecording: batch size must be positive")
	}

	w.batchSize = n

	return w
}

// Filename returns the database file.
func (w *SQLiteWriter) Filename() string {
	return w.dbName + ".sqlite3"
}

// Init creates the database file. It panics if the file already exists, so
// that a run log is never appended to.
func (w *SQLiteWriter) Init() {
	if w.dbName == "" {
		w.dbName = "autosplitter_run_log_" + xid.New().String()
	}

	filename := w.Filename()

	if _, err := os.Stat(filename); err == nil {
		panic(fmt.Errorf("datarecording: %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "Recording run log to %s\n", filename)

	w.DB = db
}

// quoteIdent makes a table or column name safe to use even when it is an
// SQL keyword.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func columnsOf(entry any) ([]string, error) {
	t := reflect.TypeOf(entry)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("datarecording: %T is not a struct", entry)
	}

	names := structs.Names(entry)
	columns := make([]string, 0, len(names))

	for i := range t.NumField() {
		f := t.Field(i)

		sqlType, ok := columnTypes[f.Type.Kind()]
		if !f.IsExported() || !ok {
			return nil, fmt.Errorf("datarecording: field %s of %s cannot be recorded",
				f.Name, t.Name())
		}

		columns = append(columns, quoteIdent(f.Name)+" "+sqlType)
	}

	return columns, nil
}

// CreateTable implements DataRecorder.
func (w *SQLiteWriter) CreateTable(tableName string, sampleEntry any) {
	columns, err := columnsOf(sampleEntry)
	if err != nil {
		panic(err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.mustExec(fmt.Sprintf("CREATE TABLE %s (\n\t%s\n);",
		quoteIdent(tableName), strings.Join(columns, ",\n\t")))

	placeholders := strings.TrimSuffix(
		strings.Repeat("?, ", len(columns)), ", ")

	insert, err := w.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)",
		quoteIdent(tableName), placeholders))
	if err != nil {
		panic(err)
	}

	w.tables[tableName] = &table{
		entryType: reflect.TypeOf(sampleEntry),
		insert:    insert,
	}
}

// InsertData implements DataRecorder.
func (w *SQLiteWriter) InsertData(tableName string, entry any) {
	w.mu.Lock()
	defer w.mu.Unlock()

	t, ok := w.tables[tableName]
	if !ok {
		panic(fmt.Sprintf("datarecording: table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != t.entryType {
		panic(fmt.Sprintf("datarecording: %T does not fit table %s",
			entry, tableName))
	}

	t.pending = append(t.pending, entry)

	w.pending++
	if w.pending >= w.batchSize {
		w.flush()
	}
}

// ListTables implements DataRecorder.
func (w *SQLiteWriter) ListTables() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	names := make([]string, 0, len(w.tables))
	for name := range w.tables {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Flush implements DataRecorder.
func (w *SQLiteWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.flush()
}

// flush writes all pending entries in one transaction.
func (w *SQLiteWriter) flush() {
	if w.pending == 0 {
		return
	}

	tx, err := w.Begin()
	if err != nil {
		panic(err)
	}

	for name, t := range w.tables {
		if len(t.pending) == 0 {
			continue
		}

		insert := tx.Stmt(t.insert)

		for _, entry := range t.pending {
			if _, err := insert.Exec(structs.Values(entry)...); err != nil {
				_ = tx.Rollback()
				panic(fmt.Errorf("datarecording: insert into %s: %w", name, err))
			}
		}

		t.pending = nil
	}

	if err := tx.Commit(); err != nil {
		panic(err)
	}

	w.pending = 0
}

// Close implements DataRecorder.
func (w *SQLiteWriter) Close() error {
	w.Flush()

	w.mu.Lock()
	for _, t := range w.tables {
		t.insert.Close()
	}
	w.mu.Unlock()

	return w.DB.Close()
}

func (w *SQLiteWriter) mustExec(query string) {
	if _, err := w.Exec(query); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to execute: %s\n", query)
		panic(err)
	}
}

var _ DataRecorder = (*SQLiteWriter)(nil)
