// Package store holds marquee's local SQLite databases: tracked shows, custom
// lists, favourite people and episode reminders. Each database is a separate
// file opened through DB, which owns schema creation and upgrades.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Table is one table of a database schema.
type Table struct {
	Name    string
	Create  string
	Indexes []string

	// SurrogateKey is an autoincrement column left out when restoring a
	// backup, so the table's UNIQUE constraint decides what already exists.
	SurrogateKey string
}

// Schema describes a database: its tables and the version recorded in
// PRAGMA user_version.
type Schema struct {
	Name    string
	Version int
	Tables  []Table
}

// Row is a table row keyed by column name. Upgrades and backups move data
// around in this form.
type Row = map[string]any

// DB is an open SQLite database with a known schema.
type DB struct {
	db     *sql.DB
	path   string
	schema Schema
}

// Open opens (creating if needed) the database at path and brings its schema
// up to date.
func Open(path string, schema Schema) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", schema.Name, err)
	}
	// one connection keeps PRAGMA and transactions on the same handle
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to %s database: %w", schema.Name, err), closeErr)
	}

	d := &DB{db: db, path: path, schema: schema}
	if err := d.migrate(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(err, closeErr)
	}
	return d, nil
}

// Name returns the schema name, e.g. "shows".
func (d *DB) Name() string {
	return d.schema.Name
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// UserVersion returns the schema version stored in the database file.
func (d *DB) UserVersion() (int, error) {
	var version int
	if err := d.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

func (d *DB) setUserVersion(version int) error {
	// PRAGMA does not take bind parameters
	if _, err := d.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return nil
}

// migrate creates missing tables and, when the file carries an older schema
// version, rebuilds the tables and re-imports the old rows.
func (d *DB) migrate() error {
	version, err := d.UserVersion()
	if err != nil {
		return err
	}

	if version > d.schema.Version {
		return fmt.Errorf("%s database has schema version %d, newer than supported %d", d.schema.Name, version, d.schema.Version)
	}

	existing, err := d.existingTables()
	if err != nil {
		return err
	}

	if version < d.schema.Version && len(existing) > 0 {
		if err := d.upgrade(version, existing); err != nil {
			return err
		}
	} else if err := d.createTables(); err != nil {
		return err
	}

	return d.setUserVersion(d.schema.Version)
}

func (d *DB) upgrade(from int, existing map[string]bool) error {
	slog.Info("Upgrading database schema", "database", d.schema.Name, "from", from, "to", d.schema.Version)

	saved := make(map[string][]Row)
	for _, table := range d.schema.Tables {
		if !existing[table.Name] {
			continue
		}
		rows, err := d.ExportTable(table.Name)
		if err != nil {
			return fmt.Errorf("failed to export %s before upgrade: %w", table.Name, err)
		}
		saved[table.Name] = rows
	}

	for _, table := range d.schema.Tables {
		if _, err := d.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table.Name)); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table.Name, err)
		}
	}

	if err := d.createTables(); err != nil {
		return err
	}

	for _, table := range d.schema.Tables {
		rows := saved[table.Name]
		if len(rows) == 0 {
			continue
		}
		imported, skipped := d.ImportRows(table.Name, rows)
		slog.Info("Re-imported rows after upgrade", "database", d.schema.Name, "table", table.Name,
			"imported", imported, "skipped", skipped)
	}
	return nil
}

func (d *DB) createTables() error {
	for _, table := range d.schema.Tables {
		if _, err := d.db.Exec(table.Create); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.Name, err)
		}
		for _, index := range table.Indexes {
			if _, err := d.db.Exec(index); err != nil {
				return fmt.Errorf("failed to create index on %s: %w", table.Name, err)
			}
		}
	}
	return nil
}

func (d *DB) existingTables() (map[string]bool, error) {
	rows, err := d.db.Query("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tables := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables[name] = true
	}
	return tables, rows.Err()
}

func (d *DB) columns(table string) (map[string]bool, error) {
	rows, err := d.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			defaultV  sql.NullString
			primaryKy int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultV, &primaryKy); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

func (d *DB) hasTable(table string) bool {
	for _, t := range d.schema.Tables {
		if t.Name == table {
			return true
		}
	}
	return false
}

// ExportTable returns every row of table as column/value maps.
func (d *DB) ExportTable(table string) ([]Row, error) {
	rows, err := d.db.Query(fmt.Sprintf("SELECT * FROM %s", table))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			switch v := values[i].(type) {
			case []byte:
				row[col] = string(v)
			case time.Time:
				row[col] = v.UTC().Format(time.RFC3339)
			default:
				row[col] = v
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Export returns every row of every table in the schema.
func (d *DB) Export() (map[string][]Row, error) {
	out := make(map[string][]Row, len(d.schema.Tables))
	for _, table := range d.schema.Tables {
		rows, err := d.ExportTable(table.Name)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []Row{}
		}
		out[table.Name] = rows
	}
	return out, nil
}

// ImportRows inserts rows into table, best effort. Columns the table no longer
// has are dropped and rows that already exist or fail to insert are skipped.
func (d *DB) ImportRows(table string, rows []Row) (imported, skipped int) {
	return d.importRows(table, rows, "")
}

// importRows is ImportRows with the omit column left out of every row.
func (d *DB) importRows(table string, rows []Row, omit string) (imported, skipped int) {
	if !d.hasTable(table) {
		slog.Warn("Skipping rows for unknown table", "database", d.schema.Name, "table", table, "rows", len(rows))
		return 0, len(rows)
	}

	cols, err := d.columns(table)
	if err != nil {
		slog.Warn("Failed to read table columns", "table", table, "error", err)
		return 0, len(rows)
	}

	for _, row := range rows {
		names := make([]string, 0, len(row))
		for name := range row {
			if cols[name] && name != omit {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			skipped++
			continue
		}
		sort.Strings(names)

		values := make([]any, len(names))
		for i, name := range names {
			values[i] = row[name]
		}

		query := fmt.Sprintf("INSERT OR IGNORE INTO %s (%s) VALUES (%s)",
			table, strings.Join(names, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", "))

		res, err := d.db.Exec(query, values...)
		if err != nil {
			slog.Warn("Failed to import row", "database", d.schema.Name, "table", table, "error", err)
			skipped++
			continue
		}
		if n, _ := res.RowsAffected(); n == 0 {
			skipped++
			continue
		}
		imported++
	}
	return imported, skipped
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
