package store

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"
)

const backupFormatVersion = 1

// Backup is a dump of every table of every database.
type Backup struct {
	Version   int                         `json:"version" yaml:"version"`
	CreatedAt string                      `json:"created_at" yaml:"created_at"`
	Databases map[string]map[string][]Row `json:"databases" yaml:"databases"`
}

// ImportStats counts rows restored per table ("database.table").
type ImportStats map[string]struct{ Imported, Skipped int }

// Snapshot dumps the given databases.
func Snapshot(dbs ...*DB) (*Backup, error) {
	b := &Backup{
		Version:   backupFormatVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Databases: make(map[string]map[string][]Row, len(dbs)),
	}
	for _, db := range dbs {
		tables, err := db.Export()
		if err != nil {
			return nil, fmt.Errorf("failed to export %s: %w", db.Name(), err)
		}
		b.Databases[db.Name()] = tables
	}
	return b, nil
}

// Restore inserts the backup's rows into the matching databases,
// insert-if-absent by each table's natural key. Databases missing from dbs
// are skipped.
func Restore(b *Backup, dbs ...*DB) (ImportStats, error) {
	if b.Version > backupFormatVersion {
		return nil, fmt.Errorf("backup format version %d is newer than supported %d", b.Version, backupFormatVersion)
	}

	byName := make(map[string]*DB, len(dbs))
	for _, db := range dbs {
		byName[db.Name()] = db
	}

	stats := make(ImportStats)
	for name, tables := range b.Databases {
		db, ok := byName[name]
		if !ok {
			slog.Warn("Backup contains unknown database, skipping", "database", name)
			continue
		}
		// restore parent tables before children
		for _, table := range db.schema.Tables {
			rows, ok := tables[table.Name]
			if !ok {
				continue
			}
			imported, skipped := db.importRows(table.Name, rows, table.SurrogateKey)
			stats[name+"."+table.Name] = struct{ Imported, Skipped int }{imported, skipped}
		}
	}
	return stats, nil
}

// ExportJSON writes a JSON backup of dbs to w.
func ExportJSON(w io.Writer, dbs ...*DB) error {
	b, err := Snapshot(dbs...)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// ImportJSON restores a JSON backup from r into dbs.
func ImportJSON(r io.Reader, dbs ...*DB) (ImportStats, error) {
	var b Backup
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode JSON backup: %w", err)
	}
	return Restore(&b, dbs...)
}

// ExportYAML writes a YAML backup of dbs to w.
func ExportYAML(w io.Writer, dbs ...*DB) error {
	b, err := Snapshot(dbs...)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("failed to encode YAML backup: %w", err)
	}
	return enc.Close()
}

// ImportYAML restores a YAML backup from r into dbs.
func ImportYAML(r io.Reader, dbs ...*DB) (ImportStats, error) {
	var b Backup
	if err := yaml.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode YAML backup: %w", err)
	}
	return Restore(&b, dbs...)
}
