package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lepinkainen/marquee/internal/store"
)

// BackupCmd groups the backup subcommands.
type BackupCmd struct {
	Export BackupExportCmd `cmd:"" help:"Write every database to a JSON or YAML file"`
	Import BackupImportCmd `cmd:"" help:"Restore databases from a backup file"`
}

// BackupExportCmd represents the backup export command
type BackupExportCmd struct {
	Path   string `arg:"" help:"Output file (.json, .yaml or .yml)"`
	Format string `help:"json or yaml (defaults to the file extension)"`
}

func (b *BackupExportCmd) Run() error {
	format, err := backupFormat(b.Format, b.Path)
	if err != nil {
		return err
	}

	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if dir := filepath.Dir(b.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.Create(b.Path)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if format == "yaml" {
		err = store.ExportYAML(f, a.stores.All()...)
	} else {
		err = store.ExportJSON(f, a.stores.All()...)
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Wrote backup to %s\n", b.Path)
	return nil
}

// BackupImportCmd represents the backup import command
type BackupImportCmd struct {
	Path   string `arg:"" help:"Backup file (.json, .yaml or .yml)" type:"existingfile"`
	Format string `help:"json or yaml (defaults to the file extension)"`
}

func (b *BackupImportCmd) Run() error {
	format, err := backupFormat(b.Format, b.Path)
	if err != nil {
		return err
	}

	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	f, err := os.Open(b.Path)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var stats store.ImportStats
	if format == "yaml" {
		stats, err = store.ImportYAML(f, a.stores.All()...)
	} else {
		stats, err = store.ImportJSON(f, a.stores.All()...)
	}
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(stdout, "%-24s imported %d, skipped %d\n", k, stats[k].Imported, stats[k].Skipped)
	}
	return nil
}

func backupFormat(format, path string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return "yaml", nil
		case ".json":
			return "json", nil
		default:
			return "", fmt.Errorf("cannot tell the backup format of %q; use --format", path)
		}
	}
	switch strings.ToLower(format) {
	case "json":
		return "json", nil
	case "yaml", "yml":
		return "yaml", nil
	}
	return "", fmt.Errorf("unknown backup format %q", format)
}
