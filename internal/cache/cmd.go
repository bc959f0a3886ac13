package cache

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// InvalidateCacheCmd represents the cache invalidate subcommand
type InvalidateCacheCmd struct {
	Source  string `arg:"" help:"Cache source to invalidate: tmdb, seasons, all" required:""`
	Expired bool   `help:"Only remove entries older than the source's TTL"`
}

func (i *InvalidateCacheCmd) Run() error {
	cacheDB := viper.GetString("cache.dbfile")

	slog.Info("Invalidating cache", "source", i.Source, "database", cacheDB)

	var tables []string
	if i.Source == "all" {
		for _, table := range SourceTables {
			tables = append(tables, table)
		}
		sort.Strings(tables)
	} else {
		table, ok := SourceTables[i.Source]
		if !ok {
			return fmt.Errorf("invalid cache source '%s'; valid sources are: %s, all", i.Source, strings.Join(sourceNames(), ", "))
		}
		tables = []string{table}
	}

	cacheInstance, err := GetGlobalCache()
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}

	for _, table := range tables {
		if i.Expired {
			if err := cacheInstance.ClearExpired(table, tableTTL(table)); err != nil {
				return err
			}
			continue
		}
		rowsDeleted, err := cacheInstance.InvalidateSource(table)
		if err != nil {
			return fmt.Errorf("failed to invalidate cache: %w", err)
		}
		slog.Info("Cache invalidated", "table", table, "rows_deleted", rowsDeleted)
	}
	return nil
}

func sourceNames() []string {
	names := make([]string, 0, len(SourceTables))
	for name := range SourceTables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func tableTTL(table string) time.Duration {
	if table == "tmdb_season_cache" {
		return SeasonCacheTTL
	}
	return configuredTTL()
}
