package cache

// SQL schemas for cache tables
// All cache tables use "cache_key" as the primary key column for consistency

// TMDBCacheSchema defines the schema for TMDB movie/show/person responses
const TMDBCacheSchema = `
CREATE TABLE IF NOT EXISTS tmdb_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tmdb_cached_at ON tmdb_cache(cached_at);
`

// TMDBSeasonCacheSchema defines the schema for TMDB season/episode responses.
// Air dates move, so this table is read with a much shorter TTL.
const TMDBSeasonCacheSchema = `
CREATE TABLE IF NOT EXISTS tmdb_season_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tmdb_season_cached_at ON tmdb_season_cache(cached_at);
`

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	TMDBCacheSchema,
	TMDBSeasonCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names
// Used to prevent SQL injection when interpolating table names
var ValidCacheTableNames = map[string]bool{
	"tmdb_cache":        true,
	"tmdb_season_cache": true,
}

// SourceTables maps the user-facing source names to their cache tables.
var SourceTables = map[string]string{
	"tmdb":    "tmdb_cache",
	"seasons": "tmdb_season_cache",
}
