package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lepinkainen/marquee/internal/cache"
)

const (
	tmdbTable   = "tmdb_cache"
	seasonTable = "tmdb_season_cache"
)

// CachedSearchResults wraps SearchResult slice for caching.
type CachedSearchResults struct {
	Results []SearchResult `json:"results"`
}

// CachedDetails wraps a movie or TV details map for caching.
type CachedDetails struct {
	Details map[string]any `json:"details"`
}

// CachedSearchMulti performs a cached multi-search on TMDB. Empty result sets
// are not stored.
// Cache key format: search_{normalized_query}_{year}_{limit}_{language}
func (c *Client) CachedSearchMulti(ctx context.Context, query string, year int, limit int) ([]SearchResult, bool, error) {
	cacheKey := c.cacheKey("search_%s_%d_%d", normalizeQuery(query), year, limit)
	return c.cachedSearch(cacheKey, func() ([]SearchResult, error) {
		return c.SearchMulti(ctx, query, year, limit)
	})
}

// CachedSearchMovies performs a cached movie-specific search on TMDB.
// Cache key format: movies_{normalized_query}_{year}_{limit}_{language}
func (c *Client) CachedSearchMovies(ctx context.Context, query string, year int, limit int) ([]SearchResult, bool, error) {
	cacheKey := c.cacheKey("movies_%s_%d_%d", normalizeQuery(query), year, limit)
	return c.cachedSearch(cacheKey, func() ([]SearchResult, error) {
		return c.SearchMovies(ctx, query, year, limit)
	})
}

// CachedSearchTV performs a cached TV-specific search on TMDB.
// Cache key format: tvsearch_{normalized_query}_{year}_{limit}_{language}
func (c *Client) CachedSearchTV(ctx context.Context, query string, year int, limit int) ([]SearchResult, bool, error) {
	cacheKey := c.cacheKey("tvsearch_%s_%d_%d", normalizeQuery(query), year, limit)
	return c.cachedSearch(cacheKey, func() ([]SearchResult, error) {
		return c.SearchTV(ctx, query, year, limit)
	})
}

func (c *Client) cachedSearch(cacheKey string, search func() ([]SearchResult, error)) ([]SearchResult, bool, error) {
	result, fromCache, err := cache.GetOrFetchWithPolicy(tmdbTable, cacheKey, func() (*CachedSearchResults, error) {
		results, searchErr := search()
		if searchErr != nil {
			return nil, searchErr
		}
		return &CachedSearchResults{Results: results}, nil
	}, func(result *CachedSearchResults) bool {
		return result != nil && len(result.Results) > 0
	})
	if err != nil {
		return nil, false, err
	}
	return result.Results, fromCache, nil
}

// CachedGetFullMovieDetails fetches full movie details with caching.
// Cache key format: movie_full_{tmdb_id}_{language}
func (c *Client) CachedGetFullMovieDetails(ctx context.Context, movieID int, force bool) (map[string]any, bool, error) {
	cacheKey := c.cacheKey("movie_full_%d", movieID)
	return c.cachedDetails(cacheKey, force, func() (map[string]any, error) {
		return c.GetFullMovieDetails(ctx, movieID)
	})
}

// CachedGetFullTVDetails fetches full TV details with caching.
// Cache key format: tv_full_{tmdb_id}_{language}
func (c *Client) CachedGetFullTVDetails(ctx context.Context, tvID int, force bool) (map[string]any, bool, error) {
	cacheKey := c.cacheKey("tv_full_%d", tvID)
	return c.cachedDetails(cacheKey, force, func() (map[string]any, error) {
		return c.GetFullTVDetails(ctx, tvID)
	})
}

func (c *Client) cachedDetails(cacheKey string, force bool, fetch func() (map[string]any, error)) (map[string]any, bool, error) {
	if force {
		details, err := fetch()
		if err != nil {
			return nil, false, err
		}
		cacheValue(tmdbTable, cacheKey, &CachedDetails{Details: details})
		return details, false, nil
	}

	result, fromCache, err := cache.GetOrFetch(tmdbTable, cacheKey, func() (*CachedDetails, error) {
		details, fetchErr := fetch()
		if fetchErr != nil {
			return nil, fetchErr
		}
		return &CachedDetails{Details: details}, nil
	})
	if err != nil {
		return nil, false, err
	}
	return result.Details, fromCache, nil
}

// CachedGetSeason fetches a TV season with its episodes. Season data changes
// as air dates get announced, so it lives in its own table with a short TTL.
// Cache key format: season_{tv_id}_{season_number}_{language}
func (c *Client) CachedGetSeason(ctx context.Context, tvID, seasonNumber int, force bool) (*Season, bool, error) {
	cacheKey := c.cacheKey("season_%d_%d", tvID, seasonNumber)

	if force {
		season, err := c.GetSeason(ctx, tvID, seasonNumber)
		if err != nil {
			return nil, false, err
		}
		cacheValue(seasonTable, cacheKey, season)
		return season, false, nil
	}

	return cache.GetOrFetchWithTTL(seasonTable, cacheKey, cache.SeasonCacheTTL, func() (*Season, error) {
		return c.GetSeason(ctx, tvID, seasonNumber)
	})
}

// cacheKey formats a cache key and appends the client language, so
// responses in one language are never served for another.
func (c *Client) cacheKey(format string, args ...any) string {
	key := fmt.Sprintf(format, args...)
	if c.language == "" {
		return key
	}
	return key + "_" + c.language
}

func cacheValue(table, cacheKey string, payload any) {
	cacheDB, err := cache.GetGlobalCache()
	if err != nil {
		slog.Warn("Failed to initialize cache for TMDB force refresh", "error", err)
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("Failed to marshal TMDB payload for cache refresh", "key", cacheKey, "error", err)
		return
	}

	if err := cacheDB.Set(table, cacheKey, string(data)); err != nil {
		slog.Warn("Failed to update TMDB cache entry", "key", cacheKey, "error", err)
	}
}

// normalizeQuery normalizes a query string for use as a cache key.
func normalizeQuery(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, normalized)
	return normalized
}
