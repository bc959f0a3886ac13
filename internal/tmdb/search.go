package tmdb

import (
	"context"
	"net/url"
	"strconv"
)

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// SearchMovies performs a movie-specific search on TMDB.
// If year > 0, it is passed as a hint to TMDB (but results are otherwise left in API order).
// Unrated upcoming movies are kept: they are what release reminders are for.
func (c *Client) SearchMovies(ctx context.Context, query string, year int, limit int) ([]SearchResult, error) {
	params := searchParams(query)
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}
	return c.search(ctx, "/search/movie", params, MediaMovie, limit)
}

// SearchTV performs a TV-specific search on TMDB.
func (c *Client) SearchTV(ctx context.Context, query string, year int, limit int) ([]SearchResult, error) {
	params := searchParams(query)
	if year > 0 {
		params.Set("first_air_date_year", strconv.Itoa(year))
	}
	return c.search(ctx, "/search/tv", params, MediaTV, limit)
}

// SearchMulti performs a multi-search on TMDB for movies and TV shows.
// People and other result types are dropped.
func (c *Client) SearchMulti(ctx context.Context, query string, year int, limit int) ([]SearchResult, error) {
	params := searchParams(query)
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
		params.Set("first_air_date_year", strconv.Itoa(year))
	}
	return c.search(ctx, "/search/multi", params, "", limit)
}

func searchParams(query string) url.Values {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	return params
}

func (c *Client) search(ctx context.Context, path string, params url.Values, mediaType string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 1
	}

	var response searchResponse
	if err := c.getJSON(ctx, c.endpoint(path, params), &response); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, limit)
	for _, item := range response.Results {
		if len(results) >= limit {
			break
		}
		if mediaType != "" {
			item.MediaType = mediaType
		}
		if item.MediaType != MediaMovie && item.MediaType != MediaTV {
			continue
		}
		results = append(results, item)
	}

	return results, nil
}
