package tmdb

import (
	"context"
	"fmt"
	"net/url"
)

// GetTVDetails fetches detailed information for a TV show by ID.
func (c *Client) GetTVDetails(ctx context.Context, tvID int, appendToResponse string) (map[string]any, error) {
	params := url.Values{}
	if appendToResponse != "" {
		params.Set("append_to_response", appendToResponse)
	}
	return c.getJSONMap(ctx, c.endpoint(fmt.Sprintf("/tv/%d", tvID), params))
}

// GetFullTVDetails fetches full TV show details including external IDs.
func (c *Client) GetFullTVDetails(ctx context.Context, tvID int) (map[string]any, error) {
	return c.GetTVDetails(ctx, tvID, "external_ids")
}

// GetFullMovieDetails fetches full movie details including external IDs.
func (c *Client) GetFullMovieDetails(ctx context.Context, movieID int) (map[string]any, error) {
	params := url.Values{}
	params.Set("append_to_response", "external_ids")
	return c.getJSONMap(ctx, c.endpoint(fmt.Sprintf("/movie/%d", movieID), params))
}

// GetMetadataByID fetches metadata by TMDB ID and media type. Details come
// through the cache unless force is set.
func (c *Client) GetMetadataByID(ctx context.Context, mediaID int, mediaType string, force bool) (*Metadata, error) {
	switch mediaType {
	case MediaMovie:
		return c.getMetadataByMovieID(ctx, mediaID, force)
	case MediaTV:
		return c.getMetadataByTVID(ctx, mediaID, force)
	default:
		return nil, ErrInvalidMediaType
	}
}

// GetMetadataByResult fetches metadata for a search result.
func (c *Client) GetMetadataByResult(ctx context.Context, result SearchResult) (*Metadata, error) {
	return c.GetMetadataByID(ctx, result.ID, result.MediaType, false)
}

func (c *Client) getMetadataByMovieID(ctx context.Context, movieID int, force bool) (*Metadata, error) {
	details, _, err := c.CachedGetFullMovieDetails(ctx, movieID, force)
	if err != nil {
		return nil, err
	}

	metadata := &Metadata{
		TMDBID:   movieID,
		TMDBType: MediaMovie,
	}
	metadata.Title, _ = getString(details, "title")
	metadata.ReleaseDate, _ = getString(details, "release_date")
	metadata.IMDBID, _ = getString(details, "imdb_id")
	fillCommon(metadata, details)

	if runtime, ok := getInt(details, "runtime"); ok {
		metadata.Runtime = &runtime
	}

	if genres, err := c.genreNames(ctx, MediaMovie, details); err == nil {
		metadata.Genres = genres
	}

	return metadata, nil
}

func (c *Client) getMetadataByTVID(ctx context.Context, tvID int, force bool) (*Metadata, error) {
	details, _, err := c.CachedGetFullTVDetails(ctx, tvID, force)
	if err != nil {
		return nil, err
	}

	metadata := &Metadata{
		TMDBID:   tvID,
		TMDBType: MediaTV,
	}
	metadata.Title, _ = getString(details, "name")
	metadata.ReleaseDate, _ = getString(details, "first_air_date")
	if ids, ok := details["external_ids"].(map[string]any); ok {
		metadata.IMDBID, _ = getString(ids, "imdb_id")
	}
	fillCommon(metadata, details)

	if runtime, ok := getEpisodeRuntime(details); ok {
		metadata.Runtime = &runtime
	}
	if episodes, ok := getInt(details, "number_of_episodes"); ok {
		metadata.TotalEpisodes = &episodes
	}
	if seasons, ok := getInt(details, "number_of_seasons"); ok {
		metadata.TotalSeasons = &seasons
	}

	if genres, err := c.genreNames(ctx, MediaTV, details); err == nil {
		metadata.Genres = genres
	}

	return metadata, nil
}

func fillCommon(metadata *Metadata, details map[string]any) {
	metadata.Overview, _ = getString(details, "overview")
	metadata.PosterPath, _ = getString(details, "poster_path")
	metadata.Status, _ = getString(details, "status")
	metadata.VoteAverage, _ = getFloat(details, "vote_average")
}
