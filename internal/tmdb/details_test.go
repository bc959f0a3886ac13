package tmdb

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMetadataByID_Movie(t *testing.T) {
	client, server := newTestClient(t)
	server.Handle(http.MethodGet, "/movie/603", http.StatusOK, map[string]any{
		"id":           603,
		"title":        "The Matrix",
		"overview":     "A hacker learns the truth.",
		"poster_path":  "/matrix.jpg",
		"release_date": "1999-03-30",
		"vote_average": 8.2,
		"runtime":      136,
		"imdb_id":      "tt0133093",
		"status":       "Released",
		"genres":       []map[string]any{{"id": 28, "name": "Action"}, {"id": 878, "name": "SF"}},
	})
	server.Handle(http.MethodGet, "/genre/movie/list", http.StatusOK, map[string]any{
		"genres": []map[string]any{{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}},
	})

	meta, err := client.GetMetadataByID(context.Background(), 603, MediaMovie, false)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", meta.Title)
	assert.Equal(t, "1999-03-30", meta.ReleaseDate)
	assert.Equal(t, "/matrix.jpg", meta.PosterPath)
	assert.InDelta(t, 8.2, meta.VoteAverage, 0.001)
	require.NotNil(t, meta.Runtime)
	assert.Equal(t, 136, *meta.Runtime)
	assert.Equal(t, []string{"Action", "Science Fiction"}, meta.Genres)
	assert.Equal(t, "external_ids", server.RequestsTo(http.MethodGet, "/movie/603")[0].Query.Get("append_to_response"))

	// second lookup is served from cache, genre list from memory
	_, err = client.GetMetadataByID(context.Background(), 603, MediaMovie, false)
	require.NoError(t, err)
	assert.Len(t, server.RequestsTo(http.MethodGet, "/movie/603"), 1)
	assert.Len(t, server.RequestsTo(http.MethodGet, "/genre/movie/list"), 1)
}

func TestGetMetadataByID_TV(t *testing.T) {
	client, server := newTestClient(t)
	server.Handle(http.MethodGet, "/tv/1399", http.StatusOK, map[string]any{
		"id":                 1399,
		"name":               "Game of Thrones",
		"first_air_date":     "2011-04-17",
		"episode_run_time":   []int{60},
		"number_of_episodes": 73,
		"number_of_seasons":  8,
		"external_ids":       map[string]any{"imdb_id": "tt0944947"},
	})

	meta, err := client.GetMetadataByID(context.Background(), 1399, MediaTV, false)
	require.NoError(t, err)
	assert.Equal(t, "Game of Thrones", meta.Title)
	assert.Equal(t, "2011-04-17", meta.ReleaseDate)
	assert.Equal(t, "tt0944947", meta.IMDBID)
	require.NotNil(t, meta.TotalSeasons)
	assert.Equal(t, 8, *meta.TotalSeasons)
	assert.Empty(t, meta.Genres)
}

func TestGetMetadataByID_ForceBypassesCache(t *testing.T) {
	client, server := newTestClient(t)
	server.Handle(http.MethodGet, "/movie/1", http.StatusOK, map[string]any{"id": 1, "title": "One"})

	_, err := client.GetMetadataByID(context.Background(), 1, MediaMovie, false)
	require.NoError(t, err)
	_, err = client.GetMetadataByID(context.Background(), 1, MediaMovie, true)
	require.NoError(t, err)

	assert.Len(t, server.RequestsTo(http.MethodGet, "/movie/1"), 2)
}

func TestGetMetadataByID_InvalidType(t *testing.T) {
	client, _ := newTestClient(t)
	_, err := client.GetMetadataByID(context.Background(), 1, "book", false)
	require.ErrorIs(t, err, ErrInvalidMediaType)
}

func TestGetMetadataByID_NotFound(t *testing.T) {
	client, _ := newTestClient(t)
	_, err := client.GetMetadataByID(context.Background(), 999, MediaMovie, false)
	require.Error(t, err)
}
