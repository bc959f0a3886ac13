package tracker

import (
	"context"
	"net/http"
	"testing"

	"github.com/lepinkainen/marquee/internal/store"
	"github.com/lepinkainen/marquee/internal/tmdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(results ...map[string]any) map[string]any {
	return map[string]any{"page": 1, "total_pages": 1, "total_results": len(results), "results": results}
}

func handleEmptyLists(f *fixture) {
	for _, kind := range []string{"favorite", "watchlist", "rated"} {
		for _, seg := range []string{"movies", "tv"} {
			f.server.Handle(http.MethodGet, "/account/42/"+kind+"/"+seg, http.StatusOK, page())
		}
	}
}

func TestSync(t *testing.T) {
	f := newFixture(t)
	handleEmptyLists(f)
	f.server.Handle(http.MethodGet, "/account/42/watchlist/movies", http.StatusOK, page(
		map[string]any{"id": 1, "title": "Wanted", "release_date": "2026-12-01"},
		map[string]any{"id": 2, "title": "Loved and wanted"},
	))
	f.server.Handle(http.MethodGet, "/account/42/favorite/movies", http.StatusOK, page(
		map[string]any{"id": 2, "title": "Loved and wanted"},
		map[string]any{"id": 3, "title": "Loved"},
	))
	f.server.Handle(http.MethodGet, "/account/42/rated/tv", http.StatusOK, page(
		map[string]any{"id": 1399, "name": "Game of Thrones", "first_air_date": "2011-04-17", "rating": 8.5},
	))

	// a locally tracked title keeps its category
	_, _, err := f.stores.Shows.AddShow(store.Show{TMDBID: 3, MediaType: tmdb.MediaMovie, Title: "Loved", Category: store.CategoryOnHold})
	require.NoError(t, err)
	// and local-only titles survive
	_, _, err = f.stores.Shows.AddShow(store.Show{TMDBID: 77, MediaType: tmdb.MediaMovie, Title: "Local only"})
	require.NoError(t, err)

	result, err := f.svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SyncResult{Favorites: 2, Watchlist: 2, Rated: 1, Added: 3}, result)

	wanted, err := f.stores.Shows.GetShow(1, tmdb.MediaMovie)
	require.NoError(t, err)
	assert.Equal(t, store.CategoryPlanToWatch, wanted.Category)
	assert.True(t, wanted.Watchlist)
	assert.Equal(t, "2026-12-01", wanted.ReleaseDate)

	both, err := f.stores.Shows.GetShow(2, tmdb.MediaMovie)
	require.NoError(t, err)
	assert.Equal(t, store.CategoryPlanToWatch, both.Category)
	assert.True(t, both.Favorite)
	assert.True(t, both.Watchlist)

	loved, err := f.stores.Shows.GetShow(3, tmdb.MediaMovie)
	require.NoError(t, err)
	assert.Equal(t, store.CategoryOnHold, loved.Category)
	assert.True(t, loved.Favorite)

	got, err := f.stores.Shows.GetShow(1399, tmdb.MediaTV)
	require.NoError(t, err)
	assert.Equal(t, "Game of Thrones", got.Title)
	assert.Equal(t, store.CategoryWatched, got.Category)
	require.NotNil(t, got.Personal.Rating)
	assert.InDelta(t, 8.5, *got.Personal.Rating, 0.001)

	_, err = f.stores.Shows.GetShow(77, tmdb.MediaMovie)
	require.NoError(t, err)

	// a second sync adds nothing
	result, err = f.svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
}

func TestSync_FetchFailureAppliesNothing(t *testing.T) {
	f := newFixture(t)
	handleEmptyLists(f)
	f.server.Handle(http.MethodGet, "/account/42/watchlist/movies", http.StatusOK, page(
		map[string]any{"id": 1, "title": "Wanted"},
	))
	f.server.Handle(http.MethodGet, "/account/42/rated/tv", http.StatusUnauthorized, map[string]any{
		"success": false, "status_code": 3, "status_message": "Authentication failed.",
	})

	_, err := f.svc.Sync(context.Background())
	require.Error(t, err)

	shows, err := f.stores.Shows.ListShows(store.ShowFilter{})
	require.NoError(t, err)
	assert.Empty(t, shows)
}
