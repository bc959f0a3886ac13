package tracker

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/lepinkainen/marquee/internal/cache"
	"github.com/lepinkainen/marquee/internal/store"
	"github.com/lepinkainen/marquee/internal/testutil"
	"github.com/lepinkainen/marquee/internal/tmdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    *Service
	server *testutil.TMDBServer
	stores *store.Stores
	saved  []Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	env := testutil.NewTestEnv(t)
	testutil.ResetConfig(t)
	testutil.SetupTestCache(t, env)
	require.NoError(t, cache.ResetGlobalCache())
	t.Cleanup(func() { _ = cache.ResetGlobalCache() })

	stores, err := store.OpenAll(store.Paths{
		Shows:     env.Path("shows.db"),
		Lists:     env.Path("lists.db"),
		People:    env.Path("people.db"),
		Reminders: env.Path("reminders.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = stores.Close() })

	server := testutil.NewTMDBServer(t)
	client := tmdb.NewClient("test-key", tmdb.WithBaseURL(server.URL))

	f := &fixture{server: server, stores: stores}
	f.svc = NewService(client, stores, Session{SessionID: "sess", AccountID: 42})
	f.svc.SaveSession = func(sessionID string, accountID int) error {
		f.saved = append(f.saved, Session{SessionID: sessionID, AccountID: accountID})
		return nil
	}
	f.svc.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }
	return f
}

func (f *fixture) movie(id int, title, release string) {
	f.server.Handle(http.MethodGet, "/movie/"+itoa(id), http.StatusOK, map[string]any{
		"id": id, "title": title, "release_date": release, "poster_path": "/p.jpg", "vote_average": 7.1,
	})
}

func (f *fixture) tv(id int, name string) {
	f.server.Handle(http.MethodGet, "/tv/"+itoa(id), http.StatusOK, map[string]any{
		"id": id, "name": name, "first_air_date": "2011-04-17",
	})
}

func ok() map[string]any {
	return map[string]any{"success": true, "status_code": 1, "status_message": "Success."}
}

func TestTrack(t *testing.T) {
	f := newFixture(t)
	f.movie(603, "The Matrix", "1999-03-30")

	show, err := f.svc.Track(context.Background(), 603, tmdb.MediaMovie, store.CategoryWatching)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", show.Title)
	assert.Equal(t, "1999-03-30", show.ReleaseDate)
	assert.Equal(t, store.CategoryWatching, show.Category)

	// tracking again only changes the category, no new fetch
	show, err = f.svc.Track(context.Background(), 603, tmdb.MediaMovie, store.CategoryWatched)
	require.NoError(t, err)
	assert.Equal(t, store.CategoryWatched, show.Category)
	assert.Len(t, f.server.RequestsTo(http.MethodGet, "/movie/603"), 1)

	all, err := f.stores.Shows.ListShows(store.ShowFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTrack_DefaultCategoryAndErrors(t *testing.T) {
	f := newFixture(t)
	f.tv(1399, "Game of Thrones")

	show, err := f.svc.Track(context.Background(), 1399, tmdb.MediaTV, "")
	require.NoError(t, err)
	assert.Equal(t, store.CategoryPlanToWatch, show.Category)

	_, err = f.svc.Track(context.Background(), 1, "book", "")
	require.ErrorIs(t, err, tmdb.ErrInvalidMediaType)

	_, err = f.svc.Track(context.Background(), 404, tmdb.MediaMovie, "")
	require.Error(t, err)
}

func TestValidatePersonal(t *testing.T) {
	rating := func(v float64) *float64 { return &v }
	tests := []struct {
		name    string
		p       store.Personal
		wantErr bool
	}{
		{"empty", store.Personal{}, false},
		{"full", store.Personal{Rating: rating(8), StartDate: "2026-01-01", FinishDate: "2026-02-01", Rewatched: 1, Episodes: 10}, false},
		{"rating too high", store.Personal{Rating: rating(10.5)}, true},
		{"negative rating", store.Personal{Rating: rating(-1)}, true},
		{"bad date", store.Personal{StartDate: "01/02/2026"}, true},
		{"finish before start", store.Personal{StartDate: "2026-02-01", FinishDate: "2026-01-01"}, true},
		{"negative rewatch", store.Personal{Rewatched: -1}, true},
		{"negative episodes", store.Personal{Episodes: -2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePersonal(tt.p)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetPersonal(t *testing.T) {
	f := newFixture(t)
	f.movie(1, "One", "2020-01-01")
	_, err := f.svc.Track(context.Background(), 1, tmdb.MediaMovie, "")
	require.NoError(t, err)

	r := 6.5
	require.NoError(t, f.svc.SetPersonal(1, tmdb.MediaMovie, store.Personal{Rating: &r, Episodes: 0}))
	require.Error(t, f.svc.SetPersonal(1, tmdb.MediaMovie, store.Personal{Rewatched: -1}))

	show, err := f.stores.Shows.GetShow(1, tmdb.MediaMovie)
	require.NoError(t, err)
	assert.InDelta(t, 6.5, *show.Personal.Rating, 0.001)
}

func TestUntrack_RemovesReminders(t *testing.T) {
	f := newFixture(t)
	f.tv(1399, "Game of Thrones")
	_, err := f.svc.Track(context.Background(), 1399, tmdb.MediaTV, store.CategoryWatching)
	require.NoError(t, err)
	_, err = f.stores.Reminders.AddEpisodeReminder(store.EpisodeReminder{TVID: 1399, SeasonNumber: 1, EpisodeNumber: 1, AirDate: "2026-10-20"})
	require.NoError(t, err)
	_, err = f.stores.Reminders.AddEpisodeReminder(store.EpisodeReminder{TVID: 7, SeasonNumber: 1, EpisodeNumber: 1, AirDate: "2026-10-20"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Untrack(1399, tmdb.MediaTV))

	reminders, err := f.stores.Reminders.ListEpisodeReminders()
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, 7, reminders[0].TVID)

	require.ErrorIs(t, f.svc.Untrack(1399, tmdb.MediaTV), store.ErrNotFound)
}
