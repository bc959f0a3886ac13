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

func TestScheduleSeason(t *testing.T) {
	f := newFixture(t)
	f.tv(1399, "Game of Thrones")
	f.server.Handle(http.MethodGet, "/tv/1399/season/9", http.StatusOK, map[string]any{
		"name": "Season 9", "season_number": 9,
		"episodes": []map[string]any{
			{"episode_number": 1, "name": "Aired", "air_date": "2026-10-11"},
			{"episode_number": 2, "name": "Tonight", "air_date": "2026-10-18"},
			{"episode_number": 3, "name": "Next week", "air_date": "2026-10-25"},
			{"episode_number": 4, "name": "TBA", "air_date": ""},
		},
	})

	result, err := f.svc.ScheduleSeason(context.Background(), 1399, 9)
	require.NoError(t, err)
	assert.Equal(t, ScheduleResult{Added: 2, Past: 2}, result)

	reminders, err := f.stores.Reminders.ListEpisodeReminders()
	require.NoError(t, err)
	require.Len(t, reminders, 2)
	assert.Equal(t, "Game of Thrones", reminders[0].ShowName)
	assert.Equal(t, "Tonight", reminders[0].EpisodeName)
	assert.Equal(t, 9, reminders[0].SeasonNumber)

	result, err = f.svc.ScheduleSeason(context.Background(), 1399, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Existing)
	assert.Equal(t, 0, result.Added)
}

func TestScheduleSeason_UsesTrackedTitle(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.stores.Shows.AddShow(store.Show{TMDBID: 5, MediaType: tmdb.MediaTV, Title: "Local Name"})
	require.NoError(t, err)
	f.server.Handle(http.MethodGet, "/tv/5/season/1", http.StatusOK, map[string]any{
		"episodes": []map[string]any{{"episode_number": 1, "air_date": "2026-11-01"}},
	})

	_, err = f.svc.ScheduleSeason(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Empty(t, f.server.RequestsTo(http.MethodGet, "/tv/5"))

	reminders, err := f.stores.Reminders.ListEpisodeReminders()
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "Local Name", reminders[0].ShowName)
}

func TestAddPerson(t *testing.T) {
	f := newFixture(t)
	f.server.Handle(http.MethodGet, "/person/6384", http.StatusOK, map[string]any{
		"id": 6384, "name": "Keanu Reeves", "known_for_department": "Acting", "place_of_birth": "Beirut, Lebanon",
	})

	p, added, err := f.svc.AddPerson(context.Background(), 6384)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "Beirut, Lebanon", p.PlaceOfBirth)

	_, added, err = f.svc.AddPerson(context.Background(), 6384)
	require.NoError(t, err)
	assert.False(t, added)
}

func TestLists(t *testing.T) {
	f := newFixture(t)
	f.movie(949, "Heat", "1995-12-15")

	list, err := f.svc.CreateList("Noir", "after dark")
	require.NoError(t, err)
	assert.Equal(t, 1, list.ID)

	_, err = f.svc.CreateList("Noir", "")
	require.Error(t, err)

	second, err := f.svc.CreateList("Comfort", "")
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	added, err := f.svc.AddToList(context.Background(), "Noir", 949, tmdb.MediaMovie)
	require.NoError(t, err)
	assert.True(t, added)

	items, err := f.stores.Lists.ListItems(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Heat", items[0].Title)

	_, err = f.svc.AddToList(context.Background(), "Missing", 949, tmdb.MediaMovie)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestLoginFlow(t *testing.T) {
	f := newFixture(t)
	f.svc.session = Session{}
	f.server.Handle(http.MethodGet, "/authentication/token/new", http.StatusOK, map[string]any{"success": true, "request_token": "tok"})
	f.server.Handle(http.MethodPost, "/authentication/session/new", http.StatusOK, map[string]any{"success": true, "session_id": "new-sess"})
	f.server.Handle(http.MethodGet, "/account", http.StatusOK, map[string]any{"id": 77, "username": "viewer"})
	f.server.Handle(http.MethodDelete, "/authentication/session", http.StatusOK, ok())

	token, url, err := f.svc.StartLogin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Contains(t, url, "/authenticate/tok")

	session, err := f.svc.FinishLogin(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, Session{SessionID: "new-sess", AccountID: 77}, session)
	assert.Equal(t, session, f.svc.Session())

	require.NoError(t, f.svc.Logout(context.Background()))
	assert.Equal(t, []Session{{"new-sess", 77}, {"", 0}}, f.saved)
	assert.False(t, f.svc.Session().Valid())
}
