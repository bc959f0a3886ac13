package store

import (
	"bytes"
	"testing"

	"github.com/lepinkainen/marquee/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAll(t *testing.T) *Stores {
	t.Helper()
	env := testutil.NewTestEnv(t)
	s, err := OpenAll(Paths{
		Shows:     env.Path("shows.db"),
		Lists:     env.Path("lists.db"),
		People:    env.Path("people.db"),
		Reminders: env.Path("reminders.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seed(t *testing.T, s *Stores) {
	t.Helper()
	rating := 8.0
	_, _, err := s.Shows.AddShow(Show{TMDBID: 603, MediaType: "movie", Title: "The Matrix", Personal: Personal{Rating: &rating}})
	require.NoError(t, err)
	require.NoError(t, s.Lists.CreateList(List{ID: 1, Name: "Noir"}))
	_, err = s.Lists.AddToList(ListItem{ListID: 1, TMDBID: 603, MediaType: "movie", Title: "The Matrix"})
	require.NoError(t, err)
	_, err = s.People.AddPerson(Person{TMDBID: 6384, Name: "Keanu Reeves"})
	require.NoError(t, err)
	_, err = s.Reminders.AddEpisodeReminder(EpisodeReminder{TVID: 1399, SeasonNumber: 1, EpisodeNumber: 1, AirDate: "2026-10-20"})
	require.NoError(t, err)
}

func assertSeeded(t *testing.T, s *Stores) {
	t.Helper()
	show, err := s.Shows.GetShow(603, "movie")
	require.NoError(t, err)
	require.NotNil(t, show.Personal.Rating)
	assert.InDelta(t, 8.0, *show.Personal.Rating, 0.001)

	items, err := s.Lists.ListItems(1)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = s.People.GetPerson(6384)
	require.NoError(t, err)

	reminders, err := s.Reminders.ListEpisodeReminders()
	require.NoError(t, err)
	assert.Len(t, reminders, 1)
}

func TestJSONBackupRoundTrip(t *testing.T) {
	src := openAll(t)
	seed(t, src)

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, src.All()...))

	dst := openAll(t)
	stats, err := ImportJSON(bytes.NewReader(buf.Bytes()), dst.All()...)
	require.NoError(t, err)
	assert.Equal(t, 1, stats["shows.shows"].Imported)
	assertSeeded(t, dst)

	// importing again changes nothing
	stats, err = ImportJSON(bytes.NewReader(buf.Bytes()), dst.All()...)
	require.NoError(t, err)
	assert.Equal(t, 0, stats["shows.shows"].Imported)
	assert.Equal(t, 1, stats["shows.shows"].Skipped)
	assert.Equal(t, 1, countRows(t, dst.Shows.DB, "shows"))
}

func TestYAMLBackupRoundTrip(t *testing.T) {
	src := openAll(t)
	seed(t, src)

	var buf bytes.Buffer
	require.NoError(t, ExportYAML(&buf, src.All()...))
	assert.Contains(t, buf.String(), "The Matrix")

	dst := openAll(t)
	_, err := ImportYAML(bytes.NewReader(buf.Bytes()), dst.All()...)
	require.NoError(t, err)
	assertSeeded(t, dst)
}

func TestRestore_NewerFormatRefused(t *testing.T) {
	dst := openAll(t)
	_, err := Restore(&Backup{Version: backupFormatVersion + 1}, dst.All()...)
	require.Error(t, err)
}

func TestRestore_UnknownDatabaseSkipped(t *testing.T) {
	dst := openAll(t)
	stats, err := Restore(&Backup{
		Version:   backupFormatVersion,
		Databases: map[string]map[string][]Row{"music": {"albums": {{"id": 1}}}},
	}, dst.All()...)
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestRestore_IntoPopulatedDatabase(t *testing.T) {
	src := openAll(t)
	seed(t, src)

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, src.All()...))

	// dst already holds rows whose ids collide with the backup's
	dst := openAll(t)
	_, _, err := dst.Shows.AddShow(Show{TMDBID: 550, MediaType: "movie", Title: "Fight Club"})
	require.NoError(t, err)
	_, err = dst.Reminders.AddEpisodeReminder(EpisodeReminder{TVID: 1399, SeasonNumber: 2, EpisodeNumber: 1, AirDate: "2026-11-01"})
	require.NoError(t, err)

	stats, err := ImportJSON(bytes.NewReader(buf.Bytes()), dst.All()...)
	require.NoError(t, err)
	assert.Equal(t, 1, stats["shows.shows"].Imported)
	assert.Equal(t, 1, stats["reminders.episode_reminders"].Imported)

	show, err := dst.Shows.GetShow(603, "movie")
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", show.Title)
	_, err = dst.Shows.GetShow(550, "movie")
	require.NoError(t, err)
	assert.Equal(t, 2, countRows(t, dst.Shows.DB, "shows"))

	reminders, err := dst.Reminders.ListEpisodeReminders()
	require.NoError(t, err)
	assert.Len(t, reminders, 2)
}
