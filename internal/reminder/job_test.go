package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lepinkainen/marquee/internal/notify"
	"github.com/lepinkainen/marquee/internal/store"
	"github.com/lepinkainen/marquee/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
	fail map[string]bool // titles that fail
}

func (r *recordingNotifier) Notify(_ context.Context, n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail[n.Title] {
		return errors.New("push failed")
	}
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingNotifier) titles(channel string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, n := range r.sent {
		if n.Channel == channel {
			out = append(out, n.Title)
		}
	}
	return out
}

type brokenShows struct{}

func (brokenShows) ReleasedOn(string) ([]store.Show, error) { return nil, errors.New("disk gone") }

var today = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func setupJob(t *testing.T) (*Job, *store.ShowsStore, *store.RemindersStore, *recordingNotifier) {
	t.Helper()
	env := testutil.NewTestEnv(t)

	shows, err := store.OpenShows(env.Path("shows.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = shows.Close() })

	reminders, err := store.OpenReminders(env.Path("reminders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = reminders.Close() })

	rec := &recordingNotifier{}
	job := &Job{Shows: shows, Reminders: reminders, Notifier: rec, LookaheadDays: 1}
	return job, shows, reminders, rec
}

func TestRun_ReleasedMovies(t *testing.T) {
	job, shows, _, rec := setupJob(t)
	for _, s := range []store.Show{
		{TMDBID: 1, MediaType: "movie", Title: "Planned", ReleaseDate: "2026-10-18", Category: store.CategoryPlanToWatch},
		{TMDBID: 2, MediaType: "movie", Title: "Seen", ReleaseDate: "2026-10-18", Category: store.CategoryWatched},
		{TMDBID: 3, MediaType: "movie", Title: "Given up", ReleaseDate: "2026-10-18", Category: store.CategoryDropped},
		{TMDBID: 4, MediaType: "movie", Title: "Later", ReleaseDate: "2026-10-19"},
		{TMDBID: 5, MediaType: "tv", Title: "Premiere", ReleaseDate: "2026-10-18"},
	} {
		_, _, err := shows.AddShow(s)
		require.NoError(t, err)
	}

	result, err := job.Run(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Movies)
	assert.Equal(t, []string{"Planned"}, rec.titles(notify.ChannelReleasedMovies))
}

func TestRun_EpisodesNotifiedOnce(t *testing.T) {
	job, _, reminders, rec := setupJob(t)
	job.LookaheadDays = 3
	for _, r := range []store.EpisodeReminder{
		{TVID: 1, ShowName: "Today", SeasonNumber: 1, EpisodeNumber: 1, AirDate: "2026-10-18"},
		{TVID: 2, ShowName: "In two days", SeasonNumber: 1, EpisodeNumber: 1, AirDate: "2026-10-20"},
		{TVID: 3, ShowName: "Too far", SeasonNumber: 1, EpisodeNumber: 1, AirDate: "2026-10-21"},
		{TVID: 4, ShowName: "Yesterday", SeasonNumber: 1, EpisodeNumber: 1, AirDate: "2026-10-17"},
	} {
		_, err := reminders.AddEpisodeReminder(r)
		require.NoError(t, err)
	}

	result, err := job.Run(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Episodes)
	assert.Equal(t, []string{"Today", "In two days"}, rec.titles(notify.ChannelEpisodeAiring))

	result, err = job.Run(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Episodes)
	assert.Len(t, rec.titles(notify.ChannelEpisodeAiring), 2)
}

func TestRun_LookaheadClamped(t *testing.T) {
	job, _, reminders, _ := setupJob(t)
	job.LookaheadDays = 0
	_, err := reminders.AddEpisodeReminder(store.EpisodeReminder{TVID: 1, ShowName: "Today", SeasonNumber: 1, EpisodeNumber: 1, AirDate: "2026-10-18"})
	require.NoError(t, err)
	_, err = reminders.AddEpisodeReminder(store.EpisodeReminder{TVID: 1, ShowName: "Tomorrow", SeasonNumber: 1, EpisodeNumber: 2, AirDate: "2026-10-19"})
	require.NoError(t, err)

	result, err := job.Run(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Episodes)
}

func TestRun_FailedNotificationNotMarked(t *testing.T) {
	job, _, reminders, rec := setupJob(t)
	rec.fail = map[string]bool{"Flaky": true}
	_, err := reminders.AddEpisodeReminder(store.EpisodeReminder{TVID: 1, ShowName: "Flaky", SeasonNumber: 1, EpisodeNumber: 1, AirDate: "2026-10-18"})
	require.NoError(t, err)

	_, err = job.Run(context.Background(), today)
	require.Error(t, err)

	due, err := reminders.DueEpisodeReminders("2026-10-18", "2026-10-18")
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestRun_MovieStepFailureStillRunsEpisodes(t *testing.T) {
	job, _, reminders, rec := setupJob(t)
	job.Shows = brokenShows{}
	_, err := reminders.AddEpisodeReminder(store.EpisodeReminder{TVID: 1, ShowName: "Today", SeasonNumber: 1, EpisodeNumber: 1, AirDate: "2026-10-18"})
	require.NoError(t, err)

	result, err := job.Run(context.Background(), today)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
	assert.Equal(t, 1, result.Episodes)
	assert.Len(t, rec.titles(notify.ChannelEpisodeAiring), 1)
}

func TestEpisodeMessage(t *testing.T) {
	r := store.EpisodeReminder{SeasonNumber: 8, EpisodeNumber: 3, EpisodeName: "The Long Night", AirDate: "2026-10-18"}
	assert.Equal(t, "S08E03 The Long Night airs today", episodeMessage(r, "2026-10-18"))

	r.AirDate = "2026-10-20"
	r.EpisodeName = ""
	assert.Equal(t, "S08E03 airs on 2026-10-20", episodeMessage(r, "2026-10-18"))
}
