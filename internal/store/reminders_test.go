package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpisodeReminders(t *testing.T) {
	s := openReminders(t)

	for _, r := range []EpisodeReminder{
		{TVID: 1399, ShowName: "GoT", SeasonNumber: 8, EpisodeNumber: 1, AirDate: "2026-10-18"},
		{TVID: 1399, ShowName: "GoT", SeasonNumber: 8, EpisodeNumber: 2, AirDate: "2026-10-25"},
		{TVID: 100, ShowName: "Other", SeasonNumber: 1, EpisodeNumber: 1, AirDate: "2026-10-17"},
	} {
		added, err := s.AddEpisodeReminder(r)
		require.NoError(t, err)
		assert.True(t, added)
	}

	added, err := s.AddEpisodeReminder(EpisodeReminder{TVID: 1399, SeasonNumber: 8, EpisodeNumber: 1, AirDate: "2026-10-19"})
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 3, countRows(t, s.DB, "episode_reminders"))

	all, err := s.ListEpisodeReminders()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Other", all[0].ShowName)

	due, err := s.DueEpisodeReminders("2026-10-18", "2026-10-20")
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, 1, due[0].EpisodeNumber)

	require.NoError(t, s.MarkNotified(due[0].ID))
	due, err = s.DueEpisodeReminders("2026-10-18", "2026-10-20")
	require.NoError(t, err)
	assert.Empty(t, due)

	require.NoError(t, s.DeleteEpisodeReminder(all[0].ID))
	require.ErrorIs(t, s.DeleteEpisodeReminder(all[0].ID), ErrNotFound)

	n, err := s.DeleteRemindersForShow(1399)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Equal(t, 0, countRows(t, s.DB, "episode_reminders"))
}
