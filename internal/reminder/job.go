// Package reminder runs the daily reminder job: movies released today and
// upcoming episodes with a stored reminder become notifications.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/notify"
	"github.com/lepinkainen/marquee/internal/store"
)

const dateLayout = "2006-01-02"

// ShowSource finds tracked movies released on a date.
type ShowSource interface {
	ReleasedOn(date string) ([]store.Show, error)
}

// ReminderSource reads and acknowledges episode reminders.
type ReminderSource interface {
	DueEpisodeReminders(from, to string) ([]store.EpisodeReminder, error)
	MarkNotified(id int64) error
}

// Job is one reminder pass.
type Job struct {
	Shows         ShowSource
	Reminders     ReminderSource
	Notifier      notify.Notifier
	LookaheadDays int
}

// Result counts the notifications a run sent.
type Result struct {
	Movies   int
	Episodes int
}

// Run performs both reminder steps for the day of now. A failing step is
// logged and does not stop the other; the returned error joins both.
func (j *Job) Run(ctx context.Context, now time.Time) (Result, error) {
	var result Result
	today := now.Format(dateLayout)

	movies, movieErr := j.releasedMovies(ctx, today)
	result.Movies = movies
	if movieErr != nil {
		slog.Error("Released movie reminders failed", "date", today, "error", movieErr)
	}

	lookahead := config.LookaheadDays.Clamp(j.LookaheadDays)
	until := now.AddDate(0, 0, lookahead-1).Format(dateLayout)

	episodes, episodeErr := j.airingEpisodes(ctx, today, until)
	result.Episodes = episodes
	if episodeErr != nil {
		slog.Error("Episode reminders failed", "from", today, "to", until, "error", episodeErr)
	}

	slog.Info("Reminder run finished", "date", today, "movies", result.Movies, "episodes", result.Episodes)
	return result, errors.Join(movieErr, episodeErr)
}

func (j *Job) releasedMovies(ctx context.Context, today string) (int, error) {
	shows, err := j.Shows.ReleasedOn(today)
	if err != nil {
		return 0, fmt.Errorf("reading released movies: %w", err)
	}

	sent := 0
	var errs []error
	for _, show := range shows {
		if show.Category == store.CategoryWatched || show.Category == store.CategoryDropped {
			continue
		}
		n := notify.Notification{
			Channel: notify.ChannelReleasedMovies,
			Title:   show.Title,
			Message: fmt.Sprintf("%s is released today", show.Title),
			Tags:    []string{"movie"},
		}
		if err := j.Notifier.Notify(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("notifying release of %q: %w", show.Title, err))
			continue
		}
		sent++
	}
	return sent, errors.Join(errs...)
}

func (j *Job) airingEpisodes(ctx context.Context, from, to string) (int, error) {
	due, err := j.Reminders.DueEpisodeReminders(from, to)
	if err != nil {
		return 0, fmt.Errorf("reading due episode reminders: %w", err)
	}

	sent := 0
	var errs []error
	for _, r := range due {
		n := notify.Notification{
			Channel: notify.ChannelEpisodeAiring,
			Title:   r.ShowName,
			Message: episodeMessage(r, from),
			Tags:    []string{"tv"},
		}
		if err := j.Notifier.Notify(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("notifying %s S%02dE%02d: %w", r.ShowName, r.SeasonNumber, r.EpisodeNumber, err))
			continue
		}
		if err := j.Reminders.MarkNotified(r.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		sent++
	}
	return sent, errors.Join(errs...)
}

func episodeMessage(r store.EpisodeReminder, today string) string {
	code := fmt.Sprintf("S%02dE%02d", r.SeasonNumber, r.EpisodeNumber)
	if r.EpisodeName != "" {
		code += " " + r.EpisodeName
	}
	if r.AirDate == today {
		return code + " airs today"
	}
	return fmt.Sprintf("%s airs on %s", code, r.AirDate)
}
