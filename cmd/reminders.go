package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lepinkainen/marquee/internal/reminder"
)

// RemindersCmd groups the reminder subcommands.
type RemindersCmd struct {
	Schedule RemindersScheduleCmd `cmd:"" help:"Add reminders for the upcoming episodes of a season"`
	Ls       RemindersLsCmd       `cmd:"" help:"List episode reminders"`
	Remove   RemindersRemoveCmd   `cmd:"" help:"Delete an episode reminder"`
	RunOnce  RemindersRunCmd      `cmd:"" name:"run" help:"Run the reminder job once"`
	Daemon   RemindersDaemonCmd   `cmd:"" help:"Run the reminder job every 24 hours until interrupted"`
}

// RemindersScheduleCmd represents the reminders schedule command
type RemindersScheduleCmd struct {
	TVID   int `arg:"" name:"tv-id" help:"TMDB id of the TV show"`
	Season int `arg:"" help:"Season number"`
}

func (r *RemindersScheduleCmd) Run(ctx context.Context) error {
	if err := requirePositive("tv id", r.TVID); err != nil {
		return err
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.service.ScheduleSeason(ctx, r.TVID, r.Season)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Scheduled %d reminders (%d already scheduled, %d aired or undated)\n",
		result.Added, result.Existing, result.Past)
	return nil
}

// RemindersLsCmd represents the reminders ls command
type RemindersLsCmd struct {
	Pending bool `help:"Only reminders that have not been sent"`
}

func (r *RemindersLsCmd) Run() error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	reminders, err := a.stores.Reminders.ListEpisodeReminders()
	if err != nil {
		return err
	}

	shown := 0
	for _, rem := range reminders {
		if r.Pending && rem.Notified {
			continue
		}
		status := "pending"
		if rem.Notified {
			status = "sent"
		}
		_, _ = fmt.Fprintf(stdout, "%4d  %s  %s S%02dE%02d %s  [%s]\n",
			rem.ID, airsIn(rem.AirDate), rem.ShowName, rem.SeasonNumber, rem.EpisodeNumber, rem.EpisodeName, status)
		shown++
	}
	if shown == 0 {
		_, _ = fmt.Fprintln(stdout, "No reminders")
	}
	return nil
}

// RemindersRemoveCmd represents the reminders remove command
type RemindersRemoveCmd struct {
	ID int64 `arg:"" help:"Reminder id (see reminders ls)"`
}

func (r *RemindersRemoveCmd) Run() error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.stores.Reminders.DeleteEpisodeReminder(r.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Deleted reminder %d\n", r.ID)
	return nil
}

// RemindersRunCmd represents the reminders run command
type RemindersRunCmd struct{}

func (r *RemindersRunCmd) Run(ctx context.Context) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.reminderJob().Run(ctx, time.Now())
	_, _ = fmt.Fprintf(stdout, "Sent %d movie and %d episode notifications\n", result.Movies, result.Episodes)
	return err
}

// RemindersDaemonCmd represents the reminders daemon command
type RemindersDaemonCmd struct{}

var startWorker = func(ctx context.Context, w *reminder.Worker) { w.Start(ctx) }

func (r *RemindersDaemonCmd) Run(ctx context.Context) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	startWorker(ctx, reminder.NewWorker(a.reminderJob()))
	return nil
}

func airsIn(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s (%s)", date, humanize.Time(t))
}
