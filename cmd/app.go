package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/notify"
	"github.com/lepinkainen/marquee/internal/reminder"
	"github.com/lepinkainen/marquee/internal/store"
	"github.com/lepinkainen/marquee/internal/tmdb"
	"github.com/lepinkainen/marquee/internal/tracker"
	"github.com/lepinkainen/marquee/internal/tui"
)

var (
	stdout io.Writer = os.Stdout

	selectResult = tui.Select
	interactive  = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// app holds everything a command needs, built from the loaded config.
type app struct {
	cfg     config.Config
	client  *tmdb.Client
	stores  *store.Stores
	service *tracker.Service
}

func newClient(cfg config.Config) *tmdb.Client {
	return tmdb.NewClient(cfg.TMDB.APIKey,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithLanguage(cfg.TMDB.Language),
	)
}

// openApp loads the config and opens the local databases. Commands that talk
// to TMDB pass needAPI so a missing key fails before any database is touched.
func openApp(needAPI bool) (*app, error) {
	cfg := config.Load()
	if needAPI {
		if err := cfg.RequireAPIKey(); err != nil {
			return nil, err
		}
	}

	stores, err := store.OpenAll(store.Paths{
		Shows:     cfg.DB.Shows,
		Lists:     cfg.DB.Lists,
		People:    cfg.DB.People,
		Reminders: cfg.DB.Reminders,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open databases: %w", err)
	}

	client := newClient(cfg)
	session := tracker.Session{SessionID: cfg.TMDB.SessionID, AccountID: cfg.TMDB.AccountID}

	return &app{
		cfg:     cfg,
		client:  client,
		stores:  stores,
		service: tracker.NewService(client, stores, session),
	}, nil
}

func (a *app) Close() {
	if err := a.stores.Close(); err != nil {
		slog.Warn("Failed to close databases", "error", err)
	}
}

// notifier fans out to the log and, when configured, the webhook.
func (a *app) notifier() *notify.Multi {
	notifiers := []notify.Notifier{notify.LogNotifier{Logger: slog.Default()}}
	if a.cfg.Notify.WebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(a.cfg.Notify.WebhookURL, a.cfg.Notify.WebhookTopic))
	}
	return notify.NewMulti(notify.ChannelsFromConfig(a.cfg.Notify.Channels), notifiers...)
}

func (a *app) reminderJob() *reminder.Job {
	return &reminder.Job{
		Shows:         a.stores.Shows,
		Reminders:     a.stores.Reminders,
		Notifier:      a.notifier(),
		LookaheadDays: a.cfg.Reminders.LookaheadDays,
	}
}
