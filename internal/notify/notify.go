// Package notify delivers reminder notifications over configurable channels.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Built-in channel ids.
const (
	ChannelReleasedMovies = "released_movies"
	ChannelEpisodeAiring  = "episode_airing"
)

// Channel groups notifications of one kind. Disabled channels are not delivered.
type Channel struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
}

// DefaultChannels returns the built-in channels, all enabled.
func DefaultChannels() []Channel {
	return []Channel{
		{
			ID:          ChannelReleasedMovies,
			Name:        "Released movies",
			Description: "A tracked movie is released today",
			Enabled:     true,
		},
		{
			ID:          ChannelEpisodeAiring,
			Name:        "Episode airing",
			Description: "An episode with a reminder is about to air",
			Enabled:     true,
		},
	}
}

// ChannelsFromConfig returns the built-in channels with Enabled taken from
// enabled. Channels missing from the map stay enabled.
func ChannelsFromConfig(enabled map[string]bool) []Channel {
	channels := DefaultChannels()
	for i := range channels {
		if on, ok := enabled[channels[i].ID]; ok {
			channels[i].Enabled = on
		}
	}
	return channels
}

// Notification is a single message.
type Notification struct {
	Channel string
	Title   string
	Message string
	Tags    []string
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify implements Notifier.
func (l LogNotifier) Notify(_ context.Context, n Notification) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info(n.Title, "channel", n.Channel, "message", n.Message)
	return nil
}

// Multi fans a notification out to several notifiers and filters by channel.
type Multi struct {
	notifiers []Notifier
	channels  map[string]Channel
}

// NewMulti creates a fan-out notifier. Only notifications on enabled channels
// are delivered.
func NewMulti(channels []Channel, notifiers ...Notifier) *Multi {
	m := &Multi{
		notifiers: notifiers,
		channels:  make(map[string]Channel, len(channels)),
	}
	for _, c := range channels {
		m.channels[c.ID] = c
	}
	return m
}

// Enabled reports whether notifications on channelID are delivered.
func (m *Multi) Enabled(channelID string) bool {
	c, ok := m.channels[channelID]
	return ok && c.Enabled
}

// Notify implements Notifier. Every notifier is tried; failures are joined.
func (m *Multi) Notify(ctx context.Context, n Notification) error {
	if !m.Enabled(n.Channel) {
		slog.Debug("Notification channel disabled, dropping", "channel", n.Channel, "title", n.Title)
		return nil
	}

	var errs []error
	for _, notifier := range m.notifiers {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("%T: %w", notifier, err))
		}
	}
	return errors.Join(errs...)
}
