// Package tracker implements marquee's use cases on top of the TMDB client
// and the local stores.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/store"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

const dateLayout = "2006-01-02"

// ErrNoSession is returned by account actions when no TMDB session is configured.
var ErrNoSession = errors.New("no TMDB session; run `marquee account login` first")

// Session identifies the TMDB account used for remote actions.
type Session struct {
	SessionID string
	AccountID int
}

// Valid reports whether remote account actions can run.
func (s Session) Valid() bool {
	return s.SessionID != "" && s.AccountID != 0
}

// Service ties the TMDB client to the local databases.
type Service struct {
	client  *tmdb.Client
	stores  *store.Stores
	session Session

	// SaveSession persists login results. Defaults to config.SaveSession.
	SaveSession func(sessionID string, accountID int) error
	now         func() time.Time
}

// NewService creates a Service.
func NewService(client *tmdb.Client, stores *store.Stores, session Session) *Service {
	return &Service{
		client:      client,
		stores:      stores,
		session:     session,
		SaveSession: config.SaveSession,
		now:         time.Now,
	}
}

// Session returns the session the service acts with.
func (s *Service) Session() Session {
	return s.session
}

// Track starts tracking a title with the given category. Tracking a title
// that is already tracked only changes its category.
func (s *Service) Track(ctx context.Context, tmdbID int, mediaType string, category store.Category) (*store.Show, error) {
	if err := tmdb.ValidateMediaType(mediaType); err != nil {
		return nil, err
	}
	if category == "" {
		category = store.CategoryPlanToWatch
	}

	if existing, err := s.stores.Shows.GetShow(tmdbID, mediaType); err == nil {
		if existing.Category == category {
			return existing, nil
		}
		if err := s.stores.Shows.UpdateCategory(tmdbID, mediaType, category); err != nil {
			return nil, err
		}
		return s.stores.Shows.GetShow(tmdbID, mediaType)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	meta, err := s.client.GetMetadataByID(ctx, tmdbID, mediaType, false)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s %d: %w", mediaType, tmdbID, err)
	}

	show := showFromMetadata(meta)
	show.Category = category
	stored, _, err := s.stores.Shows.AddShow(show)
	if err != nil {
		return nil, err
	}
	slog.Info("Tracking title", "title", stored.Title, "type", mediaType, "category", category)
	return stored, nil
}

// SetCategory changes the watch status of a tracked title.
func (s *Service) SetCategory(tmdbID int, mediaType string, category store.Category) error {
	return s.stores.Shows.UpdateCategory(tmdbID, mediaType, category)
}

// SetPersonal validates and stores the personal fields of a tracked title.
func (s *Service) SetPersonal(tmdbID int, mediaType string, p store.Personal) error {
	if err := ValidatePersonal(p); err != nil {
		return err
	}
	return s.stores.Shows.UpdatePersonal(tmdbID, mediaType, p)
}

// ValidatePersonal checks a rating in [0, 10], YYYY-MM-DD dates with the
// finish not before the start, and non-negative counters.
func ValidatePersonal(p store.Personal) error {
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 10) {
		return fmt.Errorf("rating %v out of range 0-10", *p.Rating)
	}

	var start, finish time.Time
	var err error
	if p.StartDate != "" {
		if start, err = time.Parse(dateLayout, p.StartDate); err != nil {
			return fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", p.StartDate)
		}
	}
	if p.FinishDate != "" {
		if finish, err = time.Parse(dateLayout, p.FinishDate); err != nil {
			return fmt.Errorf("invalid finish date %q, expected YYYY-MM-DD", p.FinishDate)
		}
	}
	if !start.IsZero() && !finish.IsZero() && finish.Before(start) {
		return fmt.Errorf("finish date %s is before start date %s", p.FinishDate, p.StartDate)
	}

	if p.Rewatched < 0 {
		return errors.New("rewatch count cannot be negative")
	}
	if p.Episodes < 0 {
		return errors.New("watched episode count cannot be negative")
	}
	return nil
}

// Untrack removes a title. Episode reminders of a TV show go with it.
func (s *Service) Untrack(tmdbID int, mediaType string) error {
	if err := s.stores.Shows.DeleteShow(tmdbID, mediaType); err != nil {
		return err
	}
	if mediaType != tmdb.MediaTV {
		return nil
	}
	removed, err := s.stores.Reminders.DeleteRemindersForShow(tmdbID)
	if err != nil {
		return err
	}
	if removed > 0 {
		slog.Info("Removed episode reminders", "tv_id", tmdbID, "count", removed)
	}
	return nil
}

// ensureTracked returns the tracked row, tracking the title with category
// first when it is not tracked yet.
func (s *Service) ensureTracked(ctx context.Context, tmdbID int, mediaType string, category store.Category) (*store.Show, error) {
	show, err := s.stores.Shows.GetShow(tmdbID, mediaType)
	if err == nil {
		return show, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return s.Track(ctx, tmdbID, mediaType, category)
}

func (s *Service) today() string {
	return s.now().Format(dateLayout)
}

func showFromMetadata(meta *tmdb.Metadata) store.Show {
	return store.Show{
		TMDBID:      meta.TMDBID,
		MediaType:   meta.TMDBType,
		Title:       meta.Title,
		Overview:    meta.Overview,
		PosterPath:  meta.PosterPath,
		ReleaseDate: meta.ReleaseDate,
		VoteAverage: meta.VoteAverage,
		Genres:      meta.Genres,
	}
}

func showFromAccountItem(item tmdb.AccountItem) store.Show {
	return store.Show{
		TMDBID:      item.ID,
		MediaType:   item.MediaType,
		Title:       item.DisplayTitle(),
		Overview:    item.Overview,
		PosterPath:  item.PosterPath,
		ReleaseDate: item.Date(),
		VoteAverage: item.VoteAverage,
	}
}
