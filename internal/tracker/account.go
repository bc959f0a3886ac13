package tracker

import (
	"context"
	"errors"

	"github.com/lepinkainen/marquee/internal/store"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

// Favorite marks a title as favourite on TMDB and mirrors the flag locally,
// tracking the title as watched when it is not tracked yet.
func (s *Service) Favorite(ctx context.Context, tmdbID int, mediaType string) error {
	return s.setFavorite(ctx, tmdbID, mediaType, true)
}

// Unfavorite removes a title from the TMDB favourites.
func (s *Service) Unfavorite(ctx context.Context, tmdbID int, mediaType string) error {
	return s.setFavorite(ctx, tmdbID, mediaType, false)
}

func (s *Service) setFavorite(ctx context.Context, tmdbID int, mediaType string, favorite bool) error {
	if !s.session.Valid() {
		return ErrNoSession
	}
	if err := s.client.MarkFavorite(ctx, s.session.AccountID, s.session.SessionID, mediaType, tmdbID, favorite); err != nil {
		return err
	}
	return s.mirror(ctx, tmdbID, mediaType, favorite, store.CategoryWatched, func() error {
		return s.stores.Shows.SetFavorite(tmdbID, mediaType, favorite)
	})
}

// AddToWatchlist puts a title on the TMDB watchlist and mirrors it locally,
// tracking it as plan to watch when needed.
func (s *Service) AddToWatchlist(ctx context.Context, tmdbID int, mediaType string) error {
	return s.setWatchlist(ctx, tmdbID, mediaType, true)
}

// RemoveFromWatchlist takes a title off the TMDB watchlist.
func (s *Service) RemoveFromWatchlist(ctx context.Context, tmdbID int, mediaType string) error {
	return s.setWatchlist(ctx, tmdbID, mediaType, false)
}

func (s *Service) setWatchlist(ctx context.Context, tmdbID int, mediaType string, watchlist bool) error {
	if !s.session.Valid() {
		return ErrNoSession
	}
	if err := s.client.MarkWatchlist(ctx, s.session.AccountID, s.session.SessionID, mediaType, tmdbID, watchlist); err != nil {
		return err
	}
	return s.mirror(ctx, tmdbID, mediaType, watchlist, store.CategoryPlanToWatch, func() error {
		return s.stores.Shows.SetWatchlist(tmdbID, mediaType, watchlist)
	})
}

// Rate rates a title on TMDB and stores the value as the personal rating.
func (s *Service) Rate(ctx context.Context, tmdbID int, mediaType string, value float64) error {
	if !s.session.Valid() {
		return ErrNoSession
	}
	if err := s.client.Rate(ctx, s.session.SessionID, mediaType, tmdbID, value); err != nil {
		return err
	}
	return s.mirror(ctx, tmdbID, mediaType, true, store.CategoryWatched, func() error {
		return s.stores.Shows.SetRating(tmdbID, mediaType, &value)
	})
}

// Unrate deletes the TMDB rating and clears the personal rating.
func (s *Service) Unrate(ctx context.Context, tmdbID int, mediaType string) error {
	if !s.session.Valid() {
		return ErrNoSession
	}
	if err := s.client.DeleteRating(ctx, s.session.SessionID, mediaType, tmdbID); err != nil {
		return err
	}
	return s.mirror(ctx, tmdbID, mediaType, false, "", func() error {
		return s.stores.Shows.SetRating(tmdbID, mediaType, nil)
	})
}

// Account returns the TMDB account of the current session.
func (s *Service) Account(ctx context.Context) (*tmdb.Account, error) {
	if s.session.SessionID == "" {
		return nil, ErrNoSession
	}
	return s.client.GetAccount(ctx, s.session.SessionID)
}

// mirror applies a remote change locally. Adding tracks the title first;
// removing only touches titles that are already tracked.
func (s *Service) mirror(ctx context.Context, tmdbID int, mediaType string, adding bool, category store.Category, apply func() error) error {
	if adding {
		if _, err := s.ensureTracked(ctx, tmdbID, mediaType, category); err != nil {
			return err
		}
	} else if _, err := s.stores.Shows.GetShow(tmdbID, mediaType); errors.Is(err, store.ErrNotFound) {
		return nil
	} else if err != nil {
		return err
	}
	return apply()
}
