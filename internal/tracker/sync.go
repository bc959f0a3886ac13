package tracker

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/marquee/internal/store"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

// SyncResult counts what Sync pulled and how many titles it newly tracked.
type SyncResult struct {
	Favorites int
	Watchlist int
	Rated     int
	Added     int
}

type syncSource struct {
	kind      tmdb.ListKind
	mediaType string
}

// watchlist first, so titles on both lists are added as plan to watch
var syncSources = []syncSource{
	{tmdb.ListWatchlist, tmdb.MediaMovie},
	{tmdb.ListWatchlist, tmdb.MediaTV},
	{tmdb.ListFavorite, tmdb.MediaMovie},
	{tmdb.ListFavorite, tmdb.MediaTV},
	{tmdb.ListRated, tmdb.MediaMovie},
	{tmdb.ListRated, tmdb.MediaTV},
}

// Sync pulls the account's favourites, watchlist and ratings and applies them
// to the local shows table. Missing titles are added; local rows are never
// deleted.
func (s *Service) Sync(ctx context.Context) (SyncResult, error) {
	var result SyncResult
	if !s.session.Valid() {
		return result, ErrNoSession
	}

	lists := make([][]tmdb.AccountItem, len(syncSources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range syncSources {
		g.Go(func() error {
			items, err := s.client.AllAccountItems(gctx, s.session.AccountID, s.session.SessionID, src.kind, src.mediaType)
			if err != nil {
				return fmt.Errorf("fetching %s %s: %w", src.kind, src.mediaType, err)
			}
			lists[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	for i, src := range syncSources {
		for _, item := range lists[i] {
			added, err := s.applySyncItem(src.kind, item)
			if err != nil {
				return result, err
			}
			if added {
				result.Added++
			}
			switch src.kind {
			case tmdb.ListFavorite:
				result.Favorites++
			case tmdb.ListWatchlist:
				result.Watchlist++
			case tmdb.ListRated:
				result.Rated++
			}
		}
	}

	slog.Info("Account sync finished", "favorites", result.Favorites, "watchlist", result.Watchlist,
		"rated", result.Rated, "added", result.Added)
	return result, nil
}

func (s *Service) applySyncItem(kind tmdb.ListKind, item tmdb.AccountItem) (bool, error) {
	show := showFromAccountItem(item)
	show.Category = store.CategoryWatched
	if kind == tmdb.ListWatchlist {
		show.Category = store.CategoryPlanToWatch
	}

	_, added, err := s.stores.Shows.AddShow(show)
	if err != nil {
		return false, err
	}

	switch kind {
	case tmdb.ListFavorite:
		err = s.stores.Shows.SetFavorite(item.ID, item.MediaType, true)
	case tmdb.ListWatchlist:
		err = s.stores.Shows.SetWatchlist(item.ID, item.MediaType, true)
	case tmdb.ListRated:
		rating := item.Rating
		err = s.stores.Shows.SetRating(item.ID, item.MediaType, &rating)
	}
	return added, err
}
