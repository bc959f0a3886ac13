package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	merrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/store"
	"github.com/lepinkainen/marquee/internal/tmdb"
	"github.com/lepinkainen/marquee/internal/tui"
)

// SearchCmd represents the search command
type SearchCmd struct {
	Query         []string `arg:"" help:"Title to search for"`
	Type          string   `help:"Restrict results to movie or tv" enum:"multi,movie,tv" default:"multi"`
	Year          int      `help:"Only return titles released in this year"`
	Limit         int      `help:"Maximum number of results" default:"10"`
	Track         string   `help:"Track the picked title with this category (watching, plan_to_watch, watched, on_hold, dropped)"`
	NoInteractive bool     `help:"Print the results instead of opening the picker (the first result is tracked with --track)"`
}

func (s *SearchCmd) Run(ctx context.Context) error {
	query := strings.TrimSpace(strings.Join(s.Query, " "))
	if query == "" {
		return fmt.Errorf("search query is required")
	}

	var category store.Category
	if s.Track != "" {
		c, err := store.ParseCategory(s.Track)
		if err != nil {
			return err
		}
		category = c
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	results, fromCache, err := s.search(ctx, a.client, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	slog.Debug("Search finished", "query", query, "results", len(results), "from_cache", fromCache)

	if len(results) == 0 {
		_, _ = fmt.Fprintf(stdout, "No results for %q\n", query)
		return nil
	}

	var picked *tmdb.SearchResult
	if s.NoInteractive || !interactive() {
		printSearchResults(results)
		if category == "" {
			return nil
		}
		picked = &results[0]
	} else {
		selection, err := selectResult(query, results, trackedCategory(a.stores.Shows))
		if err != nil {
			return fmt.Errorf("picker failed: %w", err)
		}
		switch selection.Action {
		case tui.ActionStopped:
			return merrors.NewStopProcessingError("user quit the picker")
		case tui.ActionSelected:
			picked = selection.Selection
		default:
			_, _ = fmt.Fprintln(stdout, "Nothing selected")
			return nil
		}
	}

	if category == "" {
		meta, err := a.client.GetMetadataByResult(ctx, *picked)
		if err != nil {
			return fmt.Errorf("failed to fetch details: %w", err)
		}
		printMetadata(meta)
		return nil
	}

	show, err := a.service.Track(ctx, picked.ID, picked.MediaType, category)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Tracking %s as %s\n", describeShow(*show), show.Category)
	return nil
}

func (s *SearchCmd) search(ctx context.Context, client *tmdb.Client, query string) ([]tmdb.SearchResult, bool, error) {
	switch s.Type {
	case tmdb.MediaMovie:
		return client.CachedSearchMovies(ctx, query, s.Year, s.Limit)
	case tmdb.MediaTV:
		return client.CachedSearchTV(ctx, query, s.Year, s.Limit)
	default:
		return client.CachedSearchMulti(ctx, query, s.Year, s.Limit)
	}
}

func trackedCategory(shows *store.ShowsStore) tui.TrackedFunc {
	return func(tmdbID int, mediaType string) (string, bool) {
		show, err := shows.GetShow(tmdbID, mediaType)
		if err != nil {
			return "", false
		}
		return string(show.Category), true
	}
}

func printSearchResults(results []tmdb.SearchResult) {
	for _, r := range results {
		rating := "-"
		if r.VoteCount > 0 {
			rating = fmt.Sprintf("%.1f", r.VoteAverage)
		}
		_, _ = fmt.Fprintf(stdout, "%-5s %8d  %s (%s)  %s\n", r.MediaType, r.ID, r.DisplayTitle(), r.Year(), rating)
	}
}

func printMetadata(meta *tmdb.Metadata) {
	_, _ = fmt.Fprintf(stdout, "%s (%s) [%s %d]\n", meta.Title, yearOf(meta.ReleaseDate), meta.TMDBType, meta.TMDBID)
	if len(meta.Genres) > 0 {
		_, _ = fmt.Fprintf(stdout, "Genres:   %s\n", strings.Join(meta.Genres, ", "))
	}
	if meta.Runtime != nil {
		_, _ = fmt.Fprintf(stdout, "Runtime:  %d min\n", *meta.Runtime)
	}
	if meta.TotalSeasons != nil {
		_, _ = fmt.Fprintf(stdout, "Seasons:  %d\n", *meta.TotalSeasons)
	}
	if meta.Status != "" {
		_, _ = fmt.Fprintf(stdout, "Status:   %s\n", meta.Status)
	}
	if meta.Overview != "" {
		_, _ = fmt.Fprintf(stdout, "\n%s\n", meta.Overview)
	}
}
