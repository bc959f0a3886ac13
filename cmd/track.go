package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lepinkainen/marquee/internal/store"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

// TrackCmd groups the tracking subcommands.
type TrackCmd struct {
	Add      TrackAddCmd      `cmd:"" help:"Start tracking a title"`
	Status   TrackStatusCmd   `cmd:"" help:"Change the category of a tracked title"`
	Personal TrackPersonalCmd `cmd:"" help:"Edit your rating, dates and counters for a tracked title"`
	Remove   TrackRemoveCmd   `cmd:"" help:"Stop tracking a title"`
	Show     TrackShowCmd     `cmd:"" help:"Show a tracked title"`
	Ls       TrackLsCmd       `cmd:"" help:"List tracked titles"`
}

// TrackAddCmd represents the track add command
type TrackAddCmd struct {
	Type     string `arg:"" help:"movie or tv" enum:"movie,tv"`
	ID       int    `arg:"" help:"TMDB id"`
	Category string `short:"c" help:"Category (watching, plan_to_watch, watched, on_hold, dropped)" default:"plan_to_watch"`
}

func (t *TrackAddCmd) Run(ctx context.Context) error {
	if err := requirePositive("id", t.ID); err != nil {
		return err
	}
	category, err := store.ParseCategory(t.Category)
	if err != nil {
		return err
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	show, err := a.service.Track(ctx, t.ID, t.Type, category)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Tracking %s as %s\n", describeShow(*show), show.Category)
	return nil
}

// TrackStatusCmd represents the track status command
type TrackStatusCmd struct {
	Type     string `arg:"" help:"movie or tv" enum:"movie,tv"`
	ID       int    `arg:"" help:"TMDB id"`
	Category string `arg:"" help:"New category"`
}

func (t *TrackStatusCmd) Run() error {
	category, err := store.ParseCategory(t.Category)
	if err != nil {
		return err
	}

	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.service.SetCategory(t.ID, t.Type, category); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "%s %d is now %s\n", t.Type, t.ID, category)
	return nil
}

// TrackPersonalCmd edits the personal fields. Only the flags given change.
type TrackPersonalCmd struct {
	Type        string   `arg:"" help:"movie or tv" enum:"movie,tv"`
	ID          int      `arg:"" help:"TMDB id"`
	Rating      *float64 `help:"Your rating, 0-10"`
	ClearRating bool     `help:"Remove your rating"`
	Start       *string  `help:"Start date (YYYY-MM-DD, empty to clear)"`
	Finish      *string  `help:"Finish date (YYYY-MM-DD, empty to clear)"`
	Rewatched   *int     `help:"Number of rewatches"`
	Episodes    *int     `help:"Number of watched episodes"`
}

func (t *TrackPersonalCmd) Run() error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	show, err := a.stores.Shows.GetShow(t.ID, t.Type)
	if err != nil {
		return err
	}

	p := show.Personal
	if t.Rating != nil {
		p.Rating = t.Rating
	}
	if t.ClearRating {
		p.Rating = nil
	}
	if t.Start != nil {
		p.StartDate = *t.Start
	}
	if t.Finish != nil {
		p.FinishDate = *t.Finish
	}
	if t.Rewatched != nil {
		p.Rewatched = *t.Rewatched
	}
	if t.Episodes != nil {
		p.Episodes = *t.Episodes
	}

	if err := a.service.SetPersonal(t.ID, t.Type, p); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Updated %s\n", describeShow(*show))
	return nil
}

// TrackRemoveCmd represents the track remove command
type TrackRemoveCmd struct {
	Type string `arg:"" help:"movie or tv" enum:"movie,tv"`
	ID   int    `arg:"" help:"TMDB id"`
}

func (t *TrackRemoveCmd) Run() error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.service.Untrack(t.ID, t.Type); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Stopped tracking %s %d\n", t.Type, t.ID)
	return nil
}

// TrackShowCmd represents the track show command
type TrackShowCmd struct {
	Type string `arg:"" help:"movie or tv" enum:"movie,tv"`
	ID   int    `arg:"" help:"TMDB id"`
}

func (t *TrackShowCmd) Run() error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	show, err := a.stores.Shows.GetShow(t.ID, t.Type)
	if err != nil {
		return err
	}
	lists, err := a.stores.Lists.ListsContaining(t.ID, t.Type)
	if err != nil {
		return err
	}

	w := stdout
	_, _ = fmt.Fprintln(w, describeShow(*show))
	_, _ = fmt.Fprintf(w, "  Category:  %s\n", show.Category)
	if show.ReleaseDate != "" {
		_, _ = fmt.Fprintf(w, "  Released:  %s\n", show.ReleaseDate)
	}
	if len(show.Genres) > 0 {
		_, _ = fmt.Fprintf(w, "  Genres:    %s\n", strings.Join(show.Genres, ", "))
	}
	_, _ = fmt.Fprintf(w, "  TMDB:      %.1f\n", show.VoteAverage)
	if show.Personal.Rating != nil {
		_, _ = fmt.Fprintf(w, "  Rating:    %.1f\n", *show.Personal.Rating)
	}
	if show.Personal.StartDate != "" || show.Personal.FinishDate != "" {
		_, _ = fmt.Fprintf(w, "  Watched:   %s - %s\n", show.Personal.StartDate, show.Personal.FinishDate)
	}
	if show.Personal.Rewatched > 0 {
		_, _ = fmt.Fprintf(w, "  Rewatched: %d\n", show.Personal.Rewatched)
	}
	if show.Personal.Episodes > 0 {
		_, _ = fmt.Fprintf(w, "  Episodes:  %d\n", show.Personal.Episodes)
	}
	if flags := showFlags(*show); flags != "" {
		_, _ = fmt.Fprintf(w, "  Account:   %s\n", flags)
	}
	if len(lists) > 0 {
		names := make([]string, len(lists))
		for i, l := range lists {
			names[i] = l.Name
		}
		_, _ = fmt.Fprintf(w, "  Lists:     %s\n", strings.Join(names, ", "))
	}
	if show.Overview != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", show.Overview)
	}
	return nil
}

// TrackLsCmd represents the track ls command
type TrackLsCmd struct {
	Category  string `short:"c" help:"Only titles in this category"`
	Type      string `help:"Only movie or tv"`
	Favorite  bool   `help:"Only favourites"`
	Watchlist bool   `help:"Only titles on the watchlist"`
}

func (t *TrackLsCmd) Run() error {
	filter := store.ShowFilter{Favorite: t.Favorite, Watchlist: t.Watchlist}
	if t.Category != "" {
		c, err := store.ParseCategory(t.Category)
		if err != nil {
			return err
		}
		filter.Category = c
	}
	if t.Type != "" {
		if err := tmdb.ValidateMediaType(t.Type); err != nil {
			return err
		}
		filter.MediaType = t.Type
	}

	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	shows, err := a.stores.Shows.ListShows(filter)
	if err != nil {
		return err
	}
	if len(shows) == 0 {
		_, _ = fmt.Fprintln(stdout, "No tracked titles")
		return nil
	}
	for _, show := range shows {
		line := fmt.Sprintf("%-13s %s", show.Category, describeShow(show))
		if flags := showFlags(show); flags != "" {
			line += "  " + flags
		}
		if updated := updatedAgo(show.UpdatedAt); updated != "" {
			line += "  (updated " + updated + ")"
		}
		_, _ = fmt.Fprintln(stdout, line)
	}
	return nil
}

func describeShow(show store.Show) string {
	return fmt.Sprintf("%s (%s) [%s %d]", show.Title, yearOf(show.ReleaseDate), show.MediaType, show.TMDBID)
}

func yearOf(date string) string {
	if len(date) < 4 {
		return "Unknown"
	}
	return date[:4]
}

func showFlags(show store.Show) string {
	var flags []string
	if show.Favorite {
		flags = append(flags, "favorite")
	}
	if show.Watchlist {
		flags = append(flags, "watchlist")
	}
	return strings.Join(flags, ", ")
}

func updatedAgo(stamp string) string {
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return ""
	}
	return humanize.Time(t)
}
