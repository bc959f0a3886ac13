package cmd

import (
	"context"
	"fmt"
	"log/slog"
)

// SeasonCmd represents the season command
type SeasonCmd struct {
	TVID   int  `arg:"" name:"tv-id" help:"TMDB id of the TV show"`
	Season int  `arg:"" help:"Season number"`
	Force  bool `help:"Bypass the season cache"`
}

func (s *SeasonCmd) Run(ctx context.Context) error {
	if err := requirePositive("tv id", s.TVID); err != nil {
		return err
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	season, fromCache, err := a.client.CachedGetSeason(ctx, s.TVID, s.Season, s.Force)
	if err != nil {
		return err
	}
	slog.Debug("Season loaded", "tv_id", s.TVID, "season", s.Season, "from_cache", fromCache)

	_, _ = fmt.Fprintf(stdout, "%s (%d episodes)\n", season.Name, len(season.Episodes))
	for _, ep := range season.Episodes {
		airDate := ep.AirDate
		if airDate == "" {
			airDate = "TBA"
		}
		_, _ = fmt.Fprintf(stdout, "  %2d  %-10s  %s\n", ep.EpisodeNumber, airDate, ep.Name)
	}
	return nil
}

// EpisodeCmd represents the episode command
type EpisodeCmd struct {
	TVID    int `arg:"" name:"tv-id" help:"TMDB id of the TV show"`
	Season  int `arg:"" help:"Season number"`
	Episode int `arg:"" help:"Episode number"`
}

func (e *EpisodeCmd) Run(ctx context.Context) error {
	if err := requirePositive("tv id", e.TVID); err != nil {
		return err
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	ep, err := a.client.GetEpisode(ctx, e.TVID, e.Season, e.Episode)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(stdout, "S%02dE%02d %s\n", ep.SeasonNumber, ep.EpisodeNumber, ep.Name)
	if ep.AirDate != "" {
		_, _ = fmt.Fprintf(stdout, "  Air date: %s\n", ep.AirDate)
	}
	if ep.Runtime > 0 {
		_, _ = fmt.Fprintf(stdout, "  Runtime:  %d min\n", ep.Runtime)
	}
	if ep.VoteAverage > 0 {
		_, _ = fmt.Fprintf(stdout, "  Rating:   %.1f\n", ep.VoteAverage)
	}
	if ep.Overview != "" {
		_, _ = fmt.Fprintf(stdout, "\n%s\n", ep.Overview)
	}
	return nil
}

// PosterCmd represents the poster command
type PosterCmd struct {
	Type     string `arg:"" help:"movie or tv" enum:"movie,tv"`
	ID       int    `arg:"" help:"TMDB id"`
	Dir      string `short:"o" help:"Directory to save into (defaults to posters.dir)"`
	MaxWidth int    `help:"Resize to at most this width (defaults to posters.maxwidth)"`
}

func (p *PosterCmd) Run(ctx context.Context) error {
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	dir := p.Dir
	if dir == "" {
		dir = a.cfg.Posters.Dir
	}
	maxWidth := p.MaxWidth
	if maxWidth <= 0 {
		maxWidth = a.cfg.Posters.MaxWidth
	}

	path, err := a.client.DownloadPoster(ctx, p.ID, p.Type, dir, maxWidth)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Saved poster to %s\n", path)
	return nil
}
