package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

var stdin io.Reader = os.Stdin

// AccountCmd groups the TMDB account subcommands.
type AccountCmd struct {
	Login     AccountLoginCmd     `cmd:"" help:"Log in to TMDB and store the session"`
	Logout    AccountLogoutCmd    `cmd:"" help:"Delete the TMDB session"`
	Info      AccountInfoCmd      `cmd:"" help:"Show the logged in account"`
	Favorite  AccountFavoriteCmd  `cmd:"" help:"Mark or unmark a favourite"`
	Watchlist AccountWatchlistCmd `cmd:"" help:"Add to or remove from the watchlist"`
	Rate      AccountRateCmd      `cmd:"" help:"Rate a title or delete a rating"`
	Sync      AccountSyncCmd      `cmd:"" help:"Pull favourites, watchlist and ratings into the local database"`
}

// AccountLoginCmd represents the account login command
type AccountLoginCmd struct {
	Token string `help:"Request token that was already approved in the browser"`
}

func (l *AccountLoginCmd) Run(ctx context.Context) error {
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	token := l.Token
	if token == "" {
		var approveURL string
		token, approveURL, err = a.service.StartLogin(ctx)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "Approve access in your browser:\n  %s\nPress Enter when done.\n", approveURL)
		if _, err := bufio.NewReader(stdin).ReadString('\n'); err != nil && err != io.EOF {
			return err
		}
	}

	session, err := a.service.FinishLogin(ctx, token)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Logged in as account %d\n", session.AccountID)
	return nil
}

// AccountLogoutCmd represents the account logout command
type AccountLogoutCmd struct{}

func (l *AccountLogoutCmd) Run(ctx context.Context) error {
	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.service.Logout(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, "Logged out")
	return nil
}

// AccountInfoCmd represents the account info command
type AccountInfoCmd struct{}

func (i *AccountInfoCmd) Run(ctx context.Context) error {
	a, err := openSessionApp()
	if err != nil {
		return err
	}
	defer a.Close()

	account, err := a.service.Account(ctx)
	if err != nil {
		return err
	}
	name := account.Username
	if account.Name != "" {
		name = fmt.Sprintf("%s (%s)", account.Name, account.Username)
	}
	_, _ = fmt.Fprintf(stdout, "%s\n  id:       %d\n  country:  %s\n  language: %s\n", name, account.ID, account.Country, account.Language)
	return nil
}

// AccountFavoriteCmd represents the account favorite command
type AccountFavoriteCmd struct {
	Type   string `arg:"" help:"movie or tv" enum:"movie,tv"`
	ID     int    `arg:"" help:"TMDB id"`
	Remove bool   `help:"Remove from favourites instead"`
}

func (f *AccountFavoriteCmd) Run(ctx context.Context) error {
	a, err := openSessionApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if f.Remove {
		if err := a.service.Unfavorite(ctx, f.ID, f.Type); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "Removed %s %d from favourites\n", f.Type, f.ID)
		return nil
	}
	if err := a.service.Favorite(ctx, f.ID, f.Type); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Marked %s %d as favourite\n", f.Type, f.ID)
	return nil
}

// AccountWatchlistCmd represents the account watchlist command
type AccountWatchlistCmd struct {
	Type   string `arg:"" help:"movie or tv" enum:"movie,tv"`
	ID     int    `arg:"" help:"TMDB id"`
	Remove bool   `help:"Remove from the watchlist instead"`
}

func (w *AccountWatchlistCmd) Run(ctx context.Context) error {
	a, err := openSessionApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if w.Remove {
		if err := a.service.RemoveFromWatchlist(ctx, w.ID, w.Type); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "Removed %s %d from the watchlist\n", w.Type, w.ID)
		return nil
	}
	if err := a.service.AddToWatchlist(ctx, w.ID, w.Type); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Added %s %d to the watchlist\n", w.Type, w.ID)
	return nil
}

// AccountRateCmd represents the account rate command
type AccountRateCmd struct {
	Type   string  `arg:"" help:"movie or tv" enum:"movie,tv"`
	ID     int     `arg:"" help:"TMDB id"`
	Value  float64 `arg:"" optional:"" help:"Rating from 0.5 to 10 in steps of 0.5"`
	Delete bool    `help:"Delete the rating instead"`
}

func (r *AccountRateCmd) Run(ctx context.Context) error {
	if !r.Delete && r.Value == 0 {
		return fmt.Errorf("a rating value is required (or use --delete)")
	}

	a, err := openSessionApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if r.Delete {
		if err := a.service.Unrate(ctx, r.ID, r.Type); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "Deleted rating for %s %d\n", r.Type, r.ID)
		return nil
	}
	if err := a.service.Rate(ctx, r.ID, r.Type, r.Value); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Rated %s %d: %.1f\n", r.Type, r.ID, r.Value)
	return nil
}

// AccountSyncCmd represents the account sync command
type AccountSyncCmd struct{}

func (s *AccountSyncCmd) Run(ctx context.Context) error {
	a, err := openSessionApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.service.Sync(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Synced %d favourites, %d watchlist items and %d ratings (%d new titles)\n",
		result.Favorites, result.Watchlist, result.Rated, result.Added)
	return nil
}

func openSessionApp() (*app, error) {
	a, err := openApp(true)
	if err != nil {
		return nil, err
	}
	if err := a.cfg.RequireSession(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}
