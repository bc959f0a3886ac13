package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// ListKind names one of the per-account lists TMDB keeps.
type ListKind string

const (
	ListFavorite  ListKind = "favorite"
	ListWatchlist ListKind = "watchlist"
	ListRated     ListKind = "rated"
)

// Valid reports whether k is a known account list.
func (k ListKind) Valid() bool {
	switch k {
	case ListFavorite, ListWatchlist, ListRated:
		return true
	}
	return false
}

// GetAccount returns the account the session belongs to.
func (c *Client) GetAccount(ctx context.Context, sessionID string) (*Account, error) {
	params, err := sessionParams(sessionID)
	if err != nil {
		return nil, err
	}

	var account Account
	if err := c.getJSON(ctx, c.endpoint("/account", params), &account); err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	return &account, nil
}

// AccountList fetches one page of an account list. TMDB paths use the plural
// "movies" for films and "tv" for shows.
func (c *Client) AccountList(ctx context.Context, accountID int, sessionID string, kind ListKind, mediaType string, page int) (*AccountPage, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown account list %q", kind)
	}
	if err := ValidateMediaType(mediaType); err != nil {
		return nil, err
	}
	params, err := sessionParams(sessionID)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("sort_by", "created_at.asc")

	segment := "tv"
	if mediaType == MediaMovie {
		segment = "movies"
	}

	var result AccountPage
	path := fmt.Sprintf("/account/%d/%s/%s", accountID, kind, segment)
	if err := c.getJSON(ctx, c.endpoint(path, params), &result); err != nil {
		return nil, fmt.Errorf("failed to fetch %s %s: %w", kind, segment, err)
	}
	for i := range result.Results {
		result.Results[i].MediaType = mediaType
	}
	return &result, nil
}

// AllAccountItems walks every page of an account list.
func (c *Client) AllAccountItems(ctx context.Context, accountID int, sessionID string, kind ListKind, mediaType string) ([]AccountItem, error) {
	var items []AccountItem
	for page := 1; ; page++ {
		result, err := c.AccountList(ctx, accountID, sessionID, kind, mediaType, page)
		if err != nil {
			return nil, err
		}
		items = append(items, result.Results...)
		if page >= result.TotalPages || len(result.Results) == 0 {
			return items, nil
		}
	}
}

type favoriteRequest struct {
	MediaType string `json:"media_type"`
	MediaID   int    `json:"media_id"`
	Favorite  bool   `json:"favorite"`
}

type watchlistRequest struct {
	MediaType string `json:"media_type"`
	MediaID   int    `json:"media_id"`
	Watchlist bool   `json:"watchlist"`
}

// MarkFavorite adds or removes a title from the account's favorites.
func (c *Client) MarkFavorite(ctx context.Context, accountID int, sessionID, mediaType string, mediaID int, favorite bool) error {
	if err := ValidateMediaType(mediaType); err != nil {
		return err
	}
	params, err := sessionParams(sessionID)
	if err != nil {
		return err
	}

	endpoint := c.endpoint(fmt.Sprintf("/account/%d/favorite", accountID), params)
	body := favoriteRequest{MediaType: mediaType, MediaID: mediaID, Favorite: favorite}
	if err := c.sendStatus(ctx, http.MethodPost, endpoint, body); err != nil {
		return fmt.Errorf("failed to update favorite for %s %d: %w", mediaType, mediaID, err)
	}
	return nil
}

// MarkWatchlist adds or removes a title from the account's watchlist.
func (c *Client) MarkWatchlist(ctx context.Context, accountID int, sessionID, mediaType string, mediaID int, watchlist bool) error {
	if err := ValidateMediaType(mediaType); err != nil {
		return err
	}
	params, err := sessionParams(sessionID)
	if err != nil {
		return err
	}

	endpoint := c.endpoint(fmt.Sprintf("/account/%d/watchlist", accountID), params)
	body := watchlistRequest{MediaType: mediaType, MediaID: mediaID, Watchlist: watchlist}
	if err := c.sendStatus(ctx, http.MethodPost, endpoint, body); err != nil {
		return fmt.Errorf("failed to update watchlist for %s %d: %w", mediaType, mediaID, err)
	}
	return nil
}
