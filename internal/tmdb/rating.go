package tmdb

import (
	"context"
	"fmt"
	"math"
	"net/http"
)

// ValidRating reports whether value is a rating TMDB accepts: 0.5 to 10 in
// steps of 0.5.
func ValidRating(value float64) bool {
	if value < 0.5 || value > 10 {
		return false
	}
	return math.Mod(value*2, 1) == 0
}

// Rate sets the account's rating for a movie or TV show.
func (c *Client) Rate(ctx context.Context, sessionID, mediaType string, mediaID int, value float64) error {
	if !ValidRating(value) {
		return fmt.Errorf("%w: %v", ErrInvalidRating, value)
	}
	endpoint, err := c.ratingEndpoint(sessionID, mediaType, mediaID)
	if err != nil {
		return err
	}

	body := map[string]float64{"value": value}
	if err := c.sendStatus(ctx, http.MethodPost, endpoint, body); err != nil {
		return fmt.Errorf("failed to rate %s %d: %w", mediaType, mediaID, err)
	}
	return nil
}

// DeleteRating removes the account's rating for a movie or TV show.
func (c *Client) DeleteRating(ctx context.Context, sessionID, mediaType string, mediaID int) error {
	endpoint, err := c.ratingEndpoint(sessionID, mediaType, mediaID)
	if err != nil {
		return err
	}

	if err := c.sendStatus(ctx, http.MethodDelete, endpoint, nil); err != nil {
		return fmt.Errorf("failed to delete rating for %s %d: %w", mediaType, mediaID, err)
	}
	return nil
}

func (c *Client) ratingEndpoint(sessionID, mediaType string, mediaID int) (string, error) {
	if err := ValidateMediaType(mediaType); err != nil {
		return "", err
	}
	params, err := sessionParams(sessionID)
	if err != nil {
		return "", err
	}
	return c.endpoint(fmt.Sprintf("/%s/%d/rating", mediaType, mediaID), params), nil
}
