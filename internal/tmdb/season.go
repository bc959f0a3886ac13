package tmdb

import (
	"context"
	"fmt"
)

// GetSeason fetches a TV season and its episode list.
func (c *Client) GetSeason(ctx context.Context, tvID, seasonNumber int) (*Season, error) {
	var season Season
	path := fmt.Sprintf("/tv/%d/season/%d", tvID, seasonNumber)
	if err := c.getJSON(ctx, c.endpoint(path, nil), &season); err != nil {
		return nil, fmt.Errorf("failed to fetch season %d of tv %d: %w", seasonNumber, tvID, err)
	}
	return &season, nil
}

// GetEpisode fetches a single episode.
func (c *Client) GetEpisode(ctx context.Context, tvID, seasonNumber, episodeNumber int) (*Episode, error) {
	var episode Episode
	path := fmt.Sprintf("/tv/%d/season/%d/episode/%d", tvID, seasonNumber, episodeNumber)
	if err := c.getJSON(ctx, c.endpoint(path, nil), &episode); err != nil {
		return nil, fmt.Errorf("failed to fetch episode S%02dE%02d of tv %d: %w", seasonNumber, episodeNumber, tvID, err)
	}
	return &episode, nil
}
