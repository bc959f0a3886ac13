package tmdb

import (
	"context"
	"fmt"
)

// GetPerson fetches a person by TMDB ID.
func (c *Client) GetPerson(ctx context.Context, personID int) (*Person, error) {
	var person Person
	if err := c.getJSON(ctx, c.endpoint(fmt.Sprintf("/person/%d", personID), nil), &person); err != nil {
		return nil, fmt.Errorf("failed to fetch person %d: %w", personID, err)
	}
	return &person, nil
}
