package tmdb

import (
	"context"
	"fmt"
	"strings"
)

// genreNames resolves the genre ids of a details payload to names. Names from
// the payload itself are used when the genre list has no entry.
func (c *Client) genreNames(ctx context.Context, mediaType string, details map[string]any) ([]string, error) {
	rawGenres, ok := details["genres"].([]any)
	if !ok || len(rawGenres) == 0 {
		return nil, nil
	}

	genres, err := c.getGenres(ctx, mediaType)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rawGenres))
	for _, raw := range rawGenres {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		id, ok := getInt(m, "id")
		if !ok {
			continue
		}
		name, ok := genres[id]
		if !ok {
			name, _ = getString(m, "name")
		}
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	return names, nil
}

func (c *Client) getGenres(ctx context.Context, mediaType string) (map[int]string, error) {
	c.mu.RLock()
	if genres, ok := c.genreCache[mediaType]; ok {
		c.mu.RUnlock()
		return genres, nil
	}
	c.mu.RUnlock()

	var response struct {
		Genres []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"genres"`
	}

	if err := c.getJSON(ctx, c.endpoint(fmt.Sprintf("/genre/%s/list", mediaType), nil), &response); err != nil {
		return nil, err
	}

	result := make(map[int]string, len(response.Genres))
	for _, g := range response.Genres {
		result[g.ID] = g.Name
	}

	c.mu.Lock()
	c.genreCache[mediaType] = result
	c.mu.Unlock()

	return result, nil
}
