package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/lepinkainen/marquee/internal/store"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

// CreateList creates a list under the next free id.
func (s *Service) CreateList(name, description string) (*store.List, error) {
	if _, err := s.stores.Lists.GetListByName(name); err == nil {
		return nil, fmt.Errorf("list %q already exists", name)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	id, err := s.stores.Lists.NextListID()
	if err != nil {
		return nil, err
	}
	if err := s.stores.Lists.CreateList(store.List{ID: id, Name: name, Description: description}); err != nil {
		return nil, err
	}
	return s.stores.Lists.GetListByName(name)
}

// AddToList adds a title to the named list. The title is taken from the
// tracked row when there is one, otherwise from TMDB.
func (s *Service) AddToList(ctx context.Context, listName string, tmdbID int, mediaType string) (bool, error) {
	if err := tmdb.ValidateMediaType(mediaType); err != nil {
		return false, err
	}
	list, err := s.stores.Lists.GetListByName(listName)
	if err != nil {
		return false, err
	}

	title, err := s.title(ctx, tmdbID, mediaType)
	if err != nil {
		return false, err
	}
	return s.stores.Lists.AddToList(store.ListItem{ListID: list.ID, TMDBID: tmdbID, MediaType: mediaType, Title: title})
}

func (s *Service) title(ctx context.Context, tmdbID int, mediaType string) (string, error) {
	show, err := s.stores.Shows.GetShow(tmdbID, mediaType)
	if err == nil {
		return show.Title, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}
	meta, err := s.client.GetMetadataByID(ctx, tmdbID, mediaType, false)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s %d: %w", mediaType, tmdbID, err)
	}
	return meta.Title, nil
}
