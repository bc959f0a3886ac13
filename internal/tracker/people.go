package tracker

import (
	"context"

	"github.com/lepinkainen/marquee/internal/store"
)

// AddPerson fetches a person from TMDB and stores them as a favourite.
func (s *Service) AddPerson(ctx context.Context, personID int) (*store.Person, bool, error) {
	p, err := s.client.GetPerson(ctx, personID)
	if err != nil {
		return nil, false, err
	}

	person := store.Person{
		TMDBID:             p.ID,
		Name:               p.Name,
		KnownForDepartment: p.KnownForDepartment,
		ProfilePath:        p.ProfilePath,
		Birthday:           p.Birthday,
		PlaceOfBirth:       p.PlaceOfBirth,
	}
	added, err := s.stores.People.AddPerson(person)
	if err != nil {
		return nil, false, err
	}
	stored, err := s.stores.People.GetPerson(p.ID)
	if err != nil {
		return nil, false, err
	}
	return stored, added, nil
}
