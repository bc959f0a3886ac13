package store

import (
	"errors"
	"fmt"
)

// Paths are the database files of a marquee installation.
type Paths struct {
	Shows     string
	Lists     string
	People    string
	Reminders string
}

// Stores bundles every marquee database.
type Stores struct {
	Shows     *ShowsStore
	Lists     *ListsStore
	People    *PeopleStore
	Reminders *RemindersStore
}

// OpenAll opens every database. Databases opened before a failure are closed.
func OpenAll(paths Paths) (*Stores, error) {
	s := &Stores{}
	var err error

	if s.Shows, err = OpenShows(paths.Shows); err != nil {
		return nil, err
	}
	if s.Lists, err = OpenLists(paths.Lists); err != nil {
		return nil, errors.Join(err, s.Close())
	}
	if s.People, err = OpenPeople(paths.People); err != nil {
		return nil, errors.Join(err, s.Close())
	}
	if s.Reminders, err = OpenReminders(paths.Reminders); err != nil {
		return nil, errors.Join(err, s.Close())
	}
	return s, nil
}

// All returns the underlying databases in a fixed order.
func (s *Stores) All() []*DB {
	var dbs []*DB
	if s.Shows != nil {
		dbs = append(dbs, s.Shows.DB)
	}
	if s.Lists != nil {
		dbs = append(dbs, s.Lists.DB)
	}
	if s.People != nil {
		dbs = append(dbs, s.People.DB)
	}
	if s.Reminders != nil {
		dbs = append(dbs, s.Reminders.DB)
	}
	return dbs
}

// Close closes every open database.
func (s *Stores) Close() error {
	var errs []error
	for _, db := range s.All() {
		if err := db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", db.Name(), err))
		}
	}
	return errors.Join(errs...)
}
