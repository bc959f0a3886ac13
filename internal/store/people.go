package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Person is a favourite cast or crew member.
type Person struct {
	TMDBID             int
	Name               string
	KnownForDepartment string
	ProfilePath        string
	Birthday           string
	PlaceOfBirth       string
	AddedAt            string
}

var peopleSchema = Schema{
	Name:    "people",
	Version: 1,
	Tables: []Table{{
		Name: "people",
		Create: `CREATE TABLE IF NOT EXISTS people (
			tmdb_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			known_for_department TEXT NOT NULL DEFAULT '',
			profile_path TEXT NOT NULL DEFAULT '',
			birthday TEXT NOT NULL DEFAULT '',
			place_of_birth TEXT NOT NULL DEFAULT '',
			added_at TEXT NOT NULL DEFAULT ''
		)`,
	}},
}

// PeopleStore is the database of favourite people.
type PeopleStore struct {
	*DB
}

// OpenPeople opens the people database at path.
func OpenPeople(path string) (*PeopleStore, error) {
	db, err := Open(path, peopleSchema)
	if err != nil {
		return nil, err
	}
	return &PeopleStore{DB: db}, nil
}

// AddPerson stores a person unless already present. It reports whether a
// row was inserted.
func (s *PeopleStore) AddPerson(p Person) (bool, error) {
	if p.AddedAt == "" {
		p.AddedAt = now()
	}
	res, err := s.db.Exec(`INSERT OR IGNORE INTO people
		(tmdb_id, name, known_for_department, profile_path, birthday, place_of_birth, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.TMDBID, p.Name, p.KnownForDepartment, p.ProfilePath, p.Birthday, p.PlaceOfBirth, p.AddedAt)
	if err != nil {
		return false, fmt.Errorf("failed to add person %d: %w", p.TMDBID, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// GetPerson returns a stored person, or ErrNotFound.
func (s *PeopleStore) GetPerson(tmdbID int) (*Person, error) {
	var p Person
	err := s.db.QueryRow(`SELECT tmdb_id, name, known_for_department, profile_path, birthday, place_of_birth, added_at
		FROM people WHERE tmdb_id = ?`, tmdbID).
		Scan(&p.TMDBID, &p.Name, &p.KnownForDepartment, &p.ProfilePath, &p.Birthday, &p.PlaceOfBirth, &p.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("person %d: %w", tmdbID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPeople returns all stored people by name.
func (s *PeopleStore) ListPeople() ([]Person, error) {
	rows, err := s.db.Query(`SELECT tmdb_id, name, known_for_department, profile_path, birthday, place_of_birth, added_at
		FROM people ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var people []Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.TMDBID, &p.Name, &p.KnownForDepartment, &p.ProfilePath, &p.Birthday, &p.PlaceOfBirth, &p.AddedAt); err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

// DeletePerson removes a stored person.
func (s *PeopleStore) DeletePerson(tmdbID int) error {
	res, err := s.db.Exec(`DELETE FROM people WHERE tmdb_id = ?`, tmdbID)
	if err != nil {
		return fmt.Errorf("failed to delete person %d: %w", tmdbID, err)
	}
	return requireAffected(res, "person %d", tmdbID)
}
