package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// List is a user-defined list of titles.
type List struct {
	ID          int
	Name        string
	Description string
	CreatedAt   string
}

// ListItem is a title on a list.
type ListItem struct {
	ListID    int
	TMDBID    int
	MediaType string
	Title     string
	AddedAt   string
}

const listsSchemaVersion = 1

var listsSchema = Schema{
	Name:    "lists",
	Version: listsSchemaVersion,
	Tables: []Table{
		{
			Name: "lists",
			Create: `CREATE TABLE IF NOT EXISTS lists (
				list_id INTEGER NOT NULL,
				list_name TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				created_at TEXT NOT NULL DEFAULT '',
				UNIQUE (list_id, list_name)
			)`,
		},
		{
			Name: "list_items",
			Create: `CREATE TABLE IF NOT EXISTS list_items (
				list_id INTEGER NOT NULL,
				tmdb_id INTEGER NOT NULL,
				media_type TEXT NOT NULL,
				title TEXT NOT NULL DEFAULT '',
				added_at TEXT NOT NULL DEFAULT '',
				UNIQUE (list_id, tmdb_id, media_type)
			)`,
			Indexes: []string{
				`CREATE INDEX IF NOT EXISTS idx_list_items_title ON list_items(tmdb_id, media_type)`,
			},
		},
	},
}

// ListsStore is the database of custom lists.
type ListsStore struct {
	*DB
}

// OpenLists opens the lists database at path.
func OpenLists(path string) (*ListsStore, error) {
	db, err := Open(path, listsSchema)
	if err != nil {
		return nil, err
	}
	return &ListsStore{DB: db}, nil
}

// NextListID returns one more than the highest list id in use.
func (s *ListsStore) NextListID() (int, error) {
	var maxID sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(list_id) FROM lists`).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("failed to read list ids: %w", err)
	}
	return int(maxID.Int64) + 1, nil
}

// CreateList inserts a list. Creating the same id and name again is a no-op.
func (s *ListsStore) CreateList(list List) error {
	if list.Name == "" {
		return errors.New("list name is required")
	}
	if list.CreatedAt == "" {
		list.CreatedAt = now()
	}
	_, err := s.db.Exec(`INSERT OR IGNORE INTO lists (list_id, list_name, description, created_at) VALUES (?, ?, ?, ?)`,
		list.ID, list.Name, list.Description, list.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create list %q: %w", list.Name, err)
	}
	return nil
}

// GetLists returns all lists ordered by id.
func (s *ListsStore) GetLists() ([]List, error) {
	return s.queryLists(`SELECT list_id, list_name, description, created_at FROM lists ORDER BY list_id`)
}

// GetListByName returns the list called name, or ErrNotFound.
func (s *ListsStore) GetListByName(name string) (*List, error) {
	var l List
	err := s.db.QueryRow(`SELECT list_id, list_name, description, created_at FROM lists WHERE list_name = ? ORDER BY list_id LIMIT 1`, name).
		Scan(&l.ID, &l.Name, &l.Description, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("list %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// RenameList changes the name of a list.
func (s *ListsStore) RenameList(listID int, name string) error {
	if name == "" {
		return errors.New("list name is required")
	}
	res, err := s.db.Exec(`UPDATE lists SET list_name = ? WHERE list_id = ?`, name, listID)
	if err != nil {
		return fmt.Errorf("failed to rename list %d: %w", listID, err)
	}
	return requireAffected(res, "list %d", listID)
}

// DeleteList removes a list together with its items.
func (s *ListsStore) DeleteList(listID int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM list_items WHERE list_id = ?`, listID); err != nil {
		return fmt.Errorf("failed to delete items of list %d: %w", listID, err)
	}
	res, err := tx.Exec(`DELETE FROM lists WHERE list_id = ?`, listID)
	if err != nil {
		return fmt.Errorf("failed to delete list %d: %w", listID, err)
	}
	if err := requireAffected(res, "list %d", listID); err != nil {
		return err
	}
	return tx.Commit()
}

// AddToList adds a title to a list unless it is already there. It reports
// whether a row was inserted.
func (s *ListsStore) AddToList(item ListItem) (bool, error) {
	if item.AddedAt == "" {
		item.AddedAt = now()
	}
	res, err := s.db.Exec(`INSERT OR IGNORE INTO list_items (list_id, tmdb_id, media_type, title, added_at) VALUES (?, ?, ?, ?, ?)`,
		item.ListID, item.TMDBID, item.MediaType, item.Title, item.AddedAt)
	if err != nil {
		return false, fmt.Errorf("failed to add %d to list %d: %w", item.TMDBID, item.ListID, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// RemoveFromList removes a title from a list.
func (s *ListsStore) RemoveFromList(listID, tmdbID int, mediaType string) error {
	res, err := s.db.Exec(`DELETE FROM list_items WHERE list_id = ? AND tmdb_id = ? AND media_type = ?`, listID, tmdbID, mediaType)
	if err != nil {
		return fmt.Errorf("failed to remove %d from list %d: %w", tmdbID, listID, err)
	}
	return requireAffected(res, "item %s/%d in list %d", mediaType, tmdbID, listID)
}

// ListItems returns the titles on a list in the order they were added.
func (s *ListsStore) ListItems(listID int) ([]ListItem, error) {
	rows, err := s.db.Query(`SELECT list_id, tmdb_id, media_type, title, added_at FROM list_items WHERE list_id = ? ORDER BY added_at, rowid`, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query list %d: %w", listID, err)
	}
	defer func() { _ = rows.Close() }()

	var items []ListItem
	for rows.Next() {
		var it ListItem
		if err := rows.Scan(&it.ListID, &it.TMDBID, &it.MediaType, &it.Title, &it.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListsContaining returns the lists a title is on, one entry per list id.
// When an id is stored under several names the first name wins.
func (s *ListsStore) ListsContaining(tmdbID int, mediaType string) ([]List, error) {
	return s.queryLists(`SELECT l.list_id, MIN(l.list_name), l.description, l.created_at
		FROM lists l
		WHERE l.list_id IN (SELECT list_id FROM list_items WHERE tmdb_id = ? AND media_type = ?)
		GROUP BY l.list_id
		ORDER BY l.list_id`, tmdbID, mediaType)
}

func (s *ListsStore) queryLists(query string, args ...any) ([]List, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lists []List
	for rows.Next() {
		var l List
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.CreatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}
