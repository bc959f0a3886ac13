package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Category is the personal watch status of a tracked title.
type Category string

const (
	CategoryWatching    Category = "watching"
	CategoryPlanToWatch Category = "plan_to_watch"
	CategoryWatched     Category = "watched"
	CategoryOnHold      Category = "on_hold"
	CategoryDropped     Category = "dropped"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryWatching, CategoryPlanToWatch, CategoryWatched, CategoryOnHold, CategoryDropped}

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// ParseCategory accepts the stored form ("plan_to_watch") as well as
// dashed or spaced variants.
func ParseCategory(s string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	for _, c := range Categories {
		if string(c) == normalized {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Show is a tracked movie or TV show.
type Show struct {
	ID          int64
	TMDBID      int
	MediaType   string
	Title       string
	Overview    string
	PosterPath  string
	ReleaseDate string
	VoteAverage float64
	Genres      []string
	Category    Category
	Personal    Personal
	Favorite    bool
	Watchlist   bool
	UpdatedAt   string
}

// Personal holds the user's own notes on a title.
type Personal struct {
	Rating     *float64
	StartDate  string
	FinishDate string
	Rewatched  int
	Episodes   int
}

// ShowFilter narrows ListShows. Zero values match everything.
type ShowFilter struct {
	Category  Category
	MediaType string
	Favorite  bool
	Watchlist bool
}

const showsSchemaVersion = 1

var showsSchema = Schema{
	Name:    "shows",
	Version: showsSchemaVersion,
	Tables: []Table{{
		Name: "shows",
		Create: `CREATE TABLE IF NOT EXISTS shows (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tmdb_id INTEGER NOT NULL,
			media_type TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			overview TEXT NOT NULL DEFAULT '',
			poster_path TEXT NOT NULL DEFAULT '',
			release_date TEXT NOT NULL DEFAULT '',
			vote_average REAL NOT NULL DEFAULT 0,
			genres TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT 'plan_to_watch',
			personal_rating REAL,
			personal_start_date TEXT NOT NULL DEFAULT '',
			personal_finish_date TEXT NOT NULL DEFAULT '',
			personal_rewatched INTEGER NOT NULL DEFAULT 0,
			personal_episodes INTEGER NOT NULL DEFAULT 0,
			favorite INTEGER NOT NULL DEFAULT 0,
			watchlist INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL DEFAULT '',
			UNIQUE (tmdb_id, media_type)
		)`,
		Indexes: []string{
			`CREATE INDEX IF NOT EXISTS idx_shows_release_date ON shows(release_date)`,
			`CREATE INDEX IF NOT EXISTS idx_shows_category ON shows(category)`,
		},
		SurrogateKey: "id",
	}},
}

const showColumns = `id, tmdb_id, media_type, title, overview, poster_path, release_date, vote_average,
	genres, category, personal_rating, personal_start_date, personal_finish_date,
	personal_rewatched, personal_episodes, favorite, watchlist, updated_at`

// ShowsStore is the database of tracked titles.
type ShowsStore struct {
	*DB
}

// OpenShows opens the shows database at path.
func OpenShows(path string) (*ShowsStore, error) {
	db, err := Open(path, showsSchema)
	if err != nil {
		return nil, err
	}
	return &ShowsStore{DB: db}, nil
}

// AddShow inserts show unless a row with the same TMDB id and media type
// exists. It returns the stored row and whether it was inserted.
func (s *ShowsStore) AddShow(show Show) (*Show, bool, error) {
	if show.Category == "" {
		show.Category = CategoryPlanToWatch
	}

	var rating any
	if show.Personal.Rating != nil {
		rating = *show.Personal.Rating
	}

	res, err := s.db.Exec(`INSERT OR IGNORE INTO shows (
			tmdb_id, media_type, title, overview, poster_path, release_date, vote_average,
			genres, category, personal_rating, personal_start_date, personal_finish_date,
			personal_rewatched, personal_episodes, favorite, watchlist, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		show.TMDBID, show.MediaType, show.Title, show.Overview, show.PosterPath, show.ReleaseDate,
		show.VoteAverage, strings.Join(show.Genres, ","), string(show.Category), rating,
		show.Personal.StartDate, show.Personal.FinishDate, show.Personal.Rewatched, show.Personal.Episodes,
		boolInt(show.Favorite), boolInt(show.Watchlist), now())
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert show %d: %w", show.TMDBID, err)
	}

	inserted, _ := res.RowsAffected()
	stored, err := s.GetShow(show.TMDBID, show.MediaType)
	if err != nil {
		return nil, false, err
	}
	return stored, inserted > 0, nil
}

// GetShow returns the tracked title, or ErrNotFound.
func (s *ShowsStore) GetShow(tmdbID int, mediaType string) (*Show, error) {
	row := s.db.QueryRow(`SELECT `+showColumns+` FROM shows WHERE tmdb_id = ? AND media_type = ?`, tmdbID, mediaType)
	show, err := scanShow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("show %s/%d: %w", mediaType, tmdbID, ErrNotFound)
	}
	return show, err
}

// ListShows returns tracked titles matching filter, ordered by title.
func (s *ShowsStore) ListShows(filter ShowFilter) ([]Show, error) {
	var (
		where []string
		args  []any
	)
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, string(filter.Category))
	}
	if filter.MediaType != "" {
		where = append(where, "media_type = ?")
		args = append(args, filter.MediaType)
	}
	if filter.Favorite {
		where = append(where, "favorite = 1")
	}
	if filter.Watchlist {
		where = append(where, "watchlist = 1")
	}

	query := `SELECT ` + showColumns + ` FROM shows`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY title COLLATE NOCASE, tmdb_id"

	return s.queryShows(query, args...)
}

// ReleasedOn returns tracked movies whose release date is date (YYYY-MM-DD).
func (s *ShowsStore) ReleasedOn(date string) ([]Show, error) {
	return s.queryShows(`SELECT `+showColumns+` FROM shows WHERE media_type = 'movie' AND release_date = ? ORDER BY title`, date)
}

// UpdateCategory sets the watch status of a tracked title.
func (s *ShowsStore) UpdateCategory(tmdbID int, mediaType string, category Category) error {
	return s.update(tmdbID, mediaType, "category = ?", string(category))
}

// UpdatePersonal replaces the personal fields of a tracked title.
func (s *ShowsStore) UpdatePersonal(tmdbID int, mediaType string, p Personal) error {
	var rating any
	if p.Rating != nil {
		rating = *p.Rating
	}
	return s.update(tmdbID, mediaType,
		"personal_rating = ?, personal_start_date = ?, personal_finish_date = ?, personal_rewatched = ?, personal_episodes = ?",
		rating, p.StartDate, p.FinishDate, p.Rewatched, p.Episodes)
}

// SetRating sets or clears (nil) the personal rating only.
func (s *ShowsStore) SetRating(tmdbID int, mediaType string, rating *float64) error {
	var value any
	if rating != nil {
		value = *rating
	}
	return s.update(tmdbID, mediaType, "personal_rating = ?", value)
}

// SetFavorite sets the favorite flag.
func (s *ShowsStore) SetFavorite(tmdbID int, mediaType string, favorite bool) error {
	return s.update(tmdbID, mediaType, "favorite = ?", boolInt(favorite))
}

// SetWatchlist sets the watchlist flag.
func (s *ShowsStore) SetWatchlist(tmdbID int, mediaType string, watchlist bool) error {
	return s.update(tmdbID, mediaType, "watchlist = ?", boolInt(watchlist))
}

// DeleteShow removes a tracked title.
func (s *ShowsStore) DeleteShow(tmdbID int, mediaType string) error {
	res, err := s.db.Exec(`DELETE FROM shows WHERE tmdb_id = ? AND media_type = ?`, tmdbID, mediaType)
	if err != nil {
		return fmt.Errorf("failed to delete show %d: %w", tmdbID, err)
	}
	return requireAffected(res, "show %s/%d", mediaType, tmdbID)
}

func (s *ShowsStore) update(tmdbID int, mediaType, set string, args ...any) error {
	args = append(args, now(), tmdbID, mediaType)
	res, err := s.db.Exec(`UPDATE shows SET `+set+`, updated_at = ? WHERE tmdb_id = ? AND media_type = ?`, args...)
	if err != nil {
		return fmt.Errorf("failed to update show %d: %w", tmdbID, err)
	}
	return requireAffected(res, "show %s/%d", mediaType, tmdbID)
}

func (s *ShowsStore) queryShows(query string, args ...any) ([]Show, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var shows []Show
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		shows = append(shows, *show)
	}
	return shows, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanShow(row scanner) (*Show, error) {
	var (
		show      Show
		genres    string
		category  string
		rating    sql.NullFloat64
		favorite  int
		watchlist int
	)
	err := row.Scan(&show.ID, &show.TMDBID, &show.MediaType, &show.Title, &show.Overview, &show.PosterPath,
		&show.ReleaseDate, &show.VoteAverage, &genres, &category, &rating,
		&show.Personal.StartDate, &show.Personal.FinishDate, &show.Personal.Rewatched, &show.Personal.Episodes,
		&favorite, &watchlist, &show.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if genres != "" {
		show.Genres = strings.Split(genres, ",")
	}
	show.Category = Category(category)
	if rating.Valid {
		r := rating.Float64
		show.Personal.Rating = &r
	}
	show.Favorite = favorite != 0
	show.Watchlist = watchlist != 0
	return &show, nil
}

func requireAffected(res sql.Result, format string, args ...any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
	}
	return nil
}
