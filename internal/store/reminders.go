package store

import (
	"fmt"
)

// EpisodeReminder is a pending notification for an upcoming episode.
type EpisodeReminder struct {
	ID            int64
	TVID          int
	ShowName      string
	SeasonNumber  int
	EpisodeNumber int
	EpisodeName   string
	AirDate       string
	Notified      bool
	CreatedAt     string
}

var remindersSchema = Schema{
	Name:    "reminders",
	Version: 1,
	Tables: []Table{{
		Name: "episode_reminders",
		Create: `CREATE TABLE IF NOT EXISTS episode_reminders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tv_id INTEGER NOT NULL,
			show_name TEXT NOT NULL DEFAULT '',
			season_number INTEGER NOT NULL,
			episode_number INTEGER NOT NULL,
			episode_name TEXT NOT NULL DEFAULT '',
			air_date TEXT NOT NULL,
			notified INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT '',
			UNIQUE (tv_id, season_number, episode_number)
		)`,
		Indexes: []string{
			`CREATE INDEX IF NOT EXISTS idx_episode_reminders_air_date ON episode_reminders(air_date)`,
		},
		SurrogateKey: "id",
	}},
}

const reminderColumns = `id, tv_id, show_name, season_number, episode_number, episode_name, air_date, notified, created_at`

// RemindersStore is the database of episode reminders.
type RemindersStore struct {
	*DB
}

// OpenReminders opens the reminders database at path.
func OpenReminders(path string) (*RemindersStore, error) {
	db, err := Open(path, remindersSchema)
	if err != nil {
		return nil, err
	}
	return &RemindersStore{DB: db}, nil
}

// AddEpisodeReminder stores a reminder unless one exists for the same
// episode. It reports whether a row was inserted.
func (s *RemindersStore) AddEpisodeReminder(r EpisodeReminder) (bool, error) {
	if r.CreatedAt == "" {
		r.CreatedAt = now()
	}
	res, err := s.db.Exec(`INSERT OR IGNORE INTO episode_reminders
		(tv_id, show_name, season_number, episode_number, episode_name, air_date, notified, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.TVID, r.ShowName, r.SeasonNumber, r.EpisodeNumber, r.EpisodeName, r.AirDate, boolInt(r.Notified), r.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to add reminder for tv %d S%02dE%02d: %w", r.TVID, r.SeasonNumber, r.EpisodeNumber, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ListEpisodeReminders returns all reminders by air date.
func (s *RemindersStore) ListEpisodeReminders() ([]EpisodeReminder, error) {
	return s.query(`SELECT ` + reminderColumns + ` FROM episode_reminders ORDER BY air_date, tv_id, season_number, episode_number`)
}

// DueEpisodeReminders returns reminders not yet notified whose air date is
// within [from, to] (YYYY-MM-DD, inclusive).
func (s *RemindersStore) DueEpisodeReminders(from, to string) ([]EpisodeReminder, error) {
	return s.query(`SELECT `+reminderColumns+` FROM episode_reminders
		WHERE notified = 0 AND air_date >= ? AND air_date <= ?
		ORDER BY air_date, tv_id, season_number, episode_number`, from, to)
}

// MarkNotified flags a reminder as sent.
func (s *RemindersStore) MarkNotified(id int64) error {
	res, err := s.db.Exec(`UPDATE episode_reminders SET notified = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark reminder %d notified: %w", id, err)
	}
	return requireAffected(res, "reminder %d", id)
}

// DeleteEpisodeReminder removes one reminder.
func (s *RemindersStore) DeleteEpisodeReminder(id int64) error {
	res, err := s.db.Exec(`DELETE FROM episode_reminders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder %d: %w", id, err)
	}
	return requireAffected(res, "reminder %d", id)
}

// DeleteRemindersForShow removes every reminder of a TV show and returns how
// many were removed.
func (s *RemindersStore) DeleteRemindersForShow(tvID int) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM episode_reminders WHERE tv_id = ?`, tvID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reminders for tv %d: %w", tvID, err)
	}
	return res.RowsAffected()
}

func (s *RemindersStore) query(query string, args ...any) ([]EpisodeReminder, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []EpisodeReminder
	for rows.Next() {
		var (
			r        EpisodeReminder
			notified int
		)
		if err := rows.Scan(&r.ID, &r.TVID, &r.ShowName, &r.SeasonNumber, &r.EpisodeNumber, &r.EpisodeName, &r.AirDate, &notified, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Notified = notified != 0
		out = append(out, r)
	}
	return out, rows.Err()
}
