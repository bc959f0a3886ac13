package store

import (
	"database/sql"
	"testing"

	"github.com/lepinkainen/marquee/internal/testutil"
	"github.com/stretchr/testify/require"
)

func openShows(t *testing.T) *ShowsStore {
	t.Helper()
	env := testutil.NewTestEnv(t)
	s, err := OpenShows(env.Path("shows.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func openLists(t *testing.T) *ListsStore {
	t.Helper()
	env := testutil.NewTestEnv(t)
	s, err := OpenLists(env.Path("lists.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func openPeople(t *testing.T) *PeopleStore {
	t.Helper()
	env := testutil.NewTestEnv(t)
	s, err := OpenPeople(env.Path("people.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func openReminders(t *testing.T) *RemindersStore {
	t.Helper()
	env := testutil.NewTestEnv(t)
	s, err := OpenReminders(env.Path("reminders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func countRows(t *testing.T, db *DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

// rawExec runs statements against a database file without going through Open.
func rawExec(t *testing.T, path string, stmts ...string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
}
