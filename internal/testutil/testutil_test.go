package testutil

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestEnv_Path(t *testing.T) {
	env := NewTestEnv(t)

	path := env.Path("sub", "file.db")
	assert.True(t, strings.HasPrefix(path, env.RootDir()))
}

func TestTestEnv_WriteReadFileString(t *testing.T) {
	env := NewTestEnv(t)

	env.WriteFileString("nested/backup.json", `{"shows":[]}`)
	assert.True(t, env.FileExists("nested/backup.json"))
	assert.Equal(t, `{"shows":[]}`, env.ReadFileString("nested/backup.json"))
	assert.False(t, env.FileExists("missing.json"))
}

func TestSetTestConfig(t *testing.T) {
	env := NewTestEnv(t)
	SetTestConfig(t, env)

	assert.Equal(t, "test-tmdb-key", config.TMDBAPIKey)
	assert.Equal(t, "test-session", config.TMDBSessionID)
	assert.Equal(t, 42, config.TMDBAccountID)
	assert.Equal(t, env.Path("shows.db"), viper.GetString("db.shows"))
	assert.Equal(t, "24h", viper.GetString("cache.ttl"))
}

func TestSetViperValue(t *testing.T) {
	ResetConfig(t)
	viper.Set("reminders.lookahead_days", 2)

	t.Run("inner", func(t *testing.T) {
		SetViperValue(t, "reminders.lookahead_days", 5)
		assert.Equal(t, 5, viper.GetInt("reminders.lookahead_days"))
	})

	assert.Equal(t, 2, viper.GetInt("reminders.lookahead_days"))
}

func TestTMDBServer(t *testing.T) {
	server := NewTMDBServer(t)
	server.Handle(http.MethodPost, "/account/42/favorite", http.StatusCreated, map[string]any{"success": true})

	resp, err := http.Post(server.URL+"/account/42/favorite?session_id=s", "application/json",
		strings.NewReader(`{"media_type":"movie","media_id":550,"favorite":true}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	missing, err := http.Get(server.URL + "/nope")
	require.NoError(t, err)
	defer func() { _ = missing.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(missing.Body).Decode(&body))
	assert.Equal(t, false, body["success"])

	reqs := server.RequestsTo(http.MethodPost, "/account/42/favorite")
	require.Len(t, reqs, 1)
	assert.Equal(t, "s", reqs[0].Query.Get("session_id"))
	assert.Equal(t, float64(550), reqs[0].Body["media_id"])
	assert.Len(t, server.Requests(), 2)
}
