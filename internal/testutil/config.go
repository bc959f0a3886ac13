package testutil

import (
	"testing"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/spf13/viper"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	TMDBAPIKey    string
	TMDBSessionID string
	TMDBAccountID int
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		TMDBAPIKey:    config.TMDBAPIKey,
		TMDBSessionID: config.TMDBSessionID,
		TMDBAccountID: config.TMDBAccountID,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.TMDBAPIKey = state.TMDBAPIKey
	config.TMDBSessionID = state.TMDBSessionID
	config.TMDBAccountID = state.TMDBAccountID
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig resets viper, registers the defaults and points every
// database, the cache and the config file at files inside env. A test API
// key and session are configured so account commands can run against a fake
// server.
func SetTestConfig(t *testing.T, env *TestEnv) {
	t.Helper()

	ResetConfig(t)
	config.SetDefaults()
	viper.SetConfigFile(env.Path("config.yaml"))

	viper.Set("tmdb.apikey", "test-tmdb-key")
	viper.Set("tmdb.sessionid", "test-session")
	viper.Set("tmdb.accountid", 42)

	viper.Set("db.shows", env.Path("shows.db"))
	viper.Set("db.lists", env.Path("lists.db"))
	viper.Set("db.people", env.Path("people.db"))
	viper.Set("db.reminders", env.Path("reminders.db"))
	viper.Set("posters.dir", env.Path("posters"))

	SetupTestCache(t, env)
	config.InitConfig()
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// viper has no Unset, so an unset key stays set after cleanup.
	})
}

// SetupTestCache configures viper for test caching with a temporary directory.
func SetupTestCache(t *testing.T, env *TestEnv) string {
	t.Helper()

	cacheDir := env.Path("cache")
	env.MkdirAll("cache")

	viper.Set("cache.dbfile", env.Path("cache", "test-cache.db"))
	viper.Set("cache.ttl", "24h")

	return cacheDir
}
