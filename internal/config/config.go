package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// TMDBAPIKey is the API key for TheMovieDB
	TMDBAPIKey string
	// TMDBSessionID is the session id issued by the TMDB login flow
	TMDBSessionID string
	// TMDBAccountID is the TMDB account the session belongs to
	TMDBAccountID int
)

// DefaultConfigFile is created in the working directory when no config file is found.
const DefaultConfigFile = "config.yaml"

// NotificationChannels lists the channel ids that can be toggled in config.
var NotificationChannels = []string{"released_movies", "episode_airing"}

// LookaheadDays bounds how many days ahead the reminder job announces episodes.
var LookaheadDays = BoundedInt{Min: 1, Max: 9, Default: 1}

// Config is the typed view of the viper configuration.
type Config struct {
	TMDB      TMDBConfig
	DB        DBConfig
	Cache     CacheConfig
	Reminders RemindersConfig
	Notify    NotifyConfig
	Posters   PostersConfig
}

// TMDBConfig holds the remote API settings.
type TMDBConfig struct {
	APIKey    string
	SessionID string
	AccountID int
	BaseURL   string
	Language  string
}

// DBConfig holds the paths of the local SQLite databases.
type DBConfig struct {
	Shows     string
	Lists     string
	People    string
	Reminders string
}

// CacheConfig holds the TMDB response cache settings.
type CacheConfig struct {
	DBFile string
	TTL    time.Duration
}

// RemindersConfig holds the daily reminder job settings.
type RemindersConfig struct {
	LookaheadDays int
}

// NotifyConfig holds notifier settings.
type NotifyConfig struct {
	WebhookURL   string
	WebhookTopic string
	Channels     map[string]bool
}

// PostersConfig holds poster download settings.
type PostersConfig struct {
	Dir      string
	MaxWidth int
}

// SetDefaults registers the default values for every key marquee reads.
func SetDefaults() {
	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tmdb.baseurl", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.language", "en-US")

	v.SetDefault("db.shows", "./shows.db")
	v.SetDefault("db.lists", "./lists.db")
	v.SetDefault("db.people", "./people.db")
	v.SetDefault("db.reminders", "./reminders.db")

	v.SetDefault("cache.dbfile", "./cache.db")
	v.SetDefault("cache.ttl", "720h") // 30 days

	v.SetDefault("reminders.lookahead_days", LookaheadDays.Default)

	v.SetDefault("notify.channels.released_movies.enabled", true)
	v.SetDefault("notify.channels.episode_airing.enabled", true)

	v.SetDefault("posters.dir", "./posters")
	v.SetDefault("posters.maxwidth", 500)
}

// InitConfig initializes the global configuration
func InitConfig() {
	SetDefaults()

	TMDBAPIKey = viper.GetString("tmdb.apikey")
	TMDBSessionID = viper.GetString("tmdb.sessionid")
	TMDBAccountID = viper.GetInt("tmdb.accountid")
}

// Load builds a Config from viper. Invalid durations fall back to defaults and
// bounded preferences are clamped.
func Load() Config {
	ttl, err := time.ParseDuration(viper.GetString("cache.ttl"))
	if err != nil || ttl <= 0 {
		ttl = 720 * time.Hour
	}

	lookahead := LookaheadDays.Default
	if viper.IsSet("reminders.lookahead_days") {
		lookahead = LookaheadDays.Clamp(viper.GetInt("reminders.lookahead_days"))
	}

	channels := make(map[string]bool, len(NotificationChannels))
	for _, id := range NotificationChannels {
		key := "notify.channels." + id + ".enabled"
		channels[id] = !viper.IsSet(key) || viper.GetBool(key)
	}

	return Config{
		TMDB: TMDBConfig{
			APIKey:    firstNonEmpty(viper.GetString("tmdb.apikey"), TMDBAPIKey),
			SessionID: firstNonEmpty(viper.GetString("tmdb.sessionid"), TMDBSessionID),
			AccountID: firstNonZero(viper.GetInt("tmdb.accountid"), TMDBAccountID),
			BaseURL:   viper.GetString("tmdb.baseurl"),
			Language:  viper.GetString("tmdb.language"),
		},
		DB: DBConfig{
			Shows:     viper.GetString("db.shows"),
			Lists:     viper.GetString("db.lists"),
			People:    viper.GetString("db.people"),
			Reminders: viper.GetString("db.reminders"),
		},
		Cache: CacheConfig{
			DBFile: viper.GetString("cache.dbfile"),
			TTL:    ttl,
		},
		Reminders: RemindersConfig{
			LookaheadDays: lookahead,
		},
		Notify: NotifyConfig{
			WebhookURL:   viper.GetString("notify.webhook.url"),
			WebhookTopic: viper.GetString("notify.webhook.topic"),
			Channels:     channels,
		},
		Posters: PostersConfig{
			Dir:      viper.GetString("posters.dir"),
			MaxWidth: viper.GetInt("posters.maxwidth"),
		},
	}
}

// RequireAPIKey returns an error when no TMDB API key is configured.
func (c Config) RequireAPIKey() error {
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("TMDB API key is required (set tmdb.apikey in config or TMDB_API_KEY)")
	}
	return nil
}

// RequireSession returns an error when the account commands cannot run.
func (c Config) RequireSession() error {
	if err := c.RequireAPIKey(); err != nil {
		return err
	}
	if c.TMDB.SessionID == "" || c.TMDB.AccountID == 0 {
		return fmt.Errorf("TMDB session is required (run `marquee account login` first)")
	}
	return nil
}

// WriteDefaultConfig creates path holding the default settings and makes it
// the config file in use. Values from flags or the environment are not
// written.
func WriteDefaultConfig(path string) error {
	v := viper.New()
	setDefaults(v)
	if err := v.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	viper.SetConfigFile(path)
	return nil
}

// SaveSession stores the session and account ids and persists them to the
// config file in use, or DefaultConfigFile when there is none. Only the
// file's own settings and the session are written back.
func SaveSession(sessionID string, accountID int) error {
	TMDBSessionID = sessionID
	TMDBAccountID = accountID
	viper.Set("tmdb.sessionid", sessionID)
	viper.Set("tmdb.accountid", accountID)

	path := viper.ConfigFileUsed()
	if path == "" {
		path = DefaultConfigFile
		viper.SetConfigFile(path)
	}

	file := viper.New()
	file.SetConfigFile(path)
	if err := file.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	file.Set("tmdb.sessionid", sessionID)
	file.Set("tmdb.accountid", accountID)
	if err := file.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
