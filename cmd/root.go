package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/marquee/internal/cache"
	"github.com/lepinkainen/marquee/internal/config"
	merrors "github.com/lepinkainen/marquee/internal/errors"
)

// CLI represents the complete command structure for the marquee application
type CLI struct {
	// Global flags
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"info" enum:"debug,info,warn,error"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file (overrides cache.dbfile)"`
	CacheTTL    string `help:"Cache time-to-live duration, e.g. 720h (overrides cache.ttl)"`

	Search    SearchCmd    `cmd:"" help:"Search TMDB for movies and TV shows"`
	Track     TrackCmd     `cmd:"" help:"Manage tracked titles"`
	List      ListCmd      `cmd:"" help:"Manage custom lists"`
	Account   AccountCmd   `cmd:"" help:"TMDB account actions"`
	Season    SeasonCmd    `cmd:"" help:"Show the episodes of a TV season"`
	Episode   EpisodeCmd   `cmd:"" help:"Show a single TV episode"`
	Person    PersonCmd    `cmd:"" help:"Manage followed people"`
	Reminders RemindersCmd `cmd:"" help:"Episode reminders and the daily notification job"`
	Backup    BackupCmd    `cmd:"" help:"Export or import all local databases"`
	Poster    PosterCmd    `cmd:"" help:"Download a poster image"`
	Cache     CacheCmd     `cmd:"" help:"Manage the TMDB response cache"`
}

// CacheCmd groups the cache subcommands.
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Invalidate cached TMDB responses"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging(slog.LevelInfo)
	initConfig()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("marquee"),
		kong.Description("Track movies and TV shows with TheMovieDB."),
		kong.UsageOnError(),
		kong.BindTo(runCtx, (*context.Context)(nil)),
	)

	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err == nil {
		return
	}
	if merrors.IsStopProcessingError(err) {
		slog.Info("Stopped", "reason", err.Error())
		return
	}
	if hint := errorHint(err); hint != "" {
		slog.Error("Command failed", "error", err, "hint", hint)
	} else {
		slog.Error("Command failed", "error", err)
	}
	stop()
	os.Exit(1)
}

// errorHint suggests a fix for errors the user can act on.
func errorHint(err error) string {
	switch {
	case merrors.IsAuthError(err):
		return "TMDB refused the credentials; check tmdb.apikey or run `marquee account login` again"
	case merrors.IsNotFound(err):
		return "TMDB has no such title; check the id and media type"
	case errors.Is(err, context.Canceled):
		return "interrupted"
	}
	return ""
}

func initConfig() {
	config.SetDefaults()
	viper.SetDefault("log.level", "info")

	viper.AutomaticEnv()
	bindings := map[string]string{
		"tmdb.apikey":    "TMDB_API_KEY",
		"tmdb.sessionid": "TMDB_SESSION_ID",
		"tmdb.accountid": "TMDB_ACCOUNT_ID",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			slog.Error("Failed to bind environment variable", "key", key, "error", err)
		}
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
		slog.Info("Config file not found, writing default config file...", "path", config.DefaultConfigFile)
		if err := config.WriteDefaultConfig(config.DefaultConfigFile); err != nil {
			slog.Error("Error writing config file", "error", err)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	level := cli.LogLevel
	if level == "" || (level == "info" && viper.IsSet("log.level")) {
		level = viper.GetString("log.level")
	}
	initLogging(parseLevel(level))

	if cli.CacheDBFile != "" {
		viper.Set("cache.dbfile", cli.CacheDBFile)
	}
	if cli.CacheTTL != "" {
		viper.Set("cache.ttl", cli.CacheTTL)
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func initLogging(level slog.Level) {
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// requirePositive rejects ids and numbers that TMDB would never accept.
func requirePositive(name string, value int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be a positive number, got %d", name, value)
	}
	return nil
}
