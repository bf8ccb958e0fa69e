// Package game parses game command flags and starts the table runtime.
package game

import (
	"context"
	"flag"
	"time"

	"github.com/louisbranch/roundtable/internal/game/app"
	entrypoint "github.com/louisbranch/roundtable/internal/platform/cmd"
)

// Config holds game command configuration.
type Config struct {
	SnapshotPath     string        `env:"ROUNDTABLE_SNAPSHOT_DB_PATH" envDefault:"data/session.db"`
	JournalPath      string        `env:"ROUNDTABLE_JOURNAL_DB_PATH" envDefault:"data/journal.db"`
	OpenAIAPIKey     string        `env:"ROUNDTABLE_OPENAI_API_KEY"`
	OpenAIBaseURL    string        `env:"ROUNDTABLE_OPENAI_BASE_URL"`
	OpenAIModel      string        `env:"ROUNDTABLE_OPENAI_MODEL"`
	TurnWindow       time.Duration `env:"ROUNDTABLE_TURN_WINDOW"`
	GeneratorTimeout time.Duration `env:"ROUNDTABLE_GENERATOR_TIMEOUT"`
	CheckInterval    time.Duration `env:"ROUNDTABLE_CHECK_INTERVAL"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.SnapshotPath, "snapshot-db", cfg.SnapshotPath, "Path to the session snapshot database")
	fs.StringVar(&cfg.JournalPath, "journal-db", cfg.JournalPath, "Path to the action journal database")
	fs.StringVar(&cfg.OpenAIModel, "model", cfg.OpenAIModel, "Chat model used for narration (overrides the default)")
	fs.DurationVar(&cfg.TurnWindow, "turn-window", cfg.TurnWindow, "How long each turn stays open before it can be skipped")
	fs.DurationVar(&cfg.GeneratorTimeout, "generator-timeout", cfg.GeneratorTimeout, "Per-request narration timeout")
	fs.DurationVar(&cfg.CheckInterval, "check-interval", cfg.CheckInterval, "How often expired turn deadlines are checked")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the game service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGame, func(runCtx context.Context) error {
		return app.Run(runCtx, app.Config{
			SnapshotPath:     cfg.SnapshotPath,
			JournalPath:      cfg.JournalPath,
			OpenAIAPIKey:     cfg.OpenAIAPIKey,
			OpenAIBaseURL:    cfg.OpenAIBaseURL,
			OpenAIModel:      cfg.OpenAIModel,
			TurnWindow:       cfg.TurnWindow,
			GeneratorTimeout: cfg.GeneratorTimeout,
			CheckInterval:    cfg.CheckInterval,
		})
	})
}
