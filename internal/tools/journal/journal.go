// Package journal inspects the action journal from the command line.
package journal

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/louisbranch/roundtable/internal/game/storage"
	"github.com/louisbranch/roundtable/internal/game/storage/sqlite"
)

const defaultLimit = 20

// Config holds journal command configuration.
type Config struct {
	JournalPath string
	Limit       int
	Kind        string
	JSONOutput  bool
	Timeout     time.Duration
}

type envConfig struct {
	JournalPath string        `env:"ROUNDTABLE_JOURNAL_DB_PATH"`
	Timeout     time.Duration `env:"ROUNDTABLE_JOURNAL_TIMEOUT" envDefault:"1m"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Config{
		JournalPath: envCfg.JournalPath,
		Limit:       defaultLimit,
		Timeout:     envCfg.Timeout,
	}
	if cfg.JournalPath == "" {
		cfg.JournalPath = filepath.Join("data", "journal.db")
	}

	fs.StringVar(&cfg.JournalPath, "journal-db", cfg.JournalPath, "path to the action journal database")
	fs.IntVar(&cfg.Limit, "limit", cfg.Limit, "max journal records to print, newest first")
	fs.StringVar(&cfg.Kind, "kind", "", "optional record kind filter (action|skip|scene|timeout|reset)")
	fs.BoolVar(&cfg.JSONOutput, "json", false, "output JSON records")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall timeout")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the journal command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if cfg.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", cfg.Limit)
	}

	store, err := sqlite.Open(cfg.JournalPath)
	if err != nil {
		return fmt.Errorf("open journal store: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	records, err := store.ListRecentActions(ctx, cfg.Limit)
	if err != nil {
		return fmt.Errorf("list journal records: %w", err)
	}
	if cfg.Kind != "" {
		records = filterByKind(records, cfg.Kind)
	}

	if cfg.JSONOutput {
		return writeJSON(out, records)
	}
	return writeText(out, records)
}

func filterByKind(records []storage.ActionRecord, kind string) []storage.ActionRecord {
	filtered := records[:0]
	for _, record := range records {
		if record.Kind == kind {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

func writeJSON(out io.Writer, records []storage.ActionRecord) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func writeText(out io.Writer, records []storage.ActionRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, "no journal records")
		return err
	}
	for _, record := range records {
		line := fmt.Sprintf("%s  round=%d turn=%d kind=%s participant=%s",
			record.CreatedAt.Format(time.RFC3339), record.Round, record.TurnIndex, record.Kind, record.ParticipantID)
		if record.Action != "" {
			line += fmt.Sprintf(" action=%q", record.Action)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
