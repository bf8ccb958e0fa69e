package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/roundtable/internal/game/storage"
	"github.com/louisbranch/roundtable/internal/game/storage/sqlite"
)

func seedJournal(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	}()

	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	records := []storage.ActionRecord{
		{ID: "rec-1", ParticipantID: "p1", Kind: storage.ActionKindSubmit, Action: "open the door", Narrative: "It creaks.", Round: 1, TurnIndex: 0, CreatedAt: base},
		{ID: "rec-2", ParticipantID: "p2", Kind: storage.ActionKindSkip, Round: 1, TurnIndex: 1, CreatedAt: base.Add(time.Minute)},
		{ID: "rec-3", ParticipantID: "p1", Kind: storage.ActionKindSubmit, Action: "light a torch", Narrative: "Shadows retreat.", Round: 2, TurnIndex: 0, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, record := range records {
		if err := store.AppendAction(context.Background(), record); err != nil {
			t.Fatalf("append %s: %v", record.ID, err)
		}
	}
	return path
}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("journal", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.JournalPath != filepath.Join("data", "journal.db") {
		t.Fatalf("expected default journal path, got %q", cfg.JournalPath)
	}
	if cfg.Limit != defaultLimit {
		t.Fatalf("expected default limit, got %d", cfg.Limit)
	}
	if cfg.Timeout != time.Minute {
		t.Fatalf("expected default timeout, got %v", cfg.Timeout)
	}
}

func TestRunPrintsNewestFirst(t *testing.T) {
	path := seedJournal(t)

	var out bytes.Buffer
	err := Run(context.Background(), Config{JournalPath: path, Limit: 10}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	first := strings.Index(text, "light a torch")
	second := strings.Index(text, "open the door")
	if first == -1 || second == -1 {
		t.Fatalf("missing records in output:\n%s", text)
	}
	if first > second {
		t.Errorf("expected newest record first:\n%s", text)
	}
}

func TestRunFiltersByKind(t *testing.T) {
	path := seedJournal(t)

	var out bytes.Buffer
	err := Run(context.Background(), Config{JournalPath: path, Limit: 10, Kind: storage.ActionKindSkip}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "kind=skip") {
		t.Errorf("expected skip record:\n%s", text)
	}
	if strings.Contains(text, "kind=action") {
		t.Errorf("expected submit records filtered out:\n%s", text)
	}
}

func TestRunJSONOutput(t *testing.T) {
	path := seedJournal(t)

	var out bytes.Buffer
	err := Run(context.Background(), Config{JournalPath: path, Limit: 2, JSONOutput: true}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var records []storage.ActionRecord
	if err := json.Unmarshal(out.Bytes(), &records); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].ID != "rec-3" {
		t.Errorf("first record = %s, want rec-3", records[0].ID)
	}
}

func TestRunRejectsNonPositiveLimit(t *testing.T) {
	if err := Run(context.Background(), Config{JournalPath: "unused", Limit: 0}, nil); err == nil {
		t.Fatal("expected an error for a zero limit")
	}
}

func TestRunEmptyJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")

	var out bytes.Buffer
	err := Run(context.Background(), Config{JournalPath: path, Limit: 5}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "no journal records") {
		t.Errorf("output = %q", out.String())
	}
}
