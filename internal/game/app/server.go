// Package app wires storage, the narrative generator, the game engine, and
// the MCP surface into a runnable service.
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	mcpapi "github.com/louisbranch/roundtable/internal/game/api/mcp"
	"github.com/louisbranch/roundtable/internal/game/engine"
	"github.com/louisbranch/roundtable/internal/game/narrative"
	"github.com/louisbranch/roundtable/internal/game/observability/audit"
	bboltstore "github.com/louisbranch/roundtable/internal/game/storage/bbolt"
	sqlitestore "github.com/louisbranch/roundtable/internal/game/storage/sqlite"
)

// Config holds the runtime configuration for the game service.
type Config struct {
	SnapshotPath  string
	JournalPath   string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	TurnWindow       time.Duration
	GeneratorTimeout time.Duration
	CheckInterval    time.Duration
}

// Server hosts the game engine and its MCP surface.
type Server struct {
	engine    *engine.Engine
	monitor   *engine.Monitor
	mcpServer *mcpapi.Server
	snapshots *bboltstore.Store
	journal   *sqlitestore.Store
}

// New creates a configured game server. The context covers startup work such
// as loading the last snapshot.
func New(ctx context.Context, cfg Config) (*Server, error) {
	snapshots, err := openSnapshotStore(cfg.SnapshotPath)
	if err != nil {
		return nil, err
	}
	journal, err := openJournalStore(cfg.JournalPath)
	if err != nil {
		_ = snapshots.Close()
		return nil, err
	}

	generator, err := narrative.NewOpenAIGenerator(narrative.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	})
	if err != nil {
		_ = snapshots.Close()
		_ = journal.Close()
		return nil, fmt.Errorf("configure narrative generator: %w", err)
	}

	eng, err := engine.New(ctx, engine.Config{
		Store:            snapshots,
		Journal:          journal,
		Generator:        generator,
		Audit:            audit.NewEmitter(journal),
		TurnWindow:       cfg.TurnWindow,
		GeneratorTimeout: cfg.GeneratorTimeout,
	})
	if err != nil {
		_ = snapshots.Close()
		_ = journal.Close()
		return nil, fmt.Errorf("configure engine: %w", err)
	}

	mcpServer, err := mcpapi.New(eng)
	if err != nil {
		_ = snapshots.Close()
		_ = journal.Close()
		return nil, fmt.Errorf("configure MCP server: %w", err)
	}

	return &Server{
		engine:    eng,
		monitor:   engine.NewMonitor(eng, cfg.CheckInterval, nil),
		mcpServer: mcpServer,
		snapshots: snapshots,
		journal:   journal,
	}, nil
}

// Engine returns the running game engine.
func (s *Server) Engine() *engine.Engine {
	if s == nil {
		return nil
	}
	return s.engine
}

// Run creates and serves a game server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the engine, the deadline monitor, and the MCP transport, and
// blocks until the MCP transport stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.closeStores()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	engineDone := make(chan struct{})
	go func() {
		defer close(engineDone)
		_ = s.engine.Run(runCtx)
	}()
	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		_ = s.monitor.Run(runCtx)
	}()

	err := s.mcpServer.Serve(runCtx)

	cancel()
	<-engineDone
	<-monitorDone
	return err
}

func openSnapshotStore(path string) (*bboltstore.Store, error) {
	if path == "" {
		path = filepath.Join("data", "session.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := bboltstore.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	return store, nil
}

func openJournalStore(path string) (*sqlitestore.Store, error) {
	if path == "" {
		path = filepath.Join("data", "journal.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlitestore.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal store: %w", err)
	}
	return store, nil
}

func (s *Server) closeStores() {
	if s == nil {
		return
	}
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			log.Printf("close journal store: %v", err)
		}
	}
	if s.snapshots != nil {
		if err := s.snapshots.Close(); err != nil {
			log.Printf("close snapshot store: %v", err)
		}
	}
}
