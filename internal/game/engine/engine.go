package engine

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/louisbranch/roundtable/internal/game/domain"
	"github.com/louisbranch/roundtable/internal/game/narrative"
	"github.com/louisbranch/roundtable/internal/game/observability/audit"
	"github.com/louisbranch/roundtable/internal/game/progression"
	"github.com/louisbranch/roundtable/internal/game/storage"
	apperrors "github.com/louisbranch/roundtable/internal/platform/errors"
)

// Defaults applied by New when the config leaves them zero.
const (
	DefaultTurnWindow       = 24 * time.Hour
	DefaultGeneratorTimeout = 60 * time.Second
	defaultQueueSize        = 16
)

// Config configures the engine.
type Config struct {
	Store     storage.SessionStore
	Journal   storage.JournalStore
	Generator narrative.Generator
	Policy    progression.Policy
	Audit     *audit.Emitter
	Logger    *log.Logger

	Now              func() time.Time
	TurnWindow       time.Duration
	GeneratorTimeout time.Duration
	QueueSize        int
}

// Engine serializes every state-changing event through a single goroutine.
// Reads are served from the last persisted snapshot and never block writers.
type Engine struct {
	store     storage.SessionStore
	journal   storage.JournalStore
	generator narrative.Generator
	policy    progression.Policy
	audit     *audit.Emitter
	logger    *log.Logger

	now        func() time.Time
	turnWindow time.Duration
	genTimeout time.Duration

	// session is owned by the Run goroutine. Everyone else reads view.
	session domain.Session
	view    atomic.Pointer[domain.Session]
	halted  atomic.Bool

	requests chan request
	stopped  chan struct{}
}

type request struct {
	ctx   context.Context
	event any
	reply chan response
}

type response struct {
	value any
	err   error
}

// Events processed by the Run loop.
type (
	submitAction struct {
		participantID string
		displayName   string
		action        string
	}
	manualSkip   struct{}
	setScene     struct{ text string }
	resetSession struct{}
	timeoutFired struct{ deadline time.Time }
)

// New builds an engine and loads the persisted session. A missing snapshot
// starts a fresh session; an unreadable one is treated the same way, after
// an audit record, so a corrupt file cannot wedge the table. The previous
// snapshot is only overwritten when the next event persists.
func New(ctx context.Context, cfg Config) (*Engine, error) {
	if cfg.Store == nil {
		return nil, errors.New("session store is required")
	}
	if cfg.Generator == nil {
		return nil, errors.New("narrative generator is required")
	}
	if cfg.Policy == nil {
		cfg.Policy = progression.NewMarkupPolicy()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.TurnWindow <= 0 {
		cfg.TurnWindow = DefaultTurnWindow
	}
	if cfg.GeneratorTimeout <= 0 {
		cfg.GeneratorTimeout = DefaultGeneratorTimeout
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}

	e := &Engine{
		store:      cfg.Store,
		journal:    cfg.Journal,
		generator:  cfg.Generator,
		policy:     cfg.Policy,
		audit:      cfg.Audit,
		logger:     cfg.Logger,
		now:        cfg.Now,
		turnWindow: cfg.TurnWindow,
		genTimeout: cfg.GeneratorTimeout,
		requests:   make(chan request, cfg.QueueSize),
		stopped:    make(chan struct{}),
	}

	session, err := cfg.Store.LoadSnapshot(ctx)
	switch {
	case err == nil:
		normalizeSession(&session)
	case errors.Is(err, storage.ErrNotFound):
		session = domain.NewSession(e.now)
	default:
		e.logger.Printf("session snapshot unreadable, starting fresh: %v", err)
		_ = e.audit.Emit(ctx, storage.AuditEvent{
			EventName: audit.EventSnapshotDegraded,
			Severity:  string(audit.SeverityError),
			Detail:    err.Error(),
		})
		session = domain.NewSession(e.now)
	}

	e.session = session
	e.publishView()
	return e, nil
}

// normalizeSession repairs a snapshot whose turn pointer drifted out of
// bounds, matching what a reload after membership changes should do.
func normalizeSession(session *domain.Session) {
	if session.Turn.Index >= len(session.Turn.Order) {
		session.Turn.Index = 0
	}
	if session.Turn.Round < 1 {
		session.Turn.Round = 1
	}
}

// Run processes events until ctx is canceled. It must be called exactly
// once; public methods fail with CodeEngineStopped after it returns.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.stopped)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-e.requests:
			req.reply <- e.dispatch(req.ctx, req.event)
		}
	}
}

func (e *Engine) dispatch(ctx context.Context, event any) response {
	switch ev := event.(type) {
	case submitAction:
		result, err := e.handleSubmit(ctx, ev)
		return response{value: result, err: err}
	case manualSkip:
		result, err := e.handleSkip(ctx)
		return response{value: result, err: err}
	case setScene:
		return response{err: e.handleSetScene(ctx, ev.text)}
	case resetSession:
		return response{err: e.handleReset(ctx)}
	case timeoutFired:
		result, err := e.handleTimeout(ctx, ev.deadline)
		return response{value: result, err: err}
	default:
		return response{err: apperrors.New(apperrors.CodeUnknown, "unknown engine event")}
	}
}

func (e *Engine) do(ctx context.Context, event any) (any, error) {
	req := request{ctx: ctx, event: event, reply: make(chan response, 1)}
	select {
	case e.requests <- req:
	case <-e.stopped:
		return nil, apperrors.New(apperrors.CodeEngineStopped, "engine is not running")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-req.reply:
		return resp.value, resp.err
	case <-e.stopped:
		return nil, apperrors.New(apperrors.CodeEngineStopped, "engine is not running")
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// persist writes the working copy and, only on success, makes it the
// authoritative session. A failed write leaves the previous state in force,
// so the event that produced the copy has no effect.
func (e *Engine) persist(ctx context.Context, working domain.Session) error {
	if err := e.store.SaveSnapshot(ctx, working); err != nil {
		e.logger.Printf("persist session snapshot: %v", err)
		_ = e.audit.Emit(ctx, storage.AuditEvent{
			EventName: audit.EventSnapshotDegraded,
			Severity:  string(audit.SeverityError),
			Detail:    err.Error(),
		})
		return apperrors.Wrap(apperrors.CodeSnapshotSaveFailed, "persist session snapshot", err)
	}
	e.session = working
	e.publishView()
	return nil
}

func (e *Engine) publishView() {
	snapshot := e.session.Clone()
	e.view.Store(&snapshot)
}

// appendJournal records a processed event in the durable journal. Journal
// failures are logged, not surfaced: the snapshot already committed.
func (e *Engine) appendJournal(ctx context.Context, record storage.ActionRecord) {
	if e.journal == nil {
		return
	}
	if err := e.journal.AppendAction(ctx, record); err != nil {
		e.logger.Printf("append journal record %s: %v", record.Kind, err)
	}
}

// halt latches the engine after a consistency fault. Only Reset is accepted
// afterward.
func (e *Engine) halt(ctx context.Context, detail string) *apperrors.Error {
	e.halted.Store(true)
	e.logger.Printf("engine halted: %s", detail)
	_ = e.audit.Emit(ctx, storage.AuditEvent{
		EventName: audit.EventEngineHalted,
		Severity:  string(audit.SeverityError),
		Detail:    detail,
	})
	return apperrors.New(apperrors.CodeTurnParticipantMissing, "current turn participant is missing from the registry")
}

func (e *Engine) haltedErr() *apperrors.Error {
	return apperrors.New(apperrors.CodeEngineHalted, "engine is halted after a consistency fault; reset the session to recover")
}
