package engine

import (
	"context"
	"log"
	"time"
)

// DefaultCheckInterval is how often the monitor polls for expired turns.
const DefaultCheckInterval = 5 * time.Minute

// Monitor polls the engine's read view and delivers timeout events when a
// turn deadline passes. Delivery carries the observed deadline, so a turn
// that advanced between the poll and the delivery makes the event stale and
// the engine drops it.
type Monitor struct {
	engine   *Engine
	interval time.Duration
	logger   *log.Logger
	now      func() time.Time
}

// NewMonitor creates a timeout monitor for the engine.
func NewMonitor(engine *Engine, interval time.Duration, logger *log.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Monitor{
		engine:   engine,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run polls until ctx is canceled.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check performs one poll. Exported so tests and manual triggers can drive
// the monitor without the ticker.
func (m *Monitor) Check(ctx context.Context) {
	state := m.engine.State()
	if state.Halted || len(state.Order) == 0 || state.Deadline.IsZero() {
		return
	}
	if m.now().Before(state.Deadline) {
		return
	}

	result, err := m.engine.FireTimeout(ctx, state.Deadline)
	if err != nil {
		m.logger.Printf("deliver turn timeout: %v", err)
		return
	}
	if result.Fired {
		m.logger.Printf("turn timeout: %s hesitates, next turn %s (round %d)",
			result.Skipped, result.NextParticipant, result.Round)
	}
}
