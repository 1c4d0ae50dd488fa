package bridge

import (
	"context"
	"sync"
	"time"

	"storage-bridge/feature/inventory"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier is told when a cycle changed the inventory.
type Notifier interface {
	InventoryChanged()
}

// Reindexer rebuilds the search index.
type Reindexer interface {
	Rebuild(ctx context.Context) error
}

// Sweeper evaluates every item that has a rule.
type Sweeper interface {
	Sweep(ctx context.Context) ([]inventory.Decision, error)
}

// CycleReport summarises one reconciliation cycle.
type CycleReport struct {
	ID        string               `json:"id"`
	ConnID    string               `json:"connId"`
	At        time.Time            `json:"at"`
	Records   int                  `json:"records"`
	Inserted  int                  `json:"inserted"`
	Updated   int                  `json:"updated"`
	Removed   int                  `json:"removed"`
	Unchanged int                  `json:"unchanged"`
	Decisions []inventory.Decision `json:"decisions"`
	Error     string               `json:"error,omitempty"`
}

// Processor runs reconciliation cycles one at a time across all connections.
type Processor struct {
	reconciler *inventory.Reconciler
	sweeper    Sweeper
	emitter    *Emitter
	notifier   Notifier
	indexer    Reindexer
	logger     *zap.Logger

	mu       sync.Mutex
	crafting map[string]bool

	lastMu sync.RWMutex
	last   *CycleReport
}

// NewProcessor wires a processor. notifier and indexer may be nil.
func NewProcessor(reconciler *inventory.Reconciler, sweeper Sweeper, emitter *Emitter, notifier Notifier, indexer Reindexer, logger *zap.Logger) *Processor {
	return &Processor{
		reconciler: reconciler,
		sweeper:    sweeper,
		emitter:    emitter,
		notifier:   notifier,
		indexer:    indexer,
		logger:     logger,
		crafting:   map[string]bool{},
	}
}

// Process reconciles one complete snapshot and emits the resulting commands.
// A failed cycle commits nothing, emits nothing and pings no one.
func (p *Processor) Process(ctx context.Context, connID string, snap inventory.Snapshot) (*CycleReport, error) {
	report := &CycleReport{
		ID:        uuid.NewString(),
		ConnID:    connID,
		At:        time.Now().UTC(),
		Records:   len(snap),
		Decisions: []inventory.Decision{},
	}
	l := p.logger.With(zap.String("conn_id", connID), zap.String("cycle_id", report.ID))

	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()
	out, err := p.reconciler.Reconcile(ctx, snap)
	if err != nil {
		report.Error = err.Error()
		p.setLast(report)
		l.Error("Reconciliation cycle failed", zap.Int("records", len(snap)), zap.Error(err))
		return report, err
	}

	report.Inserted = len(out.Inserted)
	report.Updated = len(out.Updated)
	report.Removed = len(out.Removed)
	report.Unchanged = len(out.Unchanged)

	p.crafting = make(map[string]bool)
	for _, rec := range snap {
		if rec.IsCrafting {
			p.crafting[rec.Fingerprint] = true
		}
	}

	if out.Empty() {
		p.setLast(report)
		l.Debug("Cycle unchanged", zap.Int("records", len(snap)), zap.Duration("duration", time.Since(start)))
		return report, nil
	}

	report.Decisions = inventory.EvaluateAll(out.Changed)
	p.emitter.Apply(report.Decisions, p.crafting, l)

	if p.notifier != nil {
		p.notifier.InventoryChanged()
	}

	if out.MembershipChanged() && p.indexer != nil {
		if err := p.indexer.Rebuild(ctx); err != nil {
			l.Warn("Search index rebuild failed", zap.Error(err))
		}
	}

	p.setLast(report)
	l.Info("Cycle committed",
		zap.Int("records", report.Records),
		zap.Int("inserted", report.Inserted),
		zap.Int("updated", report.Updated),
		zap.Int("removed", report.Removed),
		zap.Int("decisions", len(report.Decisions)),
		zap.Duration("duration", time.Since(start)))
	return report, nil
}

// Sweep evaluates every rule against the stored inventory and emits commands.
// It catches violations introduced by rule changes between snapshots.
func (p *Processor) Sweep(ctx context.Context) ([]inventory.Decision, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	decisions, err := p.sweeper.Sweep(ctx)
	if err != nil {
		return nil, err
	}
	p.emitter.Apply(decisions, p.crafting, p.logger.With(zap.String("cycle_id", "sweep")))
	return decisions, nil
}

// LastCycle returns the most recent cycle report, or nil before the first cycle.
func (p *Processor) LastCycle() *CycleReport {
	p.lastMu.RLock()
	defer p.lastMu.RUnlock()
	return p.last
}

func (p *Processor) setLast(r *CycleReport) {
	p.lastMu.Lock()
	p.last = r
	p.lastMu.Unlock()
}
