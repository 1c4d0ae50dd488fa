package bridge

import (
	"sync"
	"sync/atomic"
	"time"

	"storage-bridge/feature/inventory"

	"go.uber.org/zap"
)

// EmitStats counts what the emitter did since start.
type EmitStats struct {
	CraftRequests int64 `json:"craftRequests"`
	Throttled     int64 `json:"throttled"`
	Discards      int64 `json:"discards"`
	Unremediable  int64 `json:"unremediable"`
	Dropped       int64 `json:"dropped"`
}

// Emitter turns decisions and operator actions into commands on each
// connection's outbox. Delivery is fire-and-forget: a full outbox drops the command.
type Emitter struct {
	logger   *zap.Logger
	size     int
	cooldown time.Duration
	discard  bool
	now      func() time.Time

	mu       sync.RWMutex
	outboxes map[string]chan Command

	craftMu   sync.Mutex
	lastCraft map[string]time.Time

	craftRequests atomic.Int64
	throttled     atomic.Int64
	discards      atomic.Int64
	unremediable  atomic.Int64
	dropped       atomic.Int64
}

// NewEmitter creates an emitter with no connections.
func NewEmitter(cfg Config, logger *zap.Logger) *Emitter {
	return &Emitter{
		logger:    logger,
		size:      cfg.outboxSize(),
		cooldown:  cfg.CraftCooldown(),
		discard:   cfg.DiscardCommands,
		now:       time.Now,
		outboxes:  make(map[string]chan Command),
		lastCraft: make(map[string]time.Time),
	}
}

// Register creates the outbox for a connection.
func (e *Emitter) Register(connID string) <-chan Command {
	ch := make(chan Command, e.size)
	e.mu.Lock()
	e.outboxes[connID] = ch
	e.mu.Unlock()
	return ch
}

// Unregister removes and closes a connection's outbox.
func (e *Emitter) Unregister(connID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ch, ok := e.outboxes[connID]; ok {
		delete(e.outboxes, connID)
		close(ch)
	}
}

// Connected returns the number of registered connections.
func (e *Emitter) Connected() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.outboxes)
}

// Broadcast queues cmd on every outbox and returns how many accepted it.
func (e *Emitter) Broadcast(cmd Command) int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	delivered := 0
	for connID, ch := range e.outboxes {
		select {
		case ch <- cmd:
			delivered++
		default:
			e.dropped.Add(1)
			e.logger.Warn("Outbox full, command dropped",
				zap.String("conn_id", connID),
				zap.String("type", string(cmd.Type)))
		}
	}
	return delivered
}

// SetLimit forwards a limit update.
func (e *Emitter) SetLimit(fingerprint string, min, max *int64) int {
	return e.Broadcast(SetLimit(fingerprint, min, max))
}

// Craft forwards an operator craft request. Operator requests are not throttled.
func (e *Emitter) Craft(itemID, modID string, amount int64) int {
	return e.Broadcast(CraftItem(itemID, modID, amount))
}

// WebChat relays an operator chat message.
func (e *Emitter) WebChat(displayName, content string) int {
	return e.Broadcast(WebChat(displayName, content))
}

// Apply emits the commands for a set of decisions.
// crafting holds fingerprints the storage system reports as already being crafted.
func (e *Emitter) Apply(decisions []inventory.Decision, crafting map[string]bool, l *zap.Logger) {
	for _, d := range decisions {
		fields := []zap.Field{
			zap.String("fingerprint", d.Fingerprint),
			zap.String("item_id", d.ItemID),
			zap.String("mod_id", d.ModID),
			zap.Int64("current", d.Current),
		}

		switch d.Action {
		case inventory.ActionRequestMore:
			if crafting[d.Fingerprint] {
				l.Debug("Craft already running", fields...)
				continue
			}
			if !e.allowCraft(d.Fingerprint) {
				e.throttled.Add(1)
				l.Debug("Craft request throttled", fields...)
				continue
			}
			if e.Broadcast(CraftItem(d.ItemID, d.ModID, d.Amount)) > 0 {
				e.markCraft(d.Fingerprint)
				e.craftRequests.Add(1)
				l.Info("Craft requested", append(fields, zap.Int64("amount", d.Amount))...)
			}

		case inventory.ActionDiscardExcess:
			e.discards.Add(1)
			if e.discard {
				e.Broadcast(DiscardItem(d))
			}
			l.Warn("Item above max", append(fields, zap.Int64("excess", d.Amount), zap.Bool("command_sent", e.discard))...)

		case inventory.ActionUnremediable:
			e.unremediable.Add(1)
			l.Warn("Item below min and not craftable", fields...)
		}
	}
}

func (e *Emitter) allowCraft(fingerprint string) bool {
	if e.cooldown <= 0 {
		return true
	}
	e.craftMu.Lock()
	defer e.craftMu.Unlock()
	last, ok := e.lastCraft[fingerprint]
	return !ok || e.now().Sub(last) >= e.cooldown
}

func (e *Emitter) markCraft(fingerprint string) {
	e.craftMu.Lock()
	e.lastCraft[fingerprint] = e.now()
	e.craftMu.Unlock()
}

// Stats returns the emitter counters.
func (e *Emitter) Stats() EmitStats {
	return EmitStats{
		CraftRequests: e.craftRequests.Load(),
		Throttled:     e.throttled.Load(),
		Discards:      e.discards.Load(),
		Unremediable:  e.unremediable.Load(),
		Dropped:       e.dropped.Load(),
	}
}
