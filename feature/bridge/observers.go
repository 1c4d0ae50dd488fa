package bridge

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Observer event names.
const (
	EventUpdateItems         = "updateItems"
	EventUpdateChat          = "updateChat"
	EventUpdateStorageStatus = "updateStorageStatus"
)

// Event is a frame pushed to observers.
type Event struct {
	Event     string `json:"event"`
	Connected *bool  `json:"connected,omitempty"`
}

// Publisher mirrors events to another transport.
type Publisher interface {
	Publish(ctx context.Context, payload any) (int64, error)
}

type subscriber struct {
	id   string
	conn *websocket.Conn
	send chan Event
}

// Hub fans events out to observer sockets and, optionally, a Publisher.
// Events are best-effort: a slow observer misses events rather than blocking.
type Hub struct {
	logger    *zap.Logger
	publisher Publisher

	mu        sync.RWMutex
	observers map[string]*subscriber
	closed    bool

	mirror chan Event
	wg     sync.WaitGroup
}

// NewHub creates a hub. publisher may be nil.
func NewHub(publisher Publisher, logger *zap.Logger) *Hub {
	h := &Hub{
		logger:    logger,
		publisher: publisher,
		observers: make(map[string]*subscriber),
	}
	if publisher != nil {
		h.mirror = make(chan Event, 64)
		h.wg.Add(1)
		go h.runMirror()
	}
	return h
}

// InventoryChanged pings observers after a cycle that changed the inventory.
func (h *Hub) InventoryChanged() {
	h.broadcast(Event{Event: EventUpdateItems})
}

// ChatUpdated pings observers after a chat message was stored.
func (h *Hub) ChatUpdated() {
	h.broadcast(Event{Event: EventUpdateChat})
}

// StorageStatus reports whether a storage system is connected.
func (h *Hub) StorageStatus(connected bool) {
	h.broadcast(Event{Event: EventUpdateStorageStatus, Connected: &connected})
}

// Count returns the number of connected observers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

func (h *Hub) broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}

	for _, o := range h.observers {
		select {
		case o.send <- ev:
		default:
			h.logger.Debug("Observer lagging, event skipped", zap.String("observer_id", o.id), zap.String("event", ev.Event))
		}
	}

	if h.mirror != nil {
		select {
		case h.mirror <- ev:
		default:
			h.logger.Warn("Event mirror backlog full, event skipped", zap.String("event", ev.Event))
		}
	}
}

func (h *Hub) runMirror() {
	defer h.wg.Done()
	for ev := range h.mirror {
		if _, err := h.publisher.Publish(context.Background(), ev); err != nil {
			h.logger.Warn("Failed to mirror event", zap.String("event", ev.Event), zap.Error(err))
		}
	}
}

// Serve runs one observer connection until it closes or ctx is done.
// initial is sent before any broadcast event.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, initial Event, writeTimeout time.Duration) {
	o := &subscriber{id: uuid.NewString(), conn: conn, send: make(chan Event, 16)}
	o.send <- initial

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.observers[o.id] = o
	h.mu.Unlock()

	l := h.logger.With(zap.String("observer_id", o.id))
	l.Debug("Observer connected")

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for {
			select {
			case ev := <-o.send:
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteJSON(ev); err != nil {
					_ = conn.Close()
					return
				}
			case <-done:
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	// Observers send nothing; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.observers, o.id)
	h.mu.Unlock()

	close(done)
	_ = conn.Close()
	wg.Wait()
	l.Debug("Observer disconnected")
}

// Close stops the mirror and refuses further observers.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	if h.mirror != nil {
		close(h.mirror)
	}
	h.mu.Unlock()
	h.wg.Wait()
}
