package bridge

import (
	"context"
	"errors"
	"sync"
	"time"

	"storage-bridge/feature/chat"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ChatRecorder stores chat typed in game.
type ChatRecorder interface {
	RecordGameChat(ctx context.Context, uuid, userName, content string) (*chat.Message, error)
}

// StatusNotifier is told when storage connections come and go.
type StatusNotifier interface {
	StorageStatus(connected bool)
}

// Session is one storage-system connection. It reads frames sequentially and
// owns the streaming accumulator; a second goroutine drains its outbox.
type Session struct {
	id           string
	conn         *websocket.Conn
	processor    *Processor
	emitter      *Emitter
	chat         ChatRecorder
	status       StatusNotifier
	writeTimeout time.Duration
	logger       *zap.Logger

	acc       *Accumulator
	malformed int
}

// Run serves the connection until it closes or ctx is done.
// Records accumulated without an end marker are discarded.
func (s *Session) Run(ctx context.Context) {
	outbox := s.emitter.Register(s.id)
	s.logger.Info("Storage system connected")
	if s.status != nil {
		s.status.StorageStatus(true)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		s.writeLoop(outbox)
	}()

	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			_ = s.conn.Close()
		case <-done:
		}
	}()

	s.readLoop(ctx)

	close(done)
	s.emitter.Unregister(s.id)
	_ = s.conn.Close()
	wg.Wait()

	if n := s.acc.Len(); n > 0 {
		s.logger.Warn("Connection lost mid-cycle, partial snapshot discarded", zap.Int("records", n))
		s.acc.Reset()
	}
	s.logger.Info("Storage system disconnected", zap.Int("malformed", s.malformed))
	if s.status != nil {
		s.status.StorageStatus(s.emitter.Connected() > 0)
	}
}

func (s *Session) readLoop(ctx context.Context) {
	for {
		_, frame, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && ctx.Err() == nil {
				s.logger.Debug("Read failed", zap.Error(err))
			}
			return
		}
		s.handle(ctx, frame)
	}
}

// handle processes one frame. Nothing here ends the session.
func (s *Session) handle(ctx context.Context, frame []byte) {
	in, err := Decode(frame)
	if err != nil {
		s.malformed++
		s.logger.Warn("Dropped malformed message", zap.Error(err), zap.Int("bytes", len(frame)))
		return
	}

	switch in.Type {
	case TypeStoredItem:
		s.acc.Add(in.Record)

	case TypeStoredItemEol:
		snap := s.acc.Flush()
		_, _ = s.processor.Process(ctx, s.id, snap)

	case TypeStoredItems:
		if in.Dropped > 0 {
			s.malformed += in.Dropped
			s.logger.Warn("Dropped malformed batch entries", zap.Int("dropped", in.Dropped), zap.Int("kept", len(in.Records)))
		}
		_, _ = s.processor.Process(ctx, s.id, in.Records)

	case TypeGameChat:
		if s.chat == nil {
			return
		}
		if _, err := s.chat.RecordGameChat(ctx, in.Chat.UUID, in.Chat.UserName, in.Chat.Message); err != nil {
			s.logger.Error("Failed to store game chat", zap.Error(err))
		}

	default:
		s.logger.Debug("Ignored message", zap.String("type", string(in.Type)))
	}
}

func (s *Session) writeLoop(outbox <-chan Command) {
	for cmd := range outbox {
		_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
		if err := s.conn.WriteJSON(cmd); err != nil {
			if !errors.Is(err, websocket.ErrCloseSent) {
				s.logger.Warn("Failed to send command", zap.String("type", string(cmd.Type)), zap.Error(err))
			}
			_ = s.conn.Close()
			return
		}
	}
}
