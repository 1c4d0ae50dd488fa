package bridge

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Socket paths.
const (
	StoragePath = "/storage"
	EventsPath  = "/events"
)

// Server accepts storage-system and observer websocket connections.
type Server struct {
	cfg       Config
	processor *Processor
	emitter   *Emitter
	hub       *Hub
	chat      ChatRecorder
	logger    *zap.Logger

	upgrader websocket.Upgrader
	http     *http.Server

	baseCtx context.Context
	cancel  context.CancelFunc
	conns   sync.WaitGroup
}

// NewServer creates a server. chat may be nil.
func NewServer(cfg Config, processor *Processor, emitter *Emitter, hub *Hub, chat ChatRecorder, logger *zap.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:       cfg,
		processor: processor,
		emitter:   emitter,
		hub:       hub,
		chat:      chat,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 4 * 1024,
			// The in-game computer sends no Origin; dashboards are served elsewhere.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		baseCtx: ctx,
		cancel:  cancel,
	}
	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the socket routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(StoragePath, s.handleStorage)
	mux.HandleFunc(EventsPath, s.handleEvents)
	// in-game clients dial the bare address
	mux.HandleFunc("/", s.handleStorage)
	return mux
}

func (s *Server) handleStorage(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Storage upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	if s.cfg.MaxMessageBytes > 0 {
		conn.SetReadLimit(s.cfg.MaxMessageBytes)
	}

	id := uuid.NewString()
	session := &Session{
		id:           id,
		conn:         conn,
		processor:    s.processor,
		emitter:      s.emitter,
		chat:         s.chat,
		status:       s.hub,
		writeTimeout: s.cfg.WriteTimeout(),
		logger:       s.logger.With(zap.String("conn_id", id), zap.String("remote", r.RemoteAddr)),
		acc:          NewAccumulator(),
	}

	s.conns.Add(1)
	defer s.conns.Done()
	session.Run(s.baseCtx)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Observer upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	conn.SetReadLimit(4096)

	connected := s.emitter.Connected() > 0
	s.conns.Add(1)
	defer s.conns.Done()
	s.hub.Serve(s.baseCtx, conn, Event{Event: EventUpdateStorageStatus, Connected: &connected}, s.cfg.WriteTimeout())
}

// ListenAndServe blocks until the server stops. It returns nil after Shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("Bridge listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections, closes open sockets and waits for their
// goroutines, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	err := s.http.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}
