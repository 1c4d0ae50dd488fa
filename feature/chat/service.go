package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storage-bridge/core/validation"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrInvalidMessage is returned when a posted message fails validation.
var ErrInvalidMessage = errors.New("invalid chat message")

// Relay forwards web messages into the game.
type Relay interface {
	WebChat(displayName, content string) int
}

// Notifier tells observers the chat log changed.
type Notifier interface {
	ChatUpdated()
}

// PostInput is an operator chat message.
type PostInput struct {
	DisplayName string `json:"displayName" validate:"required,max=64"`
	Content     string `json:"content" validate:"required,max=1024"`
}

// Service stores chat messages from both sides.
type Service struct {
	db       *gorm.DB
	relay    Relay
	notifier Notifier
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new chat service. relay and notifier may be nil.
func NewService(db *gorm.DB, relay Relay, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		db:       db,
		relay:    relay,
		notifier: notifier,
		validate: validation.New(),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Migrate creates the chat table.
func (s *Service) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Message{}); err != nil {
		return fmt.Errorf("failed to migrate chat table: %w", err)
	}
	return nil
}

// RecordGameChat stores a message sent in game.
func (s *Service) RecordGameChat(ctx context.Context, uuid, userName, content string) (*Message, error) {
	msg := &Message{
		DatePosted:  s.now(),
		Source:      SourceGame,
		UUID:        uuid,
		DisplayName: userName,
		Content:     content,
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to store game chat: %w", err)
	}
	s.notify()
	return msg, nil
}

// Post stores an operator message and relays it into the game.
// The message is stored even when no storage system is connected.
func (s *Service) Post(ctx context.Context, in PostInput) (*Message, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMessage, validation.Summary(err))
	}

	msg := &Message{
		DatePosted:  s.now(),
		Source:      SourceWeb,
		DisplayName: in.DisplayName,
		Content:     in.Content,
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to store web chat: %w", err)
	}

	if s.relay != nil && s.relay.WebChat(in.DisplayName, in.Content) == 0 {
		s.logger.Warn("Web chat stored but not relayed, storage system offline")
	}
	s.notify()
	return msg, nil
}

// Recent returns the latest messages, oldest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Message, error) {
	msgs := []Message{}
	err := s.db.WithContext(ctx).Order("date_posted DESC").Order("id DESC").Limit(limit).Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load chat: %w", err)
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (s *Service) notify() {
	if s.notifier != nil {
		s.notifier.ChatUpdated()
	}
}
