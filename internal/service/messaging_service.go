package service

import (
	"context"
	"time"

	"github.com/fathima-sithara/social-service/internal/apperr"
	"github.com/fathima-sithara/social-service/internal/conversation"
	"github.com/fathima-sithara/social-service/internal/domain"
	"github.com/fathima-sithara/social-service/internal/metrics"
	"github.com/fathima-sithara/social-service/internal/repository"
	"go.uber.org/zap"
)

// EventPublisher receives every message after it is stored.
type EventPublisher interface {
	PublishMessageCreated(ctx context.Context, m domain.Message) error
}

type SendInput struct {
	Sender    string
	Receiver  string
	Text      string
	ImageURL  string
	Timestamp time.Time
}

// Conversation is the answer to a message read: the partner list when no
// partner was named, otherwise the ordered thread.
type Conversation struct {
	Partners []string
	Messages []domain.Message
	IsThread bool
}

// defaultPublishTimeout bounds how long a send waits on the event publisher.
const defaultPublishTimeout = 2 * time.Second

type MessagingService struct {
	store          repository.MessageStore
	events         EventPublisher
	metrics        *metrics.Metrics
	log            *zap.Logger
	publishTimeout time.Duration
}

// NewMessagingService wires the service. events may be nil.
func NewMessagingService(store repository.MessageStore, events EventPublisher, m *metrics.Metrics, log *zap.Logger) *MessagingService {
	return &MessagingService{
		store:          store,
		events:         events,
		metrics:        m,
		log:            log,
		publishTimeout: defaultPublishTimeout,
	}
}

func (s *MessagingService) SendMessage(ctx context.Context, in SendInput) (*domain.Message, error) {
	const op = "messaging.SendMessage"

	msg, err := conversation.NewMessage(in.Sender, in.Receiver, in.Text, in.ImageURL, in.Timestamp)
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, &msg); err != nil {
		s.log.Error("insert message failed",
			zap.String("sender", msg.Sender),
			zap.String("receiver", msg.Receiver),
			zap.Error(err))
		return nil, apperr.Store(op, "Failed to save message.", err)
	}
	s.metrics.MessagesSent.Inc()

	s.publish(ctx, msg)
	return &msg, nil
}

// publish never fails the send; a slow or broken broker costs at most
// publishTimeout.
func (s *MessagingService) publish(ctx context.Context, msg domain.Message) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()
	if err := s.events.PublishMessageCreated(ctx, msg); err != nil {
		s.log.Warn("publish message.created failed",
			zap.String("message_id", msg.ID.Hex()),
			zap.Error(err))
	}
}

func (s *MessagingService) ListOrThread(ctx context.Context, userID, partnerID string) (Conversation, error) {
	const op = "messaging.ListOrThread"

	if userID == "" {
		return Conversation{}, apperr.MissingParameter(op, "User email is required.")
	}

	if partnerID != "" {
		records, err := s.store.FindBetween(ctx, userID, partnerID)
		if err != nil {
			s.log.Error("find thread failed", zap.String("user", userID), zap.String("chat_with", partnerID), zap.Error(err))
			return Conversation{}, apperr.Store(op, "Failed to fetch messages.", err)
		}
		thread, err := conversation.Thread(userID, partnerID, records)
		if err != nil {
			return Conversation{}, err
		}
		s.metrics.MessageReads.WithLabelValues("thread").Inc()
		return Conversation{Messages: thread, IsThread: true}, nil
	}

	records, err := s.store.FindTouching(ctx, userID)
	if err != nil {
		s.log.Error("find partners failed", zap.String("user", userID), zap.Error(err))
		return Conversation{}, apperr.Store(op, "Failed to fetch messages.", err)
	}
	partners, err := conversation.ListPartners(userID, records)
	if err != nil {
		return Conversation{}, err
	}
	s.metrics.MessageReads.WithLabelValues("partners").Inc()
	return Conversation{Partners: partners}, nil
}
