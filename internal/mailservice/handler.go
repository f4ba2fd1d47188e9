package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/exp/rand"

	"github.com/sushihentaime/quillpad/internal/common"
)

const (
	newCommentTemplate = "new_comment.html"
	maxRetries         = 5
	defaultBaseDelay   = 500 * time.Millisecond
)

// NewMailService builds a consumer that mails recipient about every new comment.
func NewMailService(mb common.MessageConsumer, smtp SMTPConfig, recipient string, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:        mb,
		m:         NewMailer(smtp, NewTemplate()),
		logger:    logger,
		recipient: recipient,
		baseDelay: defaultBaseDelay,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// NotifyNewComments consumes comment.created events in the background until Close is called.
func (s *MailService) NotifyNewComments() {
	msgs, err := s.mb.Consume(common.CommentCreatedKey, common.BlogExchange, common.CommentCreatedQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				s.handleDelivery(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping NotifyNewComments due to context cancellation")
				return
			}
		}
	}()
}

// handleDelivery sends one notification, retrying with exponential backoff and jitter.
// The delivery is acked either way so a poison message cannot block the queue.
func (s *MailService) handleDelivery(msg amqp.Delivery) {
	defer msg.Ack(false)

	var event common.CommentEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
		return
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := s.m.send(s.recipient, event, newCommentTemplate)
		if err == nil {
			s.logger.Info("comment notification sent", slog.String("comment_id", event.ID))
			return
		}

		delay := time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		s.logger.Info("delaying comment notification", slog.String("comment_id", event.ID), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return
		}
	}

	s.logger.Error("could not send comment notification", slog.String("comment_id", event.ID))
}

func (s *MailService) Close() {
	s.cancel()
}
