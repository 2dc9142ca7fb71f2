package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-payroll/internal/events"
	"go-payroll/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// EmailHandler delivers templated mail requested through the outbox.
type EmailHandler struct {
	mailer notification.Mailer
	logger *zap.Logger
}

func NewEmailHandler(mailer notification.Mailer, logger *zap.Logger) *EmailHandler {
	return &EmailHandler{mailer: mailer, logger: logger.Named("kafka.consumer.email")}
}

// Handle processes one message. A returned error leaves the message
// uncommitted so it is redelivered; malformed payloads are dropped.
func (h *EmailHandler) Handle(ctx context.Context, msg kafkago.Message) error {
	switch msg.Topic {
	case events.EmployeeCreatedTopic:
		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			h.logger.Error("decode employee_created event failed", zap.Error(err))
			return nil
		}
		return h.deliver(ctx, event.Email, events.EmailTemplateWelcome, map[string]string{
			"full_name":     event.FullName,
			"employee_code": event.EmployeeCode,
		}, event.RequestID)

	case events.EmailRequestedTopic:
		var event events.EmailRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			h.logger.Error("decode email_requested event failed", zap.Error(err))
			return nil
		}
		return h.deliver(ctx, event.To, event.Template, event.Data, event.RequestID)

	default:
		h.logger.Warn("unexpected topic, skipping", zap.String("topic", msg.Topic))
		return nil
	}
}

func (h *EmailHandler) deliver(ctx context.Context, to, template string, data map[string]string, requestID string) error {
	if to == "" {
		h.logger.Warn("email without recipient dropped", zap.String("template", template))
		return nil
	}

	subject, body, err := notification.RenderEmail(template, data)
	if err != nil {
		h.logger.Error("render email failed", zap.String("template", template), zap.Error(err))
		return nil
	}

	if err := h.mailer.Send(ctx, to, subject, body); err != nil {
		return fmt.Errorf("send %s email: %w", template, err)
	}

	h.logger.Info("email delivered",
		zap.String("request_id", requestID),
		zap.String("template", template),
		zap.String("to", to),
	)
	return nil
}

// Consume runs until ctx is cancelled, committing each message once handle
// accepts it.
func Consume(
	ctx context.Context,
	reader MessageReader,
	handle func(context.Context, kafkago.Message) error,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer")
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		if err := handle(ctx, msg); err != nil {
			log.Error("handle message failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Error(err))
		}
	}
}
