package app

import (
	"context"
	"fmt"

	"go-payroll/internal/bootstrap"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka/consumer"
	"go-payroll/internal/notification"
	"go-payroll/internal/shared/config"
	"go-payroll/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer delivers queued email until the process is signalled.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("kafka.broker is required")
	}
	if !cfg.SMTP.Enabled() {
		log.Warn("smtp is not configured; emails will be discarded")
	}

	if err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Database.MaxRetries, logger); err != nil {
		return err
	}
	reader := connection.NewKafkaReader(cfg.Kafka.Broker, cfg.Kafka.ConsumerGroup,
		events.EmailRequestedTopic, events.EmployeeCreatedTopic)
	defer reader.Close()

	handler := consumer.NewEmailHandler(notification.NewMailer(cfg.SMTP), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.Consume(ctx, reader, handler.Handle, logger)

	sig := bootstrap.WaitForSignal()
	log.Info("consumer shutting down", zap.String("signal", sig.String()))
	return nil
}
