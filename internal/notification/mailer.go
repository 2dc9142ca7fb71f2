package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/shared/config"
	"go-payroll/internal/shared/contextutil"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type noopMailer struct{}

func (noopMailer) Send(context.Context, string, string, string) error {
	return nil
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

// NewMailer returns an SMTP mailer, or a mailer that drops everything when
// SMTP is not configured.
func NewMailer(cfg config.SMTPConfig) Mailer {
	if !cfg.Enabled() {
		return noopMailer{}
	}
	return &smtpMailer{cfg: cfg}
}

func (s *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return nil
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	dialer := net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return err
		}
	}

	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(buildMessage(s.cfg.From, to, subject, body)); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildMessage(from, to, subject, body string) []byte {
	headers := []string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n" + body)
}

// DirectEmailer renders and sends in the caller's goroutine.
type DirectEmailer struct {
	mailer Mailer
}

func NewDirectEmailer(mailer Mailer) *DirectEmailer {
	return &DirectEmailer{mailer: mailer}
}

func (e *DirectEmailer) SendTemplate(ctx context.Context, to, template string, data map[string]string) error {
	subject, body, err := RenderEmail(template, data)
	if err != nil {
		return err
	}
	return e.mailer.Send(ctx, to, subject, body)
}

// OutboxEmailer queues an EmailRequested event; the consumer binary delivers it.
type OutboxEmailer struct {
	outbox kafka.OutboxRepository
}

func NewOutboxEmailer(outbox kafka.OutboxRepository) *OutboxEmailer {
	return &OutboxEmailer{outbox: outbox}
}

func (e *OutboxEmailer) SendTemplate(ctx context.Context, to, template string, data map[string]string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("notification: recipient address is empty")
	}

	subject, _, err := RenderEmail(template, data)
	if err != nil {
		return err
	}

	rid := contextutil.GetRequestID(ctx)
	event, err := kafka.NewEvent(rid, "email", to, "email_requested", events.EmailRequestedTopic,
		events.EmailRequestedEvent{
			EventType:   "email_requested",
			RequestID:   rid,
			AggregateID: to,
			To:          to,
			Subject:     subject,
			Template:    template,
			Data:        data,
			OccurredAt:  time.Now().UTC(),
		})
	if err != nil {
		return err
	}
	return e.outbox.Create(ctx, event)
}
