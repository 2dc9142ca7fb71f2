package events

import "time"

const EmailRequestedTopic = "payroll.notification.email.v1"

const (
	EmailTemplatePayrollPaid = "payroll_paid"
	EmailTemplateWelcome     = "welcome"
)

// EmailRequestedEvent asks the mailer consumer to deliver one templated email.
type EmailRequestedEvent struct {
	EventType   string            `json:"event_type"`
	RequestID   string            `json:"request_id,omitempty"`
	AggregateID string            `json:"aggregate_id"`
	To          string            `json:"to"`
	Subject     string            `json:"subject"`
	Template    string            `json:"template"`
	Data        map[string]string `json:"data"`
	OccurredAt  time.Time         `json:"occurred_at"`
}
