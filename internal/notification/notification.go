// Package notification delivers payroll events to people: email through a
// Mailer and in-app events through a Pusher.
package notification

import (
	"context"
)

const (
	EventPayrollPaid      = "payroll:paid"
	EventPayrollProcessed = "payroll:processed"
)

type PaidNotice struct {
	PayrollID     string `json:"payroll_id"`
	EmployeeID    string `json:"employee_id"`
	Email         string `json:"-"`
	FullName      string `json:"full_name"`
	Period        string `json:"period"`
	NetSalary     string `json:"net_salary"`
	Currency      string `json:"currency"`
	TransactionID string `json:"transaction_id"`
	PayslipURL    string `json:"payslip_url"`
}

type ProcessedNotice struct {
	Period          string `json:"period"`
	Processed       int    `json:"processed"`
	Errored         int    `json:"errored"`
	SkippedExisting int    `json:"skipped_existing"`
}

//go:generate mockgen -source=notification.go -destination=mock/notification_mock.go -package=mock
type Sink interface {
	PayrollPaid(ctx context.Context, n PaidNotice) error
	PeriodProcessed(ctx context.Context, n ProcessedNotice)
}

type Emailer interface {
	SendTemplate(ctx context.Context, to, template string, data map[string]string) error
}

type Pusher interface {
	SendTo(userID, event string, payload any) error
	Broadcast(event string, payload any)
}

type noopSink struct{}

func NewNoopSink() Sink {
	return noopSink{}
}

func (noopSink) PayrollPaid(context.Context, PaidNotice) error { return nil }

func (noopSink) PeriodProcessed(context.Context, ProcessedNotice) {}
