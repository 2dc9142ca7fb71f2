package notification

import (
	"context"
	"fmt"

	"go-payroll/internal/events"
	"go-payroll/internal/shared/metrics"

	"go.uber.org/zap"
)

type Dispatcher struct {
	emailer Emailer
	pusher  Pusher
	metrics *metrics.Registry
	logger  *zap.Logger
}

func NewDispatcher(emailer Emailer, pusher Pusher, m *metrics.Registry, logger ...*zap.Logger) *Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	return &Dispatcher{emailer: emailer, pusher: pusher, metrics: m, logger: l}
}

// PayrollPaid reports an error only when the email could not be handed off.
// The in-app push is best effort.
func (d *Dispatcher) PayrollPaid(ctx context.Context, n PaidNotice) error {
	if d.pusher != nil {
		if err := d.pusher.SendTo(n.EmployeeID, EventPayrollPaid, n); err != nil {
			d.logger.Debug("push payroll paid skipped",
				zap.String("employee_id", n.EmployeeID),
				zap.Error(err),
			)
		}
	}

	if d.emailer == nil {
		d.metrics.IncNotification(false)
		return fmt.Errorf("notification: no emailer configured")
	}

	err := d.emailer.SendTemplate(ctx, n.Email, events.EmailTemplatePayrollPaid, map[string]string{
		"full_name":      n.FullName,
		"period":         n.Period,
		"net_salary":     n.NetSalary,
		"currency":       n.Currency,
		"transaction_id": n.TransactionID,
		"payslip_url":    n.PayslipURL,
	})
	d.metrics.IncNotification(err == nil)
	if err != nil {
		d.logger.Warn("payroll paid email failed",
			zap.String("payroll_id", n.PayrollID),
			zap.String("employee_id", n.EmployeeID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (d *Dispatcher) PeriodProcessed(_ context.Context, n ProcessedNotice) {
	if d.pusher == nil {
		return
	}
	d.pusher.Broadcast(EventPayrollProcessed, n)
}
