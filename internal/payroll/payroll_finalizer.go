package payroll

import (
	"context"
	"fmt"
	"net/http"

	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/notification"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/shared/period"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const payslipContentType = "application/pdf"

// step is one unit of the payment pipeline. compensate undoes a completed
// action when a later step fails.
type step struct {
	name       string
	action     func(ctx context.Context) error
	compensate func(ctx context.Context)
}

func runSteps(ctx context.Context, steps []step) (string, error) {
	completed := make([]step, 0, len(steps))
	for _, st := range steps {
		if err := st.action(ctx); err != nil {
			for i := len(completed) - 1; i >= 0; i-- {
				if completed[i].compensate != nil {
					completed[i].compensate(ctx)
				}
			}
			return st.name, err
		}
		completed = append(completed, st)
	}
	return "", nil
}

func (s *service) Pay(ctx context.Context, actorID, id string) (PayrollResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}

	p, err := s.load(ctx, s.repo, id)
	if err != nil {
		return PayrollResponse{}, err
	}

	if err := s.finalize(ctx, p); err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) PayBatch(ctx context.Context, actorID string, month, year int) (BatchPaymentResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(actorID); err != nil {
		return BatchPaymentResult{}, payrollerrors.ErrInvalidActorID
	}
	per, err := period.New(month, year)
	if err != nil {
		return BatchPaymentResult{}, payrollerrors.ErrInvalidPeriod
	}

	release, err := s.locker.Acquire(ctx, "payroll:pay:"+per.String(), s.cfg.BatchLockTTL)
	if err != nil {
		return BatchPaymentResult{}, err
	}
	defer release(context.WithoutCancel(ctx))

	approved, err := s.repo.FindByPeriod(ctx, per.String(), StatusApproved)
	if err != nil {
		log.Error("pay batch load approved failed", zap.Error(err))
		return BatchPaymentResult{}, mapRepositoryError(err)
	}
	if len(approved) == 0 {
		return BatchPaymentResult{}, payrollerrors.ErrNoApprovedPayrolls
	}

	result := BatchPaymentResult{Period: per.String(), Details: make([]PaymentDetail, 0, len(approved))}
	for i := range approved {
		p := &approved[i]
		detail := PaymentDetail{PayrollID: p.ID.String(), EmployeeID: p.EmployeeID.String()}

		if err := s.finalize(ctx, p); err != nil {
			httpErr := apperror.ToHTTP(err)
			detail.Code = httpErr.Code
			detail.Message = httpErr.Message
			result.Failed++
		} else {
			detail.Success = true
			detail.TransactionID = *p.TransactionID
			result.Successful++
		}
		result.Details = append(result.Details, detail)
	}

	log.Info("pay batch finished",
		zap.String("period", result.Period),
		zap.String("actor_id", actorID),
		zap.Int("successful", result.Successful),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// finalize renders and stores the payslip and moves the record to PAID.
// Those three steps are all-or-nothing: on failure the stored artifact is
// removed and p is restored to its APPROVED state. The notification that
// follows is outside that boundary.
func (s *service) finalize(ctx context.Context, p *Payroll) error {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.String("payroll_id", p.ID.String()))

	if p.Status != StatusApproved {
		return payrollerrors.ErrInvalidState
	}

	snap := p.snapshot()
	per, err := period.Parse(p.Period)
	if err != nil {
		return payrollerrors.ErrInvalidPeriodFormat
	}

	// The object name carries the transaction id, so a rolled-back attempt
	// only ever deletes its own payslip.
	var (
		txnID      string
		objectName string
		pdf        []byte
		url        string
	)

	steps := []step{
		{
			name: "assign_transaction",
			action: func(ctx context.Context) error {
				seq, err := s.counter.GetNextValue(ctx, per.Compact(), counter.TypeTransaction)
				if err != nil {
					return err
				}
				txnID = counter.TransactionID(per.Compact(), seq)
				objectName = fmt.Sprintf("%s/%s-%s.pdf", p.Period, p.ID, txnID)
				p.TransactionID = &txnID
				return nil
			},
		},
		{
			name: "render_payslip",
			action: func(context.Context) error {
				out, err := s.renderer.Render(p)
				if err != nil {
					return payrollerrors.ErrPayslipGeneration.WithCause(err)
				}
				pdf = out
				return nil
			},
		},
		{
			name: "store_payslip",
			action: func(ctx context.Context) error {
				u, err := s.store.Save(ctx, objectName, pdf, payslipContentType)
				if err != nil {
					return payrollerrors.ErrPayslipStorage.WithCause(err)
				}
				url = u
				return nil
			},
			compensate: func(ctx context.Context) {
				if err := s.store.Delete(context.WithoutCancel(ctx), objectName); err != nil {
					log.Error("payslip cleanup failed", zap.String("object", objectName), zap.Error(err))
				}
			},
		},
		{
			name: "mark_paid",
			action: func(ctx context.Context) error {
				at := s.now().UTC()
				if err := p.MarkPaid(txnID, url, at); err != nil {
					return err
				}
				return s.repo.Transition(ctx, p.ID, StatusApproved, map[string]any{
					"status":         StatusPaid,
					"transaction_id": txnID,
					"payslip_url":    url,
					"paid_at":        at,
				})
			},
		},
	}

	if failed, err := runSteps(ctx, steps); err != nil {
		p.restore(snap)
		s.metrics.IncPayment(false)
		log.Warn("payment rolled back", zap.String("step", failed), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.metrics.IncPayment(true)
	log.Info("payroll paid", zap.String("transaction_id", txnID))

	s.notifyPaid(ctx, p)
	return nil
}

// notifyPaid never fails the payment; a failed delivery leaves
// NotificationSent false for a later resend.
func (s *service) notifyPaid(ctx context.Context, p *Payroll) bool {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := s.sink.PayrollPaid(ctx, s.paidNotice(p)); err != nil {
		log.Warn("payment notification failed",
			zap.String("payroll_id", p.ID.String()),
			zap.Error(err),
		)
		return false
	}

	if err := s.repo.SetNotificationSent(ctx, p.ID, true); err != nil {
		log.Error("mark notification sent failed", zap.String("payroll_id", p.ID.String()), zap.Error(err))
		return false
	}
	p.NotificationSent = true
	return true
}

func (s *service) ResendNotification(ctx context.Context, id string) (PayrollResponse, error) {
	p, err := s.load(ctx, s.repo, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	if p.Status != StatusPaid {
		return PayrollResponse{}, payrollerrors.ErrInvalidState
	}
	if p.NotificationSent {
		return PayrollResponse{}, payrollerrors.ErrNotificationAlreadySent
	}

	if !s.notifyPaid(ctx, p) {
		return PayrollResponse{}, apperror.New(
			apperror.CodeServiceUnavailable,
			"notification could not be delivered, try again later",
			http.StatusServiceUnavailable,
		)
	}
	return mapToResponse(*p), nil
}

func (s *service) paidNotice(p *Payroll) notification.PaidNotice {
	n := notification.PaidNotice{
		PayrollID:  p.ID.String(),
		EmployeeID: p.EmployeeID.String(),
		Period:     p.Period,
		NetSalary:  p.NetSalary.StringFixed(2),
		Currency:   s.cfg.Currency,
	}
	if p.Employee != nil {
		n.Email = p.Employee.Email
		n.FullName = p.Employee.FullName
	}
	if p.TransactionID != nil {
		n.TransactionID = *p.TransactionID
	}
	if p.PayslipURL != nil {
		n.PayslipURL = *p.PayslipURL
	}
	return n
}
