package payroll

import (
	"context"

	"go-payroll/internal/employee"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/notification"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/money"
	"go-payroll/internal/shared/period"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProcessPeriod creates PENDING payrolls for every active employee that does
// not have one for the period yet. Per-employee failures are reported in the
// result and never abort the run.
func (s *service) ProcessPeriod(ctx context.Context, actorID string, month, year int) (BatchResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	per, err := period.New(month, year)
	if err != nil {
		return BatchResult{}, payrollerrors.ErrInvalidPeriod
	}
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return BatchResult{}, payrollerrors.ErrInvalidActorID
	}

	release, err := s.locker.Acquire(ctx, "payroll:process:"+per.String(), s.cfg.BatchLockTTL)
	if err != nil {
		log.Warn("process period lock not acquired", zap.String("period", per.String()), zap.Error(err))
		return BatchResult{}, err
	}
	defer release(context.WithoutCancel(ctx))

	active, err := s.employees.FindActive(ctx)
	if err != nil {
		log.Error("process period load employees failed", zap.Error(err))
		return BatchResult{}, err
	}
	if len(active) == 0 {
		return BatchResult{}, payrollerrors.ErrNoActiveEmployees
	}

	existing, err := s.repo.ExistingEmployeeIDs(ctx, per.String())
	if err != nil {
		log.Error("process period load existing failed", zap.Error(err))
		return BatchResult{}, mapRepositoryError(err)
	}
	done := make(map[uuid.UUID]struct{}, len(existing))
	for _, id := range existing {
		done[id] = struct{}{}
	}

	result := BatchResult{
		Period:  per.String(),
		Records: []PayrollResponse{},
		Errors:  []BatchError{},
	}

	remaining := make([]employee.Employee, 0, len(active))
	for _, e := range active {
		if _, ok := done[e.ID]; ok {
			result.SkippedExisting++
			continue
		}
		remaining = append(remaining, e)
	}
	if len(remaining) == 0 {
		log.Info("process period nothing to do",
			zap.String("period", per.String()),
			zap.Int("skipped_existing", result.SkippedExisting),
		)
		return result, payrollerrors.ErrPeriodAlreadyProcessed.WithDetails(result)
	}

	policy := PolicyFor(s.cfg, per)

	for _, e := range remaining {
		lopDays := s.resolveLOP(ctx, log, e, per)

		breakdown, err := Calculate(e.Compensation, Adjustments{LOPDays: lopDays}, policy)
		if err != nil {
			log.Warn("payroll computation failed",
				zap.String("employee_id", e.ID.String()),
				zap.String("period", per.String()),
				zap.Error(err),
			)
			result.addError(e, err)
			continue
		}

		rec := NewPayroll(e.ID, per, breakdown, lopDays, actor)
		if err := s.repo.Create(ctx, rec); err != nil {
			if isUniquePayrollViolation(err) {
				// another run created it between our read and this insert
				result.SkippedExisting++
				continue
			}
			log.Error("payroll create failed",
				zap.String("employee_id", e.ID.String()),
				zap.Error(err),
			)
			result.addError(e, err)
			continue
		}

		rec.Employee = &PayrollEmployee{
			ID:           e.ID,
			FullName:     e.FullName,
			Email:        e.Email,
			EmployeeCode: e.EmployeeCode,
		}
		result.Processed++
		result.Records = append(result.Records, mapToResponse(*rec))
	}

	s.metrics.AddBatch(result.Processed, result.Errored, result.SkippedExisting)
	s.sink.PeriodProcessed(ctx, notification.ProcessedNotice{
		Period:          result.Period,
		Processed:       result.Processed,
		Errored:         result.Errored,
		SkippedExisting: result.SkippedExisting,
	})

	log.Info("process period finished",
		zap.String("period", result.Period),
		zap.String("actor_id", actorID),
		zap.Int("processed", result.Processed),
		zap.Int("errored", result.Errored),
		zap.Int("skipped_existing", result.SkippedExisting),
	)

	return result, nil
}

// resolveLOP degrades to zero LOP when attendance cannot be read.
func (s *service) resolveLOP(ctx context.Context, log *zap.Logger, e employee.Employee, per period.Period) decimal.Decimal {
	if s.lop == nil {
		return money.Zero
	}

	days, err := s.lop.ResolveLOP(ctx, e.ID.String(), int(per.Month), per.Year)
	if err != nil {
		log.Warn("lop resolution failed, assuming zero",
			zap.String("employee_id", e.ID.String()),
			zap.String("period", per.String()),
			zap.Error(err),
		)
		return money.Zero
	}
	if days.IsNegative() {
		return money.Zero
	}
	return days
}

func (r *BatchResult) addError(e employee.Employee, err error) {
	httpErr := apperror.ToHTTP(err)
	r.Errored++
	r.Errors = append(r.Errors, BatchError{
		EmployeeID:   e.ID.String(),
		EmployeeCode: e.EmployeeCode,
		Code:         httpErr.Code,
		Message:      httpErr.Message,
	})
}
