package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/shared/config"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/money"
	"go-payroll/internal/shared/period"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Check-ins after 09:15 are late.
const (
	lateHour   = 9
	lateMinute = 15
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	MarkDay(ctx context.Context, req MarkDayRequest) (AttendanceResponse, error)
	ListMonth(ctx context.Context, employeeID string, month, year int) ([]AttendanceResponse, error)
	ResolveLOP(ctx context.Context, employeeID string, month, year int) (decimal.Decimal, error)
	SyncLeave(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, from, to time.Time, status string) (int, error)
}

type service struct {
	db            *sql.DB
	repo          Repository
	missingPolicy string
	now           func() time.Time
	logger        *zap.Logger
}

func NewService(db *sql.DB, repo Repository, cfg config.PayrollConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}

	policy := cfg.MissingAttendancePolicy
	if policy == "" {
		policy = config.MissingAttendanceFullPay
	}

	return &service{
		db:            db,
		repo:          repo,
		missingPolicy: policy,
		now:           time.Now,
		logger:        l,
	}
}

func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()
	today := dateOf(now)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if existing != nil {
		if existing.CheckIn != nil {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
		}
		return AttendanceResponse{}, attendanceerrors.ErrDayAlreadyMarked
	}

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     empID,
		AttendanceDate: today,
		Status:         StatusPresent,
		CheckIn:        &now,
		IsLate:         isLate(now),
		Source:         SourceClock,
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, dateOf(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
		}
		return AttendanceResponse{}, err
	}
	if row.CheckIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
	}
	if row.CheckOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	row.CheckOut = &now
	row.WorkHours = workHours(*row.CheckIn, now)
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

// MarkDay lets an administrator record any status for a day, replacing an
// earlier entry.
func (s *service) MarkDay(ctx context.Context, req MarkDayRequest) (AttendanceResponse, error) {
	empID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}
	if !IsValidStatus(req.Status) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     empID,
		AttendanceDate: date,
		Status:         req.Status,
		Source:         SourceManual,
		Notes:          req.Notes,
	}

	if row.CheckIn, err = parseOptionalTime(req.CheckIn); err != nil {
		return AttendanceResponse{}, err
	}
	if row.CheckOut, err = parseOptionalTime(req.CheckOut); err != nil {
		return AttendanceResponse{}, err
	}
	if row.CheckIn != nil {
		row.IsLate = isLate(*row.CheckIn)
	}
	if row.CheckIn != nil && row.CheckOut != nil {
		if !row.CheckOut.After(*row.CheckIn) {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidCheckTimes
		}
		row.WorkHours = workHours(*row.CheckIn, *row.CheckOut)
	}

	if err := s.repo.Upsert(ctx, row); err != nil {
		s.logger.Error("mark attendance day failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("date", req.Date),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}

	return mapToResponse(*row), nil
}

func (s *service) ListMonth(ctx context.Context, employeeID string, month, year int) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}
	per, err := period.New(month, year)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidPeriod
	}

	rows, err := s.repo.FindByEmployeeBetween(ctx, employeeID, per.Start(), per.End())
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

// ResolveLOP reads the employee's month and applies ComputeLOP. A month with
// no records at all is governed by the configured missing-attendance policy.
func (s *service) ResolveLOP(ctx context.Context, employeeID string, month, year int) (decimal.Decimal, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return decimal.Zero, attendanceerrors.ErrInvalidEmployeeID
	}
	per, err := period.New(month, year)
	if err != nil {
		return decimal.Zero, attendanceerrors.ErrInvalidPeriod
	}

	rows, err := s.repo.FindByEmployeeBetween(ctx, employeeID, per.Start(), per.End())
	if err != nil {
		return decimal.Zero, err
	}

	if len(rows) == 0 {
		if s.missingPolicy == config.MissingAttendanceUnpaid {
			contextutil.GetLogger(ctx, s.logger).Info("no attendance recorded, charging every weekday",
				zap.String("employee_id", employeeID),
				zap.String("period", per.String()),
			)
			return decimal.NewFromInt(int64(Weekdays(per))), nil
		}
		return money.Zero, nil
	}

	return ComputeLOP(rows, per.DaysInMonth()), nil
}

// SyncLeave marks every weekday in [from, to] with status inside tx. Weekend
// days are left alone. It returns the number of days written.
func (s *service) SyncLeave(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, from, to time.Time, status string) (int, error) {
	if !IsValidStatus(status) {
		return 0, attendanceerrors.ErrInvalidStatus
	}

	repo := s.repo
	if tx != nil {
		repo = s.repo.WithTx(tx)
	}

	written := 0
	for d := dateOf(from); !d.After(dateOf(to)); d = d.AddDate(0, 0, 1) {
		if period.IsWeekend(d) {
			continue
		}
		row := &Attendance{
			ID:             uuid.New(),
			EmployeeID:     employeeID,
			AttendanceDate: d,
			Status:         status,
			Source:         SourceLeaveSync,
		}
		if err := repo.Upsert(ctx, row); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isLate(t time.Time) bool {
	h, m, _ := t.Clock()
	return h > lateHour || (h == lateHour && m > lateMinute)
}

func workHours(in, out time.Time) decimal.Decimal {
	if !out.After(in) {
		return money.Zero
	}
	return money.Round2(decimal.NewFromFloat(out.Sub(in).Hours()))
}

func parseOptionalTime(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}
	t = t.UTC()
	return &t, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format(time.DateOnly),
		Status:         a.Status,
		CheckIn:        formatTime(a.CheckIn),
		CheckOut:       formatTime(a.CheckOut),
		WorkHours:      a.WorkHours,
		IsLate:         a.IsLate,
		Source:         a.Source,
		Notes:          a.Notes,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	return resp
}
