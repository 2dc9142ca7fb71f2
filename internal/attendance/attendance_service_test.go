package attendance

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/shared/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                func(tx *sql.Tx) Repository
	createFn                func(ctx context.Context, a *Attendance) error
	upsertFn                func(ctx context.Context, a *Attendance) error
	findByEmployeeAndDateFn func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	findByEmployeeBetweenFn func(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	updateFn                func(ctx context.Context, a *Attendance) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error { return f.createFn(ctx, a) }
func (f *fakeRepo) Upsert(ctx context.Context, a *Attendance) error { return f.upsertFn(ctx, a) }
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDateFn(ctx, employeeID, date)
}
func (f *fakeRepo) FindByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error) {
	return f.findByEmployeeBetweenFn(ctx, employeeID, from, to)
}
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error { return f.updateFn(ctx, a) }

func newTestService(db *sql.DB, repo Repository, policy string, now time.Time) *service {
	svc := NewService(db, repo, config.PayrollConfig{MissingAttendancePolicy: policy}, zap.NewNop()).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func TestService_ClockInAndClockOut(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	employeeID := uuid.NewString()
	ctx := context.Background()

	var saved *Attendance
	repo := &fakeRepo{
		createFn: func(_ context.Context, a *Attendance) error { cp := *a; saved = &cp; return nil },
		updateFn: func(_ context.Context, a *Attendance) error { cp := *a; saved = &cp; return nil },
		findByEmployeeAndDateFn: func(_ context.Context, id string, date time.Time) (*Attendance, error) {
			assert.Equal(t, employeeID, id)
			assert.Equal(t, "2025-01-06", date.Format(time.DateOnly))
			if saved == nil {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *saved
			return &cp, nil
		},
	}

	svc := newTestService(db, repo, "", time.Date(2025, 1, 6, 9, 40, 0, 0, time.UTC))

	mock.ExpectBegin()
	mock.ExpectCommit()
	in, err := svc.ClockIn(ctx, employeeID, ClockInRequest{})
	require.NoError(t, err)
	assert.Equal(t, StatusPresent, in.Status)
	assert.True(t, in.IsLate)
	assert.Equal(t, SourceClock, in.Source)

	svc.now = func() time.Time { return time.Date(2025, 1, 6, 18, 10, 0, 0, time.UTC) }

	mock.ExpectBegin()
	mock.ExpectCommit()
	out, err := svc.ClockOut(ctx, employeeID, ClockOutRequest{})
	require.NoError(t, err)
	require.NotNil(t, out.CheckOut)
	assert.Equal(t, "8.5", out.WorkHours.String())

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.ClockOut(ctx, employeeID, ClockOutRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedOut)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockIn_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	checkIn := time.Date(2025, 1, 6, 8, 55, 0, 0, time.UTC)
	repo := &fakeRepo{
		findByEmployeeAndDateFn: func(context.Context, string, time.Time) (*Attendance, error) {
			return &Attendance{ID: uuid.New(), CheckIn: &checkIn}, nil
		},
	}
	svc := newTestService(db, repo, "", checkIn.Add(time.Hour))

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.ClockIn(context.Background(), uuid.NewString(), ClockInRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyClockedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockOut_WithoutClockIn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeRepo{
		findByEmployeeAndDateFn: func(context.Context, string, time.Time) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestService(db, repo, "", time.Now())

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.ClockOut(context.Background(), uuid.NewString(), ClockOutRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrNotClockedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_MarkDay(t *testing.T) {
	var upserted *Attendance
	repo := &fakeRepo{
		upsertFn: func(_ context.Context, a *Attendance) error { upserted = a; return nil },
	}
	svc := newTestService(nil, repo, "", time.Now())

	in := "2025-01-07T09:00:00Z"
	out := "2025-01-07T13:00:00Z"
	resp, err := svc.MarkDay(context.Background(), MarkDayRequest{
		EmployeeID: uuid.NewString(),
		Date:       "2025-01-07",
		Status:     StatusHalfDay,
		CheckIn:    &in,
		CheckOut:   &out,
	})
	require.NoError(t, err)
	require.NotNil(t, upserted)
	assert.Equal(t, SourceManual, upserted.Source)
	assert.Equal(t, "4", resp.WorkHours.String())
	assert.False(t, resp.IsLate)

	_, err = svc.MarkDay(context.Background(), MarkDayRequest{
		EmployeeID: uuid.NewString(),
		Date:       "2025-01-07",
		Status:     StatusPresent,
		CheckIn:    &out,
		CheckOut:   &in,
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidCheckTimes)

	_, err = svc.MarkDay(context.Background(), MarkDayRequest{EmployeeID: uuid.NewString(), Date: "07/01/2025", Status: StatusPresent})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
}

func TestService_ResolveLOP(t *testing.T) {
	employeeID := uuid.NewString()

	t.Run("computes from records", func(t *testing.T) {
		repo := &fakeRepo{
			findByEmployeeBetweenFn: func(_ context.Context, id string, from, to time.Time) ([]Attendance, error) {
				assert.Equal(t, "2025-01-01", from.Format(time.DateOnly))
				assert.Equal(t, "2025-02-01", to.Format(time.DateOnly))
				return concat(days(StatusWeekend, 8), days(StatusPresent, 21), days(StatusAbsent, 2)), nil
			},
		}
		svc := newTestService(nil, repo, "", time.Now())

		lop, err := svc.ResolveLOP(context.Background(), employeeID, 1, 2025)
		require.NoError(t, err)
		assert.Equal(t, "2", lop.String())
	})

	t.Run("no data under full pay policy", func(t *testing.T) {
		repo := &fakeRepo{
			findByEmployeeBetweenFn: func(context.Context, string, time.Time, time.Time) ([]Attendance, error) { return nil, nil },
		}
		svc := newTestService(nil, repo, config.MissingAttendanceFullPay, time.Now())

		lop, err := svc.ResolveLOP(context.Background(), employeeID, 1, 2025)
		require.NoError(t, err)
		assert.True(t, lop.IsZero())
	})

	t.Run("no data under unpaid policy", func(t *testing.T) {
		repo := &fakeRepo{
			findByEmployeeBetweenFn: func(context.Context, string, time.Time, time.Time) ([]Attendance, error) { return nil, nil },
		}
		svc := newTestService(nil, repo, config.MissingAttendanceUnpaid, time.Now())

		lop, err := svc.ResolveLOP(context.Background(), employeeID, 2, 2025)
		require.NoError(t, err)
		assert.Equal(t, "20", lop.String())
	})

	t.Run("store failure is returned", func(t *testing.T) {
		repo := &fakeRepo{
			findByEmployeeBetweenFn: func(context.Context, string, time.Time, time.Time) ([]Attendance, error) {
				return nil, errors.New("timeout")
			},
		}
		svc := newTestService(nil, repo, "", time.Now())

		_, err := svc.ResolveLOP(context.Background(), employeeID, 1, 2025)
		assert.Error(t, err)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := newTestService(nil, &fakeRepo{}, "", time.Now())

		_, err := svc.ResolveLOP(context.Background(), "x", 1, 2025)
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidEmployeeID)

		_, err = svc.ResolveLOP(context.Background(), employeeID, 0, 2025)
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidPeriod)
	})
}

func TestService_SyncLeave_SkipsWeekends(t *testing.T) {
	var marked []string
	repo := &fakeRepo{
		upsertFn: func(_ context.Context, a *Attendance) error {
			assert.Equal(t, StatusLeave, a.Status)
			assert.Equal(t, SourceLeaveSync, a.Source)
			marked = append(marked, a.AttendanceDate.Format(time.DateOnly))
			return nil
		},
	}
	svc := newTestService(nil, repo, "", time.Now())

	// Friday 2025-01-10 through Monday 2025-01-13
	n, err := svc.SyncLeave(context.Background(), nil, uuid.New(),
		time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		StatusLeave,
	)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"2025-01-10", "2025-01-13"}, marked)
}
