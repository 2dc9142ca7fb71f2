package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/leave"
	leaveerrors "go-payroll/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLeaveRepository struct {
	withTxFn               func(tx *sql.Tx) leave.Repository
	createFn               func(ctx context.Context, l *leave.Leave) error
	findAllFn              func(ctx context.Context, filter leave.LeaveQueryFilter) ([]leave.Leave, int64, error)
	findByIDFn             func(ctx context.Context, id string) (*leave.Leave, error)
	hasOverlappingPeriodFn func(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
	transitionFn           func(ctx context.Context, id uuid.UUID, from string, values map[string]any) error
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context, filter leave.LeaveQueryFilter) ([]leave.Leave, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, 0, nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, errors.New("not configured")
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, employeeID, startDate, endDate)
	}
	return false, nil
}

func (f *fakeLeaveRepository) Transition(ctx context.Context, id uuid.UUID, from string, values map[string]any) error {
	if f.transitionFn != nil {
		return f.transitionFn(ctx, id, from, values)
	}
	return nil
}

type fakeSyncer struct {
	syncFn func(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, from, to time.Time, status string) (int, error)
}

func (f *fakeSyncer) SyncLeave(ctx context.Context, tx *sql.Tx, employeeID uuid.UUID, from, to time.Time, status string) (int, error) {
	return f.syncFn(ctx, tx, employeeID, from, to, status)
}

func TestService_Apply(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	employeeID := uuid.NewString()
	var created *leave.Leave
	repo := &fakeLeaveRepository{
		createFn: func(_ context.Context, l *leave.Leave) error { created = l; return nil },
	}
	svc := leave.NewService(db, repo, nil, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectCommit()

	// Thursday to the following Tuesday: two weekend days excluded
	resp, err := svc.Apply(context.Background(), uuid.NewString(), leave.ApplyLeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leave.TypeCasual,
		StartDate:  "2025-01-09",
		EndDate:    "2025-01-14",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 4, resp.TotalDays)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Apply_Validation(t *testing.T) {
	svc := leave.NewService(nil, &fakeLeaveRepository{}, nil, zap.NewNop())
	actor := uuid.NewString()
	emp := uuid.NewString()

	tests := []struct {
		name string
		req  leave.ApplyLeaveRequest
		want error
	}{
		{"bad employee", leave.ApplyLeaveRequest{EmployeeID: "x", LeaveType: leave.TypeSick, StartDate: "2025-01-06", EndDate: "2025-01-06"}, leaveerrors.ErrInvalidEmployeeID},
		{"bad type", leave.ApplyLeaveRequest{EmployeeID: emp, LeaveType: "ANNUAL", StartDate: "2025-01-06", EndDate: "2025-01-06"}, leaveerrors.ErrInvalidLeaveType},
		{"bad date", leave.ApplyLeaveRequest{EmployeeID: emp, LeaveType: leave.TypeSick, StartDate: "06-01-2025", EndDate: "2025-01-06"}, leaveerrors.ErrInvalidDateFormat},
		{"reversed range", leave.ApplyLeaveRequest{EmployeeID: emp, LeaveType: leave.TypeSick, StartDate: "2025-01-07", EndDate: "2025-01-06"}, leaveerrors.ErrInvalidDateRange},
		{"weekend only", leave.ApplyLeaveRequest{EmployeeID: emp, LeaveType: leave.TypeSick, StartDate: "2025-01-11", EndDate: "2025-01-12"}, leaveerrors.ErrNoWorkingDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Apply(context.Background(), actor, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestService_Apply_Overlap(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeLeaveRepository{
		hasOverlappingPeriodFn: func(context.Context, string, time.Time, time.Time) (bool, error) { return true, nil },
	}
	svc := leave.NewService(db, repo, nil, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = svc.Apply(context.Background(), uuid.NewString(), leave.ApplyLeaveRequest{
		EmployeeID: uuid.NewString(),
		LeaveType:  leave.TypeSick,
		StartDate:  "2025-01-06",
		EndDate:    "2025-01-07",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func pendingLeave(leaveType string) *leave.Leave {
	return &leave.Leave{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		LeaveType:  leaveType,
		StartDate:  time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
		TotalDays:  4,
		Status:     leave.StatusPending,
		CreatedBy:  uuid.New(),
	}
}

func TestService_Approve_SyncsAttendance(t *testing.T) {
	tests := []struct {
		leaveType string
		status    string
	}{
		{leave.TypeEarned, attendance.StatusLeave},
		{leave.TypeLOP, attendance.StatusAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.leaveType, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			l := pendingLeave(tt.leaveType)
			repo := &fakeLeaveRepository{
				findByIDFn: func(context.Context, string) (*leave.Leave, error) { return l, nil },
				transitionFn: func(_ context.Context, id uuid.UUID, from string, values map[string]any) error {
					assert.Equal(t, l.ID, id)
					assert.Equal(t, leave.StatusPending, from)
					assert.Equal(t, leave.StatusApproved, values["status"])
					return nil
				},
			}
			syncer := &fakeSyncer{
				syncFn: func(_ context.Context, tx *sql.Tx, employeeID uuid.UUID, from, to time.Time, status string) (int, error) {
					assert.NotNil(t, tx)
					assert.Equal(t, l.EmployeeID, employeeID)
					assert.Equal(t, tt.status, status)
					return 4, nil
				},
			}
			svc := leave.NewService(db, repo, syncer, zap.NewNop())

			mock.ExpectBegin()
			mock.ExpectCommit()

			resp, err := svc.Approve(context.Background(), uuid.NewString(), l.ID.String())
			require.NoError(t, err)
			assert.Equal(t, leave.StatusApproved, resp.Status)
			assert.Equal(t, 4, resp.DaysSynced)
			assert.NotNil(t, resp.ApprovedAt)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestService_Approve_SyncFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	l := pendingLeave(leave.TypeSick)
	repo := &fakeLeaveRepository{
		findByIDFn: func(context.Context, string) (*leave.Leave, error) { return l, nil },
	}
	syncer := &fakeSyncer{
		syncFn: func(context.Context, *sql.Tx, uuid.UUID, time.Time, time.Time, string) (int, error) {
			return 0, errors.New("deadlock detected")
		},
	}
	svc := leave.NewService(db, repo, syncer, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = svc.Approve(context.Background(), uuid.NewString(), l.ID.String())
	assert.Error(t, err)
	assert.Equal(t, leave.StatusPending, l.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Approve_NotPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	l := pendingLeave(leave.TypeSick)
	l.Status = leave.StatusRejected
	repo := &fakeLeaveRepository{
		findByIDFn: func(context.Context, string) (*leave.Leave, error) { return l, nil },
	}
	svc := leave.NewService(db, repo, nil, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = svc.Approve(context.Background(), uuid.NewString(), l.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_RejectAndCancel(t *testing.T) {
	l := pendingLeave(leave.TypeCasual)
	repo := &fakeLeaveRepository{
		findByIDFn: func(context.Context, string) (*leave.Leave, error) { return l, nil },
	}
	svc := leave.NewService(nil, repo, nil, zap.NewNop())

	_, err := svc.Reject(context.Background(), uuid.NewString(), l.ID.String(), "")
	assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)

	resp, err := svc.Reject(context.Background(), uuid.NewString(), l.ID.String(), "project deadline")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.Status)
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, "project deadline", *resp.RejectionReason)

	_, err = svc.Cancel(context.Background(), uuid.NewString(), l.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
}

func TestService_GetAll_InvalidStatus(t *testing.T) {
	svc := leave.NewService(nil, &fakeLeaveRepository{}, nil, zap.NewNop())

	_, _, err := svc.GetAll(context.Background(), leave.GetLeavesFilterRequest{Status: "DONE"})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusFilter)
}
