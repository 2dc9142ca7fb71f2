package payroll_test

import (
	"context"
	"errors"
	"testing"

	"go-payroll/internal/employee"
	"go-payroll/internal/notification"
	notificationmock "go-payroll/internal/notification/mock"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var payrollCfg = config.PayrollConfig{
	LOPDivisorMode:  config.LOPDivisorFixed,
	LOPFixedDivisor: 30,
	Currency:        "INR",
}

func TestProcessPeriod_IsIdempotent(t *testing.T) {
	store := newMemoryPayrolls()
	employees := activeEmployees(3)

	svc := payroll.NewService(payroll.Deps{
		Repo:      store.repo(),
		Employees: &fakeEmployeeReader{findActiveFn: func(context.Context) ([]employee.Employee, error) { return employees, nil }},
		Config:    payrollCfg,
	}, zap.NewNop())

	actor := uuid.NewString()

	first, err := svc.ProcessPeriod(context.Background(), actor, 1, 2025)
	require.NoError(t, err)
	assert.Equal(t, "2025-01", first.Period)
	assert.Equal(t, 3, first.Processed)
	assert.Equal(t, 0, first.Errored)
	assert.Equal(t, 0, first.SkippedExisting)
	assert.Len(t, first.Records, 3)
	assert.Equal(t, 3, store.count())

	second, err := svc.ProcessPeriod(context.Background(), actor, 1, 2025)
	assert.ErrorIs(t, err, payrollerrors.ErrPeriodAlreadyProcessed)
	assert.Equal(t, apperror.CodeNothingToProcess, apperror.CodeOf(err))
	assert.Equal(t, 0, second.Processed)
	assert.Equal(t, first.Processed, second.SkippedExisting)
	assert.Equal(t, 3, store.count())
}

func TestProcessPeriod_NewEmployeeOnRerun(t *testing.T) {
	store := newMemoryPayrolls()
	employees := activeEmployees(2)

	svc := payroll.NewService(payroll.Deps{
		Repo:      store.repo(),
		Employees: &fakeEmployeeReader{findActiveFn: func(context.Context) ([]employee.Employee, error) { return employees, nil }},
		Config:    payrollCfg,
	}, zap.NewNop())

	_, err := svc.ProcessPeriod(context.Background(), uuid.NewString(), 3, 2025)
	require.NoError(t, err)

	employees = append(employees, activeEmployees(1)...)
	res, err := svc.ProcessPeriod(context.Background(), uuid.NewString(), 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 2, res.SkippedExisting)
}

func TestProcessPeriod_NoActiveEmployees(t *testing.T) {
	svc := payroll.NewService(payroll.Deps{
		Repo:      &fakePayrollRepository{},
		Employees: &fakeEmployeeReader{findActiveFn: func(context.Context) ([]employee.Employee, error) { return nil, nil }},
	}, zap.NewNop())

	_, err := svc.ProcessPeriod(context.Background(), uuid.NewString(), 1, 2025)
	assert.ErrorIs(t, err, payrollerrors.ErrNoActiveEmployees)
}

func TestProcessPeriod_InvalidInput(t *testing.T) {
	svc := payroll.NewService(payroll.Deps{Repo: &fakePayrollRepository{}}, zap.NewNop())

	_, err := svc.ProcessPeriod(context.Background(), uuid.NewString(), 13, 2025)
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)

	_, err = svc.ProcessPeriod(context.Background(), "not-a-uuid", 1, 2025)
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidActorID)
}

func TestProcessPeriod_LOPFailureDegradesToZero(t *testing.T) {
	store := newMemoryPayrolls()
	employees := activeEmployees(2)

	svc := payroll.NewService(payroll.Deps{
		Repo:      store.repo(),
		Employees: &fakeEmployeeReader{findActiveFn: func(context.Context) ([]employee.Employee, error) { return employees, nil }},
		LOP: &fakeLOPResolver{resolveFn: func(_ context.Context, employeeID string, month, year int) (decimal.Decimal, error) {
			assert.Equal(t, 1, month)
			assert.Equal(t, 2025, year)
			if employeeID == employees[0].ID.String() {
				return decimal.Zero, errors.New("attendance store down")
			}
			return d("2"), nil
		}},
		Config: payrollCfg,
	}, zap.NewNop())

	res, err := svc.ProcessPeriod(context.Background(), uuid.NewString(), 1, 2025)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)

	assertMoney(t, "0.00", res.Records[0].LOPDays)
	assertMoney(t, "78162.50", res.Records[0].NetSalary)
	assertMoney(t, "2.00", res.Records[1].LOPDays)
	assertMoney(t, "72495.83", res.Records[1].NetSalary)
}

func TestProcessPeriod_PartialFailureIsReported(t *testing.T) {
	employees := activeEmployees(3)
	employees[1].Compensation.BasicSalary = d("-1")

	created := 0
	repo := &fakePayrollRepository{
		createFn: func(_ context.Context, p *payroll.Payroll) error {
			if p.EmployeeID == employees[2].ID {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_payroll_employee_period"}
			}
			created++
			return nil
		},
	}

	svc := payroll.NewService(payroll.Deps{
		Repo:      repo,
		Employees: &fakeEmployeeReader{findActiveFn: func(context.Context) ([]employee.Employee, error) { return employees, nil }},
		Config:    payrollCfg,
	}, zap.NewNop())

	res, err := svc.ProcessPeriod(context.Background(), uuid.NewString(), 1, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.Errored)
	assert.Equal(t, 1, res.SkippedExisting)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, employees[1].ID.String(), res.Errors[0].EmployeeID)
	assert.Equal(t, apperror.CodeInvalidInput, res.Errors[0].Code)
}

func TestProcessPeriod_BroadcastsSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := notificationmock.NewMockSink(ctrl)
	store := newMemoryPayrolls()

	svc := payroll.NewService(payroll.Deps{
		Repo:      store.repo(),
		Employees: &fakeEmployeeReader{findActiveFn: func(context.Context) ([]employee.Employee, error) { return activeEmployees(2), nil }},
		Sink:      sink,
		Config:    payrollCfg,
	}, zap.NewNop())

	sink.EXPECT().PeriodProcessed(gomock.Any(), notification.ProcessedNotice{
		Period:    "2025-06",
		Processed: 2,
	})

	_, err := svc.ProcessPeriod(context.Background(), uuid.NewString(), 6, 2025)
	require.NoError(t, err)
}
