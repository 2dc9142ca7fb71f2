package payroll_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go-payroll/internal/employee"
	"go-payroll/internal/payroll"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type fakePayrollRepository struct {
	withTxFn              func(tx *sql.Tx) payroll.Repository
	createFn              func(ctx context.Context, p *payroll.Payroll) error
	findAllFn             func(ctx context.Context, filter payroll.PayrollQueryFilter) ([]payroll.Payroll, int64, error)
	findByIDFn            func(ctx context.Context, id string) (*payroll.Payroll, error)
	findByPeriodFn        func(ctx context.Context, period string, status string) ([]payroll.Payroll, error)
	existingEmployeeIDsFn func(ctx context.Context, period string) ([]uuid.UUID, error)
	saveAdjustmentFn      func(ctx context.Context, p *payroll.Payroll, adj payroll.Adjustment) error
	transitionFn          func(ctx context.Context, id uuid.UUID, from string, values map[string]any) error
	setNotificationSentFn func(ctx context.Context, id uuid.UUID, sent bool) error
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePayrollRepository) Create(ctx context.Context, p *payroll.Payroll) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePayrollRepository) FindAll(ctx context.Context, filter payroll.PayrollQueryFilter) ([]payroll.Payroll, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, 0, nil
}

func (f *fakePayrollRepository) FindByID(ctx context.Context, id string) (*payroll.Payroll, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, errors.New("not configured")
}

func (f *fakePayrollRepository) FindByPeriod(ctx context.Context, period string, status string) ([]payroll.Payroll, error) {
	if f.findByPeriodFn != nil {
		return f.findByPeriodFn(ctx, period, status)
	}
	return nil, nil
}

func (f *fakePayrollRepository) ExistingEmployeeIDs(ctx context.Context, period string) ([]uuid.UUID, error) {
	if f.existingEmployeeIDsFn != nil {
		return f.existingEmployeeIDsFn(ctx, period)
	}
	return nil, nil
}

func (f *fakePayrollRepository) SaveAdjustment(ctx context.Context, p *payroll.Payroll, adj payroll.Adjustment) error {
	if f.saveAdjustmentFn != nil {
		return f.saveAdjustmentFn(ctx, p, adj)
	}
	return nil
}

func (f *fakePayrollRepository) Transition(ctx context.Context, id uuid.UUID, from string, values map[string]any) error {
	if f.transitionFn != nil {
		return f.transitionFn(ctx, id, from, values)
	}
	return nil
}

func (f *fakePayrollRepository) SetNotificationSent(ctx context.Context, id uuid.UUID, sent bool) error {
	if f.setNotificationSentFn != nil {
		return f.setNotificationSentFn(ctx, id, sent)
	}
	return nil
}

// memoryPayrolls backs a fakePayrollRepository with a map keyed by
// (employee, period) and enforces the same uniqueness as the database.
type memoryPayrolls struct {
	mu   sync.Mutex
	rows map[string]*payroll.Payroll
}

func newMemoryPayrolls() *memoryPayrolls {
	return &memoryPayrolls{rows: map[string]*payroll.Payroll{}}
}

func (m *memoryPayrolls) repo() *fakePayrollRepository {
	return &fakePayrollRepository{
		createFn: func(_ context.Context, p *payroll.Payroll) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			key := p.EmployeeID.String() + "|" + p.Period
			if _, ok := m.rows[key]; ok {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_payroll_employee_period"}
			}
			cp := *p
			m.rows[key] = &cp
			return nil
		},
		existingEmployeeIDsFn: func(_ context.Context, period string) ([]uuid.UUID, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			var ids []uuid.UUID
			for _, p := range m.rows {
				if p.Period == period {
					ids = append(ids, p.EmployeeID)
				}
			}
			return ids, nil
		},
	}
}

func (m *memoryPayrolls) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type fakeEmployeeReader struct {
	findActiveFn func(ctx context.Context) ([]employee.Employee, error)
}

func (f *fakeEmployeeReader) FindActive(ctx context.Context) ([]employee.Employee, error) {
	return f.findActiveFn(ctx)
}

type fakeLOPResolver struct {
	resolveFn func(ctx context.Context, employeeID string, month, year int) (decimal.Decimal, error)
}

func (f *fakeLOPResolver) ResolveLOP(ctx context.Context, employeeID string, month, year int) (decimal.Decimal, error) {
	return f.resolveFn(ctx, employeeID, month, year)
}

type fakeRenderer struct {
	renderFn func(p *payroll.Payroll) ([]byte, error)
}

func (f *fakeRenderer) Render(p *payroll.Payroll) ([]byte, error) {
	if f.renderFn != nil {
		return f.renderFn(p)
	}
	return []byte("%PDF-1.3"), nil
}

func activeEmployees(n int) []employee.Employee {
	out := make([]employee.Employee, n)
	for i := range out {
		out[i] = employee.Employee{
			ID:           uuid.New(),
			EmployeeCode: fmt.Sprintf("EMP-%06d", i+1),
			FullName:     "Employee",
			Email:        "e@example.com",
			Status:       employee.StatusActive,
			Compensation: standardCompensation(),
		}
	}
	return out
}

// memoryStore is an in-process ArtifactStore.
type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}}
}

func (m *memoryStore) Save(_ context.Context, name string, data []byte, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[name] = data
	return "https://files.example.com/" + name, nil
}

func (m *memoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, name)
	return nil
}

func (m *memoryStore) hasURL(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[strings.TrimPrefix(url, "https://files.example.com/")]
	return ok
}

func (m *memoryStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
