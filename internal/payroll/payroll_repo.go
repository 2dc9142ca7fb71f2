package payroll

import (
	"context"
	"database/sql"

	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PayrollQueryFilter struct {
	Period     string
	Status     string
	EmployeeID string
	Page       int
	PageSize   int
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, payroll *Payroll) error
	FindAll(ctx context.Context, filter PayrollQueryFilter) ([]Payroll, int64, error)
	FindByID(ctx context.Context, id string) (*Payroll, error)
	FindByPeriod(ctx context.Context, period string, status string) ([]Payroll, error)
	ExistingEmployeeIDs(ctx context.Context, period string) ([]uuid.UUID, error)
	SaveAdjustment(ctx context.Context, payroll *Payroll, adj Adjustment) error
	Transition(ctx context.Context, id uuid.UUID, from string, values map[string]any) error
	SetNotificationSent(ctx context.Context, id uuid.UUID, sent bool) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, payroll *Payroll) error {
	return r.conn(ctx).Omit("Employee").Create(payroll).Error
}

func (r *repository) FindAll(ctx context.Context, filter PayrollQueryFilter) ([]Payroll, int64, error) {
	q := r.conn(ctx).Model(&Payroll{}).Scopes(scope.Status(filter.Status))
	if filter.EmployeeID != "" {
		q = q.Scopes(scope.Employee(filter.EmployeeID))
	}
	if filter.Period != "" {
		q = q.Where("period = ?", filter.Period)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payrolls []Payroll
	err := q.Preload("Employee").
		Scopes(scope.Paginate(filter.Page, filter.PageSize)).
		Order("period DESC, created_at ASC").
		Find(&payrolls).Error
	return payrolls, total, err
}

// FindByID takes a row lock when running inside a transaction so
// read-modify-write callers serialize on the record.
func (r *repository) FindByID(ctx context.Context, id string) (*Payroll, error) {
	q := r.conn(ctx)
	if r.tx != nil {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var payroll Payroll
	err := q.
		Preload("Employee").
		Preload("Adjustments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&payroll, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &payroll, nil
}

// FindByPeriod lists a period's payrolls; an empty status returns all of them.
func (r *repository) FindByPeriod(ctx context.Context, period string, status string) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.conn(ctx).
		Preload("Employee").
		Scopes(scope.Status(status)).
		Where("period = ?", period).
		Order("created_at ASC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) ExistingEmployeeIDs(ctx context.Context, period string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.conn(ctx).
		Model(&Payroll{}).
		Where("period = ?", period).
		Pluck("employee_id", &ids).Error
	return ids, err
}

// SaveAdjustment writes the recomputed totals and then the adjustment row.
// The update is conditional on the record still being PENDING and on
// total_adjustment still holding the value the new total was derived from.
func (r *repository) SaveAdjustment(ctx context.Context, payroll *Payroll, adj Adjustment) error {
	db := r.conn(ctx)
	previous := payroll.TotalAdjustment.Sub(SignedAmount(adj.Type, adj.Amount))

	res := db.Model(&Payroll{}).
		Where("id = ? AND status = ? AND total_adjustment = ?", payroll.ID, StatusPending, previous).
		Updates(map[string]any{
			"total_adjustment": payroll.TotalAdjustment,
			"net_salary":       payroll.NetSalary,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var current Payroll
		if err := db.Select("status").First(&current, "id = ?", payroll.ID).Error; err != nil {
			return err
		}
		if current.Status != StatusPending {
			return payrollerrors.ErrInvalidState
		}
		return payrollerrors.ErrConcurrentAdjustment
	}

	return db.Create(&adj).Error
}

// Transition is a compare-and-set on status. A concurrent writer that moved
// the record first makes this a no-op reported as ErrInvalidState.
func (r *repository) Transition(ctx context.Context, id uuid.UUID, from string, values map[string]any) error {
	res := r.conn(ctx).Model(&Payroll{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return payrollerrors.ErrInvalidState
	}
	return nil
}

func (r *repository) SetNotificationSent(ctx context.Context, id uuid.UUID, sent bool) error {
	return r.conn(ctx).Model(&Payroll{}).
		Where("id = ?", id).
		Update("notification_sent", sent).Error
}
