package tax

import (
	"context"
	"database/sql"

	"go-payroll/internal/shared/scope"
	taxerrors "go-payroll/internal/tax/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeclarationQueryFilter struct {
	EmployeeID    string
	FinancialYear string
	Status        string
	Page          int
	PageSize      int
}

//go:generate mockgen -source=tax_repo.go -destination=mock/tax_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *TaxDeclaration) error
	FindAll(ctx context.Context, filter DeclarationQueryFilter) ([]TaxDeclaration, int64, error)
	FindByID(ctx context.Context, id string) (*TaxDeclaration, error)
	UpdateEditable(ctx context.Context, d *TaxDeclaration) error
	Transition(ctx context.Context, id uuid.UUID, from string, values map[string]any) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, d *TaxDeclaration) error {
	return r.conn(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context, filter DeclarationQueryFilter) ([]TaxDeclaration, int64, error) {
	q := r.conn(ctx).Model(&TaxDeclaration{}).Scopes(scope.Status(filter.Status))
	if filter.EmployeeID != "" {
		q = q.Scopes(scope.Employee(filter.EmployeeID))
	}
	if filter.FinancialYear != "" {
		q = q.Where("financial_year = ?", filter.FinancialYear)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []TaxDeclaration
	err := q.Scopes(scope.Paginate(filter.Page, filter.PageSize)).
		Order("financial_year DESC, created_at DESC").
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*TaxDeclaration, error) {
	var d TaxDeclaration
	if err := r.conn(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateEditable rewrites the declared amounts and returns the record to
// DRAFT, provided nobody submitted it in the meantime.
func (r *repository) UpdateEditable(ctx context.Context, d *TaxDeclaration) error {
	res := r.conn(ctx).
		Model(&TaxDeclaration{}).
		Where("id = ? AND status IN ?", d.ID, []string{StatusDraft, StatusRejected}).
		Updates(map[string]any{
			"declarations":     d.Declarations,
			"total_deductions": d.TotalDeductions,
			"status":           StatusDraft,
			"rejection_reason": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return taxerrors.ErrDeclarationLocked
	}
	return nil
}

func (r *repository) Transition(ctx context.Context, id uuid.UUID, from string, values map[string]any) error {
	res := r.conn(ctx).
		Model(&TaxDeclaration{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return taxerrors.ErrInvalidState
	}
	return nil
}
