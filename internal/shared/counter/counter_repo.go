package counter

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	TypeEmployeeCode = "employee_code"
	TypeTransaction  = "transaction"
)

// Counter rows back the atomic sequences; one row per (scope, counter_type).
type Counter struct {
	Scope       string `gorm:"type:varchar(40);primaryKey"`
	CounterType string `gorm:"type:varchar(40);primaryKey"`
	LastValue   int64  `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}

func (Counter) TableName() string {
	return "payroll_counters"
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, scope string, counterType string) (int64, error)
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

func (r *repository) GetNextValue(ctx context.Context, scope string, counterType string) (int64, error) {
	var nextValue int64

	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}

	err := db.Raw(`
		INSERT INTO payroll_counters (scope, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (scope, counter_type) DO UPDATE
		SET last_value = payroll_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, scope, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

// TransactionID formats a payment reference such as TXN-202501-000042.
func TransactionID(compactPeriod string, seq int64) string {
	return fmt.Sprintf("TXN-%s-%06d", compactPeriod, seq)
}

// EmployeeCode formats a generated employee code such as EMP-000123.
func EmployeeCode(seq int64) string {
	return fmt.Sprintf("EMP-%06d", seq)
}
