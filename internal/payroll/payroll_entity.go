package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusPaid      = "PAID"
	StatusFailed    = "FAILED"
	StatusCancelled = "CANCELLED"
)

const (
	AdjustmentBonus         = "BONUS"
	AdjustmentPenalty       = "PENALTY"
	AdjustmentAllowance     = "ALLOWANCE"
	AdjustmentDeduction     = "DEDUCTION"
	AdjustmentReimbursement = "REIMBURSEMENT"
	AdjustmentRecovery      = "RECOVERY"
)

type Earnings struct {
	Basic            decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	HRA              decimal.Decimal `gorm:"column:hra;type:numeric(14,2);not null;default:0"`
	DA               decimal.Decimal `gorm:"column:da;type:numeric(14,2);not null;default:0"`
	SpecialAllowance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	OtherAllowances  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Gross            decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
}

type Deductions struct {
	ProvidentFund   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ProfessionalTax decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ESI             decimal.Decimal `gorm:"column:esi;type:numeric(14,2);not null;default:0"`
	LOP             decimal.Decimal `gorm:"column:lop;type:numeric(14,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
}

type Payroll struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_employee_period"`
	Employee   *PayrollEmployee `gorm:"foreignKey:EmployeeID;references:ID"`

	Period string `gorm:"type:varchar(7);not null;uniqueIndex:uq_payroll_employee_period;index"`
	Year   int    `gorm:"not null"`
	Month  int    `gorm:"not null"`

	Earnings   Earnings        `gorm:"embedded;embeddedPrefix:earn_"`
	Deductions Deductions      `gorm:"embedded;embeddedPrefix:ded_"`
	LOPDays    decimal.Decimal `gorm:"column:lop_days;type:numeric(5,2);not null;default:0"`

	Adjustments     []Adjustment    `gorm:"foreignKey:PayrollID"`
	TotalAdjustment decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	NetSalary       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	Status           string  `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	TransactionID    *string `gorm:"type:varchar(40);uniqueIndex"`
	PayslipURL       *string
	NotificationSent bool `gorm:"not null;default:false"`

	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time
	PaidAt     *time.Time `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Adjustment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PayrollID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        string          `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Description string          `gorm:"type:text"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
}

func (Adjustment) TableName() string {
	return "payroll_adjustments"
}

// PayrollEmployee is the read-only employee projection preloaded with payrolls.
type PayrollEmployee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName     string    `gorm:"column:full_name"`
	Email        string    `gorm:"column:email"`
	EmployeeCode string    `gorm:"column:employee_code"`
}

func (PayrollEmployee) TableName() string {
	return "employees"
}
