package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Compensation is the monthly salary structure the payroll calculator runs on.
// Percentages are whole-number percents (12 means 12%).
type Compensation struct {
	BasicSalary      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	HRA              decimal.Decimal `gorm:"column:hra;type:numeric(14,2);not null;default:0"`
	DA               decimal.Decimal `gorm:"column:da;type:numeric(14,2);not null;default:0"`
	SpecialAllowance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	OtherAllowances  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	PFPercentage     decimal.Decimal `gorm:"column:pf_percentage;type:numeric(5,2);not null;default:0"`
	ProfessionalTax  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ESIPercentage    decimal.Decimal `gorm:"column:esi_percentage;type:numeric(5,2);not null;default:0"`
}

type Employee struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey"`
	EmployeeCode string       `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_code"`
	FullName     string       `gorm:"type:varchar(150);not null"`
	Email        string       `gorm:"type:varchar(150);not null;uniqueIndex:uq_employee_email"`
	Status       string       `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	JoinedAt     time.Time    `gorm:"type:date;not null"`
	Compensation Compensation `gorm:"embedded;embeddedPrefix:comp_"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}
