package tax

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusVerified  = "VERIFIED"
	StatusRejected  = "REJECTED"
)

type TaxDeclaration struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_tax_declaration_employee_year"`
	FinancialYear   string          `gorm:"type:varchar(7);not null;uniqueIndex:uq_tax_declaration_employee_year"`
	Declarations    Declarations    `gorm:"type:jsonb;serializer:json;not null"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Status          string          `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	SubmittedAt     *time.Time
	ReviewedBy      *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (TaxDeclaration) TableName() string {
	return "tax_declarations"
}

// Editable reports whether the employee may still change the declaration.
func (d TaxDeclaration) Editable() bool {
	return d.Status == StatusDraft || d.Status == StatusRejected
}
