package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeCasual    = "CASUAL"
	TypeSick      = "SICK"
	TypeEarned    = "EARNED"
	TypeLOP       = "LOP"
	TypeMaternity = "MATERNITY"
	TypePaternity = "PATERNITY"

	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`

	LeaveType string    `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPaid reports whether approved days are credited as worked time.
func (l Leave) IsPaid() bool {
	return l.LeaveType != TypeLOP
}

func IsValidType(t string) bool {
	switch t {
	case TypeCasual, TypeSick, TypeEarned, TypeLOP, TypeMaternity, TypePaternity:
		return true
	}
	return false
}
