package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusHalfDay = "HALF_DAY"
	StatusLeave   = "LEAVE"
	StatusHoliday = "HOLIDAY"
	StatusWeekend = "WEEKEND"

	SourceClock     = "CLOCK"
	SourceManual    = "MANUAL"
	SourceLeaveSync = "LEAVE_SYNC"
)

type Attendance struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID       `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate time.Time       `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	Status         string          `gorm:"column:status;type:varchar(20);not null;default:PRESENT;index"`
	CheckIn        *time.Time      `gorm:"column:check_in;type:timestamptz"`
	CheckOut       *time.Time      `gorm:"column:check_out;type:timestamptz"`
	WorkHours      decimal.Decimal `gorm:"column:work_hours;type:numeric(5,2);not null;default:0"`
	IsLate         bool            `gorm:"column:is_late;not null;default:false"`
	Source         string          `gorm:"column:source;type:varchar(20);not null;default:MANUAL"`
	Notes          *string         `gorm:"column:notes;type:text"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
	Employee       *EmployeeRef    `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave, StatusHoliday, StatusWeekend:
		return true
	}
	return false
}
