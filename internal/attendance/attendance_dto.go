package attendance

import "github.com/shopspring/decimal"

type ClockInRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=500"`
}

type ClockOutRequest struct {
	Notes *string `json:"notes" binding:"omitempty,max=500"`
}

// MarkDayRequest is the admin upsert for a single day. Times use RFC3339.
type MarkDayRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required"`
	Date       string  `json:"date" binding:"required"`
	Status     string  `json:"status" binding:"required,oneof=PRESENT ABSENT HALF_DAY LEAVE HOLIDAY WEEKEND"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	Notes      *string `json:"notes" binding:"omitempty,max=500"`
}

type MonthQuery struct {
	EmployeeID string `form:"employee_id"`
	Month      int    `form:"month" binding:"required,min=1,max=12"`
	Year       int    `form:"year" binding:"required,min=1900,max=9999"`
}

type AttendanceResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   string          `json:"employee_name,omitempty"`
	AttendanceDate string          `json:"attendance_date"`
	Status         string          `json:"status"`
	CheckIn        *string         `json:"check_in,omitempty"`
	CheckOut       *string         `json:"check_out,omitempty"`
	WorkHours      decimal.Decimal `json:"work_hours"`
	IsLate         bool            `json:"is_late"`
	Source         string          `json:"source"`
	Notes          *string         `json:"notes,omitempty"`
}

type LOPResponse struct {
	EmployeeID string          `json:"employee_id"`
	Period     string          `json:"period"`
	LOPDays    decimal.Decimal `json:"lop_days"`
}
