package payroll

import "github.com/shopspring/decimal"

type ProcessPeriodRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=1900,max=9999"`
}

type AddAdjustmentRequest struct {
	Type        string          `json:"type" binding:"required,oneof=BONUS PENALTY ALLOWANCE DEDUCTION REIMBURSEMENT RECOVERY"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"max=500"`
}

type GetPayrollsFilterRequest struct {
	Period     string `form:"period"`
	Status     string `form:"status"`
	EmployeeID string `form:"employee_id"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

type PeriodQuery struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=1900,max=9999"`
}

type EarningsResponse struct {
	Basic            decimal.Decimal `json:"basic"`
	HRA              decimal.Decimal `json:"hra"`
	DA               decimal.Decimal `json:"da"`
	SpecialAllowance decimal.Decimal `json:"special_allowance"`
	OtherAllowances  decimal.Decimal `json:"other_allowances"`
	Gross            decimal.Decimal `json:"gross"`
}

type DeductionsResponse struct {
	ProvidentFund   decimal.Decimal `json:"provident_fund"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	ESI             decimal.Decimal `json:"esi"`
	LOP             decimal.Decimal `json:"lop"`
	Total           decimal.Decimal `json:"total"`
}

type AdjustmentResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   string          `json:"created_at"`
}

type PayrollResponse struct {
	ID               string               `json:"id"`
	EmployeeID       string               `json:"employee_id"`
	EmployeeName     string               `json:"employee_name,omitempty"`
	EmployeeCode     string               `json:"employee_code,omitempty"`
	Period           string               `json:"period"`
	Year             int                  `json:"year"`
	Month            int                  `json:"month"`
	Earnings         EarningsResponse     `json:"earnings"`
	Deductions       DeductionsResponse   `json:"deductions"`
	LOPDays          decimal.Decimal      `json:"lop_days"`
	Adjustments      []AdjustmentResponse `json:"adjustments"`
	TotalAdjustment  decimal.Decimal      `json:"total_adjustment"`
	NetSalary        decimal.Decimal      `json:"net_salary"`
	Status           string               `json:"status"`
	TransactionID    *string              `json:"transaction_id,omitempty"`
	PayslipURL       *string              `json:"payslip_url,omitempty"`
	NotificationSent bool                 `json:"notification_sent"`
	CreatedBy        string               `json:"created_by"`
	ApprovedBy       *string              `json:"approved_by,omitempty"`
	ApprovedAt       *string              `json:"approved_at,omitempty"`
	PaidAt           *string              `json:"paid_at,omitempty"`
}

type BatchError struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code,omitempty"`
	Code         string `json:"code"`
	Message      string `json:"message"`
}

type BatchResult struct {
	Period          string            `json:"period"`
	Processed       int               `json:"processed"`
	Errored         int               `json:"errored"`
	SkippedExisting int               `json:"skipped_existing"`
	Records         []PayrollResponse `json:"records"`
	Errors          []BatchError      `json:"errors"`
}

type PaymentDetail struct {
	PayrollID     string `json:"payroll_id"`
	EmployeeID    string `json:"employee_id"`
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	Code          string `json:"code,omitempty"`
	Message       string `json:"message,omitempty"`
}

type BatchPaymentResult struct {
	Period     string          `json:"period"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Details    []PaymentDetail `json:"details"`
}
