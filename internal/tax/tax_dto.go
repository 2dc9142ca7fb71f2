package tax

import "github.com/shopspring/decimal"

type EstimateRequest struct {
	AnnualIncome decimal.Decimal `json:"annual_income"`
	Declarations Declarations    `json:"declarations"`
}

type DeclarationRequest struct {
	FinancialYear string       `json:"financial_year" binding:"required"`
	Declarations  Declarations `json:"declarations"`
}

type RejectDeclarationRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required,max=1000"`
}

type GetDeclarationsFilterRequest struct {
	EmployeeID    string `form:"employee_id"`
	FinancialYear string `form:"financial_year"`
	Status        string `form:"status"`
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
}

type DeclarationResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	FinancialYear   string          `json:"financial_year"`
	Declarations    Declarations    `json:"declarations"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	Status          string          `json:"status"`
	SubmittedAt     *string         `json:"submitted_at,omitempty"`
	ReviewedBy      *string         `json:"reviewed_by,omitempty"`
	ReviewedAt      *string         `json:"reviewed_at,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
}

type OfficialEstimateResponse struct {
	DeclarationID string      `json:"declaration_id"`
	EmployeeID    string      `json:"employee_id"`
	FinancialYear string      `json:"financial_year"`
	Status        string      `json:"status"`
	Estimate      TaxEstimate `json:"estimate"`
}
