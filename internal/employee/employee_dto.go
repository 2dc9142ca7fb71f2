package employee

import "github.com/shopspring/decimal"

type CompensationRequest struct {
	BasicSalary      decimal.Decimal `json:"basic_salary"`
	HRA              decimal.Decimal `json:"hra"`
	DA               decimal.Decimal `json:"da"`
	SpecialAllowance decimal.Decimal `json:"special_allowance"`
	OtherAllowances  decimal.Decimal `json:"other_allowances"`
	PFPercentage     decimal.Decimal `json:"pf_percentage"`
	ProfessionalTax  decimal.Decimal `json:"professional_tax"`
	ESIPercentage    decimal.Decimal `json:"esi_percentage"`
}

func (r CompensationRequest) toEntity() Compensation {
	return Compensation{
		BasicSalary:      r.BasicSalary,
		HRA:              r.HRA,
		DA:               r.DA,
		SpecialAllowance: r.SpecialAllowance,
		OtherAllowances:  r.OtherAllowances,
		PFPercentage:     r.PFPercentage,
		ProfessionalTax:  r.ProfessionalTax,
		ESIPercentage:    r.ESIPercentage,
	}.Normalize()
}

type CreateEmployeeRequest struct {
	EmployeeCode string              `json:"employee_code" binding:"omitempty,max=20"`
	FullName     string              `json:"full_name" binding:"required"`
	Email        string              `json:"email" binding:"required,email"`
	JoinedAt     string              `json:"joined_at" binding:"required"`
	Compensation CompensationRequest `json:"compensation"`
}

type GetEmployeesFilterRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Search   string `form:"q"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type CompensationResponse struct {
	BasicSalary      decimal.Decimal `json:"basic_salary"`
	HRA              decimal.Decimal `json:"hra"`
	DA               decimal.Decimal `json:"da"`
	SpecialAllowance decimal.Decimal `json:"special_allowance"`
	OtherAllowances  decimal.Decimal `json:"other_allowances"`
	PFPercentage     decimal.Decimal `json:"pf_percentage"`
	ProfessionalTax  decimal.Decimal `json:"professional_tax"`
	ESIPercentage    decimal.Decimal `json:"esi_percentage"`
}

type EmployeeResponse struct {
	ID           string                `json:"id"`
	EmployeeCode string                `json:"employee_code"`
	FullName     string                `json:"full_name"`
	Email        string                `json:"email"`
	Status       string                `json:"status"`
	JoinedAt     string                `json:"joined_at,omitempty"`
	Compensation *CompensationResponse `json:"compensation,omitempty"`
}
