package employee

import (
	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/shared/money"

	"github.com/shopspring/decimal"
)

// Validate checks the structure invariants: amounts are non-negative, basic
// salary meets the configured floor and percentages stay within [0,100].
func (c Compensation) Validate(minBasic decimal.Decimal) error {
	amounts := []decimal.Decimal{
		c.BasicSalary, c.HRA, c.DA, c.SpecialAllowance, c.OtherAllowances, c.ProfessionalTax,
	}
	for _, v := range amounts {
		if v.IsNegative() {
			return employeeerrors.ErrNegativeCompensation
		}
	}

	if c.BasicSalary.LessThan(minBasic) {
		return employeeerrors.ErrBasicBelowMinimum
	}

	for _, pct := range []decimal.Decimal{c.PFPercentage, c.ESIPercentage} {
		if pct.IsNegative() || pct.GreaterThan(money.Hundred) {
			return employeeerrors.ErrInvalidPercentage
		}
	}

	return nil
}

// Normalize rounds every field to two decimal places.
func (c Compensation) Normalize() Compensation {
	return Compensation{
		BasicSalary:      money.Round2(c.BasicSalary),
		HRA:              money.Round2(c.HRA),
		DA:               money.Round2(c.DA),
		SpecialAllowance: money.Round2(c.SpecialAllowance),
		OtherAllowances:  money.Round2(c.OtherAllowances),
		PFPercentage:     money.Round2(c.PFPercentage),
		ProfessionalTax:  money.Round2(c.ProfessionalTax),
		ESIPercentage:    money.Round2(c.ESIPercentage),
	}
}
