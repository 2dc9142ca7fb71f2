package payroll

import (
	"go-payroll/internal/employee"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/config"
	"go-payroll/internal/shared/money"
	"go-payroll/internal/shared/period"

	"github.com/shopspring/decimal"
)

var defaultLOPDivisor = decimal.NewFromInt(30)

// Adjustments are the period inputs applied on top of the compensation structure.
type Adjustments struct {
	Bonus   decimal.Decimal
	Penalty decimal.Decimal
	LOPDays decimal.Decimal
}

type CalcPolicy struct {
	LOPDivisor decimal.Decimal
}

// PolicyFor resolves the LOP divisor for a period. Calendar mode divides by
// the actual number of days in the month.
func PolicyFor(cfg config.PayrollConfig, p period.Period) CalcPolicy {
	if cfg.LOPDivisorMode == config.LOPDivisorCalendar {
		return CalcPolicy{LOPDivisor: decimal.NewFromInt(int64(p.DaysInMonth()))}
	}
	if cfg.LOPFixedDivisor > 0 {
		return CalcPolicy{LOPDivisor: decimal.NewFromInt(int64(cfg.LOPFixedDivisor))}
	}
	return CalcPolicy{LOPDivisor: defaultLOPDivisor}
}

type Breakdown struct {
	Earnings        Earnings
	Deductions      Deductions
	Bonus           decimal.Decimal
	Penalty         decimal.Decimal
	TotalAdjustment decimal.Decimal
	NetSalary       decimal.Decimal
}

// Calculate is pure. Every intermediate amount is rounded before it feeds the
// next step, and a negative net is an error rather than being clamped.
func Calculate(comp employee.Compensation, adj Adjustments, policy CalcPolicy) (Breakdown, error) {
	for _, v := range []decimal.Decimal{
		comp.BasicSalary, comp.HRA, comp.DA, comp.SpecialAllowance, comp.OtherAllowances,
		comp.PFPercentage, comp.ProfessionalTax, comp.ESIPercentage,
		adj.Bonus, adj.Penalty, adj.LOPDays,
	} {
		if v.IsNegative() {
			return Breakdown{}, payrollerrors.ErrInvalidMoneyValue
		}
	}

	divisor := policy.LOPDivisor
	if !divisor.IsPositive() {
		divisor = defaultLOPDivisor
	}

	earn := Earnings{
		Basic:            money.Round2(comp.BasicSalary),
		HRA:              money.Round2(comp.HRA),
		DA:               money.Round2(comp.DA),
		SpecialAllowance: money.Round2(comp.SpecialAllowance),
		OtherAllowances:  money.Round2(comp.OtherAllowances),
	}
	earn.Gross = money.Sum(earn.Basic, earn.HRA, earn.DA, earn.SpecialAllowance, earn.OtherAllowances)

	lop := money.Zero
	if adj.LOPDays.IsPositive() {
		lop = money.Round2(earn.Gross.Div(divisor).Mul(adj.LOPDays))
	}

	ded := Deductions{
		ProvidentFund:   money.Percent(earn.Basic, comp.PFPercentage),
		ProfessionalTax: money.Round2(comp.ProfessionalTax),
		ESI:             money.Percent(earn.Gross, comp.ESIPercentage),
		LOP:             lop,
	}
	ded.Total = money.Sum(ded.ProvidentFund, ded.ProfessionalTax, ded.ESI, ded.LOP)

	bonus := money.Round2(adj.Bonus)
	penalty := money.Round2(adj.Penalty)
	totalAdj := money.Round2(bonus.Sub(penalty))

	net := money.Round2(money.Round2(earn.Gross.Sub(ded.Total)).Add(totalAdj))
	if net.IsNegative() {
		return Breakdown{}, payrollerrors.ErrNegativeComputedNet
	}

	return Breakdown{
		Earnings:        earn,
		Deductions:      ded,
		Bonus:           bonus,
		Penalty:         penalty,
		TotalAdjustment: totalAdj,
		NetSalary:       net,
	}, nil
}
