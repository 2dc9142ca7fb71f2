package tax

import (
	"go-payroll/internal/shared/money"
	taxerrors "go-payroll/internal/tax/errors"

	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

type Investment struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// HRADetails are annual amounts. Basic is the annual basic salary.
type HRADetails struct {
	HRAReceived decimal.Decimal `json:"hra_received"`
	RentPaid    decimal.Decimal `json:"rent_paid"`
	Basic       decimal.Decimal `json:"basic"`
	Metro       bool            `json:"metro"`
}

type Declarations struct {
	Investments      []Investment    `json:"investments"`
	MedicalSelf      decimal.Decimal `json:"medical_self"`
	MedicalParents   decimal.Decimal `json:"medical_parents"`
	HRA              *HRADetails     `json:"hra,omitempty"`
	HomeLoanInterest decimal.Decimal `json:"home_loan_interest"`
	NPSContribution  decimal.Decimal `json:"nps_contribution"`
}

// Slab taxes the part of income in (From, To] at Rate percent. A zero To
// leaves the slab open-ended.
type Slab struct {
	From decimal.Decimal
	To   decimal.Decimal
	Rate decimal.Decimal
}

type Policy struct {
	InvestmentCap       decimal.Decimal
	MedicalSelfCap      decimal.Decimal
	MedicalParentsCap   decimal.Decimal
	StandardDeduction   decimal.Decimal
	HomeLoanInterestCap decimal.Decimal
	NPSCap              decimal.Decimal
	HRAMetroPercent     decimal.Decimal
	HRANonMetroPercent  decimal.Decimal
	HRARentOffset       decimal.Decimal
	Slabs               []Slab
	CessPercent         decimal.Decimal
	RebateThreshold     decimal.Decimal
	RebateCap           decimal.Decimal
}

func DefaultPolicy() Policy {
	n := decimal.NewFromInt
	return Policy{
		InvestmentCap:       n(150000),
		MedicalSelfCap:      n(25000),
		MedicalParentsCap:   n(50000),
		StandardDeduction:   n(50000),
		HomeLoanInterestCap: n(200000),
		NPSCap:              n(50000),
		HRAMetroPercent:     n(50),
		HRANonMetroPercent:  n(40),
		HRARentOffset:       n(10),
		Slabs: []Slab{
			{From: n(0), To: n(250000), Rate: n(0)},
			{From: n(250000), To: n(500000), Rate: n(5)},
			{From: n(500000), To: n(1000000), Rate: n(20)},
			{From: n(1000000), Rate: n(30)},
		},
		CessPercent:     n(4),
		RebateThreshold: n(500000),
		RebateCap:       n(12500),
	}
}

type EstimateInput struct {
	AnnualGross  decimal.Decimal
	Declarations Declarations
}

type SlabAmount struct {
	From    decimal.Decimal `json:"from"`
	To      decimal.Decimal `json:"to"`
	Rate    decimal.Decimal `json:"rate"`
	Taxable decimal.Decimal `json:"taxable"`
	Tax     decimal.Decimal `json:"tax"`
}

type DeductionBreakdown struct {
	Investments       decimal.Decimal `json:"investments"`
	Medical           decimal.Decimal `json:"medical"`
	StandardDeduction decimal.Decimal `json:"standard_deduction"`
	HRAExemption      decimal.Decimal `json:"hra_exemption"`
	HomeLoanInterest  decimal.Decimal `json:"home_loan_interest"`
	NPS               decimal.Decimal `json:"nps"`
	Total             decimal.Decimal `json:"total"`
}

type TaxEstimate struct {
	GrossIncome   decimal.Decimal    `json:"gross_income"`
	Deductions    DeductionBreakdown `json:"deductions"`
	TaxableIncome decimal.Decimal    `json:"taxable_income"`
	Slabs         []SlabAmount       `json:"slabs"`
	SlabTax       decimal.Decimal    `json:"slab_tax"`
	Cess          decimal.Decimal    `json:"cess"`
	Rebate        decimal.Decimal    `json:"rebate"`
	AnnualTax     decimal.Decimal    `json:"annual_tax"`
	MonthlyTax    decimal.Decimal    `json:"monthly_tax"`
}

// Estimate computes annual and monthly income tax. It has no side effects and
// serves both unsaved previews and persisted declarations.
func Estimate(in EstimateInput, policy Policy) (TaxEstimate, error) {
	if err := validateInput(in); err != nil {
		return TaxEstimate{}, err
	}
	d := in.Declarations

	investments := decimal.Zero
	for _, inv := range d.Investments {
		investments = investments.Add(inv.Amount)
	}

	ded := DeductionBreakdown{
		Investments: money.Round2(money.Cap(investments, policy.InvestmentCap)),
		Medical: money.Sum(
			money.Cap(d.MedicalSelf, policy.MedicalSelfCap),
			money.Cap(d.MedicalParents, policy.MedicalParentsCap),
		),
		StandardDeduction: policy.StandardDeduction,
		HRAExemption:      HRAExemption(d.HRA, policy),
		HomeLoanInterest:  money.Round2(money.Cap(d.HomeLoanInterest, policy.HomeLoanInterestCap)),
		NPS:               money.Round2(money.Cap(d.NPSContribution, policy.NPSCap)),
	}
	ded.Total = money.Sum(
		ded.Investments, ded.Medical, ded.StandardDeduction,
		ded.HRAExemption, ded.HomeLoanInterest, ded.NPS,
	)

	gross := money.Round2(in.AnnualGross)
	taxable := money.Max(decimal.Zero, gross.Sub(ded.Total))

	est := TaxEstimate{
		GrossIncome:   gross,
		Deductions:    ded,
		TaxableIncome: taxable,
		Slabs:         make([]SlabAmount, 0, len(policy.Slabs)),
	}

	slabTax := decimal.Zero
	for _, s := range policy.Slabs {
		portion := slabPortion(taxable, s)
		amount := SlabAmount{
			From:    s.From,
			To:      s.To,
			Rate:    s.Rate,
			Taxable: portion,
			Tax:     money.Percent(portion, s.Rate),
		}
		slabTax = slabTax.Add(amount.Tax)
		est.Slabs = append(est.Slabs, amount)
	}
	est.SlabTax = money.Round2(slabTax)
	est.Cess = money.Percent(est.SlabTax, policy.CessPercent)

	total := est.SlabTax.Add(est.Cess)
	if taxable.LessThanOrEqual(policy.RebateThreshold) {
		est.Rebate = money.Min(policy.RebateCap, total)
	}
	est.AnnualTax = money.Round2(money.Max(decimal.Zero, total.Sub(est.Rebate)))
	est.MonthlyTax = money.Round2(est.AnnualTax.Div(twelve))

	return est, nil
}

// HRAExemption is the least of HRA received, the metro/non-metro share of
// basic and rent paid above the basic offset. It is never negative.
func HRAExemption(h *HRADetails, policy Policy) decimal.Decimal {
	if h == nil {
		return money.Zero
	}
	pct := policy.HRANonMetroPercent
	if h.Metro {
		pct = policy.HRAMetroPercent
	}

	rentExcess := h.RentPaid.Sub(money.Percent(h.Basic, policy.HRARentOffset))
	least := money.Min(h.HRAReceived, money.Min(money.Percent(h.Basic, pct), rentExcess))
	return money.Round2(money.Max(decimal.Zero, least))
}

func slabPortion(taxable decimal.Decimal, s Slab) decimal.Decimal {
	if taxable.LessThanOrEqual(s.From) {
		return decimal.Zero
	}
	upper := taxable
	if !s.To.IsZero() && taxable.GreaterThan(s.To) {
		upper = s.To
	}
	return upper.Sub(s.From)
}

func validateInput(in EstimateInput) error {
	d := in.Declarations
	values := []decimal.Decimal{
		in.AnnualGross, d.MedicalSelf, d.MedicalParents, d.HomeLoanInterest, d.NPSContribution,
	}
	for _, inv := range d.Investments {
		values = append(values, inv.Amount)
	}
	if d.HRA != nil {
		values = append(values, d.HRA.HRAReceived, d.HRA.RentPaid, d.HRA.Basic)
	}
	for _, v := range values {
		if v.IsNegative() {
			return taxerrors.ErrNegativeAmount
		}
	}
	return nil
}
