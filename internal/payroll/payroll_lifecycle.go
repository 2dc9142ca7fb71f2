package payroll

import (
	"time"

	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/money"
	"go-payroll/internal/shared/period"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var adjustmentSigns = map[string]int64{
	AdjustmentBonus:         1,
	AdjustmentAllowance:     1,
	AdjustmentReimbursement: 1,
	AdjustmentPenalty:       -1,
	AdjustmentDeduction:     -1,
	AdjustmentRecovery:      -1,
}

func IsValidAdjustmentType(t string) bool {
	_, ok := adjustmentSigns[t]
	return ok
}

// SignedAmount applies the sign convention of the adjustment type to an
// unsigned magnitude.
func SignedAmount(adjType string, amount decimal.Decimal) decimal.Decimal {
	if adjustmentSigns[adjType] < 0 {
		return amount.Neg()
	}
	return amount
}

func NewPayroll(employeeID uuid.UUID, p period.Period, b Breakdown, lopDays decimal.Decimal, createdBy uuid.UUID) *Payroll {
	return &Payroll{
		ID:              uuid.New(),
		EmployeeID:      employeeID,
		Period:          p.String(),
		Year:            p.Year,
		Month:           int(p.Month),
		Earnings:        b.Earnings,
		Deductions:      b.Deductions,
		LOPDays:         money.Round2(lopDays),
		TotalAdjustment: b.TotalAdjustment,
		NetSalary:       b.NetSalary,
		Status:          StatusPending,
		CreatedBy:       createdBy,
	}
}

func (p *Payroll) netWith(totalAdjustment decimal.Decimal) decimal.Decimal {
	return money.Round2(money.Round2(p.Earnings.Gross.Sub(p.Deductions.Total)).Add(totalAdjustment))
}

// AddAdjustment appends an adjustment and recomputes the totals. On any error
// the record is left untouched.
func (p *Payroll) AddAdjustment(adjType string, amount decimal.Decimal, description string, actor uuid.UUID, at time.Time) (Adjustment, error) {
	if p.Status != StatusPending {
		return Adjustment{}, payrollerrors.ErrInvalidState
	}
	if !IsValidAdjustmentType(adjType) {
		return Adjustment{}, payrollerrors.ErrInvalidAdjustmentType
	}
	amount = money.Round2(amount)
	if !amount.IsPositive() {
		return Adjustment{}, payrollerrors.ErrInvalidAdjustmentAmount
	}

	total := money.Round2(p.TotalAdjustment.Add(SignedAmount(adjType, amount)))
	net := p.netWith(total)
	if net.IsNegative() {
		return Adjustment{}, payrollerrors.ErrNegativeNetSalary
	}

	adj := Adjustment{
		ID:          uuid.New(),
		PayrollID:   p.ID,
		Type:        adjType,
		Amount:      amount,
		Description: description,
		CreatedBy:   actor,
		CreatedAt:   at,
	}
	p.Adjustments = append(p.Adjustments, adj)
	p.TotalAdjustment = total
	p.NetSalary = net
	return adj, nil
}

func (p *Payroll) Approve(actor uuid.UUID, at time.Time) error {
	if p.Status != StatusPending {
		return payrollerrors.ErrInvalidState
	}
	p.Status = StatusApproved
	p.ApprovedBy = &actor
	p.ApprovedAt = &at
	return nil
}

func (p *Payroll) Revoke() error {
	if p.Status != StatusApproved {
		return payrollerrors.ErrInvalidState
	}
	p.Status = StatusPending
	p.ApprovedBy = nil
	p.ApprovedAt = nil
	return nil
}

func (p *Payroll) MarkPaid(transactionID, payslipURL string, at time.Time) error {
	if p.Status != StatusApproved {
		return payrollerrors.ErrInvalidState
	}
	p.Status = StatusPaid
	p.TransactionID = &transactionID
	p.PayslipURL = &payslipURL
	p.PaidAt = &at
	return nil
}

// snapshot captures the fields the payment pipeline may touch.
type snapshot struct {
	status           string
	transactionID    *string
	payslipURL       *string
	paidAt           *time.Time
	notificationSent bool
}

func (p *Payroll) snapshot() snapshot {
	return snapshot{
		status:           p.Status,
		transactionID:    p.TransactionID,
		payslipURL:       p.PayslipURL,
		paidAt:           p.PaidAt,
		notificationSent: p.NotificationSent,
	}
}

func (p *Payroll) restore(s snapshot) {
	p.Status = s.status
	p.TransactionID = s.transactionID
	p.PayslipURL = s.payslipURL
	p.PaidAt = s.paidAt
	p.NotificationSent = s.notificationSent
}
