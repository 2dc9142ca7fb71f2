package attendance

import (
	"go-payroll/internal/shared/money"
	"go-payroll/internal/shared/period"

	"github.com/shopspring/decimal"
)

var half = decimal.New(5, -1)

// ComputeLOP returns the loss-of-pay days for one month of attendance.
//
// Present and Leave days are credited in full and Half-Day as 0.5. Weekend
// and Holiday days reduce the number of days expected to be worked. Any
// expected day without credit counts as LOP. The result lies in
// [0, expected] and is rounded to two decimals.
func ComputeLOP(records []Attendance, daysInMonth int) decimal.Decimal {
	credited := decimal.Zero
	nonWorking := 0

	for _, r := range records {
		switch r.Status {
		case StatusPresent, StatusLeave:
			credited = credited.Add(decimal.NewFromInt(1))
		case StatusHalfDay:
			credited = credited.Add(half)
		case StatusWeekend, StatusHoliday:
			nonWorking++
		}
	}

	expected := decimal.NewFromInt(int64(daysInMonth - nonWorking))
	if expected.IsNegative() {
		return money.Zero
	}

	return money.Round2(money.Cap(expected.Sub(credited), expected))
}

// Weekdays counts Monday to Friday in the period. It is the LOP charged for a
// month with no attendance data under the unpaid policy.
func Weekdays(p period.Period) int {
	n := 0
	for _, d := range p.Days() {
		if !period.IsWeekend(d) {
			n++
		}
	}
	return n
}
