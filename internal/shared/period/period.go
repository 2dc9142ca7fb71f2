// Package period models a calendar payroll month ("YYYY-MM").
package period

import (
	"fmt"
	"time"
)

const layout = "2006-01"

type Period struct {
	Year  int
	Month time.Month
}

func New(month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if year < 1900 || year > 9999 {
		return Period{}, fmt.Errorf("year out of range: %d", year)
	}
	return Period{Year: year, Month: time.Month(month)}, nil
}

func Parse(s string) (Period, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Period{}, fmt.Errorf("period must be formatted as YYYY-MM: %w", err)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Compact renders the period as YYYYMM, used in transaction identifiers.
func (p Period) Compact() string {
	return fmt.Sprintf("%04d%02d", p.Year, int(p.Month))
}

func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the first instant of the following month (exclusive bound).
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

func (p Period) DaysInMonth() int {
	return p.End().AddDate(0, 0, -1).Day()
}

// Days lists every calendar day of the period.
func (p Period) Days() []time.Time {
	n := p.DaysInMonth()
	days := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, p.Start().AddDate(0, 0, i))
	}
	return days
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
