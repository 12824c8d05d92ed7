// Package valueobject contains domain value objects for the Wallet system.
package valueobject

import (
	"fmt"
	"time"

	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// BillingPeriodLayout is the textual layout of a billing period ("YYYY-MM").
const BillingPeriodLayout = "2006-01"

// BillingPeriod identifies the (month, year) bucket a card charge lands in.
type BillingPeriod struct {
	Month time.Month
	Year  int
}

// DueDatePolicy decides in which month a bill falls due.
type DueDatePolicy struct {
	// NextMonthWhenBeforeClosing places the due date in the month after the
	// period month when dueDay < closingDay, and in the period month otherwise.
	// When false the due date is always in the month after the period month.
	NextMonthWhenBeforeClosing bool
}

// DefaultDueDatePolicy returns the policy used when nothing is configured.
func DefaultDueDatePolicy() DueDatePolicy {
	return DueDatePolicy{NextMonthWhenBeforeClosing: true}
}

// NewBillingPeriod builds a period, rejecting months outside 1-12.
func NewBillingPeriod(month time.Month, year int) (BillingPeriod, error) {
	if month < time.January || month > time.December || year < 1 || year > 9999 {
		return BillingPeriod{}, domainerror.NewBillingError(
			domainerror.ErrCodeInvalidBillingPeriod,
			fmt.Sprintf("invalid billing period %04d-%02d", year, int(month)),
			domainerror.ErrInvalidBillingPeriod,
		)
	}
	return BillingPeriod{Month: month, Year: year}, nil
}

// ParseBillingPeriod parses a "YYYY-MM" period.
func ParseBillingPeriod(s string) (BillingPeriod, error) {
	t, err := time.Parse(BillingPeriodLayout, s)
	if err != nil {
		return BillingPeriod{}, domainerror.NewBillingError(
			domainerror.ErrCodeInvalidBillingPeriod,
			"billing period must be in YYYY-MM format",
			domainerror.ErrInvalidBillingPeriod,
		)
	}
	return BillingPeriod{Month: t.Month(), Year: t.Year()}, nil
}

// String returns the period as "YYYY-MM".
func (p BillingPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Next returns the following period, rolling December into January.
func (p BillingPeriod) Next() BillingPeriod {
	if p.Month == time.December {
		return BillingPeriod{Month: time.January, Year: p.Year + 1}
	}
	return BillingPeriod{Month: p.Month + 1, Year: p.Year}
}

// Prev returns the preceding period, rolling January into December.
func (p BillingPeriod) Prev() BillingPeriod {
	if p.Month == time.January {
		return BillingPeriod{Month: time.December, Year: p.Year - 1}
	}
	return BillingPeriod{Month: p.Month - 1, Year: p.Year}
}

// Before reports whether p is earlier than other.
func (p BillingPeriod) Before(other BillingPeriod) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// ClosingDate is the last calendar date charged to the period.
func (p BillingPeriod) ClosingDate(closingDay int) time.Time {
	return CalendarDate(p.Year, p.Month, ClampDay(p.Year, p.Month, closingDay))
}

// DateRange returns the first and last calendar dates (inclusive) whose charges
// resolve to this period for the given closing day.
func (p BillingPeriod) DateRange(closingDay int) (start, end time.Time) {
	start = p.Prev().ClosingDate(closingDay).AddDate(0, 0, 1)
	end = p.ClosingDate(closingDay)
	return start, end
}

// DueDate returns the bill's due date under the given policy.
func (p BillingPeriod) DueDate(closingDay, dueDay int, policy DueDatePolicy) time.Time {
	dueMonth := p.Next()
	if policy.NextMonthWhenBeforeClosing && dueDay >= closingDay {
		dueMonth = p
	}
	return CalendarDate(dueMonth.Year, dueMonth.Month, ClampDay(dueMonth.Year, dueMonth.Month, dueDay))
}

// ResolveBillingPeriod maps a charge date and a card closing day to the
// period the charge lands in. Only the calendar date of t is used.
func ResolveBillingPeriod(t time.Time, closingDay int) (BillingPeriod, error) {
	if err := ValidateClosingDay(closingDay); err != nil {
		return BillingPeriod{}, err
	}

	year, month, day := t.Date()
	current := BillingPeriod{Month: month, Year: year}
	if day <= ClampDay(year, month, closingDay) {
		return current, nil
	}
	return current.Next(), nil
}

// ValidateClosingDay fails when day is outside 1-31.
func ValidateClosingDay(day int) error {
	if !isCalendarDay(day) {
		return domainerror.NewBillingError(
			domainerror.ErrCodeInvalidClosingDay,
			fmt.Sprintf("closing day %d is outside 1-31", day),
			domainerror.ErrInvalidClosingDay,
		)
	}
	return nil
}

// ValidateDueDay fails when day is outside 1-31.
func ValidateDueDay(day int) error {
	if !isCalendarDay(day) {
		return domainerror.NewBillingError(
			domainerror.ErrCodeInvalidDueDay,
			fmt.Sprintf("due day %d is outside 1-31", day),
			domainerror.ErrInvalidDueDay,
		)
	}
	return nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay caps day at the last valid day of the month.
func ClampDay(year int, month time.Month, day int) int {
	if last := DaysIn(year, month); day > last {
		return last
	}
	return day
}

// CalendarDate returns the date at UTC midnight.
func CalendarDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf drops the time of day and zone of t, keeping its calendar date.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return CalendarDate(year, month, day)
}

func isCalendarDay(day int) bool {
	return day >= 1 && day <= 31
}
