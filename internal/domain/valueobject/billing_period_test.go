package valueobject

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

func date(year int, month time.Month, day int) time.Time {
	return CalendarDate(year, month, day)
}

func TestResolveBillingPeriod(t *testing.T) {
	tests := []struct {
		name       string
		date       time.Time
		closingDay int
		want       BillingPeriod
	}{
		{"after closing rolls to next month", date(2025, time.March, 15), 10, BillingPeriod{time.April, 2025}},
		{"before closing stays", date(2025, time.March, 5), 10, BillingPeriod{time.March, 2025}},
		{"on closing day stays", date(2025, time.March, 10), 10, BillingPeriod{time.March, 2025}},
		{"day after closing rolls", date(2025, time.March, 11), 10, BillingPeriod{time.April, 2025}},
		{"closing 31 in february non-leap", date(2025, time.February, 28), 31, BillingPeriod{time.February, 2025}},
		{"closing 31 in february leap", date(2024, time.February, 29), 31, BillingPeriod{time.February, 2024}},
		{"closing 30 on feb 28", date(2025, time.February, 28), 30, BillingPeriod{time.February, 2025}},
		{"december rolls into january", date(2025, time.December, 20), 10, BillingPeriod{time.January, 2026}},
		{"december before closing", date(2025, time.December, 1), 10, BillingPeriod{time.December, 2025}},
		{"closing 1 on day 2", date(2025, time.June, 2), 1, BillingPeriod{time.July, 2025}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveBillingPeriod(tt.date, tt.closingDay)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestResolveBillingPeriod_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	late := time.Date(2025, time.March, 10, 23, 59, 0, 0, loc)

	got, err := ResolveBillingPeriod(late, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (BillingPeriod{time.March, 2025}) {
		t.Errorf("expected 2025-03, got %s", got)
	}
}

func TestResolveBillingPeriod_InvalidClosingDay(t *testing.T) {
	for _, day := range []int{-1, 0, 32, 100} {
		_, err := ResolveBillingPeriod(date(2025, time.March, 1), day)
		if !errors.Is(err, domainerror.ErrInvalidClosingDay) {
			t.Errorf("closing day %d: expected ErrInvalidClosingDay, got %v", day, err)
		}
		if domainerror.KindOf(err) != domainerror.KindValidation {
			t.Errorf("closing day %d: expected validation kind, got %s", day, domainerror.KindOf(err))
		}
	}
}

// Every date of a leap and a non-leap year against every closing day.
func TestResolveBillingPeriod_Property(t *testing.T) {
	for _, year := range []int{2024, 2025} {
		for closingDay := 1; closingDay <= 31; closingDay++ {
			for d := date(year, time.January, 1); d.Year() == year; d = d.AddDate(0, 0, 1) {
				got, err := ResolveBillingPeriod(d, closingDay)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}

				current := BillingPeriod{Month: d.Month(), Year: d.Year()}
				want := current
				if d.Day() > min(closingDay, DaysIn(d.Year(), d.Month())) {
					want = current.Next()
				}
				if got != want {
					t.Fatalf("%s closing %d: expected %s, got %s", d.Format(time.DateOnly), closingDay, want, got)
				}

				start, end := got.DateRange(closingDay)
				if d.Before(start) || d.After(end) {
					t.Fatalf("%s closing %d: outside range %s..%s of %s",
						d.Format(time.DateOnly), closingDay, start.Format(time.DateOnly), end.Format(time.DateOnly), got)
				}
			}
		}
	}
}

func TestBillingPeriod_DateRangesAreContiguous(t *testing.T) {
	for closingDay := 1; closingDay <= 31; closingDay++ {
		p := BillingPeriod{time.January, 2024}
		for i := 0; i < 24; i++ {
			_, end := p.DateRange(closingDay)
			nextStart, _ := p.Next().DateRange(closingDay)
			if !nextStart.Equal(end.AddDate(0, 0, 1)) {
				t.Fatalf("closing %d: gap between %s and %s", closingDay, p, p.Next())
			}
			p = p.Next()
		}
	}
}

func TestBillingPeriod_DueDate(t *testing.T) {
	policy := DefaultDueDatePolicy()

	tests := []struct {
		name       string
		period     BillingPeriod
		closingDay int
		dueDay     int
		policy     DueDatePolicy
		want       time.Time
	}{
		{"due after closing same month", BillingPeriod{time.April, 2025}, 10, 20, policy, date(2025, time.April, 20)},
		{"due before closing next month", BillingPeriod{time.March, 2025}, 25, 5, policy, date(2025, time.April, 5)},
		{"due equal closing same month", BillingPeriod{time.March, 2025}, 10, 10, policy, date(2025, time.March, 10)},
		{"next month across year", BillingPeriod{time.December, 2025}, 25, 5, policy, date(2026, time.January, 5)},
		{"due day clamped", BillingPeriod{time.January, 2025}, 31, 30, DueDatePolicy{}, date(2025, time.February, 28)},
		{"always next month policy", BillingPeriod{time.March, 2025}, 10, 20, DueDatePolicy{}, date(2025, time.April, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.period.DueDate(tt.closingDay, tt.dueDay, tt.policy)
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want.Format(time.DateOnly), got.Format(time.DateOnly))
			}
		})
	}
}

func TestBillingPeriod_Scenarios(t *testing.T) {
	policy := DefaultDueDatePolicy()

	p, _ := ResolveBillingPeriod(date(2025, time.March, 15), 10)
	if got := p.DueDate(10, 20, policy); !got.Equal(date(2025, time.April, 20)) {
		t.Errorf("expected 2025-04-20, got %s", got.Format(time.DateOnly))
	}

	p, _ = ResolveBillingPeriod(date(2025, time.March, 5), 10)
	if got := p.DueDate(10, 20, policy); !got.Equal(date(2025, time.March, 20)) {
		t.Errorf("expected 2025-03-20, got %s", got.Format(time.DateOnly))
	}
}

func TestParseBillingPeriod(t *testing.T) {
	p, err := ParseBillingPeriod("2025-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != (BillingPeriod{time.December, 2025}) {
		t.Errorf("unexpected period %s", p)
	}
	if p.String() != "2025-12" {
		t.Errorf("expected 2025-12, got %s", p.String())
	}
	if p.Next().String() != "2026-01" || p.Next().Prev() != p {
		t.Errorf("next/prev round trip failed")
	}

	for _, bad := range []string{"", "2025-13", "2025/01", "25-01", "2025-1x"} {
		if _, err := ParseBillingPeriod(bad); !errors.Is(err, domainerror.ErrInvalidBillingPeriod) {
			t.Errorf("%q: expected ErrInvalidBillingPeriod, got %v", bad, err)
		}
	}
}

func TestClampDay(t *testing.T) {
	if got := ClampDay(2025, time.February, 31); got != 28 {
		t.Errorf("expected 28, got %d", got)
	}
	if got := ClampDay(2024, time.February, 31); got != 29 {
		t.Errorf("expected 29, got %d", got)
	}
	if got := ClampDay(2025, time.April, 31); got != 30 {
		t.Errorf("expected 30, got %d", got)
	}
	if got := ClampDay(2025, time.April, 15); got != 15 {
		t.Errorf("expected 15, got %d", got)
	}
}
