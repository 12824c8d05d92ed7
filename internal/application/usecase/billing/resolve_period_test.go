package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

func TestResolvePeriod(t *testing.T) {
	f := newFixture(t)
	uc := NewResolvePeriodUseCase(fakeCardRepo{f.store}, valueobject.DefaultDueDatePolicy())
	ctx := context.Background()

	t.Run("uses the card's days", func(t *testing.T) {
		out, err := uc.Execute(ctx, ResolvePeriodInput{UserID: f.userID, CreditCardID: &f.card.ID, Date: day(2025, time.April, 11)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Period.String() != "2025-05" {
			t.Errorf("period = %s, want 2025-05", out.Period)
		}
		if !out.PeriodStart.Equal(day(2025, time.April, 11)) || !out.ClosingDate.Equal(day(2025, time.May, 10)) {
			t.Errorf("range = %v..%v", out.PeriodStart, out.ClosingDate)
		}
		if !out.DueDate.Equal(day(2025, time.May, 20)) {
			t.Errorf("due = %v, want 2025-05-20", out.DueDate)
		}
	})

	t.Run("explicit days clamp in short months", func(t *testing.T) {
		out, err := uc.Execute(ctx, ResolvePeriodInput{ClosingDay: 31, DueDay: 5, Date: day(2025, time.February, 28)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Period.String() != "2025-02" || !out.ClosingDate.Equal(day(2025, time.February, 28)) {
			t.Errorf("period = %s closing %v", out.Period, out.ClosingDate)
		}
		if !out.DueDate.Equal(day(2025, time.March, 5)) {
			t.Errorf("due = %v, want 2025-03-05", out.DueDate)
		}
	})

	t.Run("invalid closing day", func(t *testing.T) {
		_, err := uc.Execute(ctx, ResolvePeriodInput{ClosingDay: 0, DueDay: 5, Date: day(2025, time.February, 1)})
		if !errors.Is(err, domainerror.ErrInvalidClosingDay) {
			t.Fatalf("error = %v, want ErrInvalidClosingDay", err)
		}
	})

	t.Run("unknown card", func(t *testing.T) {
		id := uuid.New()
		_, err := uc.Execute(ctx, ResolvePeriodInput{UserID: f.userID, CreditCardID: &id, Date: day(2025, time.February, 1)})
		if kind := domainerror.KindOf(err); kind != domainerror.KindNotFound {
			t.Fatalf("kind = %v, want not found", kind)
		}
	})
}
