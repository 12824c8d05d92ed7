// Package billing contains the credit card bill use cases.
package billing

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
)

// MaterializeBillInput represents the input for bill materialization.
type MaterializeBillInput struct {
	UserID       uuid.UUID
	CreditCardID uuid.UUID
	Period       valueobject.BillingPeriod
}

// MaterializeBillOutput represents the output of bill materialization.
type MaterializeBillOutput struct {
	Bill *entity.Bill
}

// MaterializeBillUseCase rewrites the cached totals of one bill from its transactions.
type MaterializeBillUseCase struct {
	aggregator *BillAggregator
	billRepo   adapter.BillRepository
	publisher  adapter.EventPublisher
}

// NewMaterializeBillUseCase creates a new MaterializeBillUseCase instance.
func NewMaterializeBillUseCase(
	aggregator *BillAggregator,
	billRepo adapter.BillRepository,
	publisher adapter.EventPublisher,
) *MaterializeBillUseCase {
	return &MaterializeBillUseCase{
		aggregator: aggregator,
		billRepo:   billRepo,
		publisher:  publisher,
	}
}

// Execute aggregates the period and upserts the bill row.
func (uc *MaterializeBillUseCase) Execute(ctx context.Context, input MaterializeBillInput) (*MaterializeBillOutput, error) {
	agg, err := uc.aggregator.Aggregate(ctx, input.UserID, input.CreditCardID, input.Period)
	if err != nil {
		return nil, err
	}

	bill, err := uc.billRepo.Upsert(ctx, entity.NewBill(input.UserID, agg))
	if err != nil {
		return nil, domainerror.NewStoreError("upsert bill", err)
	}

	publish(ctx, uc.publisher, entity.NewChangeEvent(input.UserID, entity.ChangeBillUpdated, bill.ID))

	return &MaterializeBillOutput{Bill: bill}, nil
}

// RefreshForDates re-materializes the bills the given charge dates land in.
// It runs after a transaction write has committed, so failures are only logged.
func (uc *MaterializeBillUseCase) RefreshForDates(ctx context.Context, userID, cardID uuid.UUID, dates ...time.Time) {
	card, err := uc.aggregator.cardRepo.FindByID(ctx, userID, cardID)
	if err != nil {
		slog.Warn("Failed to load card for bill refresh", "credit_card_id", cardID, "error", err)
		return
	}

	seen := make(map[valueobject.BillingPeriod]struct{}, len(dates))
	for _, d := range dates {
		period, err := card.PeriodOf(d)
		if err != nil {
			slog.Warn("Failed to resolve billing period", "credit_card_id", cardID, "date", d, "error", err)
			continue
		}
		if _, ok := seen[period]; ok {
			continue
		}
		seen[period] = struct{}{}

		if _, err := uc.Execute(ctx, MaterializeBillInput{UserID: userID, CreditCardID: cardID, Period: period}); err != nil {
			slog.Warn("Failed to refresh bill",
				"credit_card_id", cardID,
				"period", period.String(),
				"error", err,
			)
		}
	}
}

// publish sends a change event after a commit; a failure never undoes the write.
func publish(ctx context.Context, publisher adapter.EventPublisher, events ...entity.ChangeEvent) {
	if publisher == nil {
		return
	}
	for _, event := range events {
		if err := publisher.Publish(ctx, event); err != nil {
			slog.Warn("Failed to publish change event",
				"event_type", event.Type,
				"entity_id", event.EntityID,
				"error", err,
			)
		}
	}
}
