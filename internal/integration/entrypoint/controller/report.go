// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/application/usecase/report"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
	"github.com/finance-tracker/wallet/internal/integration/entrypoint/dto"
)

// ReportController handles spending report endpoints.
type ReportController struct {
	breakdownUseCase *report.GetCategoryBreakdownUseCase
	clock            adapter.Clock
}

// NewReportController creates a new report controller instance.
func NewReportController(breakdownUseCase *report.GetCategoryBreakdownUseCase, clock adapter.Clock) *ReportController {
	return &ReportController{
		breakdownUseCase: breakdownUseCase,
		clock:            clock,
	}
}

// CategoryBreakdown handles GET /reports/categories requests.
// period is "YYYY-MM" and defaults to the current month.
func (c *ReportController) CategoryBreakdown(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	now := c.clock.Now()
	period := valueobject.BillingPeriod{Month: now.Month(), Year: now.Year()}
	if periodStr := ctx.Query("period"); periodStr != "" {
		parsed, err := valueobject.ParseBillingPeriod(periodStr)
		if err != nil {
			respondError(ctx, err)
			return
		}
		period = parsed
	}

	output, err := c.breakdownUseCase.Execute(ctx.Request.Context(), report.GetCategoryBreakdownInput{
		UserID: userID,
		Period: period,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(output))
}

// EventController streams change events to the authenticated user.
type EventController struct {
	bus       adapter.EventBus
	keepAlive time.Duration
}

// NewEventController creates a new event controller instance.
func NewEventController(bus adapter.EventBus, keepAlive time.Duration) *EventController {
	if keepAlive <= 0 {
		keepAlive = 30 * time.Second
	}
	return &EventController{
		bus:       bus,
		keepAlive: keepAlive,
	}
}

// Stream handles GET /events requests as a Server-Sent Events stream.
// Each committed change is sent as an event named after its type.
// The stream ends after a session.ended event.
func (c *EventController) Stream(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	events, err := c.bus.Subscribe(ctx.Request.Context(), userID)
	if err != nil {
		slog.Error("Failed to subscribe to change events", "user_id", userID, "error", err)
		respondError(ctx, err)
		return
	}

	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(c.keepAlive)
	defer ticker.Stop()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case event, open := <-events:
			if !open {
				return false
			}
			ctx.SSEvent(string(event.Type), dto.ToChangeEventResponse(event))
			return event.Type != entity.ChangeSessionEnded
		case <-ticker.C:
			ctx.SSEvent("ping", "")
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}
