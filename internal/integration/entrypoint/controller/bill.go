// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/wallet/internal/application/usecase/billing"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/domain/valueobject"
	"github.com/finance-tracker/wallet/internal/integration/entrypoint/dto"
)

// BillController handles credit card bill endpoints.
type BillController struct {
	listUseCase          *billing.ListBillsUseCase
	currentUseCase       *billing.GetCurrentBillUseCase
	detailsUseCase       *billing.GetBillDetailsUseCase
	materializeUseCase   *billing.MaterializeBillUseCase
	payUseCase           *billing.PayBillUseCase
	unpayUseCase         *billing.UnpayBillUseCase
	resolvePeriodUseCase *billing.ResolvePeriodUseCase
}

// NewBillController creates a new bill controller instance.
func NewBillController(
	listUseCase *billing.ListBillsUseCase,
	currentUseCase *billing.GetCurrentBillUseCase,
	detailsUseCase *billing.GetBillDetailsUseCase,
	materializeUseCase *billing.MaterializeBillUseCase,
	payUseCase *billing.PayBillUseCase,
	unpayUseCase *billing.UnpayBillUseCase,
	resolvePeriodUseCase *billing.ResolvePeriodUseCase,
) *BillController {
	return &BillController{
		listUseCase:          listUseCase,
		currentUseCase:       currentUseCase,
		detailsUseCase:       detailsUseCase,
		materializeUseCase:   materializeUseCase,
		payUseCase:           payUseCase,
		unpayUseCase:         unpayUseCase,
		resolvePeriodUseCase: resolvePeriodUseCase,
	}
}

// List handles GET /credit-cards/:id/bills requests.
func (c *BillController) List(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	cardID, ok := pathID(ctx, "id", "credit card", domainerror.ErrCodeMissingCardFields)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), billing.ListBillsInput{
		UserID:       userID,
		CreditCardID: cardID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillListResponse(output))
}

// Current handles GET /credit-cards/:id/bills/current requests.
func (c *BillController) Current(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	cardID, ok := pathID(ctx, "id", "credit card", domainerror.ErrCodeMissingCardFields)
	if !ok {
		return
	}

	output, err := c.currentUseCase.Execute(ctx.Request.Context(), billing.GetCurrentBillInput{
		UserID:       userID,
		CreditCardID: cardID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillDetailsResponse(output.Details))
}

// Details handles GET /credit-cards/:id/bills/:period requests.
func (c *BillController) Details(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	cardID, ok := pathID(ctx, "id", "credit card", domainerror.ErrCodeMissingCardFields)
	if !ok {
		return
	}
	period, err := valueobject.ParseBillingPeriod(ctx.Param("period"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.detailsUseCase.Execute(ctx.Request.Context(), billing.GetBillDetailsInput{
		UserID:       userID,
		CreditCardID: cardID,
		Month:        period.Month,
		Year:         period.Year,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillDetailsResponse(output.Details))
}

// Materialize handles POST /credit-cards/:id/bills/:period/refresh requests.
func (c *BillController) Materialize(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	cardID, ok := pathID(ctx, "id", "credit card", domainerror.ErrCodeMissingCardFields)
	if !ok {
		return
	}
	period, err := valueobject.ParseBillingPeriod(ctx.Param("period"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.materializeUseCase.Execute(ctx.Request.Context(), billing.MaterializeBillInput{
		UserID:       userID,
		CreditCardID: cardID,
		Period:       period,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillResponse(output.Bill, ""))
}

// Pay handles POST /bills/:id/pay requests.
func (c *BillController) Pay(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	billID, ok := pathID(ctx, "id", "bill", domainerror.ErrCodeBillNotFound)
	if !ok {
		return
	}

	// The body is optional
	var req dto.PayBillRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodePaymentAccountRequired)
			return
		}
	}

	accountID, err := dto.ParseOptionalUUID(req.AccountID)
	if err != nil {
		badRequest(ctx, "Invalid account ID format", domainerror.ErrCodePaymentAccountRequired)
		return
	}

	output, err := c.payUseCase.Execute(ctx.Request.Context(), billing.PayBillInput{
		UserID:    userID,
		BillID:    billID,
		AccountID: accountID,
		Amount:    req.Amount,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillResponse(output.Bill, ""))
}

// Unpay handles POST /bills/:id/unpay requests.
func (c *BillController) Unpay(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	billID, ok := pathID(ctx, "id", "bill", domainerror.ErrCodeBillNotFound)
	if !ok {
		return
	}

	output, err := c.unpayUseCase.Execute(ctx.Request.Context(), billing.UnpayBillInput{
		UserID: userID,
		BillID: billID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillResponse(output.Bill, ""))
}

// ResolvePeriod handles GET /billing/period requests.
// Either credit_card_id or closing_day (and optionally due_day) selects the cycle.
func (c *BillController) ResolvePeriod(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	date, err := time.Parse(dto.DateLayout, ctx.Query("date"))
	if err != nil {
		badRequest(ctx, "date must be in YYYY-MM-DD format", domainerror.ErrCodeInvalidBillDate)
		return
	}

	input := billing.ResolvePeriodInput{
		UserID: userID,
		Date:   date,
	}

	cardIDParam := ctx.Query("credit_card_id")
	if cardIDParam != "" {
		cardID, err := dto.ParseOptionalUUID(&cardIDParam)
		if err != nil {
			badRequest(ctx, "Invalid credit card ID format", domainerror.ErrCodeMissingCardFields)
			return
		}
		input.CreditCardID = cardID
	} else {
		closingDay, err := strconv.Atoi(ctx.Query("closing_day"))
		if err != nil {
			badRequest(ctx, "closing_day must be a number", domainerror.ErrCodeInvalidClosingDay)
			return
		}
		input.ClosingDay = closingDay
		// due_day defaults to closing_day
		input.DueDay = closingDay
		if dueDayParam := ctx.Query("due_day"); dueDayParam != "" {
			dueDay, err := strconv.Atoi(dueDayParam)
			if err != nil {
				badRequest(ctx, "due_day must be a number", domainerror.ErrCodeInvalidDueDay)
				return
			}
			input.DueDay = dueDay
		}
	}

	output, err := c.resolvePeriodUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillingPeriodResponse(output))
}
