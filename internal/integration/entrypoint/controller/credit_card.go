// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	creditcard "github.com/finance-tracker/wallet/internal/application/usecase/credit_card"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/integration/entrypoint/dto"
)

// CreditCardController handles credit card endpoints.
type CreditCardController struct {
	listUseCase   *creditcard.ListCreditCardsUseCase
	createUseCase *creditcard.CreateCreditCardUseCase
	getUseCase    *creditcard.GetCreditCardUseCase
	updateUseCase *creditcard.UpdateCreditCardUseCase
	deleteUseCase *creditcard.DeleteCreditCardUseCase
}

// NewCreditCardController creates a new credit card controller instance.
func NewCreditCardController(
	listUseCase *creditcard.ListCreditCardsUseCase,
	createUseCase *creditcard.CreateCreditCardUseCase,
	getUseCase *creditcard.GetCreditCardUseCase,
	updateUseCase *creditcard.UpdateCreditCardUseCase,
	deleteUseCase *creditcard.DeleteCreditCardUseCase,
) *CreditCardController {
	return &CreditCardController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /credit-cards requests.
func (c *CreditCardController) List(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), creditcard.ListCreditCardsInput{
		UserID:          userID,
		IncludeArchived: ctx.Query("include_archived") == "true",
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCreditCardListResponse(output.CreditCards))
}

// Create handles POST /credit-cards requests.
func (c *CreditCardController) Create(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateCreditCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeMissingCardFields)
		return
	}

	paymentAccountID, err := dto.ParseOptionalUUID(req.PaymentAccountID)
	if err != nil {
		badRequest(ctx, "Invalid payment account ID format", domainerror.ErrCodeMissingCardFields)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), creditcard.CreateCreditCardInput{
		UserID:           userID,
		Name:             req.Name,
		CreditLimit:      req.CreditLimit,
		ClosingDay:       req.ClosingDay,
		DueDay:           req.DueDay,
		PaymentAccountID: paymentAccountID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCreditCardResponse(output.CreditCard))
}

// Get handles GET /credit-cards/:id requests.
func (c *CreditCardController) Get(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	cardID, ok := pathID(ctx, "id", "credit card", domainerror.ErrCodeMissingCardFields)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), creditcard.GetCreditCardInput{
		UserID:       userID,
		CreditCardID: cardID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCreditCardResponse(output.CreditCard))
}

// Update handles PATCH /credit-cards/:id requests.
func (c *CreditCardController) Update(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	cardID, ok := pathID(ctx, "id", "credit card", domainerror.ErrCodeMissingCardFields)
	if !ok {
		return
	}

	var req dto.UpdateCreditCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeMissingCardFields)
		return
	}

	input := creditcard.UpdateCreditCardInput{
		UserID:       userID,
		CreditCardID: cardID,
		Name:         req.Name,
		CreditLimit:  req.CreditLimit,
		ClosingDay:   req.ClosingDay,
		DueDay:       req.DueDay,
		IsArchived:   req.IsArchived,
	}

	// An explicit empty string detaches the payment account
	if req.PaymentAccountID != nil {
		if *req.PaymentAccountID == "" {
			input.ClearPaymentAccount = true
		} else {
			id, err := dto.ParseOptionalUUID(req.PaymentAccountID)
			if err != nil {
				badRequest(ctx, "Invalid payment account ID format", domainerror.ErrCodeMissingCardFields)
				return
			}
			input.PaymentAccountID = id
		}
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCreditCardResponse(output.CreditCard))
}

// Delete handles DELETE /credit-cards/:id requests.
func (c *CreditCardController) Delete(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	cardID, ok := pathID(ctx, "id", "credit card", domainerror.ErrCodeMissingCardFields)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), creditcard.DeleteCreditCardInput{
		UserID:       userID,
		CreditCardID: cardID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
