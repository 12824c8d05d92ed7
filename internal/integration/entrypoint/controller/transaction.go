// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/application/usecase/transaction"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase    *transaction.ListTransactionsUseCase
	createUseCase  *transaction.CreateTransactionUseCase
	getUseCase     *transaction.GetTransactionUseCase
	updateUseCase  *transaction.UpdateTransactionUseCase
	deleteUseCase  *transaction.DeleteTransactionUseCase
	statusUseCase  *transaction.SetTransactionStatusUseCase
	suggestUseCase *transaction.SuggestCategoryUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	statusUseCase *transaction.SetTransactionStatusUseCase,
	suggestUseCase *transaction.SuggestCategoryUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		getUseCase:     getUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		statusUseCase:  statusUseCase,
		suggestUseCase: suggestUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		UserID:           userID,
		Search:           ctx.Query("search"),
		ExcludeCancelled: ctx.Query("exclude_cancelled") == "true",
	}

	// Parse id filters
	for param, dst := range map[string]**uuid.UUID{
		"account_id":     &input.AccountID,
		"credit_card_id": &input.CreditCardID,
		"goal_id":        &input.GoalID,
	} {
		raw := ctx.Query(param)
		id, err := dto.ParseOptionalUUID(&raw)
		if err != nil {
			badRequest(ctx, "Invalid "+param+" format", domainerror.ErrCodeMissingTransactionFields)
			return
		}
		*dst = id
	}

	// Parse date range
	if startDateStr := ctx.Query("start_date"); startDateStr != "" {
		startDate, err := time.Parse(dto.DateLayout, startDateStr)
		if err != nil {
			badRequest(ctx, "start_date must be in YYYY-MM-DD format", domainerror.ErrCodeInvalidTransactionDate)
			return
		}
		input.StartDate = &startDate
	}
	if endDateStr := ctx.Query("end_date"); endDateStr != "" {
		endDate, err := time.Parse(dto.DateLayout, endDateStr)
		if err != nil {
			badRequest(ctx, "end_date must be in YYYY-MM-DD format", domainerror.ErrCodeInvalidTransactionDate)
			return
		}
		input.EndDate = &endDate
	}

	// Parse category IDs (comma-separated)
	if categoryIDsStr := ctx.Query("category_ids"); categoryIDsStr != "" {
		for _, idStr := range strings.Split(categoryIDsStr, ",") {
			id, err := uuid.Parse(strings.TrimSpace(idStr))
			if err != nil {
				badRequest(ctx, "Invalid category_ids format", domainerror.ErrCodeMissingTransactionFields)
				return
			}
			input.CategoryIDs = append(input.CategoryIDs, id)
		}
	}

	if typeStr := ctx.Query("type"); typeStr != "" {
		txnType := entity.TransactionType(typeStr)
		input.Type = &txnType
	}

	// Parse pagination
	if pageStr := ctx.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			input.Page = page
		}
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Result))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	fields, ok := bindTransactionFields(ctx)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		UserID: userID,
		Fields: fields,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction, nil))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	txnID, ok := pathID(ctx, "id", "transaction", domainerror.ErrCodeMissingTransactionFields)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		UserID:        userID,
		TransactionID: txnID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction, output.Category))
}

// Update handles PUT /transactions/:id requests. The body replaces every user-supplied field.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	txnID, ok := pathID(ctx, "id", "transaction", domainerror.ErrCodeMissingTransactionFields)
	if !ok {
		return
	}

	fields, ok := bindTransactionFields(ctx)
	if !ok {
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), transaction.UpdateTransactionInput{
		UserID:        userID,
		TransactionID: txnID,
		Fields:        fields,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction, nil))
}

// SetStatus handles PATCH /transactions/:id/status requests.
func (c *TransactionController) SetStatus(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	txnID, ok := pathID(ctx, "id", "transaction", domainerror.ErrCodeMissingTransactionFields)
	if !ok {
		return
	}

	var req dto.SetTransactionStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "status must be 'completed' or 'cancelled'", domainerror.ErrCodeInvalidTransactionStatus)
		return
	}

	output, err := c.statusUseCase.Execute(ctx.Request.Context(), transaction.SetTransactionStatusInput{
		UserID:        userID,
		TransactionID: txnID,
		Status:        entity.TransactionStatus(req.Status),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction, nil))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	txnID, ok := pathID(ctx, "id", "transaction", domainerror.ErrCodeMissingTransactionFields)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		UserID:        userID,
		TransactionID: txnID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// SuggestCategory handles POST /transactions/suggest-category requests.
func (c *TransactionController) SuggestCategory(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var req dto.SuggestCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeMissingTransactionFields)
		return
	}

	txnType := entity.TransactionType(req.Type)
	if txnType == "" {
		txnType = entity.TransactionTypeExpense
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), transaction.SuggestCategoryInput{
		UserID:      userID,
		Description: req.Description,
		Type:        txnType,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuggestCategoryResponse{
		Category:   dto.ToTransactionCategoryResponse(output.Category),
		Source:     output.Source,
		Confidence: output.Confidence,
		Reasoning:  output.Reasoning,
	})
}

// bindTransactionFields parses a transaction body or renders a 400.
func bindTransactionFields(ctx *gin.Context) (transaction.Fields, bool) {
	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeMissingTransactionFields)
		return transaction.Fields{}, false
	}

	fields, err := req.Fields()
	if err != nil {
		badRequest(ctx, "Invalid date or id format: "+err.Error(), domainerror.ErrCodeMissingTransactionFields)
		return transaction.Fields{}, false
	}
	return fields, true
}
