// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/wallet/internal/application/usecase/goal"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/integration/entrypoint/dto"
)

// GoalController handles savings goal endpoints.
type GoalController struct {
	listUseCase       *goal.ListGoalsUseCase
	createUseCase     *goal.CreateGoalUseCase
	getUseCase        *goal.GetGoalUseCase
	updateUseCase     *goal.UpdateGoalUseCase
	deleteUseCase     *goal.DeleteGoalUseCase
	contributeUseCase *goal.ContributeUseCase
	withdrawUseCase   *goal.WithdrawUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	createUseCase *goal.CreateGoalUseCase,
	getUseCase *goal.GetGoalUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
	contributeUseCase *goal.ContributeUseCase,
	withdrawUseCase *goal.WithdrawUseCase,
) *GoalController {
	return &GoalController{
		listUseCase:       listUseCase,
		createUseCase:     createUseCase,
		getUseCase:        getUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		contributeUseCase: contributeUseCase,
		withdrawUseCase:   withdrawUseCase,
	}
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), goal.ListGoalsInput{
		UserID:          userID,
		IncludeArchived: ctx.Query("include_archived") == "true",
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeMissingGoalFields)
		return
	}

	input := goal.CreateGoalInput{
		UserID:       userID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
	}

	var err error
	if input.AccountID, err = dto.ParseOptionalUUID(req.AccountID); err != nil {
		badRequest(ctx, "Invalid account ID format", domainerror.ErrCodeMissingGoalFields)
		return
	}
	if req.Deadline != nil && *req.Deadline != "" {
		deadline, err := time.Parse(dto.DateLayout, *req.Deadline)
		if err != nil {
			badRequest(ctx, "deadline must be in YYYY-MM-DD format", domainerror.ErrCodeInvalidGoalDeadline)
			return
		}
		input.Deadline = &deadline
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	goalID, ok := pathID(ctx, "id", "goal", domainerror.ErrCodeMissingGoalFields)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		UserID: userID,
		GoalID: goalID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Update handles PATCH /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	goalID, ok := pathID(ctx, "id", "goal", domainerror.ErrCodeMissingGoalFields)
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeMissingGoalFields)
		return
	}

	input := goal.UpdateGoalInput{
		UserID:       userID,
		GoalID:       goalID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		IsArchived:   req.IsArchived,
	}

	if req.Deadline != nil {
		if *req.Deadline == "" {
			input.ClearDeadline = true
		} else {
			deadline, err := time.Parse(dto.DateLayout, *req.Deadline)
			if err != nil {
				badRequest(ctx, "deadline must be in YYYY-MM-DD format", domainerror.ErrCodeInvalidGoalDeadline)
				return
			}
			input.Deadline = &deadline
		}
	}

	if req.AccountID != nil {
		if *req.AccountID == "" {
			input.ClearAccount = true
		} else {
			accountID, err := dto.ParseOptionalUUID(req.AccountID)
			if err != nil {
				badRequest(ctx, "Invalid account ID format", domainerror.ErrCodeMissingGoalFields)
				return
			}
			input.AccountID = accountID
		}
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	goalID, ok := pathID(ctx, "id", "goal", domainerror.ErrCodeMissingGoalFields)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{
		UserID: userID,
		GoalID: goalID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Contribute handles POST /goals/:id/contribute requests.
func (c *GoalController) Contribute(ctx *gin.Context) {
	c.move(ctx, c.contributeUseCase.Execute)
}

// Withdraw handles POST /goals/:id/withdraw requests.
func (c *GoalController) Withdraw(ctx *gin.Context) {
	c.move(ctx, c.withdrawUseCase.Execute)
}

func (c *GoalController) move(ctx *gin.Context, execute func(ctx context.Context, input goal.MoveMoneyInput) (*goal.MoveMoneyOutput, error)) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}
	goalID, ok := pathID(ctx, "id", "goal", domainerror.ErrCodeMissingGoalFields)
	if !ok {
		return
	}

	var req dto.MoveGoalMoneyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), domainerror.ErrCodeInvalidGoalMovement)
		return
	}

	input := goal.MoveMoneyInput{
		UserID:      userID,
		GoalID:      goalID,
		Amount:      req.Amount,
		Description: req.Description,
	}

	var err error
	if input.AccountID, err = dto.ParseOptionalUUID(req.AccountID); err != nil {
		badRequest(ctx, "Invalid account ID format", domainerror.ErrCodeInvalidGoalMovement)
		return
	}
	if req.Date != nil && *req.Date != "" {
		date, err := time.Parse(dto.DateLayout, *req.Date)
		if err != nil {
			badRequest(ctx, "date must be in YYYY-MM-DD format", domainerror.ErrCodeInvalidGoalMovement)
			return
		}
		input.Date = &date
	}

	output, err := execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.GoalMovementResponse{
		Goal:        dto.ToGoalResponse(output.Goal),
		Transaction: dto.ToTransactionResponse(output.Transaction, nil),
	})
}
