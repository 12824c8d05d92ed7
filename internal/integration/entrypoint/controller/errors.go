// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
	"github.com/finance-tracker/wallet/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/wallet/internal/integration/entrypoint/middleware"
)

// StatusForKind maps an error kind to its HTTP status.
func StatusForKind(kind domainerror.ErrorKind) int {
	switch kind {
	case domainerror.KindValidation:
		return http.StatusBadRequest
	case domainerror.KindNotFound:
		return http.StatusNotFound
	case domainerror.KindInvalidState:
		return http.StatusConflict
	case domainerror.KindUnauthorized:
		return http.StatusUnauthorized
	case domainerror.KindStore:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders a use case error. Uncoded errors are logged and hidden.
func respondError(ctx *gin.Context, err error) {
	coded, ok := domainerror.AsCoded(err)
	if !ok {
		slog.Error("Unhandled request error",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	status := StatusForKind(coded.Kind())
	if status == http.StatusServiceUnavailable {
		slog.Error("Store failure",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
	}
	ctx.JSON(status, dto.ErrorResponse{
		Error: coded.ErrorMessage(),
		Code:  coded.ErrorCode(),
	})
}

// badRequest renders a 400 with the given code.
func badRequest[C ~string](ctx *gin.Context, message string, code C) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// authenticatedUser returns the caller's id or renders a 401.
func authenticatedUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the named path parameter as a uuid or renders a 400.
func pathID[C ~string](ctx *gin.Context, name, label string, code C) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		badRequest(ctx, "Invalid "+label+" ID format", code)
		return uuid.Nil, false
	}
	return id, true
}
