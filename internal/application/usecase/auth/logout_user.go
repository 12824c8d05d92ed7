package auth

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/wallet/internal/application/adapter"
	"github.com/finance-tracker/wallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/wallet/internal/domain/error"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase revokes a refresh token and tells the user's open views the session ended.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
	publisher    adapter.EventPublisher
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService, publisher adapter.EventPublisher) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
		publisher:    publisher,
	}
}

// Execute revokes the refresh token. A token that no longer validates is already logged out.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	out := &LogoutUserOutput{Message: "Successfully logged out"}

	claims, err := uc.tokenService.ValidateRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return out, nil
	}

	if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
		return nil, domainerror.NewStoreError("revoke refresh token", err)
	}

	if uc.publisher != nil {
		event := entity.NewChangeEvent(claims.UserID, entity.ChangeSessionEnded, claims.UserID)
		if err := uc.publisher.Publish(ctx, event); err != nil {
			slog.Warn("Failed to publish session end", "user_id", claims.UserID, "error", err)
		}
	}

	slog.Info("User logged out", "user_id", claims.UserID)
	return out, nil
}
