package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/wallet/internal/domain/entity"
)

// UserRepository stores wallet owners. Emails are stored lower-cased.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error

	// FindByID fails with ErrUserNotFound. The reminder worker uses it to address bill owners.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail fails with ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
