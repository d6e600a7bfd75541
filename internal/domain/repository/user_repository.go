package repository

import (
	"context"

	"github.com/smarthotel/user-service/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Lookups return domain.ErrNotFound when no row matches; Create returns a
// domain.ConflictError when a uniqueness constraint is violated.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id int64) error
}
