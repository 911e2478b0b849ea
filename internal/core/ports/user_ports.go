package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sharjeelfaiq/accounts-api/internal/core/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)
	// UpdatePasswordByEmail stores an already-hashed password and reports
	// whether a row was touched.
	UpdatePasswordByEmail(ctx context.Context, email, hashedPassword string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type UserService interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateByID(ctx context.Context, id uuid.UUID, update domain.UserUpdate) (*domain.User, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (string, error)
}
