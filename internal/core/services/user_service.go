package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sharjeelfaiq/accounts-api/internal/core/domain"
	"github.com/sharjeelfaiq/accounts-api/internal/core/ports"
)

// UserService handles profile reads, updates and deletion, including cleanup
// of stale profile-picture assets.
type UserService struct {
	repo  ports.UserRepository
	files ports.FileStore
	log   *slog.Logger
}

func NewUserService(repo ports.UserRepository, files ports.FileStore, log *slog.Logger) *UserService {
	return &UserService{
		repo:  repo,
		files: files,
		log:   log,
	}
}

// GetAll returns every user. An empty collection is reported as absence.
func (s *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		return nil, domain.ErrUsersNotFound
	}
	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) UpdateByID(ctx context.Context, id uuid.UUID, update domain.UserUpdate) (*domain.User, error) {
	existing, err := s.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if existing == nil {
		return nil, domain.ErrUserNotFound
	}

	if update.ProfilePicture != nil && existing.ProfilePicture != "" {
		// Best effort: a stale picture that survives is an orphaned object,
		// not a failed update.
		if err := s.files.Delete(ctx, existing.ProfilePicture); err != nil {
			s.log.Warn("failed to delete stale profile picture",
				"user_id", id, "key", existing.ProfilePicture, "error", err)
		}
	}

	updated, err := s.repo.Update(ctx, id.String(), update)
	if err != nil || updated == nil {
		return nil, domain.ErrUpdateFailed
	}
	return updated, nil
}

func (s *UserService) DeleteByID(ctx context.Context, id uuid.UUID) (string, error) {
	removed, err := s.repo.Delete(ctx, id.String())
	if err != nil {
		return "", fmt.Errorf("failed to delete user: %w", err)
	}
	if !removed {
		return "", domain.ErrUserNotFound
	}
	return "User deleted successfully", nil
}
