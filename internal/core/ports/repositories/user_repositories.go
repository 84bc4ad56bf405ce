package repositories

import (
	"context"

	"github.com/finzen-app/finzen_backend/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	// FindUserByLoginName is the authentication lookup key. Returns
	// apperrors.ErrNotFound when no user carries the login name.
	FindUserByLoginName(ctx context.Context, loginName string) (*domain.User, error)
	// FindUserByExternalID looks a user up by the identity-provider subject id.
	FindUserByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	FindUsers(ctx context.Context) ([]domain.User, error)
	// LinkExternalIdentity attaches a provider subject to an existing local
	// account and flips its auth source to external-linked.
	LinkExternalIdentity(ctx context.Context, userID string, externalID string) error
}
