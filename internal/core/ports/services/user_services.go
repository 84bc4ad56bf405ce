package services

import (
	"context"

	"github.com/finzen-app/finzen_backend/internal/core/domain"
	"github.com/finzen-app/finzen_backend/internal/dto"
)

// UserSvcFacade exposes account management operations.
type UserSvcFacade interface {
	// Register creates a locally-registered account. Login name uniqueness is
	// enforced by lookup-before-create, not by the store.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	// ValidateCredentials checks a login name/password pair. Unknown user and
	// wrong password are indistinguishable to the caller.
	ValidateCredentials(ctx context.Context, loginName, password string) (*domain.User, error)
	// CreateFromExternal finds, links or creates the account behind a verified
	// external identity assertion.
	CreateFromExternal(ctx context.Context, identity domain.ExternalIdentity) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}
