package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finzen-app/finzen_backend/internal/apperrors"
	"github.com/finzen-app/finzen_backend/internal/core/domain"
	portsrepo "github.com/finzen-app/finzen_backend/internal/core/ports/repositories"
	portssvc "github.com/finzen-app/finzen_backend/internal/core/ports/services"
	"github.com/finzen-app/finzen_backend/internal/dto"
	"github.com/finzen-app/finzen_backend/internal/utils"
	"github.com/google/uuid"
)

const minPasswordLength = 6

// userService implements the UserSvcFacade.
type userService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// Ensure userService implements the facade
var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	if req.Name == "" || req.LoginName == "" {
		return nil, fmt.Errorf("name and login name are required: %w", apperrors.ErrValidation)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password is required: %w", apperrors.ErrValidation)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, apperrors.ErrValidation)
	}

	// Login name uniqueness is enforced by lookup-before-create, not by the store.
	existing, err := s.userRepo.FindUserByLoginName(ctx, req.LoginName)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check login name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("login name already taken: %w", apperrors.ErrDuplicate)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		LoginName:    req.LoginName,
		PasswordHash: hash,
		Role:         domain.RoleUser, // Role is never self-escalated
		AuthSource:   domain.AuthSourceLocal,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *userService) ValidateCredentials(ctx context.Context, loginName, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByLoginName(ctx, loginName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Unknown user and wrong password look the same to the caller.
			return nil, apperrors.ErrInvalidCredential
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredential
	}
	return user, nil
}

func (s *userService) CreateFromExternal(ctx context.Context, identity domain.ExternalIdentity) (*domain.User, error) {
	if identity.SubjectID == "" || identity.Email == "" {
		return nil, fmt.Errorf("external identity missing subject or email: %w", apperrors.ErrInvalidCredential)
	}

	user, err := s.userRepo.FindUserByExternalID(ctx, identity.SubjectID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up external identity: %w", err)
	}

	// A local account with the provider's email gets linked instead of duplicated.
	user, err = s.userRepo.FindUserByLoginName(ctx, identity.Email)
	if err == nil {
		if linkErr := s.userRepo.LinkExternalIdentity(ctx, user.UserID, identity.SubjectID); linkErr != nil {
			return nil, fmt.Errorf("failed to link external identity: %w", linkErr)
		}
		user.ExternalID = identity.SubjectID
		user.AuthSource = domain.AuthSourceExternalLinked
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up login name: %w", err)
	}

	name := identity.DisplayName
	if name == "" {
		name = strings.SplitN(identity.Email, "@", 2)[0]
	}

	newUser := domain.User{
		UserID:     uuid.NewString(),
		Name:       name,
		LoginName:  identity.Email,
		Role:       domain.RoleUser,
		ExternalID: identity.SubjectID,
		AuthSource: domain.AuthSourceExternal,
		CreatedAt:  time.Now(),
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create external user: %w", err)
	}
	return &newUser, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
