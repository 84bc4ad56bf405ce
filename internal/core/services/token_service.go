package services

import (
	"context"
	"fmt"

	"github.com/finzen-app/finzen_backend/internal/apperrors"
	"github.com/finzen-app/finzen_backend/internal/core/domain"
	portssvc "github.com/finzen-app/finzen_backend/internal/core/ports/services"
	"github.com/finzen-app/finzen_backend/internal/platform/config"
	"github.com/finzen-app/finzen_backend/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// identityGatewayService implements the IdentityGatewaySvcFacade: it wraps the
// external identity provider and owns the application session tokens.
// There is no server-side revocation list; a leaked session token remains
// valid until natural expiry.
type identityGatewayService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewIdentityGatewayService creates a new identity gateway.
func NewIdentityGatewayService(cfg *config.Config) portssvc.IdentityGatewaySvcFacade {
	return &identityGatewayService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// Ensure identityGatewayService implements the facade
var _ portssvc.IdentityGatewaySvcFacade = (*identityGatewayService)(nil)

func (s *identityGatewayService) VerifyGoogleIDToken(ctx context.Context, rawIDToken string) (*domain.ExternalIdentity, error) {
	if rawIDToken == "" {
		return nil, apperrors.ErrInvalidCredential
	}

	payload, err := idtoken.Validate(ctx, rawIDToken, s.cfg.GoogleClientID)
	if err != nil {
		// Malformed, expired or untrusted issuer: all collapse to the same
		// credential failure for the caller.
		return nil, fmt.Errorf("google ID token validation failed: %w", apperrors.ErrInvalidCredential)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)

	return &domain.ExternalIdentity{
		SubjectID:   payload.Subject,
		Email:       email,
		DisplayName: name,
	}, nil
}

func (s *identityGatewayService) ExchangeCodeForIDToken(ctx context.Context, code string) (string, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange oauth code for token: %w", apperrors.ErrInvalidCredential)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", fmt.Errorf("ID token missing from oauth token response: %w", apperrors.ErrUpstream)
	}
	return rawIDToken, nil
}

func (s *identityGatewayService) IssueSession(identity domain.SessionIdentity) (string, error) {
	return utils.GenerateSessionJWT(
		identity.UserID,
		string(identity.Role),
		identity.DisplayName,
		s.cfg.JWTSecret,
		s.cfg.SessionExpiryDuration,
		s.cfg.JWTIssuer,
	)
}

func (s *identityGatewayService) ResolveSession(rawToken string) (*domain.SessionIdentity, error) {
	if rawToken == "" {
		return nil, apperrors.ErrInvalidSession
	}

	claims, err := utils.ParseSessionJWT(rawToken, s.cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("session token rejected: %w", apperrors.ErrInvalidSession)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("session token missing subject: %w", apperrors.ErrInvalidSession)
	}

	role := domain.UserRole(claims.Role)
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return nil, fmt.Errorf("session token carries unknown role: %w", apperrors.ErrInvalidSession)
	}

	return &domain.SessionIdentity{
		UserID:      claims.Subject,
		Role:        role,
		DisplayName: claims.DisplayName,
	}, nil
}
