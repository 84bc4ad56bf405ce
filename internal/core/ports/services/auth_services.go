package services

import (
	"context"

	"github.com/finzen-app/finzen_backend/internal/core/domain"
)

// IdentityGatewaySvcFacade translates external identity assertions into
// application sessions and validates them on each request.
type IdentityGatewaySvcFacade interface {
	// VerifyGoogleIDToken validates a raw Google ID token (signature, expiry,
	// audience) and returns the asserted identity. Fails with
	// apperrors.ErrInvalidCredential on any verification failure.
	VerifyGoogleIDToken(ctx context.Context, rawIDToken string) (*domain.ExternalIdentity, error)
	// ExchangeCodeForIDToken runs the OAuth authorization-code exchange and
	// returns the embedded ID token for the same verification path.
	ExchangeCodeForIDToken(ctx context.Context, code string) (string, error)
	// IssueSession produces an opaque bearer credential encoding the identity
	// triple with the configured validity window. There is no refresh
	// mechanism; expiry forces re-login.
	IssueSession(identity domain.SessionIdentity) (string, error)
	// ResolveSession decodes and validates a session token. Fails with
	// apperrors.ErrInvalidSession when absent, malformed or expired; it never
	// lets a parsing panic past this boundary.
	ResolveSession(rawToken string) (*domain.SessionIdentity, error)
}
