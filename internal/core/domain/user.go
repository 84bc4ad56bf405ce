package domain

import "time"

// UserRole determines which route groups a session may reach.
// Admin is a superset of user for user-level routes.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// AuthSource records the provenance of an account.
type AuthSource string

const (
	// AuthSourceLocal is a locally-registered account with a password hash.
	AuthSourceLocal AuthSource = "local"
	// AuthSourceExternal is an account created from an identity-provider login.
	AuthSourceExternal AuthSource = "external"
	// AuthSourceExternalLinked is a local account later linked to an external identity.
	AuthSourceExternalLinked AuthSource = "external-linked"
)

// User represents an account of the application. UserID is store-generated and
// distinct from the identity provider's subject id (ExternalID).
type User struct {
	UserID       string     `json:"userID"` // Primary Key (UUID)
	Name         string     `json:"name"`   // Display name
	LoginName    string     `json:"loginName"`
	PasswordHash string     `json:"-"` // Empty for provider-only accounts
	Role         UserRole   `json:"role"`
	ExternalID   string     `json:"externalID,omitempty"` // Provider subject, set once linked
	AuthSource   AuthSource `json:"authSource"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
