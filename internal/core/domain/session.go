package domain

// SessionIdentity is the identity/role triple encoded in a session token and
// attached to the request context once resolved. Role checks consult only
// this resolved payload, never client-supplied headers or body fields.
type SessionIdentity struct {
	UserID      string   `json:"userID"`
	Role        UserRole `json:"role"`
	DisplayName string   `json:"displayName"`
}

// ExternalIdentity is the verified assertion returned by the identity provider.
type ExternalIdentity struct {
	SubjectID   string `json:"subjectID"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}
