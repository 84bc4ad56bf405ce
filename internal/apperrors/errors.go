package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidCredential indicates that a login name/password pair or an external
// identity assertion could not be verified.
var ErrInvalidCredential = errors.New("invalid credential")

// ErrInvalidSession indicates that a session token is absent, malformed or expired.
var ErrInvalidSession = errors.New("invalid session")

// ErrForbidden indicates that the caller's role does not permit the operation.
var ErrForbidden = errors.New("access denied")

// ErrUpstream indicates that a call to the store or identity provider failed.
// Detail is logged server-side; callers only surface a generic retry-later message.
var ErrUpstream = errors.New("upstream failure")
