package auth

import "errors"

// ErrEmailExists indicates a duplicate email address.
var ErrEmailExists = errors.New("email already exists")

// Error codes carried by apperrors.AppError values returned from this package.
const (
	CodeNoSession          = "no_session"
	CodeTokenExpired       = "token_expired"
	CodeTokenInvalid       = "token_invalid"
	CodeCSRFInvalid        = "csrf_invalid"
	CodeInvalidCredentials = "invalid_credentials"
	CodeDuplicateIdentity  = "duplicate_identity"
	CodeWeakPassword       = "weak_password"
	CodeInvalidInput       = "invalid_input"
	CodeTooManyAttempts    = "too_many_attempts"
	CodeAuthError          = "auth_error"
)

const (
	msgNoSession          = "No JWT exist: may not set yet or deleted"
	msgTokenExpired       = "The JWT has expired"
	msgTokenInvalid       = "JWT is not valid"
	msgInvalidCredentials = "Invalid email or password"
	msgDuplicateIdentity  = "Email is already taken"
	msgWeakPassword       = "Password too short"
	msgPasswordTooLong    = "Password too long: at most 72 bytes"
	msgTooManyAttempts    = "Too many failed login attempts, try again later"
)
