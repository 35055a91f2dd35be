package auth

import "time"

// Config drives authentication behavior.
type Config struct {
	Secret            string
	TokenTTL          time.Duration
	CookieName        string
	BcryptCost        int
	HashConcurrency   int
	MinPasswordLength int
	Login             LoginThrottleConfig
}

// LoginThrottleConfig bounds failed login attempts per client.
type LoginThrottleConfig struct {
	MaxAttempts int
	Window      time.Duration
}

// Credential represents a persisted account. Immutable once created.
type Credential struct {
	ID           string    `json:"id"`
	Identity     string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SignupRequest captures the registration payload.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest captures login details. ClientIP is filled by the transport.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	ClientIP string `json:"-"`
}

// UserInfo trims sensitive fields.
type UserInfo struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email"`
}
