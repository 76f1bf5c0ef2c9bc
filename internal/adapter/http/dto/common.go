package dto

import (
	"time"

	"github.com/iho/compta/internal/domain"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CountResponse reports how many rows an operation touched.
type CountResponse struct {
	Updated int64 `json:"updated"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// VerifyRequest carries a token to check.
type VerifyRequest struct {
	Token string `json:"token"`
}

// SessionResponse is returned by login.
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

// SessionFromDomain converts a session.
func SessionFromDomain(s *domain.Session) *SessionResponse {
	return &SessionResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		Username:  s.User.Username,
		Role:      string(s.User.Role),
	}
}

// UserResponse describes the authenticated user.
type UserResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
