package handler

import (
	"context"
	"net/http"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
)

// AuthService defines the behavior needed by AuthHandler.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Verify(ctx context.Context, token string) (*domain.User, error)
}

// AuthHandler issues and checks access tokens.
type AuthHandler struct {
	authUC AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authUC AuthService) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Login exchanges credentials for a signed token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.authUC.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, r, err, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionFromDomain(session))
}

// Verify returns the user a token was issued to.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.authUC.Verify(r.Context(), req.Token)
	if err != nil {
		writeDomainError(w, r, err, "invalid token")
		return
	}

	writeJSON(w, http.StatusOK, dto.UserResponse{Username: user.Username, Role: string(user.Role)})
}
