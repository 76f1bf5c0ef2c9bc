package usecase

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/infrastructure/metrics"
)

// AuthUseCase authenticates the configured administrator.
type AuthUseCase struct {
	username     string
	passwordHash []byte
	tokens       TokenIssuer
	audit        auditTrail
	metrics      *metrics.Metrics
}

// NewAuthUseCase creates an AuthUseCase for a single account whose password
// is stored as a bcrypt hash.
func NewAuthUseCase(username, passwordHash string, tokens TokenIssuer, auditRepo AuditRepository, metrics *metrics.Metrics) *AuthUseCase {
	return &AuthUseCase{
		username:     username,
		passwordHash: []byte(passwordHash),
		tokens:       tokens,
		audit:        auditTrail{repo: auditRepo, metrics: metrics},
		metrics:      metrics,
	}
}

// Login checks credentials and issues a session token.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if !uc.checkCredentials(username, password) {
		uc.recordAttempt("failure")
		uc.recordLogin(ctx, username, domain.ErrInvalidCredentials)
		zerolog.Ctx(ctx).Warn().Str("username", username).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	user := &domain.User{Username: uc.username, Role: domain.RoleAdmin}

	token, expiresAt, err := uc.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	uc.recordAttempt("success")
	uc.recordLogin(ctx, username, nil)

	return &domain.Session{Token: token, User: *user, ExpiresAt: expiresAt}, nil
}

// Verify validates a token and returns its user.
func (uc *AuthUseCase) Verify(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	return uc.tokens.Verify(token)
}

func (uc *AuthUseCase) checkCredentials(username, password string) bool {
	if len(uc.passwordHash) == 0 || uc.username == "" {
		return false
	}

	nameOK := subtle.ConstantTimeCompare([]byte(username), []byte(uc.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(uc.passwordHash, []byte(password)) == nil

	return nameOK && passOK
}

// recordLogin audits a login attempt under the username that was presented.
func (uc *AuthUseCase) recordLogin(ctx context.Context, username string, loginErr error) {
	log := domain.NewAuditLog(ctx, domain.AuditActionUserLogin, domain.AuditResourceUser, username, nil, nil, time.Now().UTC())
	log.UserID = username
	if loginErr != nil {
		log.Status = domain.AuditStatusFailure
		log.ErrorMessage = loginErr.Error()
	}

	uc.audit.record(ctx, log)
}

func (uc *AuthUseCase) recordAttempt(result string) {
	if uc.metrics != nil {
		uc.metrics.AuthAttempts.WithLabelValues(result).Inc()
	}
}
