package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/fittrack/fittrack-be/internal/apperr"
	"github.com/fittrack/fittrack-be/internal/auth"
	"github.com/fittrack/fittrack-be/internal/models"
	"github.com/fittrack/fittrack-be/internal/validate"
)

// TokenPair is the result of a successful registration or login.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// AuthServiceProvider defines the interface for authentication services.
type AuthServiceProvider interface {
	Register(ctx context.Context, name, email, password string) (TokenPair, error)
	Login(ctx context.Context, email, password string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// TokenIssuer is the part of the token codec the auth service needs.
type TokenIssuer interface {
	IssueAccess(user models.User) (string, error)
	IssueRefresh(user models.User) (string, error)
	Verify(tokenStr string) (*auth.Claims, error)
}

// AuthService orchestrates registration, login and token refresh over
// the credential store and the token codec.
type AuthService struct {
	users  UserServiceProvider
	codec  TokenIssuer
	events EventServiceProvider
}

// NewAuthService creates a new AuthService. events may be nil when no
// activity log is wanted.
func NewAuthService(users UserServiceProvider, codec TokenIssuer, events EventServiceProvider) *AuthService {
	return &AuthService{users: users, codec: codec, events: events}
}

// Register creates a new account and returns freshly issued tokens.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (TokenPair, error) {
	user, err := s.users.CreateUser(ctx, name, email, password)
	if err != nil {
		return TokenPair{}, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return TokenPair{}, err
	}

	s.recordEvent(ctx, "user_registered", "New account registered", user.ID)
	return pair, nil
}

// Login verifies the credentials and returns freshly issued tokens.
// A missing account and a wrong password produce the same message, so
// responses do not reveal whether an email is registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	var problems []string
	if !validate.Required(email) {
		problems = append(problems, "email is required")
	}
	if !validate.Required(password) {
		problems = append(problems, "password is required")
	}
	if len(problems) > 0 {
		return TokenPair{}, apperr.Validation(strings.Join(problems, "; "))
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return TokenPair{}, err
	}
	if user == nil || !s.users.VerifyPassword(password, user.PasswordHash) {
		return TokenPair{}, apperr.Authentication("invalid email or password")
	}

	pair, err := s.issuePair(*user)
	if err != nil {
		return TokenPair{}, err
	}

	s.recordEvent(ctx, "user_login", "Signed in", user.ID)
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// presented refresh token stays valid until it expires; it is neither
// rotated nor invalidated, matching the original service's behavior.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.codec.Verify(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperr.Authentication("invalid refresh token")
	}

	return s.codec.IssueAccess(*user)
}

func (s *AuthService) issuePair(user models.User) (TokenPair, error) {
	access, err := s.codec.IssueAccess(user)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.codec.IssueRefresh(user)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Token: access, RefreshToken: refresh}, nil
}

func (s *AuthService) recordEvent(ctx context.Context, eventType, message, userID string) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(ctx, eventType, "info", message, &userID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record auth event")
	}
}
