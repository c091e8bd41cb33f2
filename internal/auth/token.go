package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fittrack/fittrack-be/internal/apperr"
	"github.com/fittrack/fittrack-be/internal/models"
)

// Claims defines the JWT claims structure carried by issued tokens.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier is the part of the codec the request guard needs.
type TokenVerifier interface {
	Verify(tokenStr string) (*Claims, error)
}

// TokenCodec signs and verifies stateless bearer tokens. It is a pure
// function of its secret and the clock; validity never depends on a
// server-side lookup, which is also why revocation is unsupported.
type TokenCodec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenCodec creates a codec keyed by the given secret.
func NewTokenCodec(secret string, accessTTL, refreshTTL time.Duration) *TokenCodec {
	return &TokenCodec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// IssueAccess creates a short-lived access token carrying the user's
// identity claims.
func (c *TokenCodec) IssueAccess(user models.User) (string, error) {
	return c.issue(&Claims{UserID: user.ID, Email: user.Email}, c.accessTTL)
}

// IssueRefresh creates a longer-lived refresh token carrying only the
// subject identifier.
func (c *TokenCodec) IssueRefresh(user models.User) (string, error) {
	return c.issue(&Claims{UserID: user.ID}, c.refreshTTL)
}

func (c *TokenCodec) issue(claims *Claims, ttl time.Duration) (string, error) {
	now := c.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", apperr.Internal("failed to sign token", err)
	}
	return signed, nil
}

// Verify parses and validates a token string, returning its claims.
// Expired tokens and tokens with a bad signature or structure fail
// with an authentication error.
func (c *TokenCodec) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Authentication("token expired")
		}
		return nil, apperr.Authentication("invalid token")
	}
	if !token.Valid {
		return nil, apperr.Authentication("invalid token")
	}
	return claims, nil
}
