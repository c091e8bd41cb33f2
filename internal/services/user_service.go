package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fittrack/fittrack-be/internal/apperr"
	"github.com/fittrack/fittrack-be/internal/models"
	"github.com/fittrack/fittrack-be/internal/validate"
)

// Hashing cost tuned so a single hash lands in the tens-of-milliseconds
// range on commodity hardware.
const passwordHashCost = 12

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, name, email, password string) (models.User, error)
	UpdateUser(ctx context.Context, id, name, email string) (models.User, error)
	UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) error
	VerifyPassword(password, hash string) bool
}

// UserService owns user records and their credentials. Password
// hashes are produced only here; plaintext passwords never leave this
// package.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// HashPassword applies a salted adaptive one-way hash to the plaintext.
func (s *UserService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", apperr.Internal("failed to hash password", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored
// hash. A mismatch is an ordinary false, never an error.
func (s *UserService) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GetByID retrieves a user by ID. Absence is a valid result, reported
// as (nil, nil).
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE id = ?", id)
}

// GetByEmail retrieves a user by normalized email, including the
// password hash. Absence is reported as (nil, nil).
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = ?",
		validate.NormalizeEmail(email))
}

func (s *UserService) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx, query, arg)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Internal("failed to look up user", err)
	}
	return &user, nil
}

// CreateUser validates the input, enforces email uniqueness and stores
// a new user with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, name, email, password string) (models.User, error) {
	if err := validateNewUser(name, email, password); err != nil {
		return models.User{}, err
	}

	email = validate.NormalizeEmail(email)

	existing, err := s.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, apperr.Validation("user with this email already exists")
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users(id, name, email, password_hash, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		// Two concurrent registrations with the same address race past
		// the lookup above; the unique index settles it.
		if isUniqueViolation(err) {
			return models.User{}, apperr.Validation("user with this email already exists")
		}
		return models.User{}, apperr.Internal("failed to create user", err)
	}

	return user, nil
}

// UpdateUser updates a user's profile information.
func (s *UserService) UpdateUser(ctx context.Context, id, name, email string) (models.User, error) {
	var problems []string
	if !validate.Required(name) {
		problems = append(problems, "name is required")
	}
	if !validate.Email(email) {
		problems = append(problems, "email is invalid")
	}
	if len(problems) > 0 {
		return models.User{}, apperr.Validation(strings.Join(problems, "; "))
	}

	email = validate.NormalizeEmail(email)

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET name = ?, email = ?, updated_at = ? WHERE id = ?",
		strings.TrimSpace(name), email, time.Now().UTC(), id)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, apperr.Validation("user with this email already exists")
		}
		return models.User{}, apperr.Internal("failed to update user", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return models.User{}, apperr.NotFound("user not found")
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, apperr.NotFound("user not found")
	}
	return *user, nil
}

// UpdatePassword verifies the current password, then hashes and stores
// a new one.
func (s *UserService) UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user not found")
	}

	if !s.VerifyPassword(currentPassword, user.PasswordHash) {
		return apperr.Authentication("current password is incorrect")
	}

	if ok, reason := validate.Password(newPassword); !ok {
		return apperr.Validation(reason)
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, "UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?",
		hash, time.Now().UTC(), id)
	if err != nil {
		return apperr.Internal("failed to update password", err)
	}
	return nil
}

func validateNewUser(name, email, password string) error {
	var problems []string
	if !validate.Required(name) {
		problems = append(problems, "name is required")
	}
	if !validate.Email(email) {
		problems = append(problems, "email is invalid")
	}
	if ok, reason := validate.Password(password); !ok {
		problems = append(problems, reason)
	}
	if len(problems) > 0 {
		return apperr.Validation(strings.Join(problems, "; "))
	}
	return nil
}

// isUniqueViolation detects the SQLite unique-constraint error without
// depending on driver-specific error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
