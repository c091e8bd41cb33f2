package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack-be/internal/apperr"
)

func TestHashAndVerifyPassword(t *testing.T) {
	s := NewUserService(newTestDB(t))

	hash, err := s.HashPassword("Abcdef12")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Abcdef12", hash)

	assert.True(t, s.VerifyPassword("Abcdef12", hash))
	assert.False(t, s.VerifyPassword("Abcdef13", hash))
	assert.False(t, s.VerifyPassword("", hash))
}

func TestCreateUser(t *testing.T) {
	s := NewUserService(newTestDB(t))
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "Jo", "Jo@Example.com", "Abcdef12")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Jo", user.Name)
	assert.Equal(t, "jo@example.com", user.Email, "email is stored normalized")
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "Abcdef12", user.PasswordHash)
}

func TestCreateUserValidation(t *testing.T) {
	s := NewUserService(newTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantMsg  string
	}{
		{"empty name", "", "jo@example.com", "Abcdef12", "name is required"},
		{"bad email", "Jo", "not-an-email", "Abcdef12", "email is invalid"},
		{"short password", "Jo", "jo@example.com", "Ab1", "at least 8 characters"},
		{"weak password", "Jo", "jo@example.com", "abcdefgh", "uppercase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateUser(ctx, tt.userName, tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCreateUserJoinsAllViolations(t *testing.T) {
	s := NewUserService(newTestDB(t))

	_, err := s.CreateUser(context.Background(), "", "bad", "weak")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "email is invalid")
	assert.Contains(t, err.Error(), "password")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := NewUserService(newTestDB(t))
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "Jo", "jo@example.com", "Abcdef12")
	require.NoError(t, err)

	// A different password makes no difference; the email is taken.
	_, err = s.CreateUser(ctx, "Josephine", "JO@EXAMPLE.COM", "Ghijkl34")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Contains(t, err.Error(), "already exists")
}

func TestGetByEmailAbsenceIsNotAnError(t *testing.T) {
	s := NewUserService(newTestDB(t))

	user, err := s.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestGetByEmailIsCaseInsensitive(t *testing.T) {
	s := NewUserService(newTestDB(t))
	ctx := context.Background()

	created, err := s.CreateUser(ctx, "Jo", "jo@example.com", "Abcdef12")
	require.NoError(t, err)

	found, err := s.GetByEmail(ctx, "JO@Example.Com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
}

func TestGetByID(t *testing.T) {
	s := NewUserService(newTestDB(t))
	ctx := context.Background()

	created, err := s.CreateUser(ctx, "Jo", "jo@example.com", "Abcdef12")
	require.NoError(t, err)

	found, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "jo@example.com", found.Email)

	missing, err := s.GetByID(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdatePassword(t *testing.T) {
	s := NewUserService(newTestDB(t))
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "Jo", "jo@example.com", "Abcdef12")
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := s.UpdatePassword(ctx, user.ID, "WrongPass1", "Newpass12")
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindAuthentication))
	})

	t.Run("weak new password", func(t *testing.T) {
		err := s.UpdatePassword(ctx, user.ID, "Abcdef12", "weak")
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("success rotates the hash", func(t *testing.T) {
		require.NoError(t, s.UpdatePassword(ctx, user.ID, "Abcdef12", "Newpass12"))

		updated, err := s.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, s.VerifyPassword("Newpass12", updated.PasswordHash))
		assert.False(t, s.VerifyPassword("Abcdef12", updated.PasswordHash))
	})

	t.Run("unknown user", func(t *testing.T) {
		err := s.UpdatePassword(ctx, "no-such-id", "Abcdef12", "Newpass12")
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestUpdateUser(t *testing.T) {
	s := NewUserService(newTestDB(t))
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "Jo", "jo@example.com", "Abcdef12")
	require.NoError(t, err)

	updated, err := s.UpdateUser(ctx, user.ID, "Josephine", "Josephine@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "Josephine", updated.Name)
	assert.Equal(t, "josephine@example.com", updated.Email)

	_, err = s.UpdateUser(ctx, user.ID, "", "bad-email")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = s.UpdateUser(ctx, "no-such-id", "Jo", "jo2@example.com")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
