package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T) *User {
	u, err := NewUser("ada@example.com", "s3cretpass", "Ada Obi")
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	u := newTestUser(t)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, UserStatusActive, u.Status)
	assert.NotEqual(t, "s3cretpass", u.PasswordHash)
	assert.Len(t, u.GetDomainEvents(), 1)
}

func TestNewUser_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		fullName string
	}{
		{"invalid email", "not-an-email", "s3cretpass", "Ada Obi"},
		{"empty email", "", "s3cretpass", "Ada Obi"},
		{"short password", "ada@example.com", "short", "Ada Obi"},
		{"empty name", "ada@example.com", "s3cretpass", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.email, tt.password, tt.fullName)
			assert.Error(t, err)
		})
	}
}

func TestUser_Authenticate(t *testing.T) {
	u := newTestUser(t)

	require.NoError(t, u.Authenticate("s3cretpass"))
	assert.NotNil(t, u.LastLoginAt)
	assert.Zero(t, u.FailedAttempts)

	assert.Error(t, u.Authenticate("wrong"))
	assert.Equal(t, 1, u.FailedAttempts)
}

func TestUser_Authenticate_LocksAfterRepeatedFailures(t *testing.T) {
	u := newTestUser(t)

	for i := 0; i < maxFailedAttempts; i++ {
		assert.Error(t, u.Authenticate("wrong"))
	}
	assert.Equal(t, UserStatusLocked, u.Status)
	assert.True(t, u.IsLocked())

	// Even the correct password is rejected while locked
	assert.Error(t, u.Authenticate("s3cretpass"))

	// Lock expires after the cool-down window
	past := time.Now().Add(-time.Minute)
	u.LockedUntil = &past
	assert.False(t, u.IsLocked())
	assert.NoError(t, u.Authenticate("s3cretpass"))
	assert.Equal(t, UserStatusActive, u.Status)
}

func TestUser_ChangePassword(t *testing.T) {
	u := newTestUser(t)

	assert.Error(t, u.ChangePassword("wrong", "newpassword"))
	assert.Error(t, u.ChangePassword("s3cretpass", "short"))

	require.NoError(t, u.ChangePassword("s3cretpass", "newpassword"))
	assert.NoError(t, u.Authenticate("newpassword"))
}

func TestUser_Deactivate(t *testing.T) {
	u := newTestUser(t)
	u.Deactivate()
	assert.Equal(t, UserStatusDeactivated, u.Status)
	assert.Error(t, u.Authenticate("s3cretpass"))
}
