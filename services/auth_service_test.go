package services

import (
	"testing"

	"github.com/frans1979valk/vastelijn-portal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFirstAdminOnce(t *testing.T) {
	setupTestDB(t)

	user, err := RegisterFirstAdmin("Admin@Vastelijn.EU ", "geheim123")
	require.NoError(t, err)
	assert.Equal(t, "admin@vastelijn.eu", user.Email)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NotEqual(t, "geheim123", user.PasswordHash)

	// a second registration always fails, regardless of content
	_, err = RegisterFirstAdmin("other@example.com", "anders")
	assert.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestAuthenticateNormalizesEmail(t *testing.T) {
	setupTestDB(t)

	_, err := RegisterFirstAdmin("admin@vastelijn.eu", "geheim123")
	require.NoError(t, err)

	user, err := Authenticate("  ADMIN@vastelijn.eu ", "geheim123")
	require.NoError(t, err)
	assert.Equal(t, "admin@vastelijn.eu", user.Email)

	_, err = Authenticate("admin@vastelijn.eu", "verkeerd")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Authenticate("onbekend@vastelijn.eu", "geheim123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestFindUserByID(t *testing.T) {
	setupTestDB(t)

	user, err := RegisterFirstAdmin("admin@vastelijn.eu", "geheim123")
	require.NoError(t, err)

	found, err := FindUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = FindUserByID(9999)
	assert.Error(t, err)
}
