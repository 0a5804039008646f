package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/go-storefront/internal/domain"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("secret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-pass", hash)

	assert.NoError(t, hasher.Compare(hash, "secret-pass"))
	assert.Error(t, hasher.Compare(hash, "wrong-pass"))
}

func TestJWTManagerGenerateValidate(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	user := domain.NewUser("u1", "shopper1", "hash", 0)

	token, err := manager.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "shopper1", claims.Username)
}

func TestJWTManagerRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("another-secret", time.Hour)

	token, err := issuer.Generate(domain.NewUser("u1", "shopper1", "hash", 0))
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestJWTManagerRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate(domain.NewUser("u1", "shopper1", "hash", 0))
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.Error(t, err)
}

func TestJWTManagerRejectsGarbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	_, err := manager.Validate("not-a-token")
	assert.Error(t, err)
}
