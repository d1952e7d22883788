package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kicksup/kicksup/config"
)

func TestGenerateAndValidate(t *testing.T) {
	id := uuid.New()
	tok, err := GenerateToken(id, "admin", "Administrator")
	require.NoError(t, err)

	claims, err := ValidateToken(tok)
	require.NoError(t, err)

	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "Administrator", claims.Role)
	assert.Equal(t, config.JWTIssuer(), claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(config.JWTExpiration()), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateRejectsTampered(t *testing.T) {
	tok, err := GenerateToken(uuid.New(), "cliente", "Client")
	require.NoError(t, err)

	_, err = ValidateToken(tok + "x")
	assert.Error(t, err)
}

func sign(t *testing.T, claims Claims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func baseClaims() Claims {
	now := time.Now()
	return Claims{
		Username: "x",
		Role:     "Client",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    config.JWTIssuer(),
			Audience:  jwt.ClaimStrings{config.JWTAudience()},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestValidateChecksRegisteredClaims(t *testing.T) {
	key := config.JWTSecret()

	expired := baseClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	_, err := ValidateToken(sign(t, expired, key))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	wrongIss := baseClaims()
	wrongIss.Issuer = "someone-else"
	_, err = ValidateToken(sign(t, wrongIss, key))
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	wrongAud := baseClaims()
	wrongAud.Audience = jwt.ClaimStrings{"other"}
	_, err = ValidateToken(sign(t, wrongAud, key))
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidAudience)

	_, err = ValidateToken(sign(t, baseClaims(), "another-secret"))
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	badSub := baseClaims()
	badSub.Subject = "not-a-uuid"
	_, err = ValidateToken(sign(t, badSub, key))
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidClaims)
}

func TestValidateRejectsOtherAlgorithms(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, baseClaims()).SignedString([]byte(config.JWTSecret()))
	require.NoError(t, err)

	_, err = ValidateToken(tok)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Admin123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Admin123!", hash)
	assert.True(t, CheckPassword(hash, "Admin123!"))
	assert.False(t, CheckPassword(hash, "admin123!"))
}
