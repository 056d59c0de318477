package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	SetSecretKey("test-secret")
	defer SetSecretKey("")

	token, err := GenerateToken("ana@loja.com", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@loja.com", claims.Email)
	assert.Equal(t, "ana@loja.com", claims.Subject)
}

func TestValidateRejectsExpired(t *testing.T) {
	SetSecretKey("test-secret")
	defer SetSecretKey("")

	token, err := GenerateToken("ana@loja.com", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsOtherSecret(t *testing.T) {
	SetSecretKey("one")
	token, err := GenerateToken("ana@loja.com", time.Hour)
	require.NoError(t, err)

	SetSecretKey("two")
	defer SetSecretKey("")
	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsOtherIssuer(t *testing.T) {
	SetSecretKey("test-secret")
	defer SetSecretKey("")

	claims := &Claims{
		Email: "ana@loja.com",
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(GetSecretKey())
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
