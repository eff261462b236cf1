package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWTToken(t *testing.T) {
	token, err := GenerateJWTToken("rahasia", Claims{
		IDKaryawan: "12",
		Role:       "Suster",
		IDRole:     3,
		Username:   "sari",
		Nama:       "Sari",
	}, time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := ValidateJWTToken("rahasia", token)
	require.NoError(t, err)
	assert.Equal(t, "12", claims.IDKaryawan)
	assert.Equal(t, "Suster", claims.Role)
	assert.Equal(t, 3, claims.IDRole)
	assert.Equal(t, "sari", claims.Username)
	assert.Equal(t, "12", claims.Subject)
}

func TestValidateJWTToken_Errors(t *testing.T) {
	token, err := GenerateJWTToken("rahasia", Claims{IDKaryawan: "1"}, time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = ValidateJWTToken("salah", token)
	assert.Error(t, err)

	expired, err := GenerateJWTToken("rahasia", Claims{IDKaryawan: "1"}, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = ValidateJWTToken("rahasia", expired)
	assert.Error(t, err)

	_, err = ValidateJWTToken("", token)
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = GenerateJWTToken("", Claims{}, time.Now())
	assert.ErrorIs(t, err, ErrMissingSecret)
}
