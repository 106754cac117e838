package utils

import (
	"testing"

	"devtracker/backend/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}
	userID := uuid.New()

	token, err := GenerateJWTToken(userID, cfg)
	require.NoError(t, err)

	got, err := ParseJWTToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	got, err = ParseJWTToken("Bearer "+token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestParseJWTTokenRejects(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}
	other := &config.Config{JWTSecret: "othersecret"}

	token, err := GenerateJWTToken(uuid.New(), other)
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"wrong secret": token,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJWTToken(raw, cfg)
			assert.Error(t, err)
		})
	}
}
