package utils

import (
	"strings"
	"testing"

	"gameday-api/core/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateURLHash(t *testing.T) {
	hash := GenerateURLHash("Pickup Soccer @ Golden Gate!")
	assert.True(t, strings.HasPrefix(hash, "pickup-soccer-at-golden-gate-"))
	assert.NotContains(t, hash, " ")
	assert.NotContains(t, hash, "!")

	// Titles that slug away to nothing still produce a usable hash.
	assert.Len(t, GenerateURLHash("!!!"), constants.URLHashLength)

	// Two events with the same title get distinct hashes.
	assert.NotEqual(t, GenerateURLHash("Pickup Soccer"), GenerateURLHash("Pickup Soccer"))
}

func TestGenerateURLHashTruncatesLongTitles(t *testing.T) {
	hash := GenerateURLHash(strings.Repeat("soccer ", 30))
	assert.LessOrEqual(t, len(hash), 40+1+constants.URLHashLength)
}

func TestGenerateResponseToken(t *testing.T) {
	token := GenerateResponseToken()
	assert.Len(t, token, constants.ResponseTokenLength)
	assert.NotEqual(t, token, GenerateResponseToken())
}

func TestHashAndCompareToken(t *testing.T) {
	token := GenerateResponseToken()
	hash, err := HashToken(token)
	require.NoError(t, err)

	assert.NotEqual(t, token, hash)
	assert.True(t, CompareToken(hash, token))
	assert.False(t, CompareToken(hash, "wrong-token"))
	assert.False(t, CompareToken(hash, ""))
}
