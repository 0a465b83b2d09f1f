package service

import (
	"context"
	"testing"

	"gameday-api/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The server stays up when redis is unreachable and wires the auth module
// with a nil cache. Sign-in must degrade to an error response, not panic.
func TestAuthDegradesWithoutCache(t *testing.T) {
	svc := NewAuthService(nil)

	resp, appErr := svc.GetGoogleAuthURL(context.Background())
	assert.Nil(t, resp)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrExternalService, appErr.Code)

	login, appErr := svc.HandleGoogleCallback(context.Background(), "code", "state")
	assert.Nil(t, login)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrExternalService, appErr.Code)
}
