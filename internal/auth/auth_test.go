package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func TestIssueAndParse(t *testing.T) {
	issuer := New([]byte(testSecret))

	token, err := issuer.Issue("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := New([]byte(testSecret))

	token, err := issuer.Issue("user-42")
	require.NoError(t, err)

	other := New([]byte("a-different-secret"))
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	issuer := New([]byte(testSecret))

	_, err := issuer.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiresAfterTTL(t *testing.T) {
	issuedAt := time.Now().Add(-TokenTTL - time.Minute)
	issuer := New(
		[]byte(testSecret),
		WithClock(func() time.Time { return issuedAt }),
	)

	token, err := issuer.Issue("user-42")
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenValidJustBeforeExpiry(t *testing.T) {
	issuedAt := time.Now().Add(-TokenTTL + time.Minute)
	issuer := New(
		[]byte(testSecret),
		WithClock(func() time.Time { return issuedAt }),
	)

	token, err := issuer.Issue("user-42")
	require.NoError(t, err)

	userID, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}
