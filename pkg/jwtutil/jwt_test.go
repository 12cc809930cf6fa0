package jwtutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"note-service/pkg/config"
	"note-service/pkg/jwtutil"
)

func newCodec(t *testing.T, key string) *jwtutil.JWT {
	t.Helper()
	codec, err := jwtutil.New(&config.JWTConfig{SigningKey: key, ExpirationHours: 24})
	require.NoError(t, err)
	return codec
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	codec := newCodec(t, "test-signing-key-long-enough")

	token, err := codec.Issue(42, 7, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.NotNil(t, claims)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, uint(7), claims.TenantID)
	assert.Equal(t, "admin", claims.Role)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	codec := newCodec(t, "test-signing-key-long-enough")

	// Issue a token that has already expired (negative TTL).
	token, err := codec.IssueWithTTL(1, 1, "member", -1*time.Second)
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, jwtutil.ErrTokenExpired)
}

func TestWrongSecretRejected(t *testing.T) {
	t.Parallel()

	issuer := newCodec(t, "correct-signing-key-material")
	verifier := newCodec(t, "different-signing-key-material")

	token, err := issuer.Issue(1, 1, "member")
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, jwtutil.ErrSignatureInvalid)
}

func TestMalformedTokenRejected(t *testing.T) {
	t.Parallel()

	codec := newCodec(t, "test-signing-key-long-enough")

	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		claims, err := codec.Verify(token)
		require.Error(t, err, "token %q should not verify", token)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, jwtutil.ErrTokenMalformed)
	}
}

func TestMissingSigningKeyRejected(t *testing.T) {
	t.Parallel()

	codec, err := jwtutil.New(&config.JWTConfig{SigningKey: ""})
	require.Error(t, err)
	assert.Nil(t, codec)
}
