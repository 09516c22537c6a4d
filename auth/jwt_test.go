package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-key")

func TestJWTManager_RoundTrip(t *testing.T) {
	t.Parallel()
	manager := NewJWTManager(testSecret, time.Hour)

	token, playerID, err := manager.Generate("alice", time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, playerID)

	gotID, gotName, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, playerID, gotID)
	assert.Equal(t, "alice", gotName)
}

func TestJWTManager_UniquePlayerIds(t *testing.T) {
	t.Parallel()
	manager := NewJWTManager(testSecret, time.Hour)

	_, first, err := manager.Generate("alice", time.Now())
	require.NoError(t, err)
	_, second, err := manager.Generate("alice", time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "same name, distinct identities")
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	t.Parallel()
	manager := NewJWTManager(testSecret, time.Hour)

	token, _, err := manager.Generate("alice", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, _, err = manager.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManager_CorruptedToken(t *testing.T) {
	t.Parallel()
	manager := NewJWTManager(testSecret, time.Hour)

	testCases := []struct {
		desc  string
		token string
	}{
		{desc: "garbage", token: "not.a.token"},
		{desc: "empty", token: ""},
		{
			desc: "wrong key",
			token: func() string {
				other := NewJWTManager([]byte("some-other-key"), time.Hour)
				tok, _, err := other.Generate("mallory", time.Now())
				require.NoError(t, err)
				return tok
			}(),
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			t.Parallel()
			_, _, err := manager.Verify(tC.token)
			assert.ErrorIs(t, err, ErrCorruptedToken)
		})
	}
}

func TestJWTManager_RejectsNonHMACAlgorithm(t *testing.T) {
	t.Parallel()
	manager := NewJWTManager(testSecret, time.Hour)

	// alg=none tokens must never verify, whatever their claims say.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, guestClaims{
		Name: "mallory",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "fake-id",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = manager.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSigningAlg)
}

func TestJWTManager_MissingSubject(t *testing.T) {
	t.Parallel()
	manager := NewJWTManager(testSecret, time.Hour)

	claims := guestClaims{
		Name: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, _, err = manager.Verify(token)
	assert.ErrorIs(t, err, ErrCorruptedToken)
}
