package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_IssueAndVerify(t *testing.T) {
	codec := New("test-secret", SaltPasswordReset)

	tok, err := codec.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	id, err := codec.Verify(tok, DefaultMaxAge)
	assert.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestCodec_Verify_Expired(t *testing.T) {
	codec := New("test-secret", SaltPasswordReset)

	issued := time.Now().Add(-31 * time.Minute)
	codec.now = func() time.Time { return issued }

	tok, err := codec.Issue(42)
	require.NoError(t, err)

	codec.now = time.Now

	_, err = codec.Verify(tok, DefaultMaxAge)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodec_Verify_WithinAge(t *testing.T) {
	codec := New("test-secret", SaltPasswordReset)

	issued := time.Now().Add(-29 * time.Minute)
	codec.now = func() time.Time { return issued }

	tok, err := codec.Issue(42)
	require.NoError(t, err)

	codec.now = time.Now

	id, err := codec.Verify(tok, DefaultMaxAge)
	assert.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	issuer := New("test-secret", SaltPasswordReset)
	verifier := New("other-secret", SaltPasswordReset)

	tok, err := issuer.Issue(42)
	require.NoError(t, err)

	_, err = verifier.Verify(tok, DefaultMaxAge)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodec_Verify_WrongPurpose(t *testing.T) {
	// Same server secret, different purpose salt. A token minted for one
	// purpose must not redeem for another.
	issuer := New("test-secret", "email-confirm-salt")
	verifier := New("test-secret", SaltPasswordReset)

	tok, err := issuer.Issue(42)
	require.NoError(t, err)

	_, err = verifier.Verify(tok, DefaultMaxAge)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodec_Verify_Malformed(t *testing.T) {
	codec := New("test-secret", SaltPasswordReset)

	tests := []struct {
		name string
		tok  string
	}{
		{name: "empty", tok: ""},
		{name: "garbage", tok: "not-a-token"},
		{name: "truncated", tok: "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Verify(tt.tok, DefaultMaxAge)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestCodec_Issue_UniquePerCall(t *testing.T) {
	codec := New("test-secret", SaltPasswordReset)

	base := time.Now()
	codec.now = func() time.Time { return base }
	first, err := codec.Issue(42)
	require.NoError(t, err)

	codec.now = func() time.Time { return base.Add(time.Second) }
	second, err := codec.Issue(42)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
