package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	iss := &Issuer{Secret: []byte("s3cret"), Name: "communityd", TTL: time.Hour, Now: func() time.Time { return now }}

	tok, err := iss.Issue("0xabc")
	require.NoError(t, err)

	addr, err := iss.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "0xabc", addr)
}

func TestVerifyRejects(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	iss := &Issuer{Secret: []byte("s3cret"), Name: "communityd", TTL: time.Hour, Now: func() time.Time { return now }}
	tok, err := iss.Issue("0xabc")
	require.NoError(t, err)

	_, err = iss.Verify("bad_token")
	require.ErrorIs(t, err, ErrInvalidToken)

	other := &Issuer{Secret: []byte("other"), Name: "communityd", TTL: time.Hour, Now: iss.Now}
	_, err = other.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer := &Issuer{Secret: []byte("s3cret"), Name: "elsewhere", TTL: time.Hour, Now: iss.Now}
	_, err = wrongIssuer.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)

	later := &Issuer{Secret: []byte("s3cret"), Name: "communityd", TTL: time.Hour, Now: func() time.Time { return now.Add(2 * time.Hour) }}
	_, err = later.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueRequiresAddress(t *testing.T) {
	_, err := NewIssuer("s", "communityd", time.Hour).Issue("  ")
	require.Error(t, err)
}
