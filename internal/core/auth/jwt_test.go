package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "store-ratings", TTL: time.Hour}

	tok, err := j.Issue("uid-123", "owner")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", claims.UID)
	assert.Equal(t, "owner", claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "store-ratings", TTL: time.Hour}
	tok, err := j.Issue("uid-123", "user")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other-secret"), Issuer: "store-ratings", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "someone-else", TTL: time.Hour}
	tok, err := j.Issue("uid-123", "user")
	require.NoError(t, err)

	mine := &JWTer{Secret: []byte("test-secret"), Issuer: "store-ratings", TTL: time.Hour}
	_, err = mine.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	j := &JWTer{Secret: []byte("test-secret"), Issuer: "store-ratings", TTL: time.Hour}
	_, err := j.Parse("not-a-token")
	assert.Error(t, err)
}
