package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "daffodil-hmo", TTL: time.Hour}

	tok, err := j.Issue("uid-1", "jane@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", c.UID)
	assert.Equal(t, "jane@example.com", c.Email)
	assert.Equal(t, "admin", c.Role)
	assert.Equal(t, "daffodil-hmo", c.Issuer)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	a := &JWTer{Secret: []byte("one"), Issuer: "daffodil-hmo", TTL: time.Hour}
	b := &JWTer{Secret: []byte("two"), Issuer: "daffodil-hmo", TTL: time.Hour}

	tok, err := a.Issue("uid-1", "jane@example.com", "user")
	require.NoError(t, err)

	_, err = b.Parse(tok)
	assert.Error(t, err)
}

func TestJWTRejectsWrongIssuer(t *testing.T) {
	a := &JWTer{Secret: []byte("s3cret"), Issuer: "someone-else", TTL: time.Hour}
	b := &JWTer{Secret: []byte("s3cret"), Issuer: "daffodil-hmo", TTL: time.Hour}

	tok, err := a.Issue("uid-1", "jane@example.com", "user")
	require.NoError(t, err)

	_, err = b.Parse(tok)
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "daffodil-hmo", TTL: -2 * time.Minute}

	tok, err := j.Issue("uid-1", "jane@example.com", "user")
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "daffodil-hmo", TTL: time.Hour}
	_, err := j.Parse("not.a.token")
	assert.Error(t, err)
}
