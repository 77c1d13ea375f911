package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute, time.Hour)

	pair, err := issuer.Issue(7, "seller@example.com")
	require.NoError(t, err)

	claims, err := issuer.Parse(pair.Access, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "seller@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)

	refresh, err := issuer.Parse(pair.Refresh, TypeRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, refresh.ID)
}

func TestParseRejectsWrongType(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute, time.Hour)
	pair, err := issuer.Issue(1, "a@b.c")
	require.NoError(t, err)

	_, err = issuer.Parse(pair.Refresh, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	pair, err := NewTokenIssuer("one", time.Minute, time.Hour).Issue(1, "a@b.c")
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Minute, time.Hour).Parse(pair.Access, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute, time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	pair, err := issuer.Issue(1, "a@b.c")
	require.NoError(t, err)

	_, err = issuer.Parse(pair.Access, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
