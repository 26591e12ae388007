package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zandino/Deltapp/internal/model"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	parser := NewParser("secret")

	user := &model.User{ID: "user-1", Email: "jean@deltapp.fr", Role: model.RoleAdmin}
	token, err := issuer.Issue(user)
	require.NoError(t, err)

	principal, err := parser.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", principal.UserID)
	assert.Equal(t, "jean@deltapp.fr", principal.Email)
	assert.True(t, principal.IsAdmin())
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	parser := NewParser("other-secret")

	token, err := issuer.Issue(&model.User{ID: "user-1"})
	require.NoError(t, err)

	_, err = parser.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer("secret", -time.Minute)
	parser := NewParser("secret")

	token, err := issuer.Issue(&model.User{ID: "user-1"})
	require.NoError(t, err)

	_, err = parser.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	parser := NewParser("secret")
	_, err := parser.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
