package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localconnect/models"
)

var secret = []byte("test-secret")

func TestIssueAndVerify(t *testing.T) {
	m := NewManager(secret, NewMemoryStore())

	token, err := m.Issue(context.Background(), "buyer@x.com", models.RoleUser, "upstream-tok")
	require.NoError(t, err)

	claims, upstream, err := m.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "buyer@x.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, "upstream-tok", upstream)
}

func TestVerify_RejectsGarbageAndForeignTokens(t *testing.T) {
	m := NewManager(secret, NewMemoryStore())

	_, _, err := m.Verify(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrNotFound)

	other := NewManager([]byte("other-secret"), NewMemoryStore())
	foreign, err := other.Issue(context.Background(), "buyer@x.com", models.RoleUser, "tok")
	require.NoError(t, err)
	_, _, err = m.Verify(context.Background(), foreign)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRevokeEndsSession(t *testing.T) {
	m := NewManager(secret, NewMemoryStore())
	token, err := m.Issue(context.Background(), "biz@x.com", models.RoleBusiness, "tok")
	require.NoError(t, err)

	require.NoError(t, m.Revoke(context.Background(), token))
	_, _, err = m.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ExpiresTokens(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SaveToken(context.Background(), "sid", "tok", -time.Second))
	_, err := s.Token(context.Background(), "sid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SaveToken(context.Background(), "sid", "tok", time.Minute))

	got, err := s.Token(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, "tok", got)

	require.NoError(t, s.Delete(context.Background(), "sid"))
	_, err = s.Token(context.Background(), "sid")
	assert.ErrorIs(t, err, ErrNotFound)
}
