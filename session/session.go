package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"localconnect/models"
)

const TTL = 24 * time.Hour

var ErrNotFound = errors.New("session not found")

// Store keeps the upstream bearer token for each live session. The gateway's
// own token never carries the upstream credential.
type Store interface {
	SaveToken(ctx context.Context, sessionID, token string, ttl time.Duration) error
	Token(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

type Manager struct {
	secret []byte
	store  Store
}

func NewManager(secret []byte, store Store) *Manager {
	return &Manager{secret: secret, store: store}
}

// Issue creates a session: the upstream token goes into the store, and the
// caller gets a gateway JWT referencing it.
func (m *Manager) Issue(ctx context.Context, email, role, upstreamToken string) (string, error) {
	sid := uuid.NewString()
	if err := m.store.SaveToken(ctx, sid, upstreamToken, TTL); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	now := time.Now()
	claims := &models.Claims{
		Email:     email,
		Role:      role,
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses the gateway token and resolves the stored upstream token.
func (m *Manager) Verify(ctx context.Context, tokenStr string) (*models.Claims, string, error) {
	claims, err := m.parse(tokenStr)
	if err != nil {
		return nil, "", err
	}
	upstream, err := m.store.Token(ctx, claims.SessionID)
	if err != nil {
		return nil, "", err
	}
	return claims, upstream, nil
}

// Revoke drops the stored upstream token, ending the session.
func (m *Manager) Revoke(ctx context.Context, tokenStr string) error {
	claims, err := m.parse(tokenStr)
	if err != nil {
		return err
	}
	return m.store.Delete(ctx, claims.SessionID)
}

func (m *Manager) parse(tokenStr string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &models.Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNotFound
	}
	claims, ok := token.Claims.(*models.Claims)
	if !ok || claims.SessionID == "" {
		return nil, ErrNotFound
	}
	return claims, nil
}
