// Package session binds browser cookies to backend bearer tokens.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
	"github.com/mamadbah2/harvest-tracker/pkg/clients/harvestapi"
)

// ErrSessionExpired is returned by Resume for sessions older than the TTL.
var ErrSessionExpired = errors.New("session expired")

// Manager creates, resumes and ends sessions.
type Manager struct {
	api    *harvestapi.Client
	store  Store
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// NewManager wires a manager around an unauthenticated backend client.
func NewManager(api *harvestapi.Client, store Store, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = NewMemoryStore()
	}
	return &Manager{
		api:    api,
		store:  store,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Login authenticates against the backend, loads the profile and persists a
// new session.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	token, err := m.api.Auth().Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := m.api.WithToken(token.AccessToken).Auth().Me(ctx)
	if err != nil {
		return nil, err
	}

	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		Token:     token.AccessToken,
		User:      *user,
		CreatedAt: now,
		LastSeen:  now,
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	m.logger.Info("session started", zap.String("session_id", s.ID), zap.Int64("user_id", user.ID))
	return s, nil
}

// Register creates the account and signs it in.
func (m *Manager) Register(ctx context.Context, in models.RegisterRequest) (*Session, error) {
	if _, err := m.api.Auth().Register(ctx, in); err != nil {
		return nil, err
	}
	return m.Login(ctx, in.Email, in.Password)
}

// Resume loads the session behind a cookie value. Expired sessions are
// removed and reported as ErrSessionExpired.
func (m *Manager) Resume(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := m.now()
	if m.ttl > 0 && now.Sub(s.CreatedAt) > m.ttl {
		if err := m.store.Delete(ctx, id); err != nil {
			m.logger.Warn("failed to drop expired session", zap.String("session_id", id), zap.Error(err))
		}
		return nil, ErrSessionExpired
	}

	if now.Sub(s.LastSeen) > time.Minute {
		s.LastSeen = now
		if err := m.store.Save(ctx, s); err != nil {
			m.logger.Warn("failed to touch session", zap.String("session_id", id), zap.Error(err))
		}
	}
	return s, nil
}

// Refresh stores an updated profile on the session.
func (m *Manager) Refresh(ctx context.Context, s *Session, user models.User) error {
	s.User = user
	s.LastSeen = m.now()
	if err := m.store.Save(ctx, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Logout ends the session. Unknown ids are not an error.
func (m *Manager) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	m.logger.Info("session ended", zap.String("session_id", id))
	return nil
}

// Client returns a backend client bound to the session's token.
func (m *Manager) Client(s *Session) *harvestapi.Client {
	return m.api.WithToken(s.Token)
}

// TTL is the maximum session age.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}
