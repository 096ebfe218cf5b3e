package harvestapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mamadbah2/harvest-tracker/internal/domain/models"
)

// AuthService covers /api/auth.
type AuthService struct {
	c *Client
}

// Login exchanges credentials for a bearer token. The backend expects an
// OAuth2 password form where the email travels as username.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthToken, error) {
	token := new(models.AuthToken)
	req := s.c.request(ctx).
		SetFormData(map[string]string{
			"username": email,
			"password": password,
		}).
		SetResult(token)

	if err := s.c.execute(req, http.MethodPost, "/api/auth/login"); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("login: %w: empty access token", ErrServer)
	}
	return token, nil
}

// Register creates a new account.
func (s *AuthService) Register(ctx context.Context, in models.RegisterRequest) (*models.User, error) {
	user := new(models.User)
	if err := s.c.send(ctx, http.MethodPost, "/api/auth/register", in, user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

// Me returns the user the token belongs to.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	user := new(models.User)
	if err := s.c.get(ctx, "/api/auth/me", nil, user); err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

// UserService covers /api/users.
type UserService struct {
	c *Client
}

// UpdateMe applies a partial profile update to the current user.
func (s *UserService) UpdateMe(ctx context.Context, in models.UserUpdate) (*models.User, error) {
	user := new(models.User)
	if err := s.c.send(ctx, http.MethodPut, "/api/users/me", in, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}
