package services

import (
	"context"
	"fmt"

	"github.com/edura-app/edura-go/core"
)

// AuthService covers the /api/auth endpoints plus the purely local parts of
// the session lifecycle.
type AuthService struct {
	d *Dispatcher
}

func NewAuthService(d *Dispatcher) *AuthService {
	return &AuthService{d: d}
}

// Login authenticates and persists the session as a side effect.
//
// A 200 response without a token is a broken contract with the backend, not
// a user error; it fails with core.ErrNoTokenInResponse before any session
// mutation, so a previously stored session stays untouched.
func (s *AuthService) Login(ctx context.Context, username, password string) (*core.LoginResult, error) {
	var result core.LoginResult
	err := s.d.DoJSON(ctx, "POST", "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}

	if result.Token == "" {
		return nil, core.ErrNoTokenInResponse
	}

	if err := s.d.Session().Set(result.Token, result.User); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return &result, nil
}

func (s *AuthService) Register(ctx context.Context, username, password, fullName string) error {
	return s.d.DoJSON(ctx, "POST", "/api/auth/register", map[string]string{
		"username": username,
		"password": password,
		"fullName": fullName,
	}, nil)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.d.DoJSON(ctx, "POST", "/api/auth/forgot-password", map[string]string{
		"email": email,
	}, nil)
}

func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return s.d.DoJSON(ctx, "POST", "/api/auth/reset-password", map[string]string{
		"email":       email,
		"code":        code,
		"newPassword": newPassword,
	}, nil)
}

// Logout is a pure local side effect: it clears the stored session and
// performs no network call. The bearer token simply stops being sent.
func (s *AuthService) Logout() error {
	return s.d.Session().Clear()
}

// CurrentUser returns the locally cached profile snapshot, or nil when no
// session exists.
func (s *AuthService) CurrentUser() *core.User {
	return s.d.Session().User()
}
