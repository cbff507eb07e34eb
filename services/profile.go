package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/edura-app/edura-go/core"
)

// ProfileService covers the /api/profile endpoints.
type ProfileService struct {
	d *Dispatcher
}

func NewProfileService(d *Dispatcher) *ProfileService {
	return &ProfileService{d: d}
}

func (s *ProfileService) Me(ctx context.Context) (*core.User, error) {
	var user core.User
	if err := s.d.DoJSON(ctx, "GET", "/api/profile/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe changes the display name and refreshes the cached user snapshot
// so a later view reads the new name without re-login.
func (s *ProfileService) UpdateMe(ctx context.Context, fullName string) (*core.User, error) {
	var user core.User
	err := s.d.DoJSON(ctx, "PUT", "/api/profile/me", map[string]string{
		"fullName": fullName,
	}, &user)
	if err != nil {
		return nil, err
	}
	if token := s.d.Session().Token(); token != "" {
		if err := s.d.Session().Set(token, &user); err != nil {
			return nil, fmt.Errorf("profile updated, but the cached session could not be refreshed: %w", err)
		}
	}
	return &user, nil
}

// UploadAvatar sends the new avatar and returns its URL. The backend has
// answered with both "avatarUrl" and "avatar_url" historically; both are
// accepted.
func (s *ProfileService) UploadAvatar(ctx context.Context, file io.Reader, filename string) (string, error) {
	form := NewForm().AddFile("avatar", filename, file)
	raw, err := s.d.DoForm(ctx, "POST", "/api/profile/avatar", form)
	if err != nil {
		return "", err
	}
	var payload struct {
		AvatarURL    string `json:"avatarUrl"`
		AvatarURLAlt string `json:"avatar_url"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("failed to decode avatar response: %w", err)
	}
	if payload.AvatarURL != "" {
		return payload.AvatarURL, nil
	}
	return payload.AvatarURLAlt, nil
}

// MyDocuments lists the documents the current user uploaded.
func (s *ProfileService) MyDocuments(ctx context.Context) ([]core.Document, error) {
	raw, err := s.d.Do(ctx, "GET", "/api/profile/documents", nil)
	if err != nil {
		return nil, err
	}
	return core.NormalizeDocuments(raw), nil
}

// ViewHistory lists the documents the current user viewed recently.
func (s *ProfileService) ViewHistory(ctx context.Context) ([]core.Document, error) {
	raw, err := s.d.Do(ctx, "GET", "/api/profile/view-history", nil)
	if err != nil {
		return nil, err
	}
	return core.NormalizeDocuments(raw), nil
}
