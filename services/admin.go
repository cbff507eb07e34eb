package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/edura-app/edura-go/core"
)

// AdminService covers the /api/admin endpoints. The backend enforces the
// role; the client only forwards the calls.
type AdminService struct {
	d *Dispatcher
}

func NewAdminService(d *Dispatcher) *AdminService {
	return &AdminService{d: d}
}

// Promote changes a user's role.
func (s *AdminService) Promote(ctx context.Context, username, role string) error {
	return s.d.DoJSON(ctx, "POST", "/api/admin/promote", map[string]string{
		"username": username,
		"role":     role,
	}, nil)
}

func (s *AdminService) Users(ctx context.Context) ([]core.User, error) {
	raw, err := s.d.Do(ctx, "GET", "/api/admin/users", nil)
	if err != nil {
		return nil, err
	}
	list := core.ExtractList(raw, "users", "data")
	var users []core.User
	if list != nil {
		if err := json.Unmarshal(list, &users); err != nil {
			return nil, fmt.Errorf("failed to decode users: %w", err)
		}
	}
	return users, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	return s.d.DoJSON(ctx, "DELETE", "/api/admin/users/"+userID, nil, nil)
}

func (s *AdminService) LockUser(ctx context.Context, userID string) error {
	return s.d.DoJSON(ctx, "POST", "/api/admin/users/"+userID+"/lock", nil, nil)
}

func (s *AdminService) UnlockUser(ctx context.Context, userID string) error {
	return s.d.DoJSON(ctx, "POST", "/api/admin/users/"+userID+"/unlock", nil, nil)
}
