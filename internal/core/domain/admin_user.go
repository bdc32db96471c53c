package domain

import (
	"strings"

	"github.com/estaraht/admin-dashboard/internal/core/json_types"
)

const (
	RoleAdmin = "admin"

	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

type AdminUser struct {
	UserID    string               `json:"user_id"`
	Email     string               `json:"email"`
	Role      string               `json:"role"`
	Status    string               `json:"status"`
	FullName  *string              `json:"full_name"`
	CreatedAt json_types.Timestamp `json:"created_at"`
	UpdatedAt json_types.Timestamp `json:"updated_at"`
	LastLogin json_types.Timestamp `json:"last_login"`
}

func (u AdminUser) ID() string {
	return u.UserID
}

// Deletable is false for admin-role accounts; the UI never offers delete for them.
func (u AdminUser) Deletable() bool {
	return !strings.EqualFold(u.Role, RoleAdmin)
}

func (u AdminUser) IsActive() bool {
	return strings.EqualFold(u.Status, UserStatusActive)
}

func (u AdminUser) SearchText() string {
	return SearchText(u.Email, deref(u.FullName))
}

// UserDraft is the create-user form.
type UserDraft struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

type UserPayload struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
	Role     string  `json:"role"`
	Status   string  `json:"status"`
}

func (d UserDraft) Payload() UserPayload {
	role := strings.TrimSpace(d.Role)
	if role == "" {
		role = RoleAdmin
	}
	status := strings.TrimSpace(d.Status)
	if status == "" {
		status = UserStatusActive
	}
	return UserPayload{
		Email:    strings.TrimSpace(d.Email),
		Password: d.Password,
		FullName: OptionalString(d.FullName),
		Role:     role,
		Status:   status,
	}
}
