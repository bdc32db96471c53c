package in

import (
	"context"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/google/uuid"
)

type AuthUseCase interface {
	// Login stores both session markers only on a successful envelope
	Login(ctx context.Context, sessionID uuid.UUID, credentials domain.Credentials) (*domain.SessionUser, error)
	Logout(ctx context.Context, sessionID uuid.UUID)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, reset domain.PasswordReset) error
}
