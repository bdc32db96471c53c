package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/google/uuid"
)

const loginFailedMessage = "Login failed"

// Service implements in.AuthUseCase.
type Service struct {
	auth          out.AuthPort
	store         out.SessionStorePort
	defaultLocale domain.Locale
	logger        out.LoggerPort
}

func NewService(auth out.AuthPort, store out.SessionStorePort, defaultLocale domain.Locale, logger out.LoggerPort) *Service {
	return &Service{
		auth:          auth,
		store:         store,
		defaultLocale: defaultLocale,
		logger:        logger.WithModule("SessionService"),
	}
}

func (s *Service) Context(sessionID uuid.UUID) *Context {
	return NewContext(sessionID, s.store, s.defaultLocale)
}

// Login stores the user blob and the flag only when the backend reports
// success; otherwise the session stays signed out.
func (s *Service) Login(ctx context.Context, sessionID uuid.UUID, credentials domain.Credentials) (*domain.SessionUser, error) {
	result, err := s.auth.Login(ctx, credentials)
	if err != nil {
		s.logger.Error("session.login.failed", out.LogFields{
			"email": credentials.Email,
			"error": err.Error(),
		})
		return nil, err
	}

	if !result.OK() || result.Success == nil {
		message := result.Message
		if message == "" {
			message = loginFailedMessage
		}
		s.logger.Warn("session.login.rejected", out.LogFields{
			"email":   credentials.Email,
			"message": message,
		})
		return nil, domain.NewHTTPError(http.StatusUnauthorized, message)
	}

	raw := strings.TrimSpace(string(result.Data))
	if raw == "" {
		raw = "null"
	}
	user, err := domain.DecodeSessionUser(raw)
	if err != nil {
		user = &domain.SessionUser{Raw: []byte(raw)}
	}

	s.Context(sessionID).signIn(ctx, raw)

	s.logger.Info("session.login.success", out.LogFields{
		"email": credentials.Email,
	})
	return user, nil
}

func (s *Service) Logout(ctx context.Context, sessionID uuid.UUID) {
	s.Context(sessionID).signOut(ctx)
	s.logger.Info("session.logout", out.LogFields{
		"sessionId": sessionID,
	})
}

func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.NewValidationError("Email is required")
	}
	return s.dispatch(ctx, "request_reset", "Failed to request password reset", func() (out.Result, error) {
		return s.auth.RequestPasswordReset(ctx, email)
	})
}

// ResetPassword validates the form before any backend call.
func (s *Service) ResetPassword(ctx context.Context, reset domain.PasswordReset) error {
	if err := reset.Validate(); err != nil {
		return err
	}
	return s.dispatch(ctx, "reset_password", "Failed to reset password", func() (out.Result, error) {
		return s.auth.ResetPassword(ctx, reset)
	})
}

func (s *Service) dispatch(ctx context.Context, name, fallback string, call func() (out.Result, error)) error {
	result, err := call()
	if err != nil {
		s.logger.Error("session."+name+".failed", out.LogFields{
			"error": err.Error(),
		})
		return err
	}
	if !result.OK() {
		message := result.Message
		if message == "" {
			message = fallback
		}
		s.logger.Warn("session."+name+".rejected", out.LogFields{
			"message": message,
		})
		return domain.NewHTTPError(http.StatusBadRequest, message)
	}
	return nil
}
