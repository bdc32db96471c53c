package http

import (
	"errors"
	"net/http"

	"github.com/estaraht/admin-dashboard/internal/config"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionIDKey = "sessionId"

var errInvalidSessionToken = errors.New("invalid session token")

// SessionCookie carries the browser session id as an HS256 token. The
// token has no expiry; the session ends when its markers are evicted.
type SessionCookie struct {
	name   string
	secret []byte
	secure bool
	logger out.LoggerPort
}

func NewSessionCookie(cfg *config.Config, logger out.LoggerPort) *SessionCookie {
	return &SessionCookie{
		name:   cfg.Session.CookieName,
		secret: []byte(cfg.Session.Secret),
		secure: cfg.Session.SecureCookie,
		logger: logger,
	}
}

func (s *SessionCookie) sign(id uuid.UUID) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: id.String(),
	})
	return token.SignedString(s.secret)
}

func (s *SessionCookie) parse(raw string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return uuid.Nil, errInvalidSessionToken
	}
	return uuid.Parse(claims.Subject)
}

// Middleware resolves the session id from the cookie, issuing a fresh one
// when the cookie is missing or does not verify.
func (s *SessionCookie) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if raw, err := ctx.Cookie(s.name); err == nil && raw != "" {
			if id, err := s.parse(raw); err == nil {
				ctx.Set(sessionIDKey, id)
				ctx.Next()
				return
			}
			s.logger.Warn("http.session.invalid_cookie", out.LogFields{
				"path": ctx.Request.URL.Path,
			})
		}

		id := uuid.New()
		signed, err := s.sign(id)
		if err != nil {
			s.logger.Error("http.session.sign_failed", out.LogFields{
				"error": err.Error(),
			})
			ctx.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		ctx.SetSameSite(http.SameSiteLaxMode)
		ctx.SetCookie(s.name, signed, 0, "/", "", s.secure, true)
		ctx.Set(sessionIDKey, id)
		ctx.Next()
	}
}

func sessionID(ctx *gin.Context) uuid.UUID {
	if id, ok := ctx.Get(sessionIDKey); ok {
		if sid, ok := id.(uuid.UUID); ok {
			return sid
		}
	}
	return uuid.Nil
}
