package http

import (
	"net/http"

	"github.com/estaraht/admin-dashboard/internal/core/domain"
	"github.com/estaraht/admin-dashboard/internal/core/ports/in"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
	"github.com/estaraht/admin-dashboard/internal/core/services/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionUseCase is the auth use case plus access to per-session state.
type SessionUseCase interface {
	in.AuthUseCase
	Context(sessionID uuid.UUID) *session.Context
}

// WorkspaceDropper forgets the screen state of a session.
type WorkspaceDropper interface {
	Drop(sessionID uuid.UUID)
}

type AuthController struct {
	sessions   SessionUseCase
	workspaces WorkspaceDropper
	logger     out.LoggerPort
}

func NewAuthController(sessions SessionUseCase, workspaces WorkspaceDropper, logger out.LoggerPort) *AuthController {
	return &AuthController{
		sessions:   sessions,
		workspaces: workspaces,
		logger:     logger,
	}
}

func (c *AuthController) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/login", c.loginPage)
	public.POST("/login", c.login)
	public.POST("/request-reset", c.requestReset)
	public.POST("/reset-password", c.resetPassword)

	protected.POST("/logout", c.logout)
	protected.GET("/api/locale", c.locale)
	protected.PUT("/api/locale", c.setLocale)
}

// RequireSession is the guard: without both markers the request is
// redirected to /login with an empty body.
func (c *AuthController) RequireSession() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		guard := session.NewGuard(c.sessions.Context(sessionID(ctx)))
		if !guard.Allow(ctx.Request.Context()) {
			redirect(ctx, "/login")
			return
		}
		ctx.Next()
	}
}

// redirect answers 302 without the HTML body http.Redirect would add.
func redirect(ctx *gin.Context, location string) {
	ctx.Header("Location", location)
	ctx.AbortWithStatus(http.StatusFound)
}

type localeView struct {
	Locale    domain.Locale `json:"locale"`
	Direction string        `json:"dir"`
}

func localeOf(l domain.Locale) localeView {
	return localeView{Locale: l, Direction: l.Direction()}
}

func (c *AuthController) loginPage(ctx *gin.Context) {
	sc := c.sessions.Context(sessionID(ctx))
	if sc.Authenticated(ctx.Request.Context()) {
		redirect(ctx, "/")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"authenticated": false,
		"locale":        localeOf(sc.Locale(ctx.Request.Context())),
	})
}

func (c *AuthController) login(ctx *gin.Context) {
	var credentials domain.Credentials
	if err := ctx.ShouldBindJSON(&credentials); err != nil {
		badRequest(ctx, c.logger, err)
		return
	}

	user, err := c.sessions.Login(ctx.Request.Context(), sessionID(ctx), credentials)
	if err != nil {
		fail(ctx, c.logger, err, nil)
		return
	}

	var profile interface{} = user
	if len(user.Raw) > 0 {
		profile = user.Raw
	}
	ctx.JSON(http.StatusOK, gin.H{
		"user":     profile,
		"redirect": "/",
	})
}

func (c *AuthController) logout(ctx *gin.Context) {
	id := sessionID(ctx)
	c.sessions.Logout(ctx.Request.Context(), id)
	c.workspaces.Drop(id)
	redirect(ctx, "/login")
}

type resetRequest struct {
	Email string `json:"email"`
}

func (c *AuthController) requestReset(ctx *gin.Context) {
	var req resetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, c.logger, err)
		return
	}
	if err := c.sessions.RequestPasswordReset(ctx.Request.Context(), req.Email); err != nil {
		fail(ctx, c.logger, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (c *AuthController) resetPassword(ctx *gin.Context) {
	var req domain.PasswordReset
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, c.logger, err)
		return
	}
	if req.UID == "" {
		req.UID = ctx.Query("uid")
	}
	if err := c.sessions.ResetPassword(ctx.Request.Context(), req); err != nil {
		fail(ctx, c.logger, err, nil)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "redirect": "/login"})
}

func (c *AuthController) locale(ctx *gin.Context) {
	sc := c.sessions.Context(sessionID(ctx))
	ctx.JSON(http.StatusOK, localeOf(sc.Locale(ctx.Request.Context())))
}

type localeRequest struct {
	Locale domain.Locale `json:"locale" binding:"required"`
}

func (c *AuthController) setLocale(ctx *gin.Context) {
	var req localeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, c.logger, err)
		return
	}
	sc := c.sessions.Context(sessionID(ctx))
	ctx.JSON(http.StatusOK, localeOf(sc.SetLocale(ctx.Request.Context(), req.Locale)))
}
