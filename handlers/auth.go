package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lexdesk/lexdesk/internal/attorneys"
	"github.com/lexdesk/lexdesk/internal/config"
	"github.com/lexdesk/lexdesk/internal/models"
	"github.com/lexdesk/lexdesk/internal/sessions"
	"github.com/lexdesk/lexdesk/internal/tokens"
	"github.com/lexdesk/lexdesk/pkg/logger"
	"github.com/lexdesk/lexdesk/pkg/metrics"
	"github.com/lexdesk/lexdesk/pkg/middleware"
)

type RegisterRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required"`
	Specialization string `json:"specialization"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler serves registration, login, token verification, and logout.
type AuthHandler struct {
	cfg       *config.Config
	svc       *attorneys.Service
	blacklist sessions.Blacklist
}

func NewAuthHandler(cfg *config.Config, svc *attorneys.Service, bl sessions.Blacklist) *AuthHandler {
	return &AuthHandler{cfg: cfg, svc: svc, blacklist: bl}
}

// Register routes under /api/auth. The protected group carries the auth
// middleware so verify/logout see a resolved identity.
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/register", h.RegisterAttorney)
	a.POST("/login", h.Login)

	protected := a.Group("")
	protected.Use(middleware.AuthMiddleware(h.cfg, h.blacklist))
	protected.GET("/verify", h.Verify)
	protected.POST("/logout", h.Logout)
}

func profile(a *models.Attorney) gin.H {
	return gin.H{
		"id":             a.ID.Hex(),
		"name":           a.Name,
		"email":          a.Email,
		"specialization": a.Specialization,
	}
}

// RegisterAttorney creates an account and issues a token in one step.
func (h *AuthHandler) RegisterAttorney(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Specialization)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	token, err := tokens.Generate(h.cfg, a, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		logger.Errorf("token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": profile(a)})
}

// Login verifies credentials and issues a token. Failure is identical for
// unknown email and wrong password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		writeDomainError(c, err)
		return
	}
	token, err := tokens.Generate(h.cfg, a, h.cfg.JWT.AccessTokenTTL)
	if err != nil {
		logger.Errorf("token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"token": token, "user": profile(a)})
}

// Verify confirms the presented token; useful for frontend initialization.
func (h *AuthHandler) Verify(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token is not valid"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "user": gin.H{"id": ident.ID.Hex(), "name": ident.Name}})
}

// Logout revokes the presented access token for its remaining lifetime.
// Without a configured blacklist this degrades to a no-op acknowledgement.
func (h *AuthHandler) Logout(c *gin.Context) {
	raw := middleware.RawTokenFrom(c)
	if h.blacklist != nil && raw != "" {
		exp, err := tokens.Expiry(h.cfg, raw)
		if err == nil {
			if err := h.blacklist.Revoke(c.Request.Context(), raw, time.Until(exp)); err != nil {
				logger.Errorf("token revocation failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				return
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
