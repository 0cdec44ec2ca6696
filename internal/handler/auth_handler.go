package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rdxa101ou/bookvibe/internal/dto"
	"github.com/rdxa101ou/bookvibe/internal/middleware"
	"github.com/rdxa101ou/bookvibe/internal/service"
	"github.com/rdxa101ou/bookvibe/internal/session"
)

// AuthHandler serves sign-in/sign-out, registration, the session probe and
// the session event stream.
type AuthHandler struct {
	svc       service.AuthService
	broker    *session.Broker
	cookieTTL time.Duration
	secure    bool
}

func NewAuthHandler(svc service.AuthService, broker *session.Broker, cookieTTL time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{svc: svc, broker: broker, cookieTTL: cookieTTL, secure: secure}
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.SignIn)
	r.POST("/logout", h.SignOut)
	r.POST("/auth/register", h.Register)
	r.GET("/auth/session", h.Session)
	r.GET("/auth/events", h.Events)
}

// LoginPage handles GET /login. An already signed-in visitor is sent
// straight to the dashboard.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if _, _, err := h.svc.CurrentSession(ctx, token); err == nil {
			c.Redirect(http.StatusFound, "/admin")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

// SignIn handles POST /login. Success sets the session cookie and points the
// client at /admin.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	token, user, err := h.svc.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign-in failed"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.cookieTTL.Seconds()), "/", "", h.secure, true)

	c.JSON(http.StatusOK, gin.H{
		"redirect": "/admin",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// SignOut handles POST /logout: the registry record is destroyed and the
// cookie cleared. Signing out twice is fine.
func (h *AuthHandler) SignOut(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookie)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.SignOut(ctx, token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign-out failed"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"redirect": "/login"})
}

// Register handles POST /auth/register, creating a regular (non-admin)
// account for personal progress tracking.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.svc.Register(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailInUse) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_id": user.ID,
		"email":   user.Email,
	})
}

// Session handles GET /auth/session: the "is anyone signed in" probe. It
// always answers 200; absence is a payload, not an error.
func (h *AuthHandler) Session(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookie)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	_, data, err := h.svc.CurrentSession(ctx, token)
	if err != nil {
		c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: false})
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		Authenticated: true,
		UserID:        data.UserID,
		Email:         data.Email,
		Role:          data.Role,
	})
}

// Events handles GET /auth/events: a server-sent event stream of session
// sign-in/sign-out changes. The subscription is torn down when the client
// disconnects, so an abandoned stream does not leak.
func (h *AuthHandler) Events(c *gin.Context) {
	events, unsubscribe := h.broker.Subscribe()
	defer unsubscribe()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Type), ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
