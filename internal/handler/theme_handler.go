package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rdxa101ou/bookvibe/internal/dto"
	"github.com/rdxa101ou/bookvibe/internal/middleware"
	"github.com/rdxa101ou/bookvibe/internal/service"
)

// ThemeHandler exposes the light/dark preference with an explicit read/write
// contract. The value lives on the session record, injected where needed,
// instead of in ambient global state.
type ThemeHandler struct {
	svc service.AuthService
}

func NewThemeHandler(svc service.AuthService) *ThemeHandler {
	return &ThemeHandler{svc: svc}
}

// Get handles GET /theme. Visitors without a session get the light default.
func (h *ThemeHandler) Get(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookie)
	if err != nil {
		c.JSON(http.StatusOK, dto.ThemeResponse{DarkMode: false})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	_, data, err := h.svc.CurrentSession(ctx, token)
	if err != nil {
		c.JSON(http.StatusOK, dto.ThemeResponse{DarkMode: false})
		return
	}

	c.JSON(http.StatusOK, dto.ThemeResponse{DarkMode: data.DarkMode})
}

// Set handles PUT /theme behind the session guard.
func (h *ThemeHandler) Set(c *gin.Context) {
	var req dto.ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sid := c.GetString(middleware.CtxSessionID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.SetDarkMode(ctx, sid, *req.DarkMode); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save theme"})
		return
	}

	c.JSON(http.StatusOK, dto.ThemeResponse{DarkMode: *req.DarkMode})
}
