package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rdxa101ou/bookvibe/internal/middleware"
	"github.com/rdxa101ou/bookvibe/internal/service"
	"github.com/rdxa101ou/bookvibe/internal/session"
)

func themeRouter(svc service.AuthService, sid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewThemeHandler(svc)
	r.GET("/theme", h.Get)
	r.PUT("/theme", func(c *gin.Context) {
		if sid != "" {
			c.Set(middleware.CtxSessionID, sid)
		}
		c.Next()
	}, h.Set)
	return r
}

func TestThemeGet_VisitorDefaultsToLight(t *testing.T) {
	mockAuth := new(MockAuthService)
	r := themeRouter(mockAuth, "")

	req := httptest.NewRequest(http.MethodGet, "/theme", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"dark_mode":false`)
}

func TestThemeGet_ReadsSessionPreference(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("CurrentSession", mock.Anything, "live-token").
		Return("sid", &session.Data{UserID: "user-id", DarkMode: true}, nil)
	r := themeRouter(mockAuth, "")

	req := httptest.NewRequest(http.MethodGet, "/theme", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "live-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"dark_mode":true`)
}

func TestThemeGet_StaleSessionReadsAsLight(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("CurrentSession", mock.Anything, "stale-token").
		Return("", nil, service.ErrNoSession)
	r := themeRouter(mockAuth, "")

	req := httptest.NewRequest(http.MethodGet, "/theme", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "stale-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"dark_mode":false`)
}

func TestThemeSet_PersistsOnSession(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("SetDarkMode", mock.Anything, "sid-1", true).Return(nil)
	r := themeRouter(mockAuth, "sid-1")

	body := `{"dark_mode":true}`
	req := httptest.NewRequest(http.MethodPut, "/theme", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"dark_mode":true`)
	mockAuth.AssertExpectations(t)
}

func TestThemeSet_RequiresExplicitValue(t *testing.T) {
	mockAuth := new(MockAuthService)
	r := themeRouter(mockAuth, "sid-1")

	req := httptest.NewRequest(http.MethodPut, "/theme", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuth.AssertNotCalled(t, "SetDarkMode", mock.Anything, mock.Anything, mock.Anything)
}
