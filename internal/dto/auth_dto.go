package dto

// LoginRequest used for POST /login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest used for POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// SessionResponse describes the current session for reactive clients.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
	Email         string `json:"email,omitempty"`
	Role          string `json:"role,omitempty"`
}

// ThemeRequest used for PUT /theme
type ThemeRequest struct {
	DarkMode *bool `json:"dark_mode" binding:"required"`
}

// ThemeResponse used for GET/PUT /theme
type ThemeResponse struct {
	DarkMode bool `json:"dark_mode"`
}
