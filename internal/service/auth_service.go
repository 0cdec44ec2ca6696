package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rdxa101ou/bookvibe/internal/auth"
	"github.com/rdxa101ou/bookvibe/internal/models"
	"github.com/rdxa101ou/bookvibe/internal/repository"
	"github.com/rdxa101ou/bookvibe/internal/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	// ErrNoSession covers every way a session can be absent: no cookie, a
	// token that fails verification, or a registry record that is gone.
	ErrNoSession = errors.New("no active session")
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	// SignIn verifies the credentials and creates a session, returning the
	// signed cookie token.
	SignIn(ctx context.Context, email, password string) (token string, user *models.User, err error)
	SignOut(ctx context.Context, token string) error
	// CurrentSession resolves a cookie token to the live session record.
	// Any failure along the way reads as ErrNoSession.
	CurrentSession(ctx context.Context, token string) (sid string, data *session.Data, err error)
	SetDarkMode(ctx context.Context, sid string, dark bool) error
	// EnsureAdmin creates the bootstrap admin account if it does not exist.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	userRepo   repository.UserRepository
	sessions   session.Store
	broker     *session.Broker
	secret     string
	sessionTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, sessions session.Store, broker *session.Broker, secret string, sessionTTL time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		sessions:   sessions,
		broker:     broker,
		secret:     secret,
		sessionTTL: sessionTTL,
	}
}

func (s *authService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Email:    email,
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// Dummy compare so unknown emails take as long as wrong passwords
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	sid := uuid.New().String()
	if err := s.sessions.Create(ctx, sid, session.Data{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}); err != nil {
		return "", nil, err
	}

	token, err := s.signToken(sid, user.ID)
	if err != nil {
		// don't leave an unreachable session behind
		s.sessions.Delete(ctx, sid)
		return "", nil, err
	}

	s.broker.Publish(session.Event{Type: session.EventSignedIn, UserID: user.ID, Email: user.Email})
	return token, user, nil
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	sid, data, err := s.CurrentSession(ctx, token)
	if err != nil {
		// already signed out
		return nil
	}

	if err := s.sessions.Delete(ctx, sid); err != nil {
		return err
	}

	s.broker.Publish(session.Event{Type: session.EventSignedOut, UserID: data.UserID, Email: data.Email})
	return nil
}

func (s *authService) CurrentSession(ctx context.Context, token string) (string, *session.Data, error) {
	if token == "" {
		return "", nil, ErrNoSession
	}

	sid, err := s.parseToken(token)
	if err != nil {
		return "", nil, ErrNoSession
	}

	data, err := s.sessions.Get(ctx, sid)
	if err != nil {
		// A registry failure reads the same as a missing session: the
		// caller is treated as signed out, no retry.
		return "", nil, ErrNoSession
	}
	return sid, data, nil
}

func (s *authService) SetDarkMode(ctx context.Context, sid string, dark bool) error {
	if err := s.sessions.SetDarkMode(ctx, sid, dark); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return ErrNoSession
		}
		return err
	}
	return nil
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return s.userRepo.Create(ctx, &models.User{
		ID:       uuid.New().String(),
		Email:    email,
		Password: hashed,
		Role:     models.RoleAdmin,
	})
}

func (s *authService) signToken(sid, userID string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"uid": userID,
		"exp": time.Now().Add(s.sessionTTL).Unix(),
		"iat": time.Now().Unix(),
		"typ": "session",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *authService) parseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return "", errors.New("invalid signing method")
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrNoSession
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrNoSession
	}
	return sid, nil
}
