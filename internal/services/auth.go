package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/romario-developer/despesas-pwa/internal/auth"
	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/models"
)

const (
	pathLogin    = "/api/auth/login"
	pathMe       = "/api/me"
	pathPassword = "/api/me/password"
	pathSample   = "/api/me/sample-data"

	// MinPasswordLength is the shortest new password the client accepts.
	MinPasswordLength = 8
)

var (
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = fmt.Errorf("new password must have at least %d characters", MinPasswordLength)
	ErrSamePassword       = errors.New("new password must differ from the current one")
	ErrEmptyID            = errors.New("id is required")
	ErrItemNotFound       = errors.New("item not found")
	ErrEmptyText          = errors.New("text is required")
	ErrInvalidForecastLen = errors.New("forecast length must be positive")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidDate        = errors.New("date must be YYYY-MM-DD")
)

// AuthService defines authentication operations.
//
// Contract:
//   - Login: exchange the password for a token and persist it together with
//     the must-change-password flag.
//   - Me: fetch the current user and cache name and email locally.
//   - ChangePassword: change the password and clear the pending flag.
//   - Logout: end the session and send the navigator to the login screen.
//   - AddSampleData: ask the backend to seed the account with demo entries.
type AuthService interface {
	Login(ctx context.Context, password string) (models.AuthResponse, error)
	Me(ctx context.Context) (models.UserMe, error)
	ChangePassword(ctx context.Context, current, next string) error
	Logout(ctx context.Context, message string) error
	AddSampleData(ctx context.Context) error
}

type authService struct {
	api     API
	session *auth.Session
}

func NewAuthService(api API, session *auth.Session) AuthService {
	return &authService{api: api, session: session}
}

// Login posts the password to the login endpoint. A wrong password comes
// back as client.ErrInvalidCredentials and leaves stored credentials alone.
func (s *authService) Login(ctx context.Context, password string) (models.AuthResponse, error) {
	if strings.TrimSpace(password) == "" {
		return models.AuthResponse{}, ErrPasswordRequired
	}

	resp, err := s.api.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   pathLogin,
		Body:   map[string]string{"password": password},
	})
	if err != nil {
		return models.AuthResponse{}, err
	}

	ar, ok := models.NormalizeAuthResponse(resp.Payload)
	if !ok {
		return models.AuthResponse{}, client.Unexpected(http.MethodPost, pathLogin, resp.Status, resp.Payload)
	}

	store := s.session.Store()
	if err := store.SaveToken(ctx, ar.Token); err != nil {
		return models.AuthResponse{}, fmt.Errorf("save token: %w", err)
	}
	if err := store.SetMustChangePassword(ctx, ar.MustChangePassword); err != nil {
		return models.AuthResponse{}, fmt.Errorf("save password flag: %w", err)
	}
	return ar, nil
}

// Me refreshes the cached user. Without a token the cache is cleared and
// ErrNotLoggedIn is returned.
func (s *authService) Me(ctx context.Context) (models.UserMe, error) {
	store := s.session.Store()

	token, err := store.Token(ctx)
	if err != nil {
		return models.UserMe{}, err
	}
	if token == "" {
		if err := store.ClearAuthUser(ctx); err != nil {
			return models.UserMe{}, err
		}
		return models.UserMe{}, ErrNotLoggedIn
	}

	payload, err := s.api.Get(ctx, pathMe, nil)
	if err != nil {
		return models.UserMe{}, err
	}

	me := models.NormalizeUserMe(payload)
	if err := store.SaveAuthUser(ctx, auth.User{Name: me.Name, Email: me.Email}); err != nil {
		return models.UserMe{}, fmt.Errorf("cache user: %w", err)
	}
	return me, nil
}

func (s *authService) ChangePassword(ctx context.Context, current, next string) error {
	if strings.TrimSpace(current) == "" {
		return ErrPasswordRequired
	}
	if utf8.RuneCountInString(next) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if current == next {
		return ErrSamePassword
	}

	if _, err := s.api.Post(ctx, pathPassword, map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	}); err != nil {
		return err
	}
	return s.session.Store().ClearMustChangePassword(ctx)
}

func (s *authService) Logout(ctx context.Context, message string) error {
	return s.session.Logout(ctx, message)
}

func (s *authService) AddSampleData(ctx context.Context) error {
	_, err := s.api.Post(ctx, pathSample, nil)
	return err
}
