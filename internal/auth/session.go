package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/romario-developer/despesas-pwa/internal/logging"
)

// Session ties credential storage to navigation.
type Session struct {
	store  *Store
	nav    Navigator
	logger logging.Logger
	now    func() time.Time

	mu       sync.Mutex
	onLogout []func()
}

type SessionOption func(*Session)

func WithSessionLogger(l logging.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

func NewSession(store *Store, nav Navigator, opts ...SessionOption) *Session {
	s := &Session{
		store:  store,
		nav:    nav,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.With(logging.FieldComponent, logging.ComponentSession)
	return s
}

func (s *Session) Store() *Store        { return s.store }
func (s *Session) Navigator() Navigator { return s.nav }

// OnLogout registers fn to run on every explicit Logout.
func (s *Session) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// Expire ends a session the server no longer accepts: credentials and the
// cached user are dropped, msg is queued for the login screen and the
// navigator is sent to /login unless it is already there.
func (s *Session) Expire(ctx context.Context, msg string) error {
	err := s.clear(ctx, msg)
	s.redirect()
	s.logger.Info(ctx, "session expired")
	return err
}

// Logout ends the session on request. It behaves like Expire and also runs
// the OnLogout hooks.
func (s *Session) Logout(ctx context.Context, msg string) error {
	s.mu.Lock()
	hooks := append([]func(){}, s.onLogout...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}

	err := s.clear(ctx, msg)
	s.redirect()
	s.logger.Info(ctx, "logged out")
	return err
}

// Resolve returns where a visit to path should end up:
//
//   - no token, or a JWT past its exp: /login
//   - password change pending and path is not /change-password: /change-password
//   - no change pending and path is /change-password: /
//   - otherwise path itself.
func (s *Session) Resolve(ctx context.Context, path string) (string, error) {
	token, err := s.store.Token(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return RouteLogin, nil
	}
	if TokenExpired(token, s.now()) {
		s.logger.Debug(ctx, "stored token is past its expiry")
		return RouteLogin, nil
	}

	must, err := s.store.MustChangePassword(ctx)
	if err != nil {
		return "", err
	}

	switch {
	case must && path != RouteChangePassword:
		return RouteChangePassword, nil
	case !must && path == RouteChangePassword:
		return RouteHome, nil
	default:
		return path, nil
	}
}

// Guard resolves path and moves the navigator to the result.
func (s *Session) Guard(ctx context.Context, path string) (string, error) {
	dst, err := s.Resolve(ctx, path)
	if err != nil {
		return "", err
	}
	if s.nav.Current() != dst {
		s.nav.Navigate(dst)
	}
	return dst, nil
}

func (s *Session) clear(ctx context.Context, msg string) error {
	return errors.Join(
		s.store.ClearToken(ctx),
		s.store.ClearAuthUser(ctx),
		s.store.SetLoginMessage(ctx, msg),
	)
}

func (s *Session) redirect() {
	if s.nav.Current() != RouteLogin {
		s.nav.Navigate(RouteLogin)
	}
}
