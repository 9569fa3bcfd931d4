package auth

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/romario-developer/despesas-pwa/internal/dbx"
	"github.com/romario-developer/despesas-pwa/internal/storage/kv"
)

// Storage keys. KeyLegacyToken is only read, never written.
const (
	KeyToken              = "auth_token"
	KeyLegacyToken        = "despesas_token"
	KeyMustChangePassword = "must_change_password"
	KeyAuthUser           = "auth_user"
	KeyLoginMessage       = "login_message"
)

// User is the cached identity shown before /api/me answers.
type User struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Store is safe for concurrent use.
type Store struct {
	db   *sql.DB
	repo kv.Repository

	mu     sync.RWMutex
	token  string
	loaded bool
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, repo: kv.NewSQLiteRepository(db)}
}

// Token returns the bearer token, or "" when there is none. The value saved
// under the legacy key is honoured when the current key is empty.
func (s *Store) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	if s.loaded {
		t := s.token
		s.mu.RUnlock()
		return t, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.token, nil
	}

	t, err := kv.GetString(ctx, s.repo, KeyToken)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(t) == "" {
		t, err = kv.GetString(ctx, s.repo, KeyLegacyToken)
		if err != nil {
			return "", err
		}
	}

	s.token = strings.TrimSpace(t)
	s.loaded = true
	return s.token, nil
}

// SaveToken stores token under the current key and drops the legacy one.
func (s *Store) SaveToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		if err := kv.SetString(ctx, repo, KeyToken, token); err != nil {
			return err
		}
		return repo.Delete(ctx, KeyLegacyToken)
	})
	if err != nil {
		return err
	}

	s.token = token
	s.loaded = true
	return nil
}

// ClearToken removes both token keys and the must-change-password flag.
func (s *Store) ClearToken(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return kv.NewSQLiteRepository(tx).Delete(ctx, KeyToken, KeyLegacyToken, KeyMustChangePassword)
	})
	if err != nil {
		return err
	}

	s.token = ""
	s.loaded = true
	return nil
}

func (s *Store) MustChangePassword(ctx context.Context) (bool, error) {
	return kv.GetBool(ctx, s.repo, KeyMustChangePassword)
}

func (s *Store) SetMustChangePassword(ctx context.Context, v bool) error {
	return kv.SetBool(ctx, s.repo, KeyMustChangePassword, v)
}

func (s *Store) ClearMustChangePassword(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyMustChangePassword)
}

// AuthUser returns the cached user, if any.
func (s *Store) AuthUser(ctx context.Context) (User, bool, error) {
	var u User
	ok, err := kv.GetJSON(ctx, s.repo, KeyAuthUser, &u)
	if err != nil || !ok {
		return User{}, false, err
	}
	return u, true, nil
}

func (s *Store) SaveAuthUser(ctx context.Context, u User) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	return kv.SetJSON(ctx, s.repo, KeyAuthUser, u)
}

func (s *Store) ClearAuthUser(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyAuthUser)
}

// SetLoginMessage queues a message for the next login screen. Blank messages
// are ignored.
func (s *Store) SetLoginMessage(ctx context.Context, msg string) error {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return nil
	}
	return kv.SetString(ctx, s.repo, KeyLoginMessage, msg)
}

// TakeLoginMessage returns the queued message and removes it.
func (s *Store) TakeLoginMessage(ctx context.Context) (string, error) {
	var msg string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		v, err := kv.GetString(ctx, repo, KeyLoginMessage)
		if err != nil {
			return err
		}
		msg = v
		return repo.Delete(ctx, KeyLoginMessage)
	})
	return msg, err
}
