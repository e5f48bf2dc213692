// Package auth provides a small email/password account service backing the
// orderboard builder. Accounts live in a pluggable store and passwords are
// hashed with bcrypt.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email or password do not match.
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	// ErrUserExists is returned when signing up with a taken email.
	ErrUserExists = errors.New("auth: user already exists")
	// ErrMissingCredentials is returned when email or password are empty.
	ErrMissingCredentials = errors.New("auth: email and password are required")
)

// User is the public account identity.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Account is the stored form of a user, password hash included.
type Account struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// AccountStore persists accounts.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (Account, bool, error)
	Save(ctx context.Context, account Account) error
}

// Options configures the Service.
type Options struct {
	Store AccountStore
	Cost  int
}

// Service implements sign up, sign in, and sign out.
type Service struct {
	store AccountStore
	cost  int

	mu       sync.RWMutex
	sessions map[string]User
	newID    func() string
}

// NewService builds a Service with safe defaults.
func NewService(opts Options) *Service {
	if opts.Store == nil {
		opts.Store = NewMemoryStore()
	}
	if opts.Cost == 0 {
		opts.Cost = bcrypt.DefaultCost
	}
	return &Service{
		store:    opts.Store,
		cost:     opts.Cost,
		sessions: make(map[string]User),
		newID:    uuid.NewString,
	}
}

// SignUp creates an account and opens a session. Emails are unique,
// case-insensitive.
func (s *Service) SignUp(ctx context.Context, email, password string) (User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, "", ErrMissingCredentials
	}
	if _, found, err := s.store.FindByEmail(ctx, email); err != nil {
		return User{}, "", err
	} else if found {
		return User{}, "", ErrUserExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, "", err
	}
	account := Account{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.store.Save(ctx, account); err != nil {
		return User{}, "", err
	}
	user := User{ID: account.ID, Email: account.Email}
	return user, s.openSession(user), nil
}

// SignIn checks credentials and opens a session.
func (s *Service) SignIn(ctx context.Context, email, password string) (User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, "", ErrMissingCredentials
	}
	account, found, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return User{}, "", err
	}
	if !found {
		return User{}, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return User{}, "", ErrInvalidCredentials
	}
	user := User{ID: account.ID, Email: account.Email}
	return user, s.openSession(user), nil
}

// SignOut drops the session token. Unknown tokens are a no-op.
func (s *Service) SignOut(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// SessionUser resolves a session token back to its user.
func (s *Service) SessionUser(token string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.sessions[token]
	return user, ok
}

func (s *Service) openSession(user User) string {
	token := s.newID()
	s.mu.Lock()
	s.sessions[token] = user
	s.mu.Unlock()
	return token
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
