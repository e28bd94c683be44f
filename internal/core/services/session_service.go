package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kamal-hamza/alib-cli/internal/core/domain"
	"github.com/kamal-hamza/alib-cli/internal/core/ports"
	"github.com/kamal-hamza/alib-cli/pkg/logger"
)

// ErrNotAuthenticated is returned by guarded operations when no user is signed in
var ErrNotAuthenticated = errors.New("not logged in: run 'alib login' first")

// ErrNotAdmin is returned by moderation operations for non-admin users
var ErrNotAdmin = errors.New("this action requires an admin account")

// SessionState is the lifecycle of the auth context
type SessionState int

const (
	SessionUnknown SessionState = iota
	SessionLoading
	SessionAuthenticated
	SessionAnonymous
)

func (s SessionState) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionAuthenticated:
		return "authenticated"
	case SessionAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Session holds the current user and the token lifecycle
type Session struct {
	mu     sync.RWMutex
	auth   ports.AuthAPI
	tokens ports.TokenStore
	log    *logger.Logger
	state  SessionState
	user   *domain.User
}

// NewSession creates a session in the unknown state
func NewSession(auth ports.AuthAPI, tokens ports.TokenStore, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{auth: auth, tokens: tokens, log: log}
}

// Init hydrates the user from a stored token. A token the server rejects
// is cleared and the session becomes anonymous; that is not an error.
func (s *Session) Init(ctx context.Context) error {
	s.setState(SessionLoading, nil)

	token, err := s.tokens.Load()
	if err != nil {
		s.setState(SessionAnonymous, nil)
		return fmt.Errorf("failed to read stored token: %w", err)
	}
	if token == "" {
		s.setState(SessionAnonymous, nil)
		return nil
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		s.log.Warn("stored token rejected", "error", err)
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.log.Error("failed to clear token", "error", clearErr)
		}
		s.setState(SessionAnonymous, nil)
		return nil
	}

	s.setState(SessionAuthenticated, user)
	return nil
}

// Login exchanges credentials for a token, stores it, then loads the user
func (s *Session) Login(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return nil, domain.ValidationErrors{"credentials": "email and password are required"}
	}

	resp, err := s.auth.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if err := s.tokens.Save(resp.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		_ = s.tokens.Clear()
		s.setState(SessionAnonymous, nil)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	s.setState(SessionAuthenticated, user)
	s.log.Info("logged in", "user", user.Email)
	return user, nil
}

// Signup registers an account; the response carries both token and user
func (s *Session) Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Password == "" {
		return nil, domain.ValidationErrors{"credentials": "email and password are required"}
	}

	resp, err := s.auth.Signup(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("signup failed: %w", err)
	}
	if err := s.tokens.Save(resp.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	user := resp.User
	s.setState(SessionAuthenticated, &user)
	s.log.Info("signed up", "user", user.Email)
	return &user, nil
}

// Logout clears the token and user locally
func (s *Session) Logout() error {
	if err := s.tokens.Clear(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	s.setState(SessionAnonymous, nil)
	return nil
}

// State returns the current session state
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the signed-in user, or nil
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// RequireUser guards commands that need a signed-in user
func (s *Session) RequireUser() (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != SessionAuthenticated || s.user == nil {
		return nil, ErrNotAuthenticated
	}
	return s.user, nil
}

// RequireAdmin guards moderation commands
func (s *Session) RequireAdmin() (*domain.User, error) {
	user, err := s.RequireUser()
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return user, nil
}

// TokenExpiry reads the exp claim of the stored token without verifying it.
// ok is false when there is no token or it carries no expiry.
func (s *Session) TokenExpiry() (exp time.Time, ok bool, err error) {
	token, err := s.tokens.Load()
	if err != nil || token == "" {
		return time.Time{}, false, err
	}
	return TokenExpiry(token)
}

// TokenExpiry extracts the exp claim from a JWT for display only
func TokenExpiry(token string) (time.Time, bool, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false, fmt.Errorf("token is not a JWT: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, false, nil
	}
	return exp.Time, true, nil
}

func (s *Session) setState(state SessionState, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
}
