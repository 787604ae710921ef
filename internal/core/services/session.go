package services

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/foliocms/folio-core/internal/core/domain"
	"github.com/foliocms/folio-core/internal/core/ports/driven"
	"github.com/foliocms/folio-core/internal/core/ports/driving"
)

// Ensure sessionService implements SessionService
var _ driving.SessionService = (*sessionService)(nil)

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "password123"
	DefaultLoginDelay    = 500 * time.Millisecond
	DefaultSessionTTL    = 24 * time.Hour

	// adminUserID is the fixed id of the single configured account
	adminUserID = "1"
)

// sessionService implements the SessionService interface.
// It guards admin access with one configured credential pair.
type sessionService struct {
	store        driven.KeyValueStore
	authAdapter  driven.AuthAdapter
	notifier     *Notifier
	logger       *slog.Logger
	username     string
	passwordHash string
	loginDelay   time.Duration
	tokenTTL     time.Duration
	now          func() time.Time

	mu      sync.Mutex
	session *domain.Session

	// emitMu is taken before mu is released, so login and logout events
	// follow the order the session changed in
	emitMu sync.Mutex
}

// SessionServiceConfig holds configuration for the session service.
type SessionServiceConfig struct {
	Store      driven.KeyValueStore
	Auth       driven.AuthAdapter
	Notifier   *Notifier    // Optional: shared change notifier
	Logger     *slog.Logger // Optional: defaults to slog.Default()
	Username   string       // default: admin
	Password   string       // default: password123, hashed at construction
	LoginDelay time.Duration
	TokenTTL   time.Duration // default: 24h
	Clock      func() time.Time
}

// NewSessionService creates a new SessionService. A negative LoginDelay
// disables the artificial login latency.
func NewSessionService(cfg SessionServiceConfig) (driving.SessionService, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = NewNotifier(logger)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	username := cfg.Username
	if username == "" {
		username = DefaultAdminUsername
	}
	password := cfg.Password
	if password == "" {
		password = DefaultAdminPassword
	}
	hash, err := cfg.Auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	delay := cfg.LoginDelay
	switch {
	case delay == 0:
		delay = DefaultLoginDelay
	case delay < 0:
		delay = 0
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &sessionService{
		store:        cfg.Store,
		authAdapter:  cfg.Auth,
		notifier:     notifier,
		logger:       logger.With("store", domain.StoreSession),
		username:     username,
		passwordHash: hash,
		loginDelay:   delay,
		tokenTTL:     ttl,
		now:          clock,
	}, nil
}

// Load restores a persisted, unexpired session. Anything else means no session.
func (s *sessionService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Get(ctx, domain.KeySession)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("failed to read session, starting signed out", "error", err)
		}
		return
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		s.logger.Warn("stored session unusable, starting signed out", "error", err)
		s.removeLocked(ctx)
		return
	}
	if session.IsExpired(s.now()) {
		s.logger.Info("stored session expired")
		s.removeLocked(ctx)
		return
	}
	s.session = &session
}

// Login waits the configured delay, then checks the credentials. A failed
// attempt also ends any existing session.
func (s *sessionService) Login(ctx context.Context, username, password string) (*domain.LoginResponse, error) {
	if err := sleep(ctx, s.loginDelay); err != nil {
		return nil, err
	}

	if !s.credentialsMatch(username, password) {
		s.mu.Lock()
		hadSession := s.session != nil
		s.session = nil
		s.removeLocked(ctx)
		s.emitMu.Lock()
		s.mu.Unlock()

		if hadSession {
			s.publish(ctx, domain.ChangeLogout)
		}
		s.emitMu.Unlock()
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	user := domain.User{ID: adminUserID, Username: username, Role: domain.RoleAdmin}
	sessionID := uuid.NewString()

	token, err := s.authAdapter.GenerateToken(&domain.TokenClaims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		SessionID: sessionID,
		IssuedAt:  now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	session := &domain.Session{
		ID:        sessionID,
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	if err := s.store.Set(ctx, domain.KeySession, data); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("persist session: %w", err)
	}
	s.session = session
	s.emitMu.Lock()
	s.mu.Unlock()

	s.publish(ctx, domain.ChangeLogin)
	s.emitMu.Unlock()
	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      &user,
	}, nil
}

// Logout ends the current session in memory and in the backing store
func (s *sessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = nil
	err := s.store.Remove(ctx, domain.KeySession)
	s.emitMu.Lock()
	s.mu.Unlock()
	defer s.emitMu.Unlock()

	if err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	s.publish(ctx, domain.ChangeLogout)
	return nil
}

// IsAuthenticated reports whether an unexpired session is active
func (s *sessionService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked() != nil
}

// Current returns the signed-in user, or nil
func (s *sessionService) Current() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.activeLocked()
	if session == nil {
		return nil
	}
	user := session.User
	return &user
}

// ValidateToken checks that a token parses, has not expired and belongs
// to the active session
func (s *sessionService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if s.now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil || s.session.ID != claims.SessionID {
		return nil, domain.ErrSessionNotFound
	}
	if s.session.IsExpired(s.now()) {
		return nil, domain.ErrTokenExpired
	}

	return &domain.AuthContext{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Role:      claims.Role,
		SessionID: claims.SessionID,
	}, nil
}

// Subscribe registers for login and logout events
func (s *sessionService) Subscribe(buffer int) (<-chan domain.ChangeEvent, func()) {
	return s.notifier.Subscribe(buffer, domain.StoreSession)
}

func (s *sessionService) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := s.authAdapter.VerifyPassword(password, s.passwordHash)
	return userOK && passOK
}

func (s *sessionService) activeLocked() *domain.Session {
	if s.session == nil || s.session.IsExpired(s.now()) {
		return nil
	}
	return s.session
}

func (s *sessionService) removeLocked(ctx context.Context) {
	if err := s.store.Remove(ctx, domain.KeySession); err != nil {
		s.logger.Warn("failed to clear stored session", "error", err)
	}
}

func (s *sessionService) publish(ctx context.Context, kind domain.ChangeKind) {
	s.notifier.Publish(ctx, domain.ChangeEvent{
		Store: domain.StoreSession,
		Kind:  kind,
		At:    s.now(),
	})
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
