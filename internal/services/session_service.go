package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"kickstore/internal/models"
	"kickstore/internal/repositories"

	"github.com/dgrijalva/jwt-go"
)

// AuthNamespace is the storage key of the admin session record.
const AuthNamespace = "kickstore-auth"

// SessionService keeps the locally persisted admin session. It only stores
// what the admin backend issued; it never authenticates anyone itself.
type SessionService struct {
	storage repositories.StateRepository
	state   models.AuthState
	now     func() time.Time
	mu      sync.RWMutex
}

// NewSessionService loads the persisted session. Missing or corrupt records
// yield a signed-out state.
func NewSessionService(ctx context.Context, storage repositories.StateRepository) *SessionService {
	s := &SessionService{storage: storage, now: time.Now}

	raw, err := storage.Load(ctx, AuthNamespace)
	if err != nil {
		if !errors.Is(err, repositories.ErrStateNotFound) {
			log.Printf("Session: failed to load persisted state, starting signed out: %v", err)
		}
		return s
	}
	if err := json.Unmarshal(raw, &s.state); err != nil {
		log.Printf("Session: discarding corrupt persisted state: %v", err)
		s.state = models.AuthState{}
	}
	return s
}

// State returns the current session record.
func (s *SessionService) State() models.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token returns the stored token when the session is still usable.
func (s *SessionService) Token() string {
	if !s.IsAuthenticated() {
		return ""
	}
	return s.State().Token
}

// SetAuth stores a token and username.
func (s *SessionService) SetAuth(ctx context.Context, token, username string) models.AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = models.AuthState{Token: token, Username: username}
	raw, err := json.Marshal(s.state)
	if err != nil {
		log.Printf("Session: failed to encode state: %v", err)
		return s.state
	}
	if err := s.storage.Save(ctx, AuthNamespace, raw); err != nil {
		log.Printf("Session: failed to persist state: %v", err)
	}
	return s.state
}

// Logout clears the session.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = models.AuthState{}
	if err := s.storage.Delete(ctx, AuthNamespace); err != nil && !errors.Is(err, repositories.ErrStateNotFound) {
		log.Printf("Session: failed to delete persisted state: %v", err)
	}
}

// IsAuthenticated reports whether a token is held. JWTs are decoded without
// verification and rejected once their exp claim has passed; opaque tokens
// count as authenticated while present.
func (s *SessionService) IsAuthenticated() bool {
	token := s.State().Token
	if token == "" {
		return false
	}

	parsed, _, err := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return true
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return true
	}
	return claims.VerifyExpiresAt(s.now().Unix(), false)
}
