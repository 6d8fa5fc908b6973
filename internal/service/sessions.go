package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/metrics"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/repository"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionService manages generation sessions held in memory. Stores built
// with NewSessionStore report closed sessions to the metrics.
type SessionService struct {
	gen     *GeneratorService
	store   *repository.SessionStore[*Session]
	metrics *metrics.Metrics
	newID   func() string
}

// NewSessionService creates a new SessionService.
func NewSessionService(gen *GeneratorService, store *repository.SessionStore[*Session], m *metrics.Metrics) *SessionService {
	return &SessionService{
		gen:     gen,
		store:   store,
		metrics: m,
		newID:   uuid.NewString,
	}
}

// Create starts a session. Omitted fields take the defaults of a fresh form:
// the default length with digits and symbols off.
func (s *SessionService) Create(req model.SessionRequest) (model.SessionResponse, error) {
	cfg := crypto.Config{
		Length:  s.gen.limits.DefaultLength,
		Digits:  boolOrDefault(req.Numbers, false),
		Symbols: boolOrDefault(req.Symbols, false),
	}
	if req.Length != nil {
		cfg.Length = *req.Length
	}

	sess, err := s.gen.NewSession(s.newID(), cfg)
	if err != nil {
		return model.SessionResponse{}, err
	}

	s.store.Put(sess.ID(), sess)
	s.metrics.SessionOpened()

	return sess.Snapshot(), nil
}

// Get returns the current state of a session.
func (s *SessionService) Get(id string) (model.SessionResponse, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return model.SessionResponse{}, err
	}
	return sess.Snapshot(), nil
}

// Update changes a session's config, regenerating when anything changed.
func (s *SessionService) Update(id string, req model.SessionRequest) (model.SessionResponse, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return model.SessionResponse{}, err
	}
	if err := sess.Update(req); err != nil {
		return model.SessionResponse{}, err
	}
	return sess.Snapshot(), nil
}

// Regenerate draws a new password for a session without changing its config.
func (s *SessionService) Regenerate(id string) (model.SessionResponse, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return model.SessionResponse{}, err
	}
	if err := sess.Regenerate(); err != nil {
		return model.SessionResponse{}, err
	}
	return sess.Snapshot(), nil
}

// Delete discards a session.
func (s *SessionService) Delete(id string) error {
	err := s.store.Delete(id)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return ErrSessionNotFound
	}
	return err
}

// lookup counts as use: it restarts the session's expiry.
func (s *SessionService) lookup(id string) (*Session, error) {
	sess, err := s.store.Get(id)
	if err == nil {
		err = s.store.Touch(id)
	}
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

// NewSessionStore creates a session store that reports every session
// leaving it, by deletion, expiry or eviction, to m.
func NewSessionStore(capacity int, ttl time.Duration, m *metrics.Metrics) *repository.SessionStore[*Session] {
	return repository.NewSessionStore[*Session](capacity, ttl, func(id string) {
		m.SessionClosed()
		slog.Debug("session closed", "session_id", id)
	})
}
