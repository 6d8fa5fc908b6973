package service

import (
	"sync"
	"time"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
)

// Session owns a mutable generation config and the password last produced
// from it. Every change to the config regenerates the password; a change
// that fails leaves both untouched.
type Session struct {
	mu          sync.Mutex
	id          string
	cfg         crypto.Config
	password    string
	generations int
	updatedAt   time.Time
	gen         *GeneratorService
}

// NewSession creates a session for cfg and generates its first password.
func (s *GeneratorService) NewSession(id string, cfg crypto.Config) (*Session, error) {
	sess := &Session{id: id, gen: s}
	if err := sess.apply(cfg, true); err != nil {
		return nil, err
	}
	return sess, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Password returns the current password.
func (s *Session) Password() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.password
}

// Config returns the current configuration.
func (s *Session) Config() crypto.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SetLength changes the length, regenerating if it differs.
func (s *Session) SetLength(n int) error {
	return s.Update(model.SessionRequest{Length: &n})
}

// SetDigits toggles digits, regenerating if the value differs.
func (s *Session) SetDigits(on bool) error {
	return s.Update(model.SessionRequest{Numbers: &on})
}

// SetSymbols toggles symbols, regenerating if the value differs.
func (s *Session) SetSymbols(on bool) error {
	return s.Update(model.SessionRequest{Symbols: &on})
}

// Update applies every non-nil field of req at once.
func (s *Session) Update(req model.SessionRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cfg
	if req.Length != nil {
		next.Length = *req.Length
	}
	if req.Numbers != nil {
		next.Digits = *req.Numbers
	}
	if req.Symbols != nil {
		next.Symbols = *req.Symbols
	}

	return s.apply(next, next != s.cfg)
}

// Regenerate draws a new password with the current config.
func (s *Session) Regenerate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(s.cfg, true)
}

// Snapshot returns the session state for API responses.
func (s *Session) Snapshot() model.SessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.SessionResponse{
		ID:          s.id,
		Password:    s.password,
		Length:      s.cfg.Length,
		Numbers:     s.cfg.Digits,
		Symbols:     s.cfg.Symbols,
		Generations: s.generations,
		UpdatedAt:   s.updatedAt,
	}
}

// apply must be called with mu held.
func (s *Session) apply(cfg crypto.Config, regenerate bool) error {
	if !regenerate {
		return nil
	}

	password, err := s.gen.generate(cfg)
	if err != nil {
		return err
	}

	s.cfg = cfg
	s.password = password
	s.generations++
	s.updatedAt = time.Now().UTC()
	return nil
}
