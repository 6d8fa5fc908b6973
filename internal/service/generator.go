package service

import (
	"errors"
	"fmt"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/metrics"
	"github.com/vaultpass/passgen-go/internal/model"
)

var ErrLengthTooLong = errors.New("password length exceeds maximum")

// Limits bounds what callers may request. The generator itself only
// requires a positive length.
type Limits struct {
	DefaultLength int
	MaxLength     int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		DefaultLength: crypto.DefaultLength,
		MaxLength:     1024,
	}
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	rng     crypto.RandomSource
	limits  Limits
	metrics *metrics.Metrics
}

// NewGeneratorService creates a new GeneratorService drawing from rng.
func NewGeneratorService(rng crypto.RandomSource, limits Limits, m *metrics.Metrics) *GeneratorService {
	if limits.DefaultLength <= 0 {
		limits.DefaultLength = crypto.DefaultLength
	}
	return &GeneratorService{rng: rng, limits: limits, metrics: m}
}

// Generate produces a password based on the given request.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	cfg := crypto.Config{
		Length:  req.Length,
		Digits:  boolOrDefault(req.Numbers, false),
		Symbols: boolOrDefault(req.Symbols, false),
	}

	if cfg.Length == 0 {
		cfg.Length = s.limits.DefaultLength
	}

	password, err := s.generate(cfg)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	return model.GenerateResponse{
		Password:     password,
		Length:       len(password),
		AlphabetSize: len(crypto.Alphabet(cfg)),
	}, nil
}

// Password generates a single password for cfg within the service limits.
func (s *GeneratorService) Password(cfg crypto.Config) (string, error) {
	return s.generate(cfg)
}

// generate is the single path through which every password is produced.
func (s *GeneratorService) generate(cfg crypto.Config) (string, error) {
	if s.limits.MaxLength > 0 && cfg.Length > s.limits.MaxLength {
		s.metrics.ObserveFailure("too_long")
		return "", fmt.Errorf("%w: %d > %d", ErrLengthTooLong, cfg.Length, s.limits.MaxLength)
	}

	password, err := crypto.Generate(cfg, s.rng)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidConfiguration) {
			s.metrics.ObserveFailure("invalid_configuration")
		} else {
			s.metrics.ObserveFailure("random_source")
		}
		return "", err
	}

	s.metrics.ObserveGenerated(cfg.Length, cfg.Digits, cfg.Symbols)
	return password, nil
}

// IsValidationError reports whether err was caused by the caller's input.
func IsValidationError(err error) bool {
	return errors.Is(err, crypto.ErrInvalidConfiguration) ||
		errors.Is(err, ErrLengthTooLong)
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
