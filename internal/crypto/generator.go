package crypto

import (
	"errors"
	"fmt"
	"strings"
)

const (
	letterChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()_+"

	// DefaultLength matches the initial value of the password length slider.
	DefaultLength = 8
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrIndexOutOfRange      = errors.New("random source returned index out of range")
)

// Config selects the password length and which optional character sets
// are appended to the always-present Latin letters.
type Config struct {
	Length  int
	Digits  bool
	Symbols bool
}

// DefaultConfig returns the letters-only configuration of length DefaultLength.
func DefaultConfig() Config {
	return Config{Length: DefaultLength}
}

// Validate reports whether the configuration can produce a password.
func (c Config) Validate() error {
	if c.Length < 1 {
		return fmt.Errorf("%w: length must be at least 1, got %d", ErrInvalidConfiguration, c.Length)
	}
	return nil
}

// Alphabet returns the ordered characters eligible for cfg: letters, then
// digits if enabled, then symbols if enabled.
func Alphabet(cfg Config) string {
	var sb strings.Builder
	sb.Grow(len(letterChars) + len(digitChars) + len(symbolChars))

	sb.WriteString(letterChars)
	if cfg.Digits {
		sb.WriteString(digitChars)
	}
	if cfg.Symbols {
		sb.WriteString(symbolChars)
	}
	return sb.String()
}

// Generate draws cfg.Length characters uniformly from Alphabet(cfg) using rng.
// The result always has exactly cfg.Length characters. On error the returned
// string is empty.
func Generate(cfg Config, rng RandomSource) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	alphabet := Alphabet(cfg)
	result := make([]byte, cfg.Length)

	for i := range result {
		idx, err := rng.Intn(len(alphabet))
		if err != nil {
			return "", fmt.Errorf("drawing index: %w", err)
		}
		if idx < 0 || idx >= len(alphabet) {
			return "", fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, idx, len(alphabet))
		}
		result[i] = alphabet[idx]
	}

	return string(result), nil
}
