package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
	"sync"

	"golang.org/x/crypto/chacha20"
)

const (
	SourceCrypto = "crypto"
	SourceMath   = "math"
	SourceChaCha = "chacha"
)

var (
	ErrUnknownSource = errors.New("unknown random source")
	ErrInvalidBound  = errors.New("random bound out of range")
)

// RandomSource supplies uniformly distributed integers in [0, n).
// Implementations must be safe for concurrent use.
type RandomSource interface {
	Intn(n int) (int, error)
}

// NewSource returns the source registered under kind. The seed is only used
// by the deterministic chacha source.
func NewSource(kind string, seed uint64) (RandomSource, error) {
	switch kind {
	case "", SourceCrypto:
		return CryptoSource{}, nil
	case SourceMath:
		return MathSource{}, nil
	case SourceChaCha:
		return NewChaChaSource(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, kind)
	}
}

// CryptoSource draws from crypto/rand.
type CryptoSource struct{}

func (CryptoSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidBound
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// MathSource draws from the math/rand/v2 global generator. It is fast but
// not suitable for credentials.
type MathSource struct{}

func (MathSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidBound
	}
	return mrand.IntN(n), nil
}

// ChaChaSource is a deterministic source: two sources built from the same
// seed yield the same sequence of draws.
type ChaChaSource struct {
	mu     sync.Mutex
	cipher *chacha20.Cipher
	buf    [4]byte
}

// NewChaChaSource keys a ChaCha20 stream with seed.
func NewChaChaSource(seed uint64) *ChaChaSource {
	key := make([]byte, chacha20.KeySize)
	binary.LittleEndian.PutUint64(key, seed)
	nonce := make([]byte, chacha20.NonceSize)

	// Only fails on bad key or nonce sizes.
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		panic(err)
	}
	return &ChaChaSource{cipher: c}
}

func (s *ChaChaSource) Intn(n int) (int, error) {
	if n <= 0 || uint64(n) > 1<<32 {
		return 0, ErrInvalidBound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Reject values from the incomplete final bucket so every index is equally likely.
	bound := uint64(n)
	limit := (1 << 32) - (1<<32)%bound
	for {
		s.buf = [4]byte{}
		s.cipher.XORKeyStream(s.buf[:], s.buf[:])
		v := uint64(binary.LittleEndian.Uint32(s.buf[:]))
		if v < limit {
			return int(v % bound), nil
		}
	}
}
