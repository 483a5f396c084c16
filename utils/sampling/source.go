// Package sampling implements a deterministic, keyed source of
// pseudo-random bytes based on the blake2b XOF.
package sampling

import (
	"crypto/rand"
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// KeySize is the size in bytes of a [Source] seed.
const KeySize = 32

// Source is a deterministic pseudo-random number generator seeded with
// a key. Two Sources instantiated with the same key produce the same
// stream of values. A Source is not safe for concurrent use; derive an
// independent Source per goroutine with [Source.NewSource].
type Source struct {
	key [KeySize]byte
	xof blake2b.XOF
}

// NewSource instantiates a new [Source] from a key.
func NewSource(key [KeySize]byte) *Source {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key[:])
	if err != nil {
		// blake2b.NewXOF only fails on invalid key sizes
		panic(err)
	}
	return &Source{key: key, xof: xof}
}

// NewSeed samples a fresh random key from crypto/rand.
func NewSeed() (key [KeySize]byte) {
	if _, err := rand.Read(key[:]); err != nil {
		panic(err)
	}
	return
}

// Key returns the key used to seed the Source.
func (s *Source) Key() [KeySize]byte {
	return s.key
}

// NewSource derives a new, independent [Source] from the stream of the
// receiver.
func (s *Source) NewSource() *Source {
	var key [KeySize]byte
	if _, err := s.xof.Read(key[:]); err != nil {
		panic(err)
	}
	return NewSource(key)
}

// Reset resets the Source to its initial state.
func (s *Source) Reset() {
	s.xof.Reset()
}

// Read fills p with pseudo-random bytes. It implements io.Reader and
// never returns an error.
func (s *Source) Read(p []byte) (n int, err error) {
	return s.xof.Read(p)
}

// Uint64 returns a uniform uint64.
func (s *Source) Uint64() uint64 {
	var buff [8]byte
	if _, err := s.xof.Read(buff[:]); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(buff[:])
}

// Float64 returns a uniform float64 in [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.Uint64()>>11) * 0x1p-53
}
