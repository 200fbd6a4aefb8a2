// Package entropy provides the dice used by matches. Dice are seeded so a
// match can be replayed; an unseeded set draws its seed from crypto/rand.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	mrand "math/rand"
)

// Faces on each die.
const Faces = 6

// Dice is a pair of six-sided dice. Not safe for concurrent use.
type Dice struct {
	seed int64
	rng  *mrand.Rand
}

// NewDice returns dice seeded with seed, or with a crypto seed when seed
// is 0.
func NewDice(seed int64) *Dice {
	if seed == 0 {
		seed = CryptoSeed()
	}
	return &Dice{seed: seed, rng: mrand.New(mrand.NewSource(seed))}
}

// Seed returns the seed the dice were created with.
func (d *Dice) Seed() int64 { return d.seed }

// Roll throws both dice and returns the sum, 2..12.
func (d *Dice) Roll() int {
	return d.rng.Intn(Faces) + d.rng.Intn(Faces) + 2
}

// Intn returns a uniform integer in [0, n).
func (d *Dice) Intn(n int) int {
	return d.rng.Intn(n)
}

// CryptoSeed returns a non-zero seed from crypto/rand.
func CryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen; fall back to the global source.
		slog.Debug("crypto seed failed", "error", err)
		return mrand.Int63() | 1
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}
