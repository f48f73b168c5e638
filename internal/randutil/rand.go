// Package randutil centralises how random sources are constructed so that
// every shuffle is either reproducible (seeded) or cryptographically seeded
// per hand, never something in between.
package randutil

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The splitmix finaliser spreads low-entropy seeds (hand numbers, test
// indices) across the full state space.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewSource(int64(mix(u) ^ mix(u+goldenRatio64))))
}

// NewCrypto returns a *rand.Rand seeded from the operating system's
// cryptographic source. Used to seed each hand's shuffle in production.
func NewCrypto() *rand.Rand {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		panic("randutil: crypto source unavailable: " + err.Error())
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(buf[:]))))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
