package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"time"
	"unicode/utf16"

	"go-scoundrel/entities"

	"golang.org/x/exp/rand"
)

// RandomSource yields uniform indexes in [0, n).
type RandomSource interface {
	Intn(n int) int
}

// NewRandom returns a PCG-backed source seeded from crypto/rand.
func NewRandom() RandomSource {
	var b [8]byte
	seed := uint64(time.Now().UnixNano())
	if _, err := crand.Read(b[:]); err == nil {
		seed = binary.LittleEndian.Uint64(b[:])
	}
	return rand.New(rand.NewSource(seed))
}

// Shuffle returns a Fisher-Yates permutation of deck; the input is untouched.
func Shuffle(deck []entities.Card, src RandomSource) []entities.Card {
	out := make([]entities.Card, len(deck))
	copy(out, deck)
	for i := len(out) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// SeededShuffle shuffles deck with a generator derived from seed. The same
// seed always yields the same order.
func SeededShuffle(deck []entities.Card, seed string) []entities.Card {
	return Shuffle(deck, NewSeededRandom(seed))
}

// HashSeed folds a seed string into 32 bits with h = h*31 + c over its
// UTF-16 code units, wrapping on overflow.
func HashSeed(seed string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(seed)) {
		h = h*31 + int32(c)
	}
	return h
}

// Mulberry32 is a small 32-bit generator. Its output sequence is fixed by
// the seed so daily decks can be reproduced by any implementation.
type Mulberry32 struct {
	state uint32
}

func NewSeededRandom(seed string) *Mulberry32 {
	return &Mulberry32{state: uint32(HashSeed(seed))}
}

// Float64 returns the next value in [0, 1).
func (m *Mulberry32) Float64() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296.0
}

func (m *Mulberry32) Intn(n int) int {
	return int(m.Float64() * float64(n))
}

// DailySeed is the calendar date of t, used verbatim as the daily seed.
func DailySeed(t time.Time) string {
	return t.Format("2006-01-02")
}
