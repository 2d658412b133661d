package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"math"
)

// ByteGenerator produces a deterministic byte stream from the match seed
// using HMAC-SHA256. Every consumer of in-match randomness draws from a
// stream keyed by (matchSeed, playerID, cycle) so that independent
// re-executions (client replay, authoritative server, verifier) observe
// byte-identical values.
type ByteGenerator struct {
	matchSeed    string
	playerID     string
	cycle        uint64
	currentRound uint64
	currentPos   int
	buffer       [32]byte
}

// NewByteGenerator creates a generator positioned at the given cursor.
func NewByteGenerator(matchSeed, playerID string, cycle uint64, cursor uint64) *ByteGenerator {
	bg := &ByteGenerator{
		matchSeed:    matchSeed,
		playerID:     playerID,
		cycle:        cycle,
		currentRound: cursor / 32,
		currentPos:   int(cursor % 32),
	}

	bg.generateRound()

	return bg
}

// Next returns the next byte from the stream.
func (bg *ByteGenerator) Next() byte {
	if bg.currentPos >= 32 {
		bg.currentRound++
		bg.currentPos = 0
		bg.generateRound()
	}

	b := bg.buffer[bg.currentPos]
	bg.currentPos++
	return b
}

// NextFloat consumes exactly 4 bytes and returns a float in [0, 1).
func (bg *ByteGenerator) NextFloat() float64 {
	b0 := bg.Next()
	b1 := bg.Next()
	b2 := bg.Next()
	b3 := bg.Next()

	return bytesToFloat([4]byte{b0, b1, b2, b3})
}

func (bg *ByteGenerator) generateRound() {
	h := hmac.New(sha256.New, []byte(bg.matchSeed))
	message := fmt.Sprintf("%s:%d:%d", bg.playerID, bg.cycle, bg.currentRound)
	h.Write([]byte(message))
	copy(bg.buffer[:], h.Sum(nil))
}

// bytesToFloat converts exactly 4 bytes to float64. Each byte contributes
// base-256 fractional digits, so the mapping is exact and portable.
func bytesToFloat(bytes [4]byte) float64 {
	result := 0.0
	for i, b := range bytes {
		divider := math.Pow(256, float64(i+1))
		result += float64(b) / divider
	}
	return result
}

// Floats generates count floats for the given player and decision cycle.
func Floats(matchSeed, playerID string, cycle uint64, cursor uint64, count int) []float64 {
	bg := NewByteGenerator(matchSeed, playerID, cycle, cursor)
	floats := make([]float64, count)

	for i := 0; i < count; i++ {
		floats[i] = bg.NextFloat()
	}

	return floats
}
