package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashLines reduces a canonically ordered sequence of log lines to a single
// hex-encoded SHA-256 digest. Callers are responsible for producing the lines
// in a fixed, reproducible order; the digest is then stable across
// re-executions and suitable for on-chain anchoring.
func HashLines(lines []string) string {
	h := sha256.New()
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ReplayVerification is the outcome of comparing a recomputed decision-log
// hash against a previously recorded one. A mismatch is a result, not an
// error: the caller decides remediation.
type ReplayVerification struct {
	Match        bool   `json:"match"`
	RecordedHash string `json:"recorded_hash"`
	ComputedHash string `json:"computed_hash"`
}

// VerifyReplay compares a recorded hash with a recomputed one. Comparison is
// case-insensitive on the hex encoding.
func VerifyReplay(recordedHash, computedHash string) ReplayVerification {
	return ReplayVerification{
		Match:        strings.EqualFold(recordedHash, computedHash),
		RecordedHash: recordedHash,
		ComputedHash: computedHash,
	}
}
