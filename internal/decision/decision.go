package decision

import (
	"fmt"
	"time"
)

// ActionType is the closed set of discrete actions a decision can produce.
type ActionType string

const (
	ActionMove     ActionType = "move"
	ActionPass     ActionType = "pass"
	ActionShoot    ActionType = "shoot"
	ActionPress    ActionType = "press"
	ActionMark     ActionType = "mark"
	ActionPosition ActionType = "position"
)

// Difficulty scales decision quality for the whole match.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether the difficulty is one of the known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// apply scales confidence and intensity for the difficulty level. Medium is
// the identity; the products are clamped to 1.
func (d Difficulty) apply(dec *AIDecision) {
	switch d {
	case DifficultyEasy:
		dec.Confidence = clamp01(dec.Confidence * 0.7)
		dec.Intensity = clamp01(dec.Intensity * 0.8)
	case DifficultyHard:
		dec.Confidence = clamp01(dec.Confidence * 1.3)
		dec.Intensity = clamp01(dec.Intensity * 1.2)
	}
}

// AIDecision is one player's discrete action for one decision cycle. It is
// immutable once created; every field except Timestamp is a pure function of
// (situation, weights, seed) and participates in the replay hash.
type AIDecision struct {
	PlayerID string     `json:"player_id"`
	Cycle    uint64     `json:"cycle"`
	Action   ActionType `json:"action"`
	Target   *Vec2      `json:"target,omitempty"`

	Intensity  float64 `json:"intensity"`  // [0,1]
	Urgency    float64 `json:"urgency"`    // [0,1]
	Confidence float64 `json:"confidence"` // [0,1]

	Reasoning string    `json:"reasoning"`
	Timestamp time.Time `json:"timestamp"`
	Seed      string    `json:"seed"`
}

// canonicalLine renders the hash-relevant fields in a fixed format. The
// timestamp is deliberately excluded: it is the only field allowed to differ
// between re-executions.
func (d AIDecision) canonicalLine() string {
	tx, ty := "-", "-"
	if d.Target != nil {
		tx = fmt.Sprintf("%.3f", d.Target.X)
		ty = fmt.Sprintf("%.3f", d.Target.Y)
	}
	return fmt.Sprintf("%s|%d|%s|%s|%s|%.6f|%.6f|%.6f|%s",
		d.PlayerID, d.Cycle, d.Action, tx, ty,
		d.Intensity, d.Urgency, d.Confidence, d.Seed)
}
