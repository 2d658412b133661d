package rules

// HandballConfig holds the detection thresholds.
type HandballConfig struct {
	// ContactThresholdMM is the maximum hand-to-ball distance counted as a
	// touch.
	ContactThresholdMM float64
	// ArmAngleThresholdDeg is the arm extension beyond which a touch is
	// deliberate.
	ArmAngleThresholdDeg float64
}

// DefaultHandballConfig returns the standard thresholds.
func DefaultHandballConfig() HandballConfig {
	return HandballConfig{
		ContactThresholdMM:   120,
		ArmAngleThresholdDeg: 40,
	}
}

// HandballTouch is the positional snapshot of one suspected handball.
type HandballTouch struct {
	PlayerID             string   `json:"player_id"`
	Frame                uint64   `json:"frame"`
	HandToBallDistMM     float64  `json:"hand_to_ball_dist_mm"`
	ArmExtensionAngleDeg float64  `json:"arm_extension_angle_deg"`
	IntentionalBlock     bool     `json:"intentional_block"`
	InsidePenaltyArea    bool     `json:"inside_penalty_area"`
	Location             Position `json:"location"`
}

// HandballConsequence is the set-piece awarded for a confirmed handball.
type HandballConsequence string

const (
	ConsequenceNone     HandballConsequence = "none"
	ConsequenceFreeKick HandballConsequence = "free_kick"
	ConsequencePenalty  HandballConsequence = "penalty"
)

// HandballResult is the transient classification of one touch. Cards holds
// any card events the rules engine issued for it (a deliberate handball is
// bookable, and a second yellow escalates).
type HandballResult struct {
	IsHandball  bool                `json:"is_handball"`
	Deliberate  bool                `json:"deliberate"`
	Consequence HandballConsequence `json:"consequence"`
	Cards       []CardEvent         `json:"cards,omitempty"`
}

// classifyHandball applies the thresholds without issuing cards.
func (cfg HandballConfig) classifyHandball(t HandballTouch) HandballResult {
	if t.HandToBallDistMM > cfg.ContactThresholdMM {
		return HandballResult{Consequence: ConsequenceNone}
	}

	deliberate := t.IntentionalBlock || t.ArmExtensionAngleDeg > cfg.ArmAngleThresholdDeg

	res := HandballResult{
		IsHandball:  true,
		Deliberate:  deliberate,
		Consequence: ConsequenceFreeKick,
	}
	if deliberate && t.InsidePenaltyArea {
		res.Consequence = ConsequencePenalty
	}
	return res
}
