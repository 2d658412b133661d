package decision

import "math"

// Side identifies which team a value refers to.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	SideNone Side = "none"
)

// Vec2 is a pitch-plane position or velocity in millimeters (per second for
// velocities). X runs along the length of the pitch, Y across it.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the euclidean distance between two points.
func (v Vec2) Dist(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// GameSituation is the read-only snapshot the external simulation hands the
// decision engine once per decision cycle. It is a per-player view: player
// fields describe the player whose decision is being computed.
type GameSituation struct {
	BallPosition Vec2 `json:"ball_position"`
	BallVelocity Vec2 `json:"ball_velocity"`

	PossessionSide Side `json:"possession_side"`
	PlayerSide     Side `json:"player_side"`

	PlayerPosition Vec2 `json:"player_position"`
	PlayerHasBall  bool `json:"player_has_ball"`

	// AttackSign is +1 when the player's team attacks toward increasing X,
	// -1 otherwise.
	AttackSign float64 `json:"attack_sign"`

	ClockSeconds float64 `json:"clock_seconds"`
	ScoreFor     int     `json:"score_for"`
	ScoreAgainst int     `json:"score_against"`

	PressureLevel         float64 `json:"pressure_level"`          // [0,1]
	DefensiveLineDepth    float64 `json:"defensive_line_depth"`    // mm from own goal line
	FormationCompactness  float64 `json:"formation_compactness"`   // [0,1]
	NearestOpponentDistMM float64 `json:"nearest_opponent_dist_mm"`
	DistToOpponentGoalMM  float64 `json:"dist_to_opponent_goal_mm"`
}

// Proximity thresholds for the coarse assessment, in millimeters.
const (
	nearBallRadiusMM  = 3000.0
	tightMarkRadiusMM = 2000.0
	shootingRangeMM   = 25000.0
)

// assessment is the coarse read of a situation shared by every role
// procedure. Deriving it once keeps the role trees small and keeps the
// thresholds in one place.
type assessment struct {
	nearBall        bool
	hasBall         bool
	underPressure   bool
	inPossession    bool
	opponentThreat  float64 // [0,1]
	spacingPriority float64 // [0,1]
}

func assess(s GameSituation) assessment {
	a := assessment{
		hasBall:      s.PlayerHasBall,
		nearBall:     s.PlayerPosition.Dist(s.BallPosition) <= nearBallRadiusMM,
		inPossession: s.PossessionSide == s.PlayerSide,
	}

	a.underPressure = s.PressureLevel > 0.6 || s.NearestOpponentDistMM < tightMarkRadiusMM

	// Threat rises with opponent possession and pressure, eases when ahead.
	threat := s.PressureLevel
	if !a.inPossession && s.PossessionSide != SideNone {
		threat += 0.3
	}
	if s.ScoreFor < s.ScoreAgainst {
		threat += 0.1
	}
	a.opponentThreat = clamp01(threat)

	a.spacingPriority = clamp01(1 - s.FormationCompactness)

	return a
}

// situationScore condenses the snapshot into the [0,1] situational input of
// the confidence blend: comfortable, low-pressure situations score high.
func situationScore(s GameSituation, a assessment) float64 {
	score := 1 - s.PressureLevel
	if a.inPossession {
		score += 0.2
	}
	if a.underPressure {
		score -= 0.2
	}
	return clamp01(score)
}

// urgency grows with pressure, a trailing scoreline, and the clock.
func urgency(s GameSituation, a assessment) float64 {
	u := 0.3*s.PressureLevel + 0.3*a.opponentThreat

	if s.ScoreFor < s.ScoreAgainst {
		// Chasing the game: ramp with elapsed time over a 90 minute match.
		u += 0.3 * clamp01(s.ClockSeconds/5400)
	}

	return clamp01(u)
}
