package decision

import "fmt"

// BehaviorWeights holds the normalized behavioral traits driving a player's
// decision procedure, plus the three blend coefficients that mix the role,
// tactical, and situational contributions into the final confidence. All
// fields are immutable for the duration of a match.
type BehaviorWeights struct {
	Aggression         float64 `json:"aggression"`
	Positioning        float64 `json:"positioning"`
	Technique          float64 `json:"technique"`
	WorkRate           float64 `json:"work_rate"`
	DefensiveAwareness float64 `json:"defensive_awareness"`
	Creativity         float64 `json:"creativity"`
	RiskTaking         float64 `json:"risk_taking"`

	RoleBlend      float64 `json:"role_blend"`
	TacticalBlend  float64 `json:"tactical_blend"`
	SituationBlend float64 `json:"situation_blend"`
}

// DefaultWeights returns the baseline weights for a role. Callers may
// override individual traits from player stats before match setup; the
// blend coefficients are fixed per role archetype.
func DefaultWeights(role PlayerRole) BehaviorWeights {
	w := BehaviorWeights{
		RoleBlend:      0.5,
		TacticalBlend:  0.3,
		SituationBlend: 0.2,
	}

	switch role {
	case RoleCenterBack:
		w.Aggression = 0.55
		w.Positioning = 0.85
		w.Technique = 0.45
		w.WorkRate = 0.6
		w.DefensiveAwareness = 0.9
		w.Creativity = 0.25
		w.RiskTaking = 0.15
	case RoleFullBack:
		w.Aggression = 0.5
		w.Positioning = 0.7
		w.Technique = 0.55
		w.WorkRate = 0.85
		w.DefensiveAwareness = 0.75
		w.Creativity = 0.4
		w.RiskTaking = 0.35
	case RoleDefensiveMid:
		w.Aggression = 0.6
		w.Positioning = 0.8
		w.Technique = 0.6
		w.WorkRate = 0.8
		w.DefensiveAwareness = 0.85
		w.Creativity = 0.4
		w.RiskTaking = 0.2
	case RoleCentralMid:
		w.Aggression = 0.45
		w.Positioning = 0.7
		w.Technique = 0.75
		w.WorkRate = 0.8
		w.DefensiveAwareness = 0.6
		w.Creativity = 0.65
		w.RiskTaking = 0.45
	case RoleAttackingMid:
		w.Aggression = 0.35
		w.Positioning = 0.6
		w.Technique = 0.85
		w.WorkRate = 0.65
		w.DefensiveAwareness = 0.35
		w.Creativity = 0.9
		w.RiskTaking = 0.65
	case RoleWinger:
		w.Aggression = 0.4
		w.Positioning = 0.55
		w.Technique = 0.8
		w.WorkRate = 0.75
		w.DefensiveAwareness = 0.3
		w.Creativity = 0.75
		w.RiskTaking = 0.75
	case RoleStriker:
		w.Aggression = 0.6
		w.Positioning = 0.75
		w.Technique = 0.8
		w.WorkRate = 0.6
		w.DefensiveAwareness = 0.2
		w.Creativity = 0.6
		w.RiskTaking = 0.7
	}

	return w
}

// Validate returns every problem with the weights at once so that match
// setup can report a complete picture instead of failing field by field.
func (w BehaviorWeights) Validate() []error {
	var errs []error

	check := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("weight %s out of range [0,1]: %v", name, v))
		}
	}

	check("aggression", w.Aggression)
	check("positioning", w.Positioning)
	check("technique", w.Technique)
	check("work_rate", w.WorkRate)
	check("defensive_awareness", w.DefensiveAwareness)
	check("creativity", w.Creativity)
	check("risk_taking", w.RiskTaking)
	check("role_blend", w.RoleBlend)
	check("tactical_blend", w.TacticalBlend)
	check("situation_blend", w.SituationBlend)

	return errs
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
