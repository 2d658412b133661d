package decision

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fairpitch/matchcore/internal/engine"
)

// PlayerSetup binds a player to a role and behavioral weights for a match.
type PlayerSetup struct {
	ID      string
	Role    PlayerRole
	Weights BehaviorWeights
}

// Engine computes one decision per player per decision cycle. All state is
// match-scoped; decisions for a match are computed sequentially in ascending
// player ID order so the decision log serializes identically across
// re-executions.
type Engine struct {
	matchID    string
	seed       string
	difficulty Difficulty
	order      []string
	players    map[string]PlayerSetup
	log        *Log
}

// NewEngine validates the match setup and returns a ready engine. Every
// configuration problem is reported at once; a partially valid setup is
// never accepted.
func NewEngine(matchID, seed string, difficulty Difficulty, players []PlayerSetup) (*Engine, error) {
	var errs []error

	if matchID == "" {
		errs = append(errs, errors.New("match id is required"))
	}
	if seed == "" {
		errs = append(errs, errors.New("deterministic seed is required"))
	}
	if !difficulty.Valid() {
		errs = append(errs, fmt.Errorf("unknown difficulty %q", difficulty))
	}
	if len(players) == 0 {
		errs = append(errs, errors.New("at least one player is required"))
	}

	byID := make(map[string]PlayerSetup, len(players))
	order := make([]string, 0, len(players))
	for _, p := range players {
		if p.ID == "" {
			errs = append(errs, errors.New("player with empty id"))
			continue
		}
		if _, dup := byID[p.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate player id %q", p.ID))
			continue
		}
		if !p.Role.Valid() {
			errs = append(errs, fmt.Errorf("player %s: unknown role %q", p.ID, p.Role))
		}
		for _, werr := range p.Weights.Validate() {
			errs = append(errs, fmt.Errorf("player %s: %w", p.ID, werr))
		}
		byID[p.ID] = p
		order = append(order, p.ID)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("match setup rejected: %w", errors.Join(errs...))
	}

	sort.Strings(order)

	return &Engine{
		matchID:    matchID,
		seed:       seed,
		difficulty: difficulty,
		order:      order,
		players:    byID,
		log:        NewLog(matchID),
	}, nil
}

// Log exposes the append-only decision log for archival and hashing.
func (e *Engine) Log() *Log { return e.log }

// LogHash returns the current replay hash of the decision log.
func (e *Engine) LogHash() string { return e.log.Hash() }

// DecideCycle computes one decision for every player in ascending player ID
// order and appends them to the log. The situations map must contain a
// snapshot for every configured player.
func (e *Engine) DecideCycle(cycle uint64, situations map[string]GameSituation) ([]AIDecision, error) {
	out := make([]AIDecision, 0, len(e.order))
	for _, id := range e.order {
		s, ok := situations[id]
		if !ok {
			return nil, fmt.Errorf("cycle %d: missing situation for player %s", cycle, id)
		}
		d, err := e.Decide(id, cycle, s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Decide computes and logs a single player's decision for a cycle.
func (e *Engine) Decide(playerID string, cycle uint64, s GameSituation) (AIDecision, error) {
	p, ok := e.players[playerID]
	if !ok {
		return AIDecision{}, fmt.Errorf("player %s not part of match %s", playerID, e.matchID)
	}

	d := Decide(p.Role, p.Weights, s, e.seed, playerID, cycle, e.difficulty)
	e.log.Append(d)
	return d, nil
}

// Decide is the pure decision function: identical (situation, weights, seed)
// inputs produce field-identical decisions apart from the timestamp. Any
// randomness is drawn from the seeded stream keyed by (seed, playerID,
// cycle), never from wall-clock or OS entropy.
func Decide(role PlayerRole, w BehaviorWeights, s GameSituation, seed, playerID string, cycle uint64, difficulty Difficulty) AIDecision {
	a := assess(s)
	draw := engine.Floats(seed, playerID, cycle, 0, 2)

	action, target, intensity, confidence, reasoning := roleDecision(role, w, s, a, draw)

	d := AIDecision{
		PlayerID:   playerID,
		Cycle:      cycle,
		Action:     action,
		Target:     target,
		Intensity:  clamp01(intensity),
		Urgency:    urgency(s, a),
		Confidence: clamp01(w.RoleBlend*confidence + w.TacticalBlend*w.Positioning + w.SituationBlend*situationScore(s, a)),
		Reasoning:  reasoning,
		Timestamp:  time.Now().UTC(),
		Seed:       seed,
	}

	difficulty.apply(&d)
	return d
}

// roleDecision dispatches to the role-specific decision tree. Roles are
// validated at setup, so the switch is exhaustive over the closed set.
func roleDecision(role PlayerRole, w BehaviorWeights, s GameSituation, a assessment, draw []float64) (ActionType, *Vec2, float64, float64, string) {
	switch role {
	case RoleCenterBack:
		return decideCenterBack(w, s, a)
	case RoleFullBack:
		return decideFullBack(w, s, a, draw)
	case RoleDefensiveMid:
		return decideDefensiveMid(w, s, a)
	case RoleCentralMid:
		return decideCentralMid(w, s, a, draw)
	case RoleAttackingMid:
		return decideAttackingMid(w, s, a)
	case RoleWinger:
		return decideWinger(w, s, a, draw)
	case RoleStriker:
		return decideStriker(w, s, a)
	}
	// Unreachable for engine-validated setups.
	return ActionPosition, nil, 0.3, 0.3, "unknown role fallback"
}

// forwardPoint is a point distMM ahead of the player along the attack axis.
func forwardPoint(s GameSituation, distMM float64) *Vec2 {
	return &Vec2{X: s.PlayerPosition.X + s.AttackSign*distMM, Y: s.PlayerPosition.Y}
}

func ballPoint(s GameSituation) *Vec2 {
	p := s.BallPosition
	return &p
}

func decideCenterBack(w BehaviorWeights, s GameSituation, a assessment) (ActionType, *Vec2, float64, float64, string) {
	if a.hasBall {
		intensity := clamp01(0.4 + 0.4*w.Technique)
		confidence := clamp01(0.5*w.Technique + 0.5*w.Positioning)
		return ActionPass, forwardPoint(s, 15000), intensity, confidence, "distributing from the back"
	}
	if a.underPressure && a.nearBall {
		intensity := clamp01(0.6*w.Aggression + 0.4*w.WorkRate)
		return ActionPress, ballPoint(s), intensity, w.DefensiveAwareness, "stepping out to press the ball carrier"
	}
	intensity := clamp01(0.5 * w.Positioning)
	confidence := clamp01(0.6*w.Positioning + 0.4*w.DefensiveAwareness)
	target := &Vec2{X: s.PlayerPosition.X, Y: s.PlayerPosition.Y}
	return ActionPosition, target, intensity, confidence, "holding the defensive line"
}

func decideFullBack(w BehaviorWeights, s GameSituation, a assessment, draw []float64) (ActionType, *Vec2, float64, float64, string) {
	if a.hasBall {
		if w.RiskTaking > draw[0] {
			intensity := clamp01(0.5*w.WorkRate + 0.4*w.RiskTaking)
			return ActionMove, forwardPoint(s, 20000), intensity, clamp01(0.6*w.Technique+0.3*w.WorkRate), "overlapping down the flank"
		}
		return ActionPass, forwardPoint(s, 12000), clamp01(0.4 + 0.3*w.Technique), clamp01(0.7 * w.Technique), "recycling to a safe option"
	}
	if !a.inPossession && a.nearBall {
		return ActionPress, ballPoint(s), clamp01(0.5*w.Aggression + 0.5*w.WorkRate), w.DefensiveAwareness, "closing down the wide threat"
	}
	if !a.inPossession {
		return ActionMark, nil, clamp01(0.6 * w.DefensiveAwareness), clamp01(0.5*w.DefensiveAwareness + 0.4*w.Positioning), "tracking the opposing winger"
	}
	return ActionPosition, forwardPoint(s, 8000), clamp01(0.5 * w.WorkRate), w.Positioning, "providing width in possession"
}

func decideDefensiveMid(w BehaviorWeights, s GameSituation, a assessment) (ActionType, *Vec2, float64, float64, string) {
	if a.hasBall {
		return ActionPass, forwardPoint(s, 10000), clamp01(0.4 + 0.3*w.Technique), clamp01(0.6*w.Technique + 0.3*w.Positioning), "keeping the ball moving"
	}
	if !a.inPossession && a.nearBall {
		return ActionPress, ballPoint(s), clamp01(0.6*w.Aggression + 0.4*w.WorkRate), w.DefensiveAwareness, "breaking up the attack"
	}
	if a.opponentThreat > 0.6 {
		return ActionMark, nil, clamp01(0.7 * w.DefensiveAwareness), clamp01(0.7*w.DefensiveAwareness + 0.2*w.Positioning), "screening the passing lane"
	}
	return ActionPosition, &Vec2{X: s.PlayerPosition.X, Y: s.PlayerPosition.Y}, clamp01(0.5 * w.Positioning), w.Positioning, "anchoring in front of the back line"
}

func decideCentralMid(w BehaviorWeights, s GameSituation, a assessment, draw []float64) (ActionType, *Vec2, float64, float64, string) {
	if a.hasBall {
		if w.Creativity > draw[0] {
			return ActionPass, forwardPoint(s, 18000), clamp01(0.5*w.Creativity + 0.4*w.Technique), clamp01(0.6*w.Creativity + 0.3*w.Technique), "attempting a line-breaking pass"
		}
		return ActionMove, forwardPoint(s, 8000), clamp01(0.5*w.Technique + 0.3*w.WorkRate), clamp01(0.7 * w.Technique), "carrying into space"
	}
	if !a.inPossession && a.nearBall {
		return ActionPress, ballPoint(s), clamp01(0.5*w.Aggression + 0.5*w.WorkRate), w.DefensiveAwareness, "pressing in midfield"
	}
	if a.inPossession {
		return ActionMove, forwardPoint(s, 6000), clamp01(0.6 * w.WorkRate), clamp01(0.5*w.Positioning + 0.4*w.WorkRate), "offering a supporting angle"
	}
	return ActionPosition, nil, clamp01(0.5 * w.Positioning), w.Positioning, "holding midfield shape"
}

func decideAttackingMid(w BehaviorWeights, s GameSituation, a assessment) (ActionType, *Vec2, float64, float64, string) {
	if a.hasBall && s.DistToOpponentGoalMM <= shootingRangeMM {
		return ActionShoot, nil, clamp01(0.5*w.Technique + 0.4*w.RiskTaking), clamp01(0.6*w.Technique + 0.3*w.Creativity), "shooting from the edge of the box"
	}
	if a.hasBall {
		return ActionPass, forwardPoint(s, 16000), clamp01(0.5*w.Creativity + 0.4*w.Technique), clamp01(0.7 * w.Creativity), "threading a through ball"
	}
	if a.inPossession {
		return ActionMove, forwardPoint(s, 10000), clamp01(0.6 * w.Creativity), clamp01(0.5*w.Creativity + 0.4*w.Positioning), "drifting into the pocket between the lines"
	}
	return ActionPosition, nil, clamp01(0.4 * w.Positioning), clamp01(0.4*w.Positioning + 0.3*w.DefensiveAwareness), "staying available for the outlet"
}

func decideWinger(w BehaviorWeights, s GameSituation, a assessment, draw []float64) (ActionType, *Vec2, float64, float64, string) {
	if a.hasBall {
		if w.RiskTaking > draw[0] {
			return ActionMove, forwardPoint(s, 15000), clamp01(0.6*w.Technique + 0.4*w.RiskTaking), clamp01(0.6*w.Technique + 0.3*w.Creativity), "taking on the full back"
		}
		return ActionPass, forwardPoint(s, 14000), clamp01(0.5*w.Technique + 0.3*w.Creativity), clamp01(0.6 * w.Technique), "delivering an early cross"
	}
	if a.inPossession {
		return ActionMove, forwardPoint(s, 12000), clamp01(0.6 * w.WorkRate), clamp01(0.5*w.Positioning + 0.3*w.Creativity), "stretching the pitch wide"
	}
	if a.nearBall {
		return ActionPress, ballPoint(s), clamp01(0.5*w.Aggression + 0.5*w.WorkRate), clamp01(0.5 * w.DefensiveAwareness), "pressing the opposing full back"
	}
	return ActionPosition, nil, clamp01(0.4 * w.Positioning), clamp01(0.4*w.Positioning + 0.2*w.DefensiveAwareness), "tucking in off the ball"
}

func decideStriker(w BehaviorWeights, s GameSituation, a assessment) (ActionType, *Vec2, float64, float64, string) {
	if a.hasBall && s.DistToOpponentGoalMM <= shootingRangeMM {
		return ActionShoot, nil, clamp01(0.6*w.Technique + 0.4*w.RiskTaking), clamp01(0.7*w.Technique + 0.2*w.Positioning), "taking the shot on"
	}
	if a.hasBall {
		return ActionPass, forwardPoint(s, -6000), clamp01(0.4 + 0.3*w.Technique), clamp01(0.6 * w.Technique), "laying the ball off"
	}
	if a.inPossession {
		return ActionMove, forwardPoint(s, 18000), clamp01(0.6*w.WorkRate + 0.3*w.Positioning), clamp01(0.6*w.Positioning + 0.3*w.Creativity), "running in behind the last line"
	}
	return ActionPress, ballPoint(s), clamp01(0.5*w.Aggression + 0.4*w.WorkRate), clamp01(0.4 * w.DefensiveAwareness), "leading the press from the front"
}
