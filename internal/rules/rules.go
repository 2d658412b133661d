package rules

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/fairpitch/matchcore/internal/suspension"
)

// FoulType classifies the disciplinary outcome of one incident.
type FoulType string

const (
	FoulTactical FoulType = "tactical_foul"
	FoulYellow   FoulType = "yellow_card"
	FoulRed      FoulType = "red_card"
)

// FoulRuling is the outcome of evaluating one foul context.
type FoulRuling struct {
	FoulType FoulType `json:"foul_type"`
	// Severity is the [0,1] score for scored fouls; direct reds skip
	// scoring and report 1.
	Severity float64 `json:"severity"`
	// Cards lists the events issued for this incident in issuance order.
	// A second yellow produces two entries: the yellow and the resulting
	// red.
	Cards []CardEvent `json:"cards,omitempty"`
	// FreeKickAwarded is set for every confirmed foul.
	FreeKickAwarded bool `json:"free_kick_awarded"`
}

// Engine orchestrates the disciplinary system, the set-piece detectors, and
// the suspension store for one match. It owns the match's append-only card
// history and is the sole writer of suspension state.
type Engine struct {
	matchID     string
	frameRate   float64
	severity    SeverityConfig
	handball    HandballConfig
	history     *MatchCardHistory
	suspensions *suspension.Store
	logger      *log.Logger
}

// Option tunes an Engine at construction.
type Option func(*Engine)

// WithSeverityConfig overrides the disciplinary constants.
func WithSeverityConfig(cfg SeverityConfig) Option {
	return func(e *Engine) { e.severity = cfg }
}

// WithHandballConfig overrides the handball thresholds.
func WithHandballConfig(cfg HandballConfig) Option {
	return func(e *Engine) { e.handball = cfg }
}

// WithFrameRate sets the simulation frame rate used to derive event
// timestamps from frame numbers.
func WithFrameRate(fps float64) Option {
	return func(e *Engine) { e.frameRate = fps }
}

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates a rules engine for one match. The suspension store is
// required; it outlives the match and is shared with eligibility checks.
func NewEngine(matchID string, store *suspension.Store, opts ...Option) (*Engine, error) {
	if matchID == "" {
		return nil, errors.New("match id is required")
	}
	if store == nil {
		return nil, errors.New("suspension store is required")
	}

	e := &Engine{
		matchID:     matchID,
		frameRate:   60,
		severity:    DefaultSeverityConfig(),
		handball:    DefaultHandballConfig(),
		history:     NewMatchCardHistory(matchID),
		suspensions: store,
		logger:      log.New(os.Stdout, "[RULES] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// History exposes the match's append-only card record.
func (e *Engine) History() *MatchCardHistory { return e.history }

// ProcessFoul evaluates one incident. Direct-red predicates bypass scoring;
// otherwise the severity score decides between a tactical free kick and a
// yellow card. A malformed context degrades to a tactical foul so the
// simulation stays live.
func (e *Engine) ProcessFoul(foulerID, fouledID string, frame uint64, ctx FoulContext) (FoulRuling, error) {
	if foulerID == "" || foulerID == fouledID {
		return FoulRuling{}, fmt.Errorf("invalid foul participants: fouler=%q fouled=%q", foulerID, fouledID)
	}

	if !ctx.wellFormed() {
		e.logger.Printf("match %s frame %d: malformed foul context from %s, degrading to tactical foul", e.matchID, frame, foulerID)
		return FoulRuling{FoulType: FoulTactical, FreeKickAwarded: true}, nil
	}

	if offense, ok := directRedOffense(ctx); ok {
		cards, err := e.issueCard(foulerID, frame, CardRed, offense,
			fmt.Sprintf("direct red: %s against %s", offense, fouledID), ctx.Location)
		if err != nil {
			return FoulRuling{}, err
		}
		return FoulRuling{FoulType: FoulRed, Severity: 1, Cards: cards, FreeKickAwarded: true}, nil
	}

	sev := e.severity.severity(ctx)
	sevF, _ := sev.Float64()

	if sev.GreaterThan(e.severity.YellowCutoff) {
		offense := yellowOffense(ctx)
		cards, err := e.issueCard(foulerID, frame, CardYellow, offense,
			fmt.Sprintf("bookable foul: %s against %s", offense, fouledID), ctx.Location)
		if err != nil {
			return FoulRuling{}, err
		}
		ruling := FoulRuling{FoulType: FoulYellow, Severity: sevF, Cards: cards, FreeKickAwarded: true}
		if len(cards) > 1 {
			ruling.FoulType = FoulRed
		}
		return ruling, nil
	}

	return FoulRuling{FoulType: FoulTactical, Severity: sevF, FreeKickAwarded: true}, nil
}

// ProcessOffside runs the offside detector. Offside calls award a free kick
// to the defending side; no card is involved.
func (e *Engine) ProcessOffside(p PassEvent) OffsideEvent {
	return DetectOffside(p)
}

// ProcessHandball classifies a touch and issues the card a deliberate
// handball carries.
func (e *Engine) ProcessHandball(t HandballTouch) (HandballResult, error) {
	res := e.handball.classifyHandball(t)
	if !res.IsHandball || !res.Deliberate {
		return res, nil
	}

	cards, err := e.issueCard(t.PlayerID, t.Frame, CardYellow, OffenseHandballDeliberate,
		"deliberate handball", t.Location)
	if err != nil {
		return HandballResult{}, err
	}
	res.Cards = cards
	return res, nil
}

// issueCard appends a card event and handles the two mandatory escalations:
// a second yellow synchronously produces a red with offense second_yellow
// and ejection on both events, and every red creates exactly one suspension.
func (e *Engine) issueCard(playerID string, frame uint64, color CardColor, offense Offense, description string, loc Position) ([]CardEvent, error) {
	event := CardEvent{
		ID:               uuid.New().String(),
		MatchID:          e.matchID,
		Frame:            frame,
		TimestampSeconds: float64(frame) / e.frameRate,
		PlayerID:         playerID,
		Color:            color,
		Offense:          offense,
		Description:      description,
		Location:         loc,
		Zone:             pitchZone(loc),
	}

	switch color {
	case CardYellow:
		event.YellowCountInMatch = e.history.YellowCount(playerID) + 1
		if event.YellowCountInMatch >= 2 {
			event.IsEjected = true
		}
	case CardRed:
		event.YellowCountInMatch = e.history.YellowCount(playerID)
		event.IsEjected = true
	}

	e.history.append(event)
	e.logger.Printf("match %s frame %d: %s card for %s (%s)", e.matchID, frame, color, playerID, offense)

	cards := []CardEvent{event}

	if color == CardRed {
		if err := e.createSuspension(event); err != nil {
			return nil, err
		}
		return cards, nil
	}

	if event.IsEjected {
		red, err := e.issueCard(playerID, frame, CardRed, OffenseSecondYellow,
			"second bookable offense", loc)
		if err != nil {
			return nil, err
		}
		cards = append(cards, red...)
	}

	return cards, nil
}

func (e *Engine) createSuspension(red CardEvent) error {
	matches := SuspensionMatches(red.Offense)
	if matches == 0 {
		return fmt.Errorf("red card offense %q has no suspension length", red.Offense)
	}

	s, err := e.suspensions.Create(red.PlayerID, string(red.Offense), red.ID, matches)
	if err != nil {
		return fmt.Errorf("create suspension for card %s: %w", red.ID, err)
	}

	e.logger.Printf("match %s: player %s suspended %d match(es) for %s (suspension %s)",
		e.matchID, red.PlayerID, matches, red.Offense, s.ID)
	return nil
}
