package suspension

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Window a player has to lodge an appeal after the suspension is created.
const appealWindow = 72 * time.Hour

var (
	// ErrNotFound is returned for unknown suspension IDs.
	ErrNotFound = errors.New("suspension not found")

	// ErrDuplicateDecrement is returned when the same match-end signal is
	// applied twice to a player. The counter is floor-zero and monotonic;
	// a repeat signal is a caller logic error, never silently absorbed.
	ErrDuplicateDecrement = errors.New("duplicate match-end decrement")

	// ErrAppealAlreadySubmitted is returned on a second appeal attempt.
	ErrAppealAlreadySubmitted = errors.New("appeal already submitted")

	// ErrAppealDeadlinePassed is returned when the appeal window closed.
	ErrAppealDeadlinePassed = errors.New("appeal deadline passed")

	// ErrAppealNotPending is returned when resolving a suspension that has
	// no pending appeal.
	ErrAppealNotPending = errors.New("no pending appeal to resolve")
)

// Store is the single authority for suspension state across matches. It is
// constructor-injected wherever suspension state is needed; there is no
// ambient global. All mutation goes through one mutex, giving the
// single-writer discipline that makes concurrent match-end signals safe.
type Store struct {
	mu       sync.Mutex
	byID     map[string]*Suspension
	byPlayer map[string][]*Suspension
	// served tracks which match IDs have already been counted per player,
	// so a duplicated end-of-match signal is detected instead of applied.
	served map[string]map[string]bool
	repo   Repository
}

// NewStore creates an empty store. repo may be nil for in-memory use.
func NewStore(repo Repository) *Store {
	return &Store{
		byID:     make(map[string]*Suspension),
		byPlayer: make(map[string][]*Suspension),
		served:   make(map[string]map[string]bool),
		repo:     repo,
	}
}

// Load hydrates active suspensions from the repository.
func (st *Store) Load() error {
	if st.repo == nil {
		return nil
	}

	active, err := st.repo.ListActiveSuspensions()
	if err != nil {
		return fmt.Errorf("load suspensions: %w", err)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	for i := range active {
		s := active[i]
		st.byID[s.ID] = &s
		st.byPlayer[s.PlayerID] = append(st.byPlayer[s.PlayerID], &s)
	}
	return nil
}

// Create opens a new suspension for a player. The rules engine is the only
// caller, and only ever from a red-card issuance.
func (st *Store) Create(playerID, reason, cardEventID string, matches int) (*Suspension, error) {
	if playerID == "" || cardEventID == "" {
		return nil, errors.New("player id and card event id are required")
	}
	if matches < 1 {
		return nil, fmt.Errorf("suspension length must be at least 1 match, got %d", matches)
	}

	now := time.Now().UTC()
	s := &Suspension{
		ID:               uuid.New().String(),
		PlayerID:         playerID,
		Reason:           reason,
		CardEventID:      cardEventID,
		MatchesRemaining: matches,
		TotalMatches:     matches,
		IsActive:         true,
		AppealStatus:     AppealNotAppealed,
		AppealDeadline:   now.Add(appealWindow),
		CreatedAt:        now,
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	st.byID[s.ID] = s
	st.byPlayer[playerID] = append(st.byPlayer[playerID], s)

	if err := st.persistLocked(s); err != nil {
		return nil, err
	}

	out := *s
	return &out, nil
}

// Get returns a copy of the suspension with the given ID.
func (st *Store) Get(id string) (Suspension, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.byID[id]
	if !ok {
		return Suspension{}, ErrNotFound
	}
	return *s, nil
}

// ForPlayer returns copies of all suspensions recorded for a player.
func (st *Store) ForPlayer(playerID string) []Suspension {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]Suspension, 0, len(st.byPlayer[playerID]))
	for _, s := range st.byPlayer[playerID] {
		out = append(out, *s)
	}
	return out
}

// CanParticipate reports whether a player is eligible for a match. A player
// is denied while any suspension still has matches remaining.
func (st *Store) CanParticipate(playerID, matchID string) Eligibility {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, s := range st.byPlayer[playerID] {
		if s.IsActive && s.MatchesRemaining > 0 {
			cp := *s
			return Eligibility{
				Allowed:    false,
				Reason:     fmt.Sprintf("suspended for %s: %d match(es) remaining", s.Reason, s.MatchesRemaining),
				Suspension: &cp,
			}
		}
	}
	return Eligibility{Allowed: true}
}

// RecordMatchPlayed applies the end-of-match decrement for one player. It
// must be called exactly once per player per match their team plays; a
// repeated (player, match) pair returns ErrDuplicateDecrement and mutates
// nothing. Players with no active suspension are a no-op but the match is
// still remembered, so a later red card cannot be back-decremented.
func (st *Store) RecordMatchPlayed(playerID, matchID string) error {
	if playerID == "" || matchID == "" {
		return errors.New("player id and match id are required")
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	seen := st.served[playerID]
	if seen == nil {
		seen = make(map[string]bool)
		st.served[playerID] = seen
	}
	if seen[matchID] {
		return fmt.Errorf("player %s match %s: %w", playerID, matchID, ErrDuplicateDecrement)
	}
	seen[matchID] = true

	for _, s := range st.byPlayer[playerID] {
		if !s.IsActive || s.MatchesRemaining == 0 {
			continue
		}
		s.MatchesRemaining--
		s.MatchesServed++
		if s.MatchesRemaining == 0 {
			s.IsActive = false
		}
		if err := st.persistLocked(s); err != nil {
			return err
		}
	}
	return nil
}

// SubmitAppeal opens the appeal workflow. Only a never-appealed suspension
// inside its appeal window can be appealed; anything else is rejected with
// no state change.
func (st *Store) SubmitAppeal(suspensionID, evidenceRef string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.byID[suspensionID]
	if !ok {
		return ErrNotFound
	}
	if s.AppealStatus != AppealNotAppealed {
		return fmt.Errorf("suspension %s: %w", suspensionID, ErrAppealAlreadySubmitted)
	}
	if time.Now().UTC().After(s.AppealDeadline) {
		return fmt.Errorf("suspension %s: %w", suspensionID, ErrAppealDeadlinePassed)
	}

	s.AppealStatus = AppealPending
	s.AppealEvidenceRef = evidenceRef
	return st.persistLocked(s)
}

// ResolveAppeal applies the external judging verdict. An overturned verdict
// zeroes the countdown and deactivates the suspension; an upheld one only
// flips the appeal status.
func (st *Store) ResolveAppeal(suspensionID string, verdict AppealVerdict) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.byID[suspensionID]
	if !ok {
		return ErrNotFound
	}
	if s.AppealStatus != AppealPending {
		return fmt.Errorf("suspension %s: %w", suspensionID, ErrAppealNotPending)
	}

	switch verdict {
	case VerdictOverturned:
		s.AppealStatus = AppealOverturned
		s.MatchesRemaining = 0
		s.IsActive = false
	case VerdictUpheld:
		s.AppealStatus = AppealUpheld
	default:
		return fmt.Errorf("unknown appeal verdict %q", verdict)
	}
	return st.persistLocked(s)
}

func (st *Store) persistLocked(s *Suspension) error {
	if st.repo == nil {
		return nil
	}
	if err := st.repo.SaveSuspension(*s); err != nil {
		return fmt.Errorf("persist suspension %s: %w", s.ID, err)
	}
	return nil
}
