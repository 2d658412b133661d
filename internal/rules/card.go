package rules

// CardEvent records a single card issuance. Events are immutable once
// issued and append-only within a match.
type CardEvent struct {
	ID               string    `json:"id"`
	MatchID          string    `json:"match_id"`
	Frame            uint64    `json:"frame"`
	TimestampSeconds float64   `json:"timestamp_seconds"`
	PlayerID         string    `json:"player_id"`
	Color            CardColor `json:"color"`
	Offense          Offense   `json:"offense"`
	Description      string    `json:"description"`
	Location         Position  `json:"location"`
	Zone             string    `json:"zone"`

	// YellowCountInMatch is the player's yellow tally including this event
	// when the event is itself a yellow.
	YellowCountInMatch int  `json:"yellow_count_in_match"`
	IsEjected          bool `json:"is_ejected"`
}

// MatchCardHistory is the append-only card record of one match.
type MatchCardHistory struct {
	matchID string
	events  []CardEvent
}

// NewMatchCardHistory creates an empty history for a match.
func NewMatchCardHistory(matchID string) *MatchCardHistory {
	return &MatchCardHistory{matchID: matchID}
}

// MatchID returns the match this history belongs to.
func (h *MatchCardHistory) MatchID() string { return h.matchID }

func (h *MatchCardHistory) append(e CardEvent) {
	h.events = append(h.events, e)
}

// Events returns a copy of all card events in issuance order.
func (h *MatchCardHistory) Events() []CardEvent {
	out := make([]CardEvent, len(h.events))
	copy(out, h.events)
	return out
}

// YellowCount returns the number of yellow cards shown to a player so far.
func (h *MatchCardHistory) YellowCount(playerID string) int {
	n := 0
	for _, e := range h.events {
		if e.PlayerID == playerID && e.Color == CardYellow {
			n++
		}
	}
	return n
}

// IsEjected reports whether a player has been sent off in this match.
func (h *MatchCardHistory) IsEjected(playerID string) bool {
	for _, e := range h.events {
		if e.PlayerID == playerID && e.IsEjected {
			return true
		}
	}
	return false
}
