package suspension

import "time"

// AppealStatus tracks the appeal sub-workflow of a suspension.
type AppealStatus string

const (
	AppealNotAppealed AppealStatus = "not_appealed"
	AppealPending     AppealStatus = "pending"
	AppealUpheld      AppealStatus = "upheld"
	AppealOverturned  AppealStatus = "overturned"
)

// AppealVerdict is the outcome handed back by the external judging process.
type AppealVerdict string

const (
	VerdictUpheld     AppealVerdict = "upheld"
	VerdictOverturned AppealVerdict = "overturned"
)

// Suspension is a multi-match ban created from exactly one red card. Only
// the store mutates it, via the decrement and appeal paths. MatchesRemaining
// never increases and floors at zero, and IsActive is true exactly while
// MatchesRemaining is positive.
type Suspension struct {
	ID          string `json:"id"`
	PlayerID    string `json:"player_id"`
	Reason      string `json:"reason"`
	CardEventID string `json:"card_event_id"`

	MatchesRemaining int  `json:"matches_remaining"`
	MatchesServed    int  `json:"matches_served"`
	TotalMatches     int  `json:"total_matches"`
	IsActive         bool `json:"is_active"`

	AppealStatus      AppealStatus `json:"appeal_status"`
	AppealEvidenceRef string       `json:"appeal_evidence_ref,omitempty"`
	AppealDeadline    time.Time    `json:"appeal_deadline"`

	CreatedAt time.Time `json:"created_at"`
}

// Eligibility is the answer to "may this player take part in this match".
type Eligibility struct {
	Allowed    bool        `json:"allowed"`
	Reason     string      `json:"reason,omitempty"`
	Suspension *Suspension `json:"suspension,omitempty"`
}

// Repository persists suspensions. The store works purely in memory when no
// repository is configured; with one, every mutation is written through.
type Repository interface {
	SaveSuspension(s Suspension) error
	ListActiveSuspensions() ([]Suspension, error)
}
