package validate

import "time"

// Severity grades a validation issue.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
)

// Issue is a concrete integrity violation found in a match.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

// Warning flags something unusual that is not by itself a violation.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MatchRecord is the completed match as reported by the external layer. It
// is read-only input to the validator.
type MatchRecord struct {
	MatchID   string `json:"match_id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	// Result is the reported outcome: home_win, away_win, or draw.
	Result string `json:"result"`

	PlayerID string `json:"player_id"`
	// PlayerTeam is "home" or "away".
	PlayerTeam    string `json:"player_team"`
	PlayerGoals   int    `json:"player_goals"`
	PlayerAssists int    `json:"player_assists"`

	DurationMinutes float64   `json:"duration_minutes"`
	PlayedAt        time.Time `json:"played_at"`
}

// MatchStats carries the optional detailed statistics of a match. A nil
// stats input skips the dependent checks.
type MatchStats struct {
	PossessionHomePct float64 `json:"possession_home_pct"`
	PossessionAwayPct float64 `json:"possession_away_pct"`
	PassAccuracyPct   float64 `json:"pass_accuracy_pct"`
	MinutesPlayed     float64 `json:"minutes_played"`
}

// ValidationResult is the trust assessment of one match. It is created
// fresh per validation call and never mutated.
type ValidationResult struct {
	IsValid      bool      `json:"is_valid"`
	IsSuspicious bool      `json:"is_suspicious"`
	Score        int       `json:"score"`
	Issues       []Issue   `json:"issues"`
	Warnings     []Warning `json:"warnings"`
	// SkippedChecks names checks that could not run because optional
	// inputs were absent. Skipping never penalizes the score.
	SkippedChecks []string  `json:"skipped_checks,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// HistoryProvider supplies a player's prior matches for anomaly baselines.
// It is implemented by the persistence layer; the validator itself performs
// no I/O.
type HistoryProvider interface {
	PlayerHistory(playerID string, limit int) ([]MatchRecord, error)
}
