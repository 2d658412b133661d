package validate

import (
	"fmt"
	"math"
	"time"
)

// Config holds the validator's tuning constants. They are heuristics pinned
// by the golden scenarios in the tests; callers inject alternatives instead
// of editing call sites.
type Config struct {
	MaxTeamScore        int
	MaxGoalsPerPlayer   int
	MaxAssistsPerPlayer int

	MinDurationMinutes float64
	MaxDurationMinutes float64
	MaxMatchAge        time.Duration

	MinGoalRatePer90 float64
	MaxGoalRatePer90 float64

	// SigmaBand is the number of standard deviations a historical stat may
	// stray before it is flagged.
	SigmaBand         float64
	HistoryMinMatches int

	PenaltyCritical int
	PenaltyHigh     int
	PenaltyMedium   int
	PenaltyWarning  int

	// SuspicionThreshold marks scores below it as suspicious.
	SuspicionThreshold int
}

// DefaultConfig returns the standard validation constants.
func DefaultConfig() Config {
	return Config{
		MaxTeamScore:        20,
		MaxGoalsPerPlayer:   10,
		MaxAssistsPerPlayer: 8,
		MinDurationMinutes:  20,
		MaxDurationMinutes:  200,
		MaxMatchAge:         2 * 365 * 24 * time.Hour,
		MinGoalRatePer90:    0.5,
		MaxGoalRatePer90:    2.0,
		SigmaBand:           3,
		HistoryMinMatches:   3,
		PenaltyCritical:     25,
		PenaltyHigh:         12,
		PenaltyMedium:       7,
		PenaltyWarning:      4,
		SuspicionThreshold:  70,
	}
}

// Validator scores completed matches. It is stateless and safe for
// concurrent use across any number of matches.
type Validator struct {
	cfg Config
}

// New creates a validator with the given configuration.
func New(cfg Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate runs the six independent checks over a completed match. stats
// and history are optional; absent inputs skip only their dependent checks
// and the score is computed from whatever ran.
func (v *Validator) Validate(rec MatchRecord, stats *MatchStats, history []MatchRecord) ValidationResult {
	res := ValidationResult{
		Issues:    []Issue{},
		Warnings:  []Warning{},
		Timestamp: time.Now().UTC(),
	}

	v.checkScoreSanity(rec, &res)
	v.checkPlayerBounds(rec, &res)
	v.checkTiming(rec, &res)
	v.checkPhysicalPlausibility(rec, stats, &res)
	v.checkHistoricalAnomaly(rec, history, &res)
	v.checkStatConsistency(stats, &res)

	score := 100
	critical := false
	for _, issue := range res.Issues {
		switch issue.Severity {
		case SeverityCritical:
			score -= v.cfg.PenaltyCritical
			critical = true
		case SeverityHigh:
			score -= v.cfg.PenaltyHigh
		case SeverityMedium:
			score -= v.cfg.PenaltyMedium
		}
	}
	score -= len(res.Warnings) * v.cfg.PenaltyWarning

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	res.Score = score
	res.IsSuspicious = critical || score < v.cfg.SuspicionThreshold
	res.IsValid = !res.IsSuspicious
	return res
}

// teamScoreFor returns the score of the team the tracked player plays for.
// An unknown side falls back to the higher score, which only ever relaxes
// the goals-vs-score bound.
func teamScoreFor(rec MatchRecord) int {
	switch rec.PlayerTeam {
	case "home":
		return rec.HomeScore
	case "away":
		return rec.AwayScore
	}
	if rec.HomeScore > rec.AwayScore {
		return rec.HomeScore
	}
	return rec.AwayScore
}

func expectedResult(rec MatchRecord) string {
	switch {
	case rec.HomeScore > rec.AwayScore:
		return "home_win"
	case rec.HomeScore < rec.AwayScore:
		return "away_win"
	default:
		return "draw"
	}
}

func (v *Validator) checkScoreSanity(rec MatchRecord, res *ValidationResult) {
	if rec.HomeScore < 0 || rec.AwayScore < 0 {
		res.Issues = append(res.Issues, Issue{SeverityCritical, "negative_score",
			fmt.Sprintf("negative team score: %d-%d", rec.HomeScore, rec.AwayScore)})
	}
	if rec.HomeScore > v.cfg.MaxTeamScore || rec.AwayScore > v.cfg.MaxTeamScore {
		res.Issues = append(res.Issues, Issue{SeverityHigh, "score_out_of_bounds",
			fmt.Sprintf("team score exceeds %d: %d-%d", v.cfg.MaxTeamScore, rec.HomeScore, rec.AwayScore)})
	}
	if rec.PlayerGoals > teamScoreFor(rec) {
		res.Issues = append(res.Issues, Issue{SeverityCritical, "player_goals_exceed_team",
			fmt.Sprintf("player scored %d but their team scored %d", rec.PlayerGoals, teamScoreFor(rec))})
	}
	if rec.Result != "" && rec.Result != expectedResult(rec) {
		res.Issues = append(res.Issues, Issue{SeverityHigh, "result_mismatch",
			fmt.Sprintf("reported result %q does not match score %d-%d", rec.Result, rec.HomeScore, rec.AwayScore)})
	}
}

func (v *Validator) checkPlayerBounds(rec MatchRecord, res *ValidationResult) {
	if rec.PlayerGoals < 0 || rec.PlayerAssists < 0 {
		res.Issues = append(res.Issues, Issue{SeverityCritical, "negative_player_stats",
			fmt.Sprintf("negative player stats: goals=%d assists=%d", rec.PlayerGoals, rec.PlayerAssists)})
	}
	if rec.PlayerGoals > v.cfg.MaxGoalsPerPlayer {
		res.Issues = append(res.Issues, Issue{SeverityCritical, "goals_out_of_bounds",
			fmt.Sprintf("player goals %d exceed per-match bound %d", rec.PlayerGoals, v.cfg.MaxGoalsPerPlayer)})
	}
	if rec.PlayerAssists > v.cfg.MaxAssistsPerPlayer {
		res.Issues = append(res.Issues, Issue{SeverityHigh, "assists_out_of_bounds",
			fmt.Sprintf("player assists %d exceed per-match bound %d", rec.PlayerAssists, v.cfg.MaxAssistsPerPlayer)})
	}
}

func (v *Validator) checkTiming(rec MatchRecord, res *ValidationResult) {
	if rec.DurationMinutes < v.cfg.MinDurationMinutes || rec.DurationMinutes > v.cfg.MaxDurationMinutes {
		res.Issues = append(res.Issues, Issue{SeverityHigh, "implausible_duration",
			fmt.Sprintf("match duration %.1f minutes outside [%.0f, %.0f]",
				rec.DurationMinutes, v.cfg.MinDurationMinutes, v.cfg.MaxDurationMinutes)})
	}

	now := time.Now().UTC()
	if rec.PlayedAt.After(now) {
		res.Issues = append(res.Issues, Issue{SeverityHigh, "future_match_date",
			fmt.Sprintf("match date %s is in the future", rec.PlayedAt.Format(time.RFC3339))})
	} else if now.Sub(rec.PlayedAt) > v.cfg.MaxMatchAge {
		res.Issues = append(res.Issues, Issue{SeverityMedium, "stale_match_date",
			fmt.Sprintf("match date %s is older than the validation window", rec.PlayedAt.Format(time.RFC3339))})
	}
}

func (v *Validator) checkPhysicalPlausibility(rec MatchRecord, stats *MatchStats, res *ValidationResult) {
	if rec.PlayerGoals > 1 && rec.DurationMinutes > 0 {
		rate := float64(rec.PlayerGoals) / rec.DurationMinutes * 90
		if rate < v.cfg.MinGoalRatePer90 || rate > v.cfg.MaxGoalRatePer90 {
			res.Issues = append(res.Issues, Issue{SeverityHigh, "implausible_goal_rate",
				fmt.Sprintf("goal rate %.2f per 90 outside [%.1f, %.1f]",
					rate, v.cfg.MinGoalRatePer90, v.cfg.MaxGoalRatePer90)})
		}
	}

	if stats == nil {
		res.SkippedChecks = append(res.SkippedChecks, "participation_ratio")
		return
	}
	if stats.MinutesPlayed > rec.DurationMinutes && rec.DurationMinutes > 0 {
		res.Issues = append(res.Issues, Issue{SeverityHigh, "participation_exceeds_duration",
			fmt.Sprintf("player minutes %.1f exceed match duration %.1f", stats.MinutesPlayed, rec.DurationMinutes)})
	}
}

func (v *Validator) checkHistoricalAnomaly(rec MatchRecord, history []MatchRecord, res *ValidationResult) {
	if len(history) < v.cfg.HistoryMinMatches {
		res.SkippedChecks = append(res.SkippedChecks, "historical_anomaly")
		return
	}

	flag := func(name string, value float64, samples []float64) {
		mean, std := meanStd(samples)
		band := v.cfg.SigmaBand * std
		if math.Abs(value-mean) > band {
			res.Warnings = append(res.Warnings, Warning{name + "_anomaly",
				fmt.Sprintf("%s %.0f outside mean %.2f +/- %.1f sigma (std %.2f) over %d prior matches",
					name, value, mean, v.cfg.SigmaBand, std, len(samples))})
		}
	}

	goals := make([]float64, len(history))
	assists := make([]float64, len(history))
	for i, h := range history {
		goals[i] = float64(h.PlayerGoals)
		assists[i] = float64(h.PlayerAssists)
	}

	flag("goals", float64(rec.PlayerGoals), goals)
	flag("assists", float64(rec.PlayerAssists), assists)
}

func (v *Validator) checkStatConsistency(stats *MatchStats, res *ValidationResult) {
	if stats == nil {
		res.SkippedChecks = append(res.SkippedChecks, "stat_consistency")
		return
	}

	possession := stats.PossessionHomePct + stats.PossessionAwayPct
	if math.Abs(possession-100) > 1.5 {
		res.Issues = append(res.Issues, Issue{SeverityHigh, "possession_sum",
			fmt.Sprintf("possession percentages sum to %.1f, expected ~100", possession)})
	}
	if stats.PassAccuracyPct < 0 || stats.PassAccuracyPct > 100 {
		res.Issues = append(res.Issues, Issue{SeverityHigh, "pass_accuracy_range",
			fmt.Sprintf("pass accuracy %.1f outside [0, 100]", stats.PassAccuracyPct)})
	}
}

func meanStd(samples []float64) (float64, float64) {
	if len(samples) == 0 {
		return 0, 0
	}

	var sum float64
	for _, s := range samples {
		sum += s
	}
	mean := sum / float64(len(samples))

	var sq float64
	for _, s := range samples {
		d := s - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(samples)))
}
