package decision

import (
	"github.com/fairpitch/matchcore/internal/engine"
)

// Log is the match-scoped, append-only decision log. Entries are appended in
// the deterministic per-cycle player order, so two independent re-executions
// of the same match produce identical logs and therefore identical hashes.
// Decision-making is single-threaded per match, so the log takes no lock.
type Log struct {
	matchID string
	entries []AIDecision
}

// NewLog creates an empty log for a match.
func NewLog(matchID string) *Log {
	return &Log{matchID: matchID}
}

// MatchID returns the match this log belongs to.
func (l *Log) MatchID() string { return l.matchID }

// Append records a decision. Entries are never edited or removed.
func (l *Log) Append(d AIDecision) {
	l.entries = append(l.entries, d)
}

// Len returns the number of recorded decisions.
func (l *Log) Len() int { return len(l.entries) }

// Entries returns a copy of the full log in append order.
func (l *Log) Entries() []AIDecision {
	out := make([]AIDecision, len(l.entries))
	copy(out, l.entries)
	return out
}

// ByPlayer returns the decisions of a single player in append order.
func (l *Log) ByPlayer(playerID string) []AIDecision {
	var out []AIDecision
	for _, d := range l.entries {
		if d.PlayerID == playerID {
			out = append(out, d)
		}
	}
	return out
}

// Hash reduces the log to a single hex digest over the canonical lines of
// every entry. Timestamps do not participate.
func (l *Log) Hash() string {
	lines := make([]string, 0, len(l.entries))
	for _, d := range l.entries {
		lines = append(lines, d.canonicalLine())
	}
	return engine.HashLines(lines)
}
