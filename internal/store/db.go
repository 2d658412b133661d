package store

import (
	"github.com/fairpitch/matchcore/internal/rules"
	"github.com/fairpitch/matchcore/internal/suspension"
	"github.com/fairpitch/matchcore/internal/validate"
)

// DB is the persistence boundary of the core. The core packages never touch
// storage directly; they are handed this interface (or the narrower
// suspension.Repository / validate.HistoryProvider views of it).
type DB interface {
	Close() error
	Migrate() error

	// suspension.Repository
	SaveSuspension(s suspension.Suspension) error
	ListActiveSuspensions() ([]suspension.Suspension, error)

	// validate.HistoryProvider
	PlayerHistory(playerID string, limit int) ([]validate.MatchRecord, error)

	SaveCardEvent(e rules.CardEvent) error
	ListCardEvents(matchID string) ([]rules.CardEvent, error)

	SaveMatchRecord(rec validate.MatchRecord) error
	SaveReplayHash(matchID, hash string) error
	GetReplayHash(matchID string) (string, error)
}
