package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fairpitch/matchcore/internal/rules"
	"github.com/fairpitch/matchcore/internal/suspension"
	"github.com/fairpitch/matchcore/internal/validate"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// SQLiteDB implements the DB interface using SQLite.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (creating if needed) a SQLite database at path.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better concurrency between the API and match-end writers.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate creates the schema.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS suspensions (
			id TEXT PRIMARY KEY,
			player_id TEXT NOT NULL,
			reason TEXT NOT NULL,
			card_event_id TEXT NOT NULL,
			matches_remaining INTEGER NOT NULL,
			matches_served INTEGER NOT NULL,
			total_matches INTEGER NOT NULL,
			is_active INTEGER NOT NULL,
			appeal_status TEXT NOT NULL,
			appeal_evidence_ref TEXT,
			appeal_deadline DATETIME NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_suspensions_player ON suspensions(player_id)`,
		`CREATE INDEX IF NOT EXISTS idx_suspensions_active ON suspensions(is_active)`,
		`CREATE TABLE IF NOT EXISTS card_events (
			id TEXT PRIMARY KEY,
			match_id TEXT NOT NULL,
			frame INTEGER NOT NULL,
			timestamp_seconds REAL NOT NULL,
			player_id TEXT NOT NULL,
			color TEXT NOT NULL,
			offense TEXT NOT NULL,
			description TEXT,
			loc_x REAL NOT NULL,
			loc_y REAL NOT NULL,
			zone TEXT NOT NULL,
			yellow_count INTEGER NOT NULL,
			is_ejected INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_card_events_match ON card_events(match_id)`,
		`CREATE TABLE IF NOT EXISTS match_records (
			match_id TEXT NOT NULL,
			player_id TEXT NOT NULL,
			home_team TEXT NOT NULL,
			away_team TEXT NOT NULL,
			home_score INTEGER NOT NULL,
			away_score INTEGER NOT NULL,
			result TEXT NOT NULL,
			player_team TEXT NOT NULL,
			player_goals INTEGER NOT NULL,
			player_assists INTEGER NOT NULL,
			duration_minutes REAL NOT NULL,
			played_at DATETIME NOT NULL,
			PRIMARY KEY (match_id, player_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_match_records_player ON match_records(player_id, played_at)`,
		`CREATE TABLE IF NOT EXISTS replay_hashes (
			match_id TEXT PRIMARY KEY,
			hash TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SaveSuspension inserts or updates a suspension row.
func (s *SQLiteDB) SaveSuspension(sus suspension.Suspension) error {
	_, err := s.db.Exec(`
		INSERT INTO suspensions (
			id, player_id, reason, card_event_id, matches_remaining,
			matches_served, total_matches, is_active, appeal_status,
			appeal_evidence_ref, appeal_deadline, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			matches_remaining = excluded.matches_remaining,
			matches_served = excluded.matches_served,
			is_active = excluded.is_active,
			appeal_status = excluded.appeal_status,
			appeal_evidence_ref = excluded.appeal_evidence_ref`,
		sus.ID, sus.PlayerID, sus.Reason, sus.CardEventID, sus.MatchesRemaining,
		sus.MatchesServed, sus.TotalMatches, boolToInt(sus.IsActive), string(sus.AppealStatus),
		sus.AppealEvidenceRef, sus.AppealDeadline, sus.CreatedAt)
	if err != nil {
		return fmt.Errorf("save suspension: %w", err)
	}
	return nil
}

// ListActiveSuspensions returns every suspension with matches remaining.
func (s *SQLiteDB) ListActiveSuspensions() ([]suspension.Suspension, error) {
	rows, err := s.db.Query(`
		SELECT id, player_id, reason, card_event_id, matches_remaining,
			matches_served, total_matches, is_active, appeal_status,
			appeal_evidence_ref, appeal_deadline, created_at
		FROM suspensions WHERE is_active = 1`)
	if err != nil {
		return nil, fmt.Errorf("list active suspensions: %w", err)
	}
	defer rows.Close()

	var out []suspension.Suspension
	for rows.Next() {
		var sus suspension.Suspension
		var active int
		var status string
		var evidence sql.NullString
		if err := rows.Scan(&sus.ID, &sus.PlayerID, &sus.Reason, &sus.CardEventID,
			&sus.MatchesRemaining, &sus.MatchesServed, &sus.TotalMatches, &active,
			&status, &evidence, &sus.AppealDeadline, &sus.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan suspension: %w", err)
		}
		sus.IsActive = active != 0
		sus.AppealStatus = suspension.AppealStatus(status)
		sus.AppealEvidenceRef = evidence.String
		out = append(out, sus)
	}
	return out, rows.Err()
}

// PlayerHistory returns a player's most recent prior matches, newest first.
func (s *SQLiteDB) PlayerHistory(playerID string, limit int) ([]validate.MatchRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT match_id, home_team, away_team, home_score, away_score, result,
			player_id, player_team, player_goals, player_assists,
			duration_minutes, played_at
		FROM match_records WHERE player_id = ?
		ORDER BY played_at DESC LIMIT ?`, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("player history: %w", err)
	}
	defer rows.Close()

	var out []validate.MatchRecord
	for rows.Next() {
		var rec validate.MatchRecord
		if err := rows.Scan(&rec.MatchID, &rec.HomeTeam, &rec.AwayTeam,
			&rec.HomeScore, &rec.AwayScore, &rec.Result, &rec.PlayerID,
			&rec.PlayerTeam, &rec.PlayerGoals, &rec.PlayerAssists,
			&rec.DurationMinutes, &rec.PlayedAt); err != nil {
			return nil, fmt.Errorf("scan match record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SaveCardEvent archives a card event. Events are append-only; replacing an
// existing ID is a conflict, not an update.
func (s *SQLiteDB) SaveCardEvent(e rules.CardEvent) error {
	_, err := s.db.Exec(`
		INSERT INTO card_events (
			id, match_id, frame, timestamp_seconds, player_id, color, offense,
			description, loc_x, loc_y, zone, yellow_count, is_ejected
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.MatchID, e.Frame, e.TimestampSeconds, e.PlayerID, string(e.Color),
		string(e.Offense), e.Description, e.Location.X, e.Location.Y, e.Zone,
		e.YellowCountInMatch, boolToInt(e.IsEjected))
	if err != nil {
		return fmt.Errorf("save card event: %w", err)
	}
	return nil
}

// ListCardEvents returns a match's card events in frame order.
func (s *SQLiteDB) ListCardEvents(matchID string) ([]rules.CardEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, match_id, frame, timestamp_seconds, player_id, color,
			offense, description, loc_x, loc_y, zone, yellow_count, is_ejected
		FROM card_events WHERE match_id = ? ORDER BY frame`, matchID)
	if err != nil {
		return nil, fmt.Errorf("list card events: %w", err)
	}
	defer rows.Close()

	var out []rules.CardEvent
	for rows.Next() {
		var e rules.CardEvent
		var color, offense string
		var ejected int
		if err := rows.Scan(&e.ID, &e.MatchID, &e.Frame, &e.TimestampSeconds,
			&e.PlayerID, &color, &offense, &e.Description, &e.Location.X,
			&e.Location.Y, &e.Zone, &e.YellowCountInMatch, &ejected); err != nil {
			return nil, fmt.Errorf("scan card event: %w", err)
		}
		e.Color = rules.CardColor(color)
		e.Offense = rules.Offense(offense)
		e.IsEjected = ejected != 0
		out = append(out, e)
	}
	return out, rows.Err()
}

// SaveMatchRecord stores a completed match's facts for future baselines.
func (s *SQLiteDB) SaveMatchRecord(rec validate.MatchRecord) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO match_records (
			match_id, player_id, home_team, away_team, home_score, away_score,
			result, player_team, player_goals, player_assists,
			duration_minutes, played_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MatchID, rec.PlayerID, rec.HomeTeam, rec.AwayTeam, rec.HomeScore,
		rec.AwayScore, rec.Result, rec.PlayerTeam, rec.PlayerGoals,
		rec.PlayerAssists, rec.DurationMinutes, rec.PlayedAt)
	if err != nil {
		return fmt.Errorf("save match record: %w", err)
	}
	return nil
}

// SaveReplayHash anchors a match's decision-log hash.
func (s *SQLiteDB) SaveReplayHash(matchID, hash string) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO replay_hashes (match_id, hash, created_at)
		VALUES (?, ?, ?)`, matchID, hash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save replay hash: %w", err)
	}
	return nil
}

// GetReplayHash returns the recorded hash for a match.
func (s *SQLiteDB) GetReplayHash(matchID string) (string, error) {
	var hash string
	err := s.db.QueryRow(`SELECT hash FROM replay_hashes WHERE match_id = ?`, matchID).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("replay hash for match %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get replay hash: %w", err)
	}
	return hash, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
