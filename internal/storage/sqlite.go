// Package storage provides SQLite-based persistence for scores and match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-battleship/internal/match"
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID         int64
	Difficulty string
	Score      int
	CreatedAt  time.Time
}

// MatchRecord represents one finished match against the CPU.
type MatchRecord struct {
	ID          int64
	MatchID     string
	Difficulty  string
	Winner      string // "player", "cpu" or "none"
	EndReason   string
	PlayerShots int
	PlayerHits  int
	CPUShots    int
	CPUHits     int
	AIFaults    int
	Duration    int // Duration in seconds
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_difficulty ON scores(difficulty);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(difficulty, score DESC);

		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			difficulty TEXT NOT NULL,
			winner TEXT NOT NULL,
			end_reason TEXT NOT NULL,
			player_shots INTEGER NOT NULL DEFAULT 0,
			player_hits INTEGER NOT NULL DEFAULT 0,
			cpu_shots INTEGER NOT NULL DEFAULT 0,
			cpu_hits INTEGER NOT NULL DEFAULT 0,
			ai_faults INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_difficulty ON matches(difficulty);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime handles both time.Time and the SQLite text format.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SaveScore records a new score for the given difficulty.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(difficulty string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (difficulty, score) VALUES (?, ?)",
		difficulty, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given difficulty.
// Results are ordered by score descending.
func (s *Store) TopScores(difficulty string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, difficulty, score, created_at
		 FROM scores
		 WHERE difficulty = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		difficulty, limit,
	)
}

// AllScores retrieves all scores for the given difficulty (no limit).
func (s *Store) AllScores(difficulty string) ([]ScoreEntry, error) {
	return s.queryScores(
		`SELECT id, difficulty, score, created_at
		 FROM scores
		 WHERE difficulty = ?
		 ORDER BY score DESC`,
		difficulty,
	)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Difficulty, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given difficulty.
// Returns 0 if no scores exist.
func (s *Store) HighScore(difficulty string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE difficulty = ?",
		difficulty,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given difficulty.
func (s *Store) ClearScores(difficulty string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE difficulty = ?", difficulty)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveMatch records a finished match.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(rec MatchRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, difficulty, winner, end_reason, player_shots, player_hits, cpu_shots, cpu_hits, ai_faults, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MatchID,
		rec.Difficulty,
		rec.Winner,
		rec.EndReason,
		rec.PlayerShots,
		rec.PlayerHits,
		rec.CPUShots,
		rec.CPUHits,
		rec.AIFaults,
		rec.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const matchColumns = `id, match_id, difficulty, winner, end_reason,
	player_shots, player_hits, cpu_shots, cpu_hits, ai_faults, duration_secs, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (MatchRecord, error) {
	var rec MatchRecord
	var createdAt any
	err := row.Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.Difficulty,
		&rec.Winner,
		&rec.EndReason,
		&rec.PlayerShots,
		&rec.PlayerHits,
		&rec.CPUShots,
		&rec.CPUHits,
		&rec.AIFaults,
		&rec.Duration,
		&createdAt,
	)
	rec.CreatedAt = parseTime(createdAt)
	return rec, err
}

// MatchByID retrieves a match by its match ID. Returns nil if not found.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	rec, err := scanMatch(s.db.QueryRow(
		"SELECT "+matchColumns+" FROM matches WHERE match_id = ?",
		matchID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &rec, nil
}

// RecentMatches retrieves the most recent matches, newest first.
// An empty difficulty matches every tier.
func (s *Store) RecentMatches(difficulty string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+matchColumns+` FROM matches
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		difficulty, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var results []MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// SaveSummary implements match.ResultSaver.
// This adapter lets the game save match results without a direct storage dependency.
func (s *Store) SaveSummary(difficulty string, sum match.Summary) error {
	_, err := s.SaveMatch(MatchRecord{
		MatchID:     string(sum.ID),
		Difficulty:  difficulty,
		Winner:      strings.ToLower(sum.Winner.String()),
		EndReason:   sum.Reason.String(),
		PlayerShots: sum.Shots1,
		PlayerHits:  sum.Hits1,
		CPUShots:    sum.Shots2,
		CPUHits:     sum.Hits2,
		AIFaults:    sum.Faults,
		Duration:    int(sum.Duration.Seconds()),
	})
	return err
}

// Ensure Store implements ResultSaver
var _ match.ResultSaver = (*Store)(nil)

// Stats contains aggregated results for one difficulty.
type Stats struct {
	Difficulty string
	Games      int
	Wins       int
	Losses     int
	Accuracy   float64 // Player hits / player shots over all matches
	AvgShots   float64 // Player shots per won match
	HighScore  int
	LastPlayed time.Time
}

// WinRate returns the share of matches the player won.
func (st Stats) WinRate() float64 {
	if st.Games == 0 {
		return 0
	}
	return float64(st.Wins) / float64(st.Games)
}

const statsQuery = `SELECT difficulty,
		COUNT(*),
		COALESCE(SUM(winner = 'player'), 0),
		COALESCE(SUM(winner = 'cpu'), 0),
		COALESCE(SUM(player_hits), 0),
		COALESCE(SUM(player_shots), 0),
		COALESCE(AVG(CASE WHEN winner = 'player' THEN player_shots END), 0),
		MAX(created_at)
	FROM matches`

func scanStats(row scanner) (*Stats, error) {
	st := &Stats{}
	var hits, shots int
	var lastPlayed any
	if err := row.Scan(&st.Difficulty, &st.Games, &st.Wins, &st.Losses, &hits, &shots, &st.AvgShots, &lastPlayed); err != nil {
		return nil, err
	}
	if shots > 0 {
		st.Accuracy = float64(hits) / float64(shots)
	}
	st.LastPlayed = parseTime(lastPlayed)
	return st, nil
}

// DifficultyStats retrieves aggregated match statistics for one difficulty.
func (s *Store) DifficultyStats(difficulty string) (*Stats, error) {
	st, err := scanStats(s.db.QueryRow(statsQuery+" WHERE difficulty = ? GROUP BY difficulty", difficulty))
	if errors.Is(err, sql.ErrNoRows) {
		st, err = &Stats{Difficulty: difficulty}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	if st.HighScore, err = s.HighScore(difficulty); err != nil {
		return nil, err
	}
	return st, nil
}

// AllStats retrieves statistics for every difficulty that has been played.
func (s *Store) AllStats() (map[string]*Stats, error) {
	rows, err := s.db.Query(statsQuery + " GROUP BY difficulty")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*Stats)
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[st.Difficulty] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	// High scores live in their own table.
	highs, err := s.db.Query("SELECT difficulty, MAX(score) FROM scores GROUP BY difficulty")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query high scores: %w", err)
	}
	defer highs.Close()
	for highs.Next() {
		var difficulty string
		var high int
		if err := highs.Scan(&difficulty, &high); err != nil {
			return nil, fmt.Errorf("storage: cannot scan high score: %w", err)
		}
		if st, ok := stats[difficulty]; ok {
			st.HighScore = high
		}
	}
	return stats, highs.Err()
}
