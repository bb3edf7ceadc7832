// Package storage keeps a history of finished runs in SQLite.
// It uses the pure-Go modernc.org/sqlite driver so no CGO is needed.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished (or abandoned) game.
type Run struct {
	ID        int64
	Variant   string
	Seed      int64
	Width     int
	Height    int
	Lines     int
	Pieces    int
	Level     int
	Ticks     int
	GameOver  bool // false when the player quit before topping out
	CreatedAt time.Time
}

// VariantStats aggregates all runs of one variant.
type VariantStats struct {
	Variant    string
	Runs       int
	BestLines  int
	AvgLines   float64
	TotalLines int64
	Pieces     int64
	LastPlayed time.Time
}

// Open creates or opens the database at dbPath, creating parent directories
// and the schema as needed. A leading ~ expands to the home directory.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant TEXT NOT NULL,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			pieces INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			game_over INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_variant ON runs(variant);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(variant, lines DESC, pieces DESC);
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

// SaveRun records a run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Variant == "" {
		return 0, errors.New("storage: cannot save run without a variant")
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (variant, seed, width, height, lines, pieces, level, ticks, game_over)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Variant, r.Seed, r.Width, r.Height, r.Lines, r.Pieces, r.Level, r.Ticks, r.GameOver,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, variant, seed, width, height, lines, pieces, level, ticks, game_over, created_at`

// RecentRuns returns the newest runs first. An empty variant means all variants.
func (s *Store) RecentRuns(variant string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE (? = '' OR variant = ?)
		 ORDER BY id DESC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// BestRuns returns the runs with the most lines cleared, ties broken by
// pieces locked and then by age.
func (s *Store) BestRuns(variant string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE (? = '' OR variant = ?)
		 ORDER BY lines DESC, pieces DESC, id ASC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best runs: %w", err)
	}
	return scanRuns(rows)
}

// BestLines returns the most lines any run of variant cleared, or 0.
func (s *Store) BestLines(variant string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(lines) FROM runs WHERE variant = ?", variant).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best lines: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// VariantStats aggregates runs for one variant. A variant with no runs
// yields zero counts.
func (s *Store) VariantStats(variant string) (*VariantStats, error) {
	stats := &VariantStats{Variant: variant}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(lines), 0), COALESCE(AVG(lines), 0),
		        COALESCE(SUM(lines), 0), COALESCE(SUM(pieces), 0), MAX(created_at)
		 FROM runs WHERE variant = ?`,
		variant,
	).Scan(&stats.Runs, &stats.BestLines, &stats.AvgLines, &stats.TotalLines, &stats.Pieces, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllVariantStats aggregates runs for every variant that has any.
func (s *Store) AllVariantStats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*), MAX(lines), AVG(lines), SUM(lines), SUM(pieces), MAX(created_at)
		 FROM runs
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all variant stats: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*VariantStats)
	for rows.Next() {
		var st VariantStats
		var lastPlayed any
		if err := rows.Scan(&st.Variant, &st.Runs, &st.BestLines, &st.AvgLines, &st.TotalLines, &st.Pieces, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		out[st.Variant] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ClearRuns deletes all runs of variant.
func (s *Store) ClearRuns(variant string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE variant = ?", variant); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Variant, &r.Seed, &r.Width, &r.Height,
			&r.Lines, &r.Pieces, &r.Level, &r.Ticks, &r.GameOver, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both driver-decoded times and raw SQLite text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
