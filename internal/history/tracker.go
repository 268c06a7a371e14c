// Package history provides an optional SQLite record of conversion results.
package history

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/PerArneng/video-compress/internal/converter"
	// SQLite driver for database/sql
	_ "github.com/mattn/go-sqlite3"
)

// Tracker persists one row per job result.
type Tracker struct {
	db *sql.DB
}

// New opens (creating if needed) the history database at dbPath.
func New(dbPath string) (*Tracker, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	tracker := &Tracker{db: db}
	if err := tracker.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return tracker, nil
}

func (t *Tracker) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		input_path TEXT NOT NULL,
		output_path TEXT NOT NULL,
		preset_id TEXT NOT NULL,
		status TEXT NOT NULL,
		exit_code INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_conversions_run_id ON conversions(run_id);
	CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status);
	`

	_, err := t.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Record inserts one job result under the given run id.
func (t *Tracker) Record(runID, presetID string, result converter.JobResult) error {
	_, err := t.db.Exec(`
		INSERT INTO conversions (
			run_id, input_path, output_path, preset_id, status,
			exit_code, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, result.InputPath, result.OutputPath, presetID, string(result.Status),
		result.ExitCode, result.Duration.Milliseconds(), time.Now())

	if err != nil {
		return fmt.Errorf("failed to record conversion: %w", err)
	}
	return nil
}

// Stats returns lifetime counts of recorded conversions by status.
func (t *Tracker) Stats() (map[string]int, error) {
	rows, err := t.db.Query(`
		SELECT status, COUNT(*) as count
		FROM conversions
		GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversion stats: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Warn("Failed to close rows", "error", err)
		}
	}()

	stats := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			slog.Warn("Failed to scan stats row", "error", err)
			continue
		}
		stats[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stats rows: %w", err)
	}

	return stats, nil
}

// RunConversions returns the recorded rows for one run id, oldest first.
func (t *Tracker) RunConversions(runID string) ([]Conversion, error) {
	rows, err := t.db.Query(`
		SELECT run_id, input_path, output_path, preset_id, status,
			exit_code, duration_ms, created_at
		FROM conversions
		WHERE run_id = ?
		ORDER BY id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run conversions: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Warn("Failed to close rows", "error", err)
		}
	}()

	var conversions []Conversion
	for rows.Next() {
		var c Conversion
		var durationMS int64
		if err := rows.Scan(&c.RunID, &c.InputPath, &c.OutputPath, &c.PresetID,
			&c.Status, &c.ExitCode, &durationMS, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversion row: %w", err)
		}
		c.Duration = time.Duration(durationMS) * time.Millisecond
		conversions = append(conversions, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversion rows: %w", err)
	}

	return conversions, nil
}

// Conversion is one recorded job result.
type Conversion struct {
	RunID      string
	InputPath  string
	OutputPath string
	PresetID   string
	Status     string
	ExitCode   int
	Duration   time.Duration
	CreatedAt  time.Time
}

// Close closes the database connection.
func (t *Tracker) Close() error {
	if err := t.db.Close(); err != nil {
		return fmt.Errorf("failed to close history database: %w", err)
	}
	return nil
}
