// Package storage provides SQLite-based session history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Worlds themselves are never stored: a session row keeps the seed and the
// generation summary so that a world can be regenerated with --seed.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// Session is one finished viewer session.
type Session struct {
	ID            int64
	SceneID       string
	Seed          int64
	WorldSize     int
	Slabs         int
	IslandsPruned int
	FlowerPatches int
	Actors        int
	Ticks         int64
	CreatedAt     time.Time
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scene_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			world_size INTEGER NOT NULL,
			slabs INTEGER NOT NULL DEFAULT 0,
			islands_pruned INTEGER NOT NULL DEFAULT 0,
			flower_patches INTEGER NOT NULL DEFAULT 0,
			actors INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_scene_id ON sessions(scene_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_longest ON sessions(scene_id, ticks DESC);
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

// SaveSession records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(sess Session) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (scene_id, seed, world_size, slabs, islands_pruned, flower_patches, actors, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.SceneID,
		sess.Seed,
		sess.WorldSize,
		sess.Slabs,
		sess.IslandsPruned,
		sess.FlowerPatches,
		sess.Actors,
		sess.Ticks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const sessionColumns = `id, scene_id, seed, world_size, slabs, islands_pruned, flower_patches, actors, ticks, created_at`

// RecentSessions retrieves the latest sessions of a scene, newest first.
func (s *Store) RecentSessions(sceneID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE scene_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// LongestSession returns the session of a scene that simulated the most ticks.
// Returns nil if the scene has no history.
func (s *Store) LongestSession(sceneID string) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE scene_id = ?
		 ORDER BY ticks DESC, id ASC
		 LIMIT 1`,
		sceneID,
	)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// ClearSessions deletes the history of a scene.
func (s *Store) ClearSessions(sceneID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE scene_id = ?", sceneID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// SceneStats contains aggregated statistics for a scene.
type SceneStats struct {
	SceneID    string
	Sessions   int
	TotalTicks int64
	MaxSlabs   int
	AvgActors  float64
	LastRun    time.Time
}

// GetSceneStats retrieves aggregated statistics for a specific scene.
func (s *Store) GetSceneStats(sceneID string) (*SceneStats, error) {
	stats := &SceneStats{SceneID: sceneID}

	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(ticks), 0), COALESCE(MAX(slabs), 0), COALESCE(AVG(actors), 0), MAX(created_at)
		 FROM sessions WHERE scene_id = ?`,
		sceneID,
	).Scan(&stats.Sessions, &stats.TotalTicks, &stats.MaxSlabs, &stats.AvgActors, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}
	stats.LastRun = parseTime(lastRun)

	return stats, nil
}

// GetAllSceneStats retrieves statistics for every scene with history.
func (s *Store) GetAllSceneStats() (map[string]*SceneStats, error) {
	rows, err := s.db.Query(
		`SELECT scene_id, COUNT(*), SUM(ticks), MAX(slabs), AVG(actors), MAX(created_at)
		 FROM sessions
		 GROUP BY scene_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all scene stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SceneStats)
	for rows.Next() {
		var st SceneStats
		var lastRun any
		if err := rows.Scan(&st.SceneID, &st.Sessions, &st.TotalTicks, &st.MaxSlabs, &st.AvgActors, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.SceneID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var sess Session
	var createdAt any
	err := row.Scan(
		&sess.ID,
		&sess.SceneID,
		&sess.Seed,
		&sess.WorldSize,
		&sess.Slabs,
		&sess.IslandsPruned,
		&sess.FlowerPatches,
		&sess.Actors,
		&sess.Ticks,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return sess, err
	}
	if err != nil {
		return sess, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	sess.CreatedAt = parseTime(createdAt)
	return sess, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
