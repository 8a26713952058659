// Package sqlite stores snapshots in an embedded SQLite file, for running
// the server without external services.
package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/repository/sqlstore"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open opens (creating if needed) the database at path. SQLite allows one
// writer, so the pool is capped at a single connection.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure sqlite: %w", err)
	}
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute %s: %w", name, err)
		}
	}
	return nil
}

var queries = sqlstore.Queries{
	Upsert: `
	INSERT INTO live_game (session_id, phase, snapshot, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (session_id) DO UPDATE SET
		phase = excluded.phase,
		snapshot = excluded.snapshot,
		updated_at = excluded.updated_at;
	`,
	Load:   `SELECT snapshot FROM live_game WHERE session_id = ?;`,
	Delete: `DELETE FROM live_game WHERE session_id = ?;`,
	Prune:  `DELETE FROM live_game WHERE updated_at < ?;`,

	// unix seconds keep comparisons numeric
	Timestamp: func(t time.Time) any { return t.Unix() },
}

func NewSnapshotRepo(db *sql.DB) *sqlstore.Store {
	return sqlstore.New(db, queries)
}
