package postgres

import (
	"database/sql"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/repository/sqlstore"
)

var queries = sqlstore.Queries{
	Upsert: `
	INSERT INTO live_game (session_id, phase, snapshot, updated_at)
	VALUES ($1, $2, $3::jsonb, $4)
	ON CONFLICT (session_id) DO UPDATE SET
		phase = EXCLUDED.phase,
		snapshot = EXCLUDED.snapshot,
		updated_at = EXCLUDED.updated_at;
	`,
	Load:   `SELECT snapshot::text FROM live_game WHERE session_id = $1;`,
	Delete: `DELETE FROM live_game WHERE session_id = $1;`,
	Prune:  `DELETE FROM live_game WHERE updated_at < $1;`,
}

// NewSnapshotRepo returns a snapshot store backed by the live_game table
func NewSnapshotRepo(db *sql.DB) *sqlstore.Store {
	return sqlstore.New(db, queries)
}
