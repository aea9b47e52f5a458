package store

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a session or snapshot does not exist.
var ErrNotFound = errors.New("store: not found")

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	player     TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS snapshots (
	session_id TEXT NOT NULL REFERENCES sessions(id),
	step       INTEGER NOT NULL,
	data       BLOB NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY (session_id, step)
);
`

// DB indexes sessions and their snapshots in a single sqlite file. Snapshot
// payloads are stored as the same zstd blobs Encode produces, so a blob
// pulled straight out of the table is a valid snapshot file.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path. ":memory:" works for
// tests.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init store schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// SessionInfo is one row of the session index.
type SessionInfo struct {
	ID      string
	Player  string
	Created time.Time
}

// CreateSession registers a new session for the named player and returns its
// id.
func (d *DB) CreateSession(player string) (string, error) {
	id := uuid.NewString()
	_, err := d.db.Exec(
		`INSERT INTO sessions (id, player, created_at) VALUES (?, ?, ?)`,
		id, player, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

// Sessions lists every session, newest first.
func (d *DB) Sessions() ([]SessionInfo, error) {
	rows, err := d.db.Query(
		`SELECT id, player, created_at FROM sessions ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var created string
		if err := rows.Scan(&info.ID, &info.Player, &created); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		info.Created, _ = time.Parse(time.RFC3339, created)
		out = append(out, info)
	}
	return out, rows.Err()
}

// SaveSnapshot stores the snapshot under its session and step, replacing any
// earlier save of the same step.
func (d *DB) SaveSnapshot(sessionID string, snap *SnapshotV1) error {
	data, err := snap.EncodeBytes()
	if err != nil {
		return err
	}
	_, err = d.db.Exec(
		`INSERT OR REPLACE INTO snapshots (session_id, step, data, created_at) VALUES (?, ?, ?, ?)`,
		sessionID, snap.Step, data, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save snapshot step %d: %w", snap.Step, err)
	}
	return nil
}

// LoadSnapshot fetches the snapshot saved at one step.
func (d *DB) LoadSnapshot(sessionID string, step int) (*SnapshotV1, error) {
	var data []byte
	err := d.db.QueryRow(
		`SELECT data FROM snapshots WHERE session_id = ? AND step = ?`,
		sessionID, step,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: session %s step %d", ErrNotFound, sessionID, step)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot step %d: %w", step, err)
	}
	return Decode(bytes.NewReader(data))
}

// LatestSnapshot fetches the highest-step snapshot of a session.
func (d *DB) LatestSnapshot(sessionID string) (*SnapshotV1, error) {
	var data []byte
	err := d.db.QueryRow(
		`SELECT data FROM snapshots WHERE session_id = ? ORDER BY step DESC LIMIT 1`,
		sessionID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: session %s has no snapshots", ErrNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("load latest snapshot: %w", err)
	}
	return Decode(bytes.NewReader(data))
}
