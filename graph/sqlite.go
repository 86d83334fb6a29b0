package graph

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteCheckpointStore persists checkpoints in a SQLite database so a
// crashed run can be resumed from another process.
//
// Channel values are stored as their JSON encoding. On Load, channels whose
// spec declares a Decode hook are restored through it; the rest are decoded
// with plain encoding/json semantics.
type SQLiteCheckpointStore struct {
	db     *sql.DB
	schema *Schema
}

type checkpointRecord struct {
	Data      map[string]json.RawMessage `json:"data"`
	Node      string                     `json:"node"`
	Timestamp time.Time                  `json:"timestamp"`
}

// NewSQLiteCheckpointStore opens (or creates) the database at path and
// prepares the checkpoint table. The schema is needed to restore typed
// channel values on Load.
func NewSQLiteCheckpointStore(path string, schema *Schema) (*SQLiteCheckpointStore, error) {
	if schema == nil {
		return nil, fmt.Errorf("schema cannot be nil")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint database: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS checkpoints (
		run_id     TEXT PRIMARY KEY,
		node       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		payload    BLOB NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare checkpoint table: %w", err)
	}

	return &SQLiteCheckpointStore{db: db, schema: schema}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteCheckpointStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteCheckpointStore) Save(state State) error {
	data := make(map[string]json.RawMessage, len(state.Data))
	for name, value := range state.Data {
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode channel %s: %w", name, err)
		}
		data[name] = encoded
	}

	payload, err := json.Marshal(checkpointRecord{
		Data:      data,
		Node:      state.Node,
		Timestamp: state.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	const upsert = `INSERT INTO checkpoints (run_id, node, created_at, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			node = excluded.node,
			created_at = excluded.created_at,
			payload = excluded.payload`
	if _, err := s.db.Exec(upsert, state.RunID, state.Node, state.Timestamp.UTC().Format(time.RFC3339Nano), payload); err != nil {
		return fmt.Errorf("failed to save checkpoint %s: %w", state.RunID, err)
	}
	return nil
}

func (s *SQLiteCheckpointStore) Load(runID string) (State, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM checkpoints WHERE run_id = ?`, runID).Scan(&payload)
	if err == sql.ErrNoRows {
		return State{}, fmt.Errorf("checkpoint not found: %s", runID)
	}
	if err != nil {
		return State{}, fmt.Errorf("failed to load checkpoint %s: %w", runID, err)
	}

	var record checkpointRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return State{}, fmt.Errorf("failed to decode checkpoint %s: %w", runID, err)
	}

	data := make(map[string]any, len(record.Data))
	for name, raw := range record.Data {
		spec, exists := s.schema.channels[name]
		if !exists {
			// Channel no longer declared; drop it rather than resurrect
			// values no reducer owns.
			continue
		}

		if spec.Decode != nil {
			value, err := spec.Decode(raw)
			if err != nil {
				return State{}, fmt.Errorf("failed to decode channel %s: %w", name, err)
			}
			data[name] = value
			continue
		}

		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return State{}, fmt.Errorf("failed to decode channel %s: %w", name, err)
		}
		data[name] = value
	}

	return State{
		Data:      data,
		RunID:     runID,
		Node:      record.Node,
		Timestamp: record.Timestamp,
		schema:    s.schema,
	}, nil
}

func (s *SQLiteCheckpointStore) Delete(runID string) error {
	if _, err := s.db.Exec(`DELETE FROM checkpoints WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("failed to delete checkpoint %s: %w", runID, err)
	}
	return nil
}

func (s *SQLiteCheckpointStore) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT run_id FROM checkpoints ORDER BY run_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan checkpoint row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
