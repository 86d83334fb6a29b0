package graph

import (
	"fmt"
	"sync"
)

// CheckpointStore persists state snapshots during execution, keyed by RunID.
//
// Checkpoint lifecycle:
//  1. The engine saves state at the configured interval via Save.
//  2. On successful completion, checkpoints are deleted unless Preserve=true.
//  3. On failure, checkpoints remain available for Resume.
//
// Implementations must be safe for concurrent graph executions. Stores only
// persist snapshots within a process run's lifetime of usefulness; they are
// not a conversation history.
type CheckpointStore interface {
	// Save persists state identified by its RunID, overwriting any
	// existing checkpoint for the same RunID.
	Save(state State) error

	// Load retrieves state for the given RunID. Returns an error when no
	// checkpoint exists.
	Load(runID string) (State, error)

	// Delete removes the checkpoint for the given RunID. Not an error if
	// the checkpoint does not exist.
	Delete(runID string) error

	// List returns all RunIDs with stored checkpoints.
	List() ([]string, error)
}

// memoryCheckpointStore keeps checkpoints in process memory. Suitable for
// tests and development; checkpoints are lost when the process exits.
type memoryCheckpointStore struct {
	states map[string]State
	mu     sync.RWMutex
}

// NewMemoryCheckpointStore creates an in-memory CheckpointStore. A shared
// instance is pre-registered under the name "memory".
func NewMemoryCheckpointStore() CheckpointStore {
	return &memoryCheckpointStore{
		states: make(map[string]State),
	}
}

func (m *memoryCheckpointStore) Save(state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.states[state.RunID] = state
	return nil
}

func (m *memoryCheckpointStore) Load(runID string) (State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, exists := m.states[runID]
	if !exists {
		return State{}, fmt.Errorf("checkpoint not found: %s", runID)
	}
	return state, nil
}

func (m *memoryCheckpointStore) Delete(runID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, runID)
	return nil
}

func (m *memoryCheckpointStore) List() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.states))
	for id := range m.states {
		ids = append(ids, id)
	}
	return ids, nil
}

var (
	checkpointStores = map[string]CheckpointStore{
		"memory": NewMemoryCheckpointStore(),
	}
	storeMutex sync.RWMutex
)

// GetCheckpointStore retrieves a CheckpointStore by name from the registry.
// Called by New to resolve Checkpoint.Store from configuration.
func GetCheckpointStore(name string) (CheckpointStore, error) {
	storeMutex.RLock()
	defer storeMutex.RUnlock()

	store, exists := checkpointStores[name]
	if !exists {
		return nil, fmt.Errorf("unknown checkpoint store: %s", name)
	}
	return store, nil
}

// RegisterCheckpointStore adds a named CheckpointStore to the registry.
// Register custom stores before creating graphs that reference them:
//
//	store, err := graph.NewSQLiteCheckpointStore("checkpoints.db", schema)
//	graph.RegisterCheckpointStore("sqlite", store)
func RegisterCheckpointStore(name string, store CheckpointStore) {
	storeMutex.Lock()
	defer storeMutex.Unlock()

	checkpointStores[name] = store
}
