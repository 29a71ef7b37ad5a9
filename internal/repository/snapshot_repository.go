package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/groupsense/affinity-backend-go/internal/graph"
	"github.com/groupsense/affinity-backend-go/internal/models"
)

// SnapshotRepository handles database operations for daily affinity
// snapshots. Snapshots are versioned rows; the newest one is current.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Insert stores a new snapshot version. The matrix is stored as JSON and
// only ever decoded with a typed schema.
func (r *SnapshotRepository) Insert(snapshot *models.Snapshot) error {
	matrix, err := json.Marshal(snapshot.Matrix)
	if err != nil {
		return fmt.Errorf("failed to encode matrix: %w", err)
	}

	query := `INSERT INTO snapshots (id, snapshot_date, matrix) VALUES (?, ?, ?)`
	if _, err := r.db.Exec(query, snapshot.ID, snapshot.SnapshotDate, string(matrix)); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return nil
}

// GetLatest retrieves the current snapshot, or nil when no batch has
// completed yet
func (r *SnapshotRepository) GetLatest() (*models.Snapshot, error) {
	query := `
		SELECT id, snapshot_date, matrix, created_at
		FROM snapshots
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`

	snapshot := &models.Snapshot{}
	var matrix string
	err := r.db.QueryRow(query).Scan(&snapshot.ID, &snapshot.SnapshotDate, &matrix, &snapshot.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	snapshot.Matrix = graph.Matrix{}
	if err := json.Unmarshal([]byte(matrix), &snapshot.Matrix); err != nil {
		return nil, fmt.Errorf("failed to decode matrix: %w", err)
	}

	return snapshot, nil
}

// PruneOthers deletes every snapshot except the given one. Group rows for
// pruned snapshots must be removed first (see GroupRepository.PruneOthers).
func (r *SnapshotRepository) PruneOthers(keepID string) error {
	if _, err := r.db.Exec("DELETE FROM snapshots WHERE id != ?", keepID); err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return nil
}
