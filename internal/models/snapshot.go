package models

import "github.com/groupsense/affinity-backend-go/internal/graph"

// Snapshot is one versioned daily affinity graph. Only the most recent
// snapshot is "current"; older rows are pruned after a successful batch run.
type Snapshot struct {
	ID           string       `json:"id"` // uuid
	SnapshotDate string       `json:"snapshot_date"`
	Matrix       graph.Matrix `json:"matrix"`
	CreatedAt    string       `json:"created_at"`
}
