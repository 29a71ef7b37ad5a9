package models

// Analysis run statuses
const (
	RunStatusPending   = "pending"
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// AnalysisRun tracks one execution of the daily batch job
// (snapshot rebuild + group discovery).
type AnalysisRun struct {
	ID           int64   `json:"id"`
	Status       string  `json:"status"`
	SnapshotID   string  `json:"snapshot_id,omitempty"`
	GroupsFound  int     `json:"groups_found"`
	BandsSkipped string  `json:"bands_skipped,omitempty"` // comma-separated band labels
	ErrorMessage string  `json:"error_message,omitempty"`
	StartedAt    *string `json:"started_at,omitempty"`
	CompletedAt  *string `json:"completed_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
