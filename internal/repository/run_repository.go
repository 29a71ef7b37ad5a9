package repository

import (
	"database/sql"
	"fmt"

	"github.com/groupsense/affinity-backend-go/internal/models"
)

// RunRepository handles database operations for analysis runs
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create creates a pending analysis run
func (r *RunRepository) Create() (*models.AnalysisRun, error) {
	result, err := r.db.Exec("INSERT INTO analysis_runs (status) VALUES (?)", models.RunStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return &models.AnalysisRun{ID: id, Status: models.RunStatusPending}, nil
}

// MarkAsRunning marks a run as running
func (r *RunRepository) MarkAsRunning(id int64) error {
	query := `
		UPDATE analysis_runs
		SET status = ?, started_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	if _, err := r.db.Exec(query, models.RunStatusRunning, id); err != nil {
		return fmt.Errorf("failed to mark run as running: %w", err)
	}
	return nil
}

// MarkAsCompleted marks a run as completed with its results
func (r *RunRepository) MarkAsCompleted(id int64, snapshotID string, groupsFound int, bandsSkipped string) error {
	query := `
		UPDATE analysis_runs
		SET status = ?, snapshot_id = ?, groups_found = ?, bands_skipped = ?,
		    completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	if _, err := r.db.Exec(query, models.RunStatusCompleted, snapshotID, groupsFound, bandsSkipped, id); err != nil {
		return fmt.Errorf("failed to mark run as completed: %w", err)
	}
	return nil
}

// MarkAsFailed marks a run as failed with an error message
func (r *RunRepository) MarkAsFailed(id int64, errorMessage string) error {
	query := `
		UPDATE analysis_runs
		SET status = ?, error_message = ?, completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	if _, err := r.db.Exec(query, models.RunStatusFailed, errorMessage, id); err != nil {
		return fmt.Errorf("failed to mark run as failed: %w", err)
	}
	return nil
}

// GetByID retrieves an analysis run by id
func (r *RunRepository) GetByID(id int64) (*models.AnalysisRun, error) {
	query := `
		SELECT id, status, snapshot_id, groups_found, bands_skipped,
		       error_message, started_at, completed_at, created_at
		FROM analysis_runs
		WHERE id = ?
	`

	run := &models.AnalysisRun{}
	var startedAt, completedAt sql.NullString
	err := r.db.QueryRow(query, id).Scan(
		&run.ID,
		&run.Status,
		&run.SnapshotID,
		&run.GroupsFound,
		&run.BandsSkipped,
		&run.ErrorMessage,
		&startedAt,
		&completedAt,
		&run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("analysis run not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}

	if startedAt.Valid {
		run.StartedAt = &startedAt.String
	}
	if completedAt.Valid {
		run.CompletedAt = &completedAt.String
	}

	return run, nil
}

// List retrieves runs ordered by creation time, newest first
func (r *RunRepository) List(limit, offset int) ([]*models.AnalysisRun, error) {
	query := `
		SELECT id, status, snapshot_id, groups_found, bands_skipped,
		       error_message, started_at, completed_at, created_at
		FROM analysis_runs
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.AnalysisRun
	for rows.Next() {
		run := &models.AnalysisRun{}
		var startedAt, completedAt sql.NullString
		err := rows.Scan(
			&run.ID,
			&run.Status,
			&run.SnapshotID,
			&run.GroupsFound,
			&run.BandsSkipped,
			&run.ErrorMessage,
			&startedAt,
			&completedAt,
			&run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		if startedAt.Valid {
			run.StartedAt = &startedAt.String
		}
		if completedAt.Valid {
			run.CompletedAt = &completedAt.String
		}
		runs = append(runs, run)
	}

	return runs, nil
}
