package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/groupsense/affinity-backend-go/internal/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// EventRepository handles database operations for the append-only event
// log: localization events and interaction records
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// InsertLocalization appends one localization event
func (r *EventRepository) InsertLocalization(event *models.LocalizationEvent) error {
	query := `
		INSERT INTO localization_events (user_id, timestamp, region, lat, lon)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		event.UserID,
		event.Timestamp.Format(timestampLayout),
		event.Region,
		event.Lat,
		event.Lon,
	)
	if err != nil {
		return fmt.Errorf("failed to insert localization event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	event.ID = id
	return nil
}

// InsertInteraction appends one interaction record. The neighbor-weight
// mapping is stored as JSON and only ever decoded with a typed schema.
func (r *EventRepository) InsertInteraction(record *models.InteractionRecord) error {
	neighbors, err := json.Marshal(record.Neighbors)
	if err != nil {
		return fmt.Errorf("failed to encode neighbors: %w", err)
	}

	query := `
		INSERT INTO interaction_records (user_id, timestamp, neighbors)
		VALUES (?, ?, ?)
	`

	result, err := r.db.Exec(query,
		record.UserID,
		record.Timestamp.Format(timestampLayout),
		string(neighbors),
	)
	if err != nil {
		return fmt.Errorf("failed to insert interaction record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	record.ID = id
	return nil
}

// ListInteractionsByUser retrieves all interaction records for a user
// ordered by timestamp
func (r *EventRepository) ListInteractionsByUser(userID int64) ([]*models.InteractionRecord, error) {
	query := `
		SELECT id, user_id, timestamp, neighbors
		FROM interaction_records
		WHERE user_id = ?
		ORDER BY timestamp
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interaction records: %w", err)
	}
	defer rows.Close()

	var records []*models.InteractionRecord
	for rows.Next() {
		record := &models.InteractionRecord{}
		var ts, neighbors string
		if err := rows.Scan(&record.ID, &record.UserID, &ts, &neighbors); err != nil {
			return nil, fmt.Errorf("failed to scan interaction record: %w", err)
		}

		record.Timestamp, err = time.Parse(timestampLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse record timestamp: %w", err)
		}
		if err := json.Unmarshal([]byte(neighbors), &record.Neighbors); err != nil {
			return nil, fmt.Errorf("failed to decode neighbors: %w", err)
		}

		records = append(records, record)
	}

	return records, nil
}
