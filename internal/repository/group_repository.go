package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/groupsense/affinity-backend-go/internal/models"
)

// GroupRepository handles database operations for discovered groups
type GroupRepository struct {
	db *sql.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *sql.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// Insert stores one discovered group
func (r *GroupRepository) Insert(group *models.Group) error {
	members, err := json.Marshal(group.Members)
	if err != nil {
		return fmt.Errorf("failed to encode members: %w", err)
	}

	query := `
		INSERT INTO groups (snapshot_id, band, composition, members)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, group.SnapshotID, group.Band, group.Composition, string(members))
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	group.ID = id
	return nil
}

// ListBySnapshot retrieves all groups discovered in one snapshot version
func (r *GroupRepository) ListBySnapshot(snapshotID string) ([]*models.Group, error) {
	query := `
		SELECT id, snapshot_id, band, composition, members, created_at
		FROM groups
		WHERE snapshot_id = ?
		ORDER BY id
	`

	rows, err := r.db.Query(query, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		var members string
		err := rows.Scan(&group.ID, &group.SnapshotID, &group.Band, &group.Composition, &members, &group.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		if err := json.Unmarshal([]byte(members), &group.Members); err != nil {
			return nil, fmt.Errorf("failed to decode members: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, nil
}

// CountByComposition counts a snapshot's groups per composition label
func (r *GroupRepository) CountByComposition(snapshotID string) (map[string]int, error) {
	query := `
		SELECT composition, COUNT(*)
		FROM groups
		WHERE snapshot_id = ?
		GROUP BY composition
	`

	rows, err := r.db.Query(query, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to count groups: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var composition string
		var count int
		if err := rows.Scan(&composition, &count); err != nil {
			return nil, fmt.Errorf("failed to scan group count: %w", err)
		}
		counts[composition] = count
	}

	return counts, nil
}

// PruneOthers deletes groups belonging to any snapshot except the given one
func (r *GroupRepository) PruneOthers(keepSnapshotID string) error {
	if _, err := r.db.Exec("DELETE FROM groups WHERE snapshot_id != ?", keepSnapshotID); err != nil {
		return fmt.Errorf("failed to prune groups: %w", err)
	}
	return nil
}
