package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/groupsense/affinity-backend-go/internal/graph"
	"github.com/groupsense/affinity-backend-go/internal/models"
	"github.com/groupsense/affinity-backend-go/internal/repository"
)

// MatrixService builds the daily affinity snapshot from the interaction
// record log. Full recompute, not incremental: idempotent for a fixed log.
type MatrixService struct {
	users     *repository.UserRepository
	events    *repository.EventRepository
	snapshots *repository.SnapshotRepository
}

// NewMatrixService creates a new matrix service
func NewMatrixService(
	users *repository.UserRepository,
	events *repository.EventRepository,
	snapshots *repository.SnapshotRepository,
) *MatrixService {
	return &MatrixService{users: users, events: events, snapshots: snapshots}
}

// IdentifyAggregateNeighbors folds all of a user's interaction records into
// one neighbor→total-weight mapping. Later records add to earlier
// contributions; accumulation is order-independent.
func (s *MatrixService) IdentifyAggregateNeighbors(userID int64) (map[string]int, error) {
	records, err := s.events.ListInteractionsByUser(userID)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	for _, record := range records {
		for neighbor, weight := range record.Neighbors {
			totals[neighbor] += weight
		}
	}

	return totals, nil
}

// BuildDailySnapshot recomputes the global user→user→weight matrix from
// every user's full interaction history and stores it as a new snapshot
// version stamped with the current date. Old versions are pruned by the
// batch runner once discovery has succeeded.
func (s *MatrixService) BuildDailySnapshot() (*models.Snapshot, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, err
	}

	matrix := graph.Matrix{}
	for _, user := range users {
		totals, err := s.IdentifyAggregateNeighbors(user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate neighbors for %s: %w", user.Username, err)
		}

		// Every known user gets a row, even an empty one
		if matrix[user.Username] == nil {
			matrix[user.Username] = make(map[string]int)
		}
		for neighbor, weight := range totals {
			matrix.Add(user.Username, neighbor, weight)
		}
	}

	snapshot := &models.Snapshot{
		ID:           uuid.NewString(),
		SnapshotDate: time.Now().Format(dayLayout),
		Matrix:       matrix,
	}
	if err := s.snapshots.Insert(snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}
