package repository

import (
	"database/sql"
	"fmt"

	"github.com/groupsense/affinity-backend-go/internal/models"
)

// DensityRepository handles database operations for region visit counts
type DensityRepository struct {
	db *sql.DB
}

// NewDensityRepository creates a new density repository
func NewDensityRepository(db *sql.DB) *DensityRepository {
	return &DensityRepository{db: db}
}

// Increment atomically bumps the visit count for a (day, region) key,
// creating the row with count 1 if absent. The single-statement upsert
// avoids lost updates under concurrent ingestion.
func (r *DensityRepository) Increment(day, region string) error {
	query := `
		INSERT INTO region_visits (day, region, count) VALUES (?, ?, 1)
		ON CONFLICT(day, region) DO UPDATE SET count = count + 1
	`

	if _, err := r.db.Exec(query, day, region); err != nil {
		return fmt.Errorf("failed to increment region visit: %w", err)
	}
	return nil
}

// Get retrieves the count for a single (day, region) key; 0 when absent
func (r *DensityRepository) Get(day, region string) (int, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT count FROM region_visits WHERE day = ? AND region = ?",
		day, region,
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get region visit: %w", err)
	}
	return count, nil
}

// SumInRange sums counts per region across all day buckets in
// [startDay, endDay] (inclusive, YYYY-MM-DD). Regions with no events in
// range are omitted.
func (r *DensityRepository) SumInRange(startDay, endDay string) ([]models.RegionVisit, error) {
	query := `
		SELECT region, SUM(count)
		FROM region_visits
		WHERE day >= ? AND day <= ?
		GROUP BY region
		ORDER BY SUM(count) DESC
	`

	rows, err := r.db.Query(query, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("failed to query region visits: %w", err)
	}
	defer rows.Close()

	var visits []models.RegionVisit
	for rows.Next() {
		var v models.RegionVisit
		if err := rows.Scan(&v.Region, &v.Count); err != nil {
			return nil, fmt.Errorf("failed to scan region visit: %w", err)
		}
		visits = append(visits, v)
	}

	return visits, nil
}
