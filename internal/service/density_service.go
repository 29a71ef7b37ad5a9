package service

import (
	"time"

	"github.com/groupsense/affinity-backend-go/internal/geofence"
	"github.com/groupsense/affinity-backend-go/internal/repository"
)

const dayLayout = "2006-01-02"

// RegionDensity is one region's summed visit count with its display label
type RegionDensity struct {
	Name     string `json:"name"`
	Strength int    `json:"strength"`
}

// DensityService tallies visits per (day, region) and serves range queries
type DensityService struct {
	visits   *repository.DensityRepository
	resolver *geofence.Resolver
}

// NewDensityService creates a new density service
func NewDensityService(visits *repository.DensityRepository, resolver *geofence.Resolver) *DensityService {
	return &DensityService{visits: visits, resolver: resolver}
}

// RecordVisit increments the visit count for the region within the
// timestamp's day bucket
func (s *DensityService) RecordVisit(timestamp time.Time, region string) error {
	return s.visits.Increment(timestamp.Format(dayLayout), region)
}

// QueryDensity sums counts per region across all day buckets in
// [start, end], labeling each region for display. Regions with no events
// in range are omitted.
func (s *DensityService) QueryDensity(start, end time.Time) ([]RegionDensity, error) {
	visits, err := s.visits.SumInRange(start.Format(dayLayout), end.Format(dayLayout))
	if err != nil {
		return nil, err
	}

	densities := make([]RegionDensity, 0, len(visits))
	for _, v := range visits {
		densities = append(densities, RegionDensity{
			Name:     s.resolver.Label(v.Region),
			Strength: v.Count,
		})
	}

	return densities, nil
}
