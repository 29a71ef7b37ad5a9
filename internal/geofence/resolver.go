package geofence

import (
	"fmt"
	"strconv"

	"github.com/groupsense/affinity-backend-go/internal/spatial"
)

// UnknownRegion is the reserved region name returned for coordinates that
// fall inside no configured polygon
const UnknownRegion = "unknown"

// UnknownRegionLabel is the guaranteed display label for UnknownRegion
const UnknownRegionLabel = "Unknown location"

// Region is a named polygonal area. Vertices are in ring order; the ring is
// closed implicitly by the containment test.
type Region struct {
	Name    string          `json:"name"`
	Label   string          `json:"label"`
	Polygon []spatial.Point `json:"polygon"`
}

// Resolver maps raw coordinates onto named regions. Regions are evaluated
// in configuration order; the first containing polygon wins.
type Resolver struct {
	regions []Region
	labels  map[string]string
}

// NewResolver creates a resolver over an ordered region list
func NewResolver(regions []Region) *Resolver {
	labels := make(map[string]string, len(regions))
	for _, region := range regions {
		labels[region.Name] = region.Label
	}
	return &Resolver{regions: regions, labels: labels}
}

// Regions returns the configured regions in evaluation order
func (r *Resolver) Regions() []Region {
	return r.regions
}

// Resolve returns the name of the first region whose polygon contains the
// point, or UnknownRegion if none does
func (r *Resolver) Resolve(lat, lon float64) string {
	point := spatial.Point{Lat: lat, Lon: lon}
	for _, region := range r.regions {
		if spatial.PointInPolygon(point, region.Polygon) {
			return region.Name
		}
	}
	return UnknownRegion
}

// Label returns the display label for a region name, falling back to the
// unknown-region label for names without one
func (r *Resolver) Label(name string) string {
	if label, ok := r.labels[name]; ok {
		return label
	}
	return UnknownRegionLabel
}

// ParseCoordinate converts client-supplied lat/long strings into floats.
// Returns ErrMalformedCoordinate (wrapped) so one bad entry never aborts a
// batch.
func ParseCoordinate(latStr, lonStr string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid latitude %q", ErrMalformedCoordinate, latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid longitude %q", ErrMalformedCoordinate, lonStr)
	}
	return lat, lon, nil
}
