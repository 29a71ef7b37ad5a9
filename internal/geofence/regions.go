package geofence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/groupsense/affinity-backend-go/internal/spatial"
)

// ErrMalformedCoordinate marks unparseable client coordinates
var ErrMalformedCoordinate = errors.New("malformed coordinate")

// DefaultRegions returns the built-in campus region set, used when no
// regions file is configured
func DefaultRegions() []Region {
	return []Region{
		{
			Name:  "campus",
			Label: "Main Campus",
			Polygon: []spatial.Point{
				{Lat: 19.1300, Lon: 72.9130},
				{Lat: 19.1300, Lon: 72.9210},
				{Lat: 19.1380, Lon: 72.9210},
				{Lat: 19.1380, Lon: 72.9130},
			},
		},
		{
			Name:  "library",
			Label: "Central Library",
			Polygon: []spatial.Point{
				{Lat: 19.1320, Lon: 72.9155},
				{Lat: 19.1320, Lon: 72.9165},
				{Lat: 19.1328, Lon: 72.9165},
				{Lat: 19.1328, Lon: 72.9155},
			},
		},
		{
			Name:  "hostel",
			Label: "Hostel Area",
			Polygon: []spatial.Point{
				{Lat: 19.1340, Lon: 72.9170},
				{Lat: 19.1340, Lon: 72.9195},
				{Lat: 19.1365, Lon: 72.9195},
				{Lat: 19.1365, Lon: 72.9170},
			},
		},
		{
			Name:  "canteen",
			Label: "Canteen",
			Polygon: []spatial.Point{
				{Lat: 19.1305, Lon: 72.9180},
				{Lat: 19.1305, Lon: 72.9190},
				{Lat: 19.1312, Lon: 72.9190},
				{Lat: 19.1312, Lon: 72.9180},
			},
		},
	}
}

// LoadRegions reads an ordered region list from a JSON file. The file is a
// plain array of {name, label, polygon:[{Lat,Lon}...]} objects decoded with
// a typed schema; stored text is never evaluated.
func LoadRegions(path string) ([]Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read regions file: %w", err)
	}

	var regions []Region
	if err := json.Unmarshal(data, &regions); err != nil {
		return nil, fmt.Errorf("failed to parse regions file: %w", err)
	}

	for _, region := range regions {
		if region.Name == "" {
			return nil, fmt.Errorf("regions file: region with empty name")
		}
		if region.Name == UnknownRegion {
			return nil, fmt.Errorf("regions file: %q is a reserved region name", UnknownRegion)
		}
		if len(region.Polygon) < 3 {
			return nil, fmt.Errorf("regions file: region %q needs at least 3 vertices", region.Name)
		}
	}

	return regions, nil
}
