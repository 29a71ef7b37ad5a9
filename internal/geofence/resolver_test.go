package geofence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groupsense/affinity-backend-go/internal/spatial"
)

func testRegions() []Region {
	return []Region{
		{
			Name:  "campus",
			Label: "Main Campus",
			Polygon: []spatial.Point{
				{Lat: 0, Lon: 0},
				{Lat: 0, Lon: 10},
				{Lat: 10, Lon: 10},
				{Lat: 10, Lon: 0},
			},
		},
		{
			// Overlaps campus; campus is listed first and must win inside
			// the overlap.
			Name:  "library",
			Label: "Library",
			Polygon: []spatial.Point{
				{Lat: 5, Lon: 5},
				{Lat: 5, Lon: 15},
				{Lat: 15, Lon: 15},
				{Lat: 15, Lon: 5},
			},
		},
	}
}

func TestResolverFirstMatchWins(t *testing.T) {
	r := NewResolver(testRegions())

	assert.Equal(t, "campus", r.Resolve(2, 2))
	assert.Equal(t, "campus", r.Resolve(7, 7)) // inside both, first wins
	assert.Equal(t, "library", r.Resolve(12, 12))
}

func TestResolverUnknownFallback(t *testing.T) {
	r := NewResolver(testRegions())

	assert.Equal(t, UnknownRegion, r.Resolve(-5, -5))
	assert.Equal(t, UnknownRegion, r.Resolve(50, 50))
}

func TestResolverNoRegions(t *testing.T) {
	r := NewResolver(nil)
	assert.Equal(t, UnknownRegion, r.Resolve(1, 1))
}

func TestResolverLabels(t *testing.T) {
	r := NewResolver(testRegions())

	assert.Equal(t, "Main Campus", r.Label("campus"))
	assert.Equal(t, UnknownRegionLabel, r.Label(UnknownRegion))
	assert.Equal(t, UnknownRegionLabel, r.Label("never-configured"))
}

func TestParseCoordinate(t *testing.T) {
	lat, lon, err := ParseCoordinate("19.1325", "72.9160")
	require.NoError(t, err)
	assert.InDelta(t, 19.1325, lat, 1e-9)
	assert.InDelta(t, 72.9160, lon, 1e-9)

	_, _, err = ParseCoordinate("not-a-number", "72.9160")
	assert.ErrorIs(t, err, ErrMalformedCoordinate)

	_, _, err = ParseCoordinate("19.1325", "east-ish")
	assert.ErrorIs(t, err, ErrMalformedCoordinate)
}

func TestLoadRegions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.json")
	data, err := json.Marshal(testRegions())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	regions, err := LoadRegions(path)
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, "campus", regions[0].Name)
	assert.Len(t, regions[0].Polygon, 4)
}

func TestLoadRegionsRejectsReservedName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.json")
	bad := []Region{{
		Name:  UnknownRegion,
		Label: "nope",
		Polygon: []spatial.Point{
			{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 0},
		},
	}}
	data, err := json.Marshal(bad)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = LoadRegions(path)
	assert.Error(t, err)
}

func TestLoadRegionsRejectsTinyPolygon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.json")
	bad := []Region{{
		Name:    "line",
		Label:   "Line",
		Polygon: []spatial.Point{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}},
	}}
	data, err := json.Marshal(bad)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err = LoadRegions(path)
	assert.Error(t, err)
}

func TestDefaultRegionsResolvable(t *testing.T) {
	r := NewResolver(DefaultRegions())

	// Inside both campus and library; campus is first in order.
	assert.Equal(t, "campus", r.Resolve(19.1324, 72.9160))
	assert.Equal(t, UnknownRegion, r.Resolve(0, 0))
}
