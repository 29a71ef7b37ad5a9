package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/groupsense/affinity-backend-go/internal/geofence"
	"github.com/groupsense/affinity-backend-go/internal/spatial"
	"github.com/groupsense/affinity-backend-go/pkg/response"
)

// RegionHandler handles HTTP requests for the configured geofence regions
type RegionHandler struct {
	resolver *geofence.Resolver
}

// NewRegionHandler creates a new region handler
func NewRegionHandler(resolver *geofence.Resolver) *RegionHandler {
	return &RegionHandler{resolver: resolver}
}

// RegionInfo describes one configured region
type RegionInfo struct {
	Name         string  `json:"name"`
	Label        string  `json:"label"`
	Vertices     int     `json:"vertices"`
	CenterLat    float64 `json:"center_lat"`
	CenterLon    float64 `json:"center_lon"`
	RadiusMeters float64 `json:"radius_m"`
	AreaSqMeters float64 `json:"area_sqm"`
}

// ListRegions returns the configured regions in evaluation order
// GET /api/v1/regions
func (h *RegionHandler) ListRegions(c *gin.Context) {
	regions := h.resolver.Regions()

	infos := make([]RegionInfo, 0, len(regions))
	for _, region := range regions {
		center := spatial.Centroid(region.Polygon)
		infos = append(infos, RegionInfo{
			Name:         region.Name,
			Label:        region.Label,
			Vertices:     len(region.Polygon),
			CenterLat:    center.Lat,
			CenterLon:    center.Lon,
			RadiusMeters: spatial.MaxDistanceFrom(center, region.Polygon),
			AreaSqMeters: spatial.PolygonArea(region.Polygon),
		})
	}

	response.Success(c, gin.H{
		"regions": infos,
		"unknown": gin.H{
			"name":  geofence.UnknownRegion,
			"label": geofence.UnknownRegionLabel,
		},
	})
}
