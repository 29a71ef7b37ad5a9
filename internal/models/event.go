package models

import "time"

// LocalizationEvent is one observed co-presence report from a client,
// already resolved to a region. Append-only.
type LocalizationEvent struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
	Region    string    `json:"region"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
}

// InteractionRecord is one user's reported neighbor-weight signal for a
// single grouping event. Multiple records per user/timestamp are retained.
type InteractionRecord struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user_id"`
	Timestamp time.Time      `json:"timestamp"`
	Neighbors map[string]int `json:"neighbors"`
}

// RegionVisit is the per (day, region) visit counter row
type RegionVisit struct {
	Day    string `json:"day"` // YYYY-MM-DD
	Region string `json:"region"`
	Count  int    `json:"count"`
}
