package service

import (
	"fmt"
	"log"
	"time"

	"github.com/groupsense/affinity-backend-go/internal/geofence"
	"github.com/groupsense/affinity-backend-go/internal/models"
	"github.com/groupsense/affinity-backend-go/internal/repository"
)

// Client date/time formats: DD/MM/YYYY and HH:MM (seconds discarded)
const (
	clientDateLayout = "02/01/2006"
	clientTimeLayout = "15:04"
)

// EventEntry is one client-reported grouping entry
type EventEntry struct {
	Date      string         `json:"date" binding:"required"`
	Time      string         `json:"time" binding:"required"`
	Neighbors map[string]int `json:"group" binding:"required"`
	Location  Coordinate     `json:"location" binding:"required"`
}

// Coordinate carries client-supplied lat/long strings
type Coordinate struct {
	Lat string `json:"lat"`
	Lon string `json:"long"`
}

// IngestResult reports per-entry outcomes of one ingest call
type IngestResult struct {
	Accepted int      `json:"accepted"`
	Rejected int      `json:"rejected"`
	Errors   []string `json:"errors,omitempty"`
}

// IngestService records localization events and interaction records from
// client reports, feeding the density counter along the way
type IngestService struct {
	users    *repository.UserRepository
	events   *repository.EventRepository
	density  *DensityService
	resolver *geofence.Resolver
}

// NewIngestService creates a new ingest service
func NewIngestService(
	users *repository.UserRepository,
	events *repository.EventRepository,
	density *DensityService,
	resolver *geofence.Resolver,
) *IngestService {
	return &IngestService{
		users:    users,
		events:   events,
		density:  density,
		resolver: resolver,
	}
}

// RecordEvents ingests a batch of entries for one user. Malformed entries
// are rejected individually; the rest of the batch proceeds. Only an
// unregistered username fails the whole call.
func (s *IngestService) RecordEvents(username string, entries []EventEntry) (*IngestResult, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, username)
	}

	result := &IngestResult{}
	for i, entry := range entries {
		if err := s.recordEntry(user, entry); err != nil {
			result.Rejected++
			result.Errors = append(result.Errors, fmt.Sprintf("entry %d: %v", i, err))
			log.Printf("Rejected localization entry %d for %s: %v", i, username, err)
			continue
		}
		result.Accepted++
	}

	return result, nil
}

func (s *IngestService) recordEntry(user *models.User, entry EventEntry) error {
	timestamp, err := parseClientTimestamp(entry.Date, entry.Time)
	if err != nil {
		return err
	}

	lat, lon, err := geofence.ParseCoordinate(entry.Location.Lat, entry.Location.Lon)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	region := s.resolver.Resolve(lat, lon)
	if err := s.density.RecordVisit(timestamp, region); err != nil {
		return err
	}

	if err := s.events.InsertLocalization(&models.LocalizationEvent{
		UserID:    user.ID,
		Timestamp: timestamp,
		Region:    region,
		Lat:       lat,
		Lon:       lon,
	}); err != nil {
		return err
	}

	// The neighbor-weight payload is taken as given from the client-side
	// grouping heuristic. No dedup across repeated user/timestamp pairs.
	return s.events.InsertInteraction(&models.InteractionRecord{
		UserID:    user.ID,
		Timestamp: timestamp,
		Neighbors: entry.Neighbors,
	})
}

// parseClientTimestamp combines the client date and time fields into one
// timestamp, discarding seconds if present
func parseClientTimestamp(dateStr, timeStr string) (time.Time, error) {
	date, err := time.Parse(clientDateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrMalformedInput, dateStr)
	}

	if len(timeStr) > len(clientTimeLayout) {
		timeStr = timeStr[:len(clientTimeLayout)]
	}
	clock, err := time.Parse(clientTimeLayout, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid time %q", ErrMalformedInput, timeStr)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.UTC,
	), nil
}
