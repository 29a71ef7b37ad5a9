package service

import (
	"fmt"
	"sort"

	"github.com/groupsense/affinity-backend-go/internal/models"
	"github.com/groupsense/affinity-backend-go/internal/repository"
)

// PeerStrength is one (peer, aggregate weight) pair
type PeerStrength struct {
	Username string `json:"username"`
	Strength int    `json:"strength"`
}

// GroupMember is one member of a matched group with their pairwise strength
// relative to the queried user
type GroupMember struct {
	Name     string `json:"name"`
	Strength int    `json:"strength"`
}

// UserGroup is one persisted group containing the queried user
type UserGroup struct {
	GroupID       int64         `json:"group_id"`
	Band          string        `json:"band"`
	Composition   string        `json:"composition"`
	GroupStrength int           `json:"group_strength"`
	Members       []GroupMember `json:"members"`
}

// GenderCount is one composition label with its group count
type GenderCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// QueryService serves the read side: personal strength, group membership
// and composition breakdowns. All queries are rerun-safe and return empty
// results before the first batch has completed.
type QueryService struct {
	users     *repository.UserRepository
	matrices  *MatrixService
	snapshots *repository.SnapshotRepository
	groups    *repository.GroupRepository
}

// NewQueryService creates a new query service
func NewQueryService(
	users *repository.UserRepository,
	matrices *MatrixService,
	snapshots *repository.SnapshotRepository,
	groups *repository.GroupRepository,
) *QueryService {
	return &QueryService{
		users:     users,
		matrices:  matrices,
		snapshots: snapshots,
		groups:    groups,
	}
}

// PersonalStrength recomputes the user's aggregate neighbor strengths on
// demand, straight from the interaction log. Sorted by strength descending,
// then by name for stable output.
func (s *QueryService) PersonalStrength(userID int64) ([]PeerStrength, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownUser, userID)
	}

	totals, err := s.matrices.IdentifyAggregateNeighbors(userID)
	if err != nil {
		return nil, err
	}

	peers := make([]PeerStrength, 0, len(totals))
	for username, strength := range totals {
		peers = append(peers, PeerStrength{Username: username, Strength: strength})
	}
	sort.Slice(peers, func(i, j int) bool {
		if peers[i].Strength != peers[j].Strength {
			return peers[i].Strength > peers[j].Strength
		}
		return peers[i].Username < peers[j].Username
	})

	return peers, nil
}

// GroupsForUser finds the current snapshot's groups containing the user.
// Each member is reported with the symmetric pairwise strength between
// them and the queried user; the group total sums the pairwise strengths
// of every member pair in the group. Missing matrix entries count as 0.
// A user in no groups, or a query before the first batch, returns an empty
// list.
func (s *QueryService) GroupsForUser(userID int64) ([]UserGroup, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownUser, userID)
	}

	// Pin matrix and group rows to one snapshot version for the whole read
	snapshot, err := s.snapshots.GetLatest()
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return []UserGroup{}, nil
	}

	groups, err := s.groups.ListBySnapshot(snapshot.ID)
	if err != nil {
		return nil, err
	}

	usernameByID, err := s.usernameIndex()
	if err != nil {
		return nil, err
	}

	matched := []UserGroup{}
	for _, group := range groups {
		if !group.Contains(userID) {
			continue
		}

		entry := UserGroup{
			GroupID:     group.ID,
			Band:        group.Band,
			Composition: group.Composition,
		}

		for i, uid := range group.Members {
			// Total strength covers every member pair, symmetric lookup
			for _, other := range group.Members[i+1:] {
				entry.GroupStrength += snapshot.Matrix.Weight(usernameByID[uid], usernameByID[other])
			}

			if uid == userID {
				continue
			}
			name := usernameByID[uid]
			if name == "" {
				// Member no longer registered; skip rather than fail
				continue
			}
			entry.Members = append(entry.Members, GroupMember{
				Name:     name,
				Strength: snapshot.Matrix.Weight(user.Username, name),
			})
		}

		matched = append(matched, entry)
	}

	return matched, nil
}

// GenderBreakdown counts the current snapshot's groups per composition
// label. All three labels are always present; a query before the first
// batch returns zero counts.
func (s *QueryService) GenderBreakdown() ([]GenderCount, error) {
	counts := map[string]int{}

	snapshot, err := s.snapshots.GetLatest()
	if err != nil {
		return nil, err
	}
	if snapshot != nil {
		counts, err = s.groups.CountByComposition(snapshot.ID)
		if err != nil {
			return nil, err
		}
	}

	return []GenderCount{
		{Name: "girls", Value: counts[models.CompositionGirls]},
		{Name: "boys", Value: counts[models.CompositionBoys]},
		{Name: "mixed", Value: counts[models.CompositionBoth]},
	}, nil
}

func (s *QueryService) usernameIndex() (map[int64]string, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, err
	}

	index := make(map[int64]string, len(users))
	for _, user := range users {
		index[user.ID] = user.Username
	}
	return index, nil
}
