package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/groupsense/affinity-backend-go/internal/graph"
	"github.com/groupsense/affinity-backend-go/internal/models"
	"github.com/groupsense/affinity-backend-go/internal/repository"
)

// Band is one weight range used to partition edges before clique search
type Band struct {
	Label     string
	MinWeight int
	MaxWeight int // -1 means unbounded
}

// Bands returns the three standard weight bands in discovery order
func Bands() []Band {
	return []Band{
		{Label: models.BandWeak, MinWeight: 10, MaxWeight: 30},
		{Label: models.BandNeutral, MinWeight: 31, MaxWeight: 50},
		{Label: models.BandStrong, MinWeight: 51, MaxWeight: -1},
	}
}

// DiscoveryResult summarizes one discovery pass
type DiscoveryResult struct {
	GroupsFound  int
	BandsSkipped []string
}

// DiscoveryService partitions the snapshot graph into weight bands, finds
// maximal cliques per band and persists each clique as a classified group
type DiscoveryService struct {
	users  *repository.UserRepository
	groups *repository.GroupRepository

	nodeLimit   int
	bandTimeout time.Duration
}

// NewDiscoveryService creates a new discovery service. nodeLimit bounds the
// size of a band subgraph handed to clique enumeration (<= 0 disables the
// bound); bandTimeout caps wall-clock time per band.
func NewDiscoveryService(
	users *repository.UserRepository,
	groups *repository.GroupRepository,
	nodeLimit int,
	bandTimeout time.Duration,
) *DiscoveryService {
	return &DiscoveryService{
		users:       users,
		groups:      groups,
		nodeLimit:   nodeLimit,
		bandTimeout: bandTimeout,
	}
}

// DiscoverGroups runs band-partitioned maximal-clique discovery over a
// snapshot and persists the resulting groups tagged with the snapshot id.
// An oversized or timed-out band is skipped with a warning; remaining bands
// continue. An empty band yields zero groups, not an error.
func (s *DiscoveryService) DiscoverGroups(ctx context.Context, snapshot *models.Snapshot) (*DiscoveryResult, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, err
	}

	idByName := make(map[string]int64, len(users))
	genderByID := make(map[int64]string, len(users))
	for _, user := range users {
		idByName[user.Username] = user.ID
		genderByID[user.ID] = user.Gender
	}

	// Matrix rows may reference users removed since the events were
	// recorded; those edges are skipped rather than failing the run.
	g := graph.New()
	for username, row := range snapshot.Matrix {
		uid, ok := idByName[username]
		if !ok {
			continue
		}
		for neighbor, weight := range row {
			nid, ok := idByName[neighbor]
			if !ok {
				continue
			}
			g.AddEdge(uid, nid, weight)
		}
	}

	result := &DiscoveryResult{}
	for _, band := range Bands() {
		sub := g.EdgeSubgraph(band.MinWeight, band.MaxWeight)

		bandCtx, cancel := context.WithTimeout(ctx, s.bandTimeout)
		cliques, err := graph.MaximalCliques(bandCtx, sub, s.nodeLimit)
		cancel()
		if errors.Is(err, graph.ErrBudgetExceeded) {
			log.Printf("Warning: skipping band %s: %v (%d nodes)", band.Label, err, sub.NodeCount())
			result.BandsSkipped = append(result.BandsSkipped, band.Label)
			continue
		}
		if err != nil {
			return nil, err
		}

		for _, clique := range cliques {
			group := &models.Group{
				SnapshotID:  snapshot.ID,
				Band:        band.Label,
				Composition: classifyComposition(clique, genderByID),
				Members:     clique,
			}
			if err := s.groups.Insert(group); err != nil {
				return nil, err
			}
			result.GroupsFound++
		}
	}

	return result, nil
}

// classifyComposition labels a clique by its gender mix. Only definite
// male/female signals count toward the flags; a clique with no definite
// signal at all classifies as Girls.
func classifyComposition(members []int64, genderByID map[int64]string) string {
	male, female := false, false
	for _, uid := range members {
		switch strings.ToLower(genderByID[uid]) {
		case models.GenderMale:
			male = true
		case models.GenderFemale:
			female = true
		}
	}

	switch {
	case male && female:
		return models.CompositionBoth
	case male:
		return models.CompositionBoys
	default:
		return models.CompositionGirls
	}
}
