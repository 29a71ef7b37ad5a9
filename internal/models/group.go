package models

// Band labels partition edges by weight before clique search
const (
	BandWeak    = "Weak"    // weights 10..30
	BandNeutral = "Neutral" // weights 31..50
	BandStrong  = "Strong"  // weights 51+
)

// Composition labels classify a group's gender mix
const (
	CompositionBoys  = "Boys"
	CompositionGirls = "Girls"
	CompositionBoth  = "Both"
)

// Group is one maximal clique discovered in a band subgraph, classified by
// gender composition. Immutable once created; tied to the snapshot it was
// discovered in.
type Group struct {
	ID          int64   `json:"id"`
	SnapshotID  string  `json:"snapshot_id"`
	Band        string  `json:"band"`
	Composition string  `json:"composition"`
	Members     []int64 `json:"members"` // user ids
	CreatedAt   string  `json:"created_at"`
}

// Contains reports whether uid is a member of the group
func (g *Group) Contains(uid int64) bool {
	for _, m := range g.Members {
		if m == uid {
			return true
		}
	}
	return false
}
