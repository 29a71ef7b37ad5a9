package graph

// Matrix is a user→user→weight mapping that is symmetric in meaning but
// may be stored with only one of the two key orderings populated. All
// reads go through Weight, which probes both orderings and treats a
// missing pair as weight 0.
type Matrix map[string]map[string]int

// Weight returns the affinity weight between a and b, probing both key
// orderings. A pair absent under both orderings has weight 0.
func (m Matrix) Weight(a, b string) int {
	if row, ok := m[a]; ok {
		if w, ok := row[b]; ok {
			return w
		}
	}
	if row, ok := m[b]; ok {
		if w, ok := row[a]; ok {
			return w
		}
	}
	return 0
}

// Add accumulates weight onto the (a, b) entry under the a→b ordering
func (m Matrix) Add(a, b string, weight int) {
	if m[a] == nil {
		m[a] = make(map[string]int)
	}
	m[a][b] += weight
}
