package analyzer

import (
	"sort"
)

// TransitiveClustering groups files by filename similarity alone, closing
// each group transitively: any file similar enough to any current member is
// absorbed, until a full scan adds nothing.
type TransitiveClustering struct {
	opts Options
}

// NewTransitiveClustering creates a transitive clustering strategy
func NewTransitiveClustering(opts Options) *TransitiveClustering {
	return &TransitiveClustering{opts: opts}
}

func (c *TransitiveClustering) Name() string { return "Transitive" }

// Cluster runs one grouping pass. Members of an accepted group are marked
// processed and never reconsidered; members of a group below the minimum
// size are NOT marked, so they stay eligible for later, larger groups.
func (c *TransitiveClustering) Cluster(entries []*FileEntry) []*Cluster {
	n := len(entries)
	processed := make([]bool, n)
	memo := newScoreMemo(n)

	score := func(i, j int) float64 {
		if s, ok := memo.get(i, j); ok {
			return s
		}
		s := Score(entries[i].Path, entries[j].Path, c.opts.Algorithm, c.opts.CaseSensitive)
		memo.put(i, j, s)
		return s
	}

	var clusters []*Cluster

	for i := 0; i < n; i++ {
		if processed[i] {
			continue
		}

		members := []int{i}
		inGroup := make(map[int]bool, 4)
		inGroup[i] = true
		var scores []float64

		// Seed: anchor against every later unprocessed file
		for j := i + 1; j < n; j++ {
			if processed[j] {
				continue
			}
			if s := score(i, j); s >= c.opts.Threshold {
				members = append(members, j)
				inGroup[j] = true
				scores = append(scores, s)
			}
		}

		// Transitive expansion to a fixed point: every current member is
		// scanned against every remaining unprocessed file until a full
		// sweep absorbs nothing.
		for added := true; added; {
			added = false
			sweep := append([]int(nil), members...)
			for _, member := range sweep {
				for k := 0; k < n; k++ {
					if processed[k] || inGroup[k] {
						continue
					}
					if s := score(member, k); s >= c.opts.Threshold {
						members = append(members, k)
						inGroup[k] = true
						scores = append(scores, s)
						added = true
					}
				}
			}
		}

		if len(members) < c.opts.MinGroupSize {
			// Too small: leave every member unprocessed so they can join
			// a later-forming group instead.
			continue
		}

		for _, m := range members {
			processed[m] = true
		}
		clusters = append(clusters, &Cluster{
			Members:    members,
			Similarity: meanScore(scores),
		})
	}

	sortClustersBySimilarity(clusters)
	return clusters
}

// meanScore averages the pairwise scores that caused merges; a group built
// without any recorded score degenerates to 1.0.
func meanScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// sortClustersBySimilarity orders clusters by descending similarity, keeping
// the formation order of equals.
func sortClustersBySimilarity(clusters []*Cluster) {
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Similarity > clusters[j].Similarity
	})
}

// scoreMemo caches pairwise scores within one clustering call. The expansion
// step revisits pairs, so caching keeps the pass at one metric evaluation
// per pair.
type scoreMemo struct {
	n      int
	scores map[int]float64
}

func newScoreMemo(n int) *scoreMemo {
	return &scoreMemo{n: n, scores: make(map[int]float64)}
}

func (m *scoreMemo) key(i, j int) int {
	if i > j {
		i, j = j, i
	}
	return i*m.n + j
}

func (m *scoreMemo) get(i, j int) (float64, bool) {
	s, ok := m.scores[m.key(i, j)]
	return s, ok
}

func (m *scoreMemo) put(i, j int, s float64) {
	m.scores[m.key(i, j)] = s
}
