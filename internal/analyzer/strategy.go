package analyzer

import (
	"github.com/dupescope/dupescope/domain"
)

// Cluster is one group of similar files produced by a strategy. Members are
// indices into the strategy's input, in insertion order.
type Cluster struct {
	Members    []int
	Similarity float64
	Tier       domain.Tier
}

// ClusterStrategy turns an ordered list of files into disjoint clusters.
// Indices absent from every cluster are the leftovers, in input order.
//
// The two implementations share only the anchor-and-absorb skeleton: the
// transitive strategy closes groups over the thresholded similarity relation,
// the tiered strategy tests candidates strictly pairwise against the anchor.
type ClusterStrategy interface {
	// Cluster groups the given entries. One call owns all bookkeeping;
	// no state survives between calls.
	Cluster(entries []*FileEntry) []*Cluster

	// Name returns the strategy name.
	Name() string
}

// Options holds the knobs shared by the clustering strategies
type Options struct {
	Threshold     float64 // minimum similarity for transitive membership, in [0,1]
	Algorithm     domain.Algorithm
	CaseSensitive bool
	MinGroupSize  int
}

// NewClusterStrategy creates a strategy for the requested grouping mode
func NewClusterStrategy(strategy domain.Strategy, opts Options) ClusterStrategy {
	switch strategy {
	case domain.StrategyTiered:
		return NewTieredClustering()
	case domain.StrategyTransitive:
		fallthrough
	default:
		return NewTransitiveClustering(opts)
	}
}

// Leftovers returns the indices of entries not absorbed by any cluster,
// in original input order.
func Leftovers(total int, clusters []*Cluster) []int {
	grouped := make([]bool, total)
	for _, c := range clusters {
		for _, m := range c.Members {
			grouped[m] = true
		}
	}

	leftovers := make([]int, 0, total)
	for i := 0; i < total; i++ {
		if !grouped[i] {
			leftovers = append(leftovers, i)
		}
	}
	return leftovers
}
