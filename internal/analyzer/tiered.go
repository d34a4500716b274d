package analyzer

import (
	"github.com/dupescope/dupescope/domain"
)

// Name-similarity thresholds for the content-aware tiers
const (
	contentTierThreshold = 0.8
	nameTierThreshold    = 0.9
)

// TieredClustering groups files by content signals with a three-tier
// detection system, checked in strict priority order per pair:
//
//  1. identical - equal content hashes, score 1.0
//  2. content   - equal sizes and normalized name similarity above 0.8
//  3. name      - normalized name similarity above 0.9
//
// Unlike the transitive strategy, candidates are tested against the anchor
// only, never against other accepted members.
type TieredClustering struct{}

// NewTieredClustering creates a tiered content-aware clustering strategy
func NewTieredClustering() *TieredClustering {
	return &TieredClustering{}
}

func (c *TieredClustering) Name() string { return "Tiered" }

// Cluster runs one grouping pass. The group's tier is fixed by the anchor's
// first successful match; its score is the minimum over all matched pairs.
// Anchors that absorb nobody are kept eligible as later candidates and
// surface as leftovers only if never absorbed.
func (c *TieredClustering) Cluster(entries []*FileEntry) []*Cluster {
	n := len(entries)
	processed := make([]bool, n)

	var clusters []*Cluster

	for i := 0; i < n; i++ {
		if processed[i] {
			continue
		}

		anchor := entries[i]
		members := []int{i}
		var tier domain.Tier
		minScore := 1.0

		for j := i + 1; j < n; j++ {
			if processed[j] {
				continue
			}

			matchTier, score, ok := c.matchPair(anchor, entries[j])
			if !ok {
				continue
			}

			members = append(members, j)
			processed[j] = true
			if tier == "" {
				tier = matchTier
			}
			if score < minScore {
				minScore = score
			}
		}

		// Singleton anchors are not clusters; they stay in the leftover pool.
		if len(members) < 2 {
			continue
		}

		processed[i] = true
		clusters = append(clusters, &Cluster{
			Members:    members,
			Similarity: minScore,
			Tier:       tier,
		})
	}

	sortClustersBySimilarity(clusters)
	return clusters
}

// matchPair evaluates the tiers in priority order; the first match wins and
// no further tier is checked.
func (c *TieredClustering) matchPair(a, b *FileEntry) (domain.Tier, float64, bool) {
	if hashA, okA := a.Hash(); okA {
		if hashB, okB := b.Hash(); okB && hashA == hashB {
			return domain.TierIdentical, 1.0, true
		}
	}

	nameSim := NormalizedNameSimilarity(a.Name, b.Name)

	if a.Size == b.Size && nameSim > contentTierThreshold {
		return domain.TierContent, nameSim, true
	}

	if nameSim > nameTierThreshold {
		return domain.TierName, nameSim, true
	}

	return "", 0, false
}
