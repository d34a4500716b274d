package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dupescope/dupescope/domain"
)

func nameEntries(names ...string) []*FileEntry {
	entries := make([]*FileEntry, len(names))
	for i, n := range names {
		entries[i] = NewFileEntry(n)
	}
	return entries
}

func memberPaths(entries []*FileEntry, c *Cluster) []string {
	paths := make([]string, len(c.Members))
	for i, m := range c.Members {
		paths[i] = entries[m].Path
	}
	return paths
}

func TestTransitiveClusteringBasic(t *testing.T) {
	entries := nameEntries("report_v1.pdf", "report_v2.pdf", "image001.jpg", "readme.txt")

	strategy := NewTransitiveClustering(Options{
		Threshold:    0.5,
		Algorithm:    domain.AlgorithmToken,
		MinGroupSize: 2,
	})
	clusters := strategy.Cluster(entries)

	require.Len(t, clusters, 1)
	assert.ElementsMatch(t, []string{"report_v1.pdf", "report_v2.pdf"}, memberPaths(entries, clusters[0]))

	leftovers := Leftovers(len(entries), clusters)
	assert.Equal(t, []int{2, 3}, leftovers)
}

func TestTransitiveClusteringBelowMinGroupSize(t *testing.T) {
	entries := nameEntries("file1.txt", "file2.txt", "different.doc")

	strategy := NewTransitiveClustering(Options{
		Threshold:    0.7,
		Algorithm:    domain.AlgorithmLevenshtein,
		MinGroupSize: 3,
	})
	clusters := strategy.Cluster(entries)

	// file1/file2 exceed the threshold pairwise, but the pair is below the
	// minimum size, so nothing is grouped and nobody is marked processed.
	assert.Empty(t, clusters)
	assert.Equal(t, []int{0, 1, 2}, Leftovers(len(entries), clusters))
}

func TestTransitiveClusteringClosure(t *testing.T) {
	// aa~ab and ab~bb, but aa~bb is weaker: the closure should still pull
	// all three into one group via the shared middle element.
	entries := nameEntries("aab", "abb", "bbb")

	strategy := NewTransitiveClustering(Options{
		Threshold:    0.6,
		Algorithm:    domain.AlgorithmLevenshtein,
		MinGroupSize: 2,
	})
	clusters := strategy.Cluster(entries)

	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0].Members, 3)
	assert.Empty(t, Leftovers(len(entries), clusters))
}

func TestTransitiveClusteringIdempotence(t *testing.T) {
	names := []string{
		"holiday_photo_001.jpg", "holiday_photo_002.jpg", "holiday_photo_003.jpg",
		"invoice-2024.pdf", "invoice-2025.pdf",
		"unrelated.bin",
	}

	strategy := NewTransitiveClustering(Options{
		Threshold:    0.6,
		Algorithm:    domain.AlgorithmAuto,
		MinGroupSize: 2,
	})

	first := strategy.Cluster(nameEntries(names...))
	second := strategy.Cluster(nameEntries(names...))

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Members, second[i].Members)
		assert.InDelta(t, first[i].Similarity, second[i].Similarity, 1e-12)
	}
}

func TestTransitiveClusteringThresholdMonotonicity(t *testing.T) {
	names := []string{
		"report_v1.pdf", "report_v2.pdf", "report_final.pdf",
		"img001.png", "img002.png",
		"notes.txt",
	}

	maxGroupSize := func(threshold float64) int {
		strategy := NewTransitiveClustering(Options{
			Threshold:    threshold,
			Algorithm:    domain.AlgorithmToken,
			MinGroupSize: 2,
		})
		largest := 0
		for _, c := range strategy.Cluster(nameEntries(names...)) {
			if len(c.Members) > largest {
				largest = len(c.Members)
			}
		}
		return largest
	}

	previous := maxGroupSize(0.1)
	for _, threshold := range []float64{0.3, 0.5, 0.7, 0.9} {
		current := maxGroupSize(threshold)
		assert.LessOrEqual(t, current, previous,
			"raising the threshold to %.1f should never grow groups", threshold)
		previous = current
	}
}

func TestTransitiveClusteringSimilarityIsMeanOfMergeScores(t *testing.T) {
	entries := nameEntries("data_a.csv", "data_b.csv")

	strategy := NewTransitiveClustering(Options{
		Threshold:    0.5,
		Algorithm:    domain.AlgorithmLevenshtein,
		MinGroupSize: 2,
	})
	clusters := strategy.Cluster(entries)

	require.Len(t, clusters, 1)
	expected := Score("data_a.csv", "data_b.csv", domain.AlgorithmLevenshtein, false)
	assert.InDelta(t, expected, clusters[0].Similarity, 1e-12)
}

func TestTransitiveClusteringSortedBySimilarity(t *testing.T) {
	entries := nameEntries(
		"identical_name.txt", "identical_name.bak",
		"loosely", "loosley",
	)

	strategy := NewTransitiveClustering(Options{
		Threshold:    0.5,
		Algorithm:    domain.AlgorithmLevenshtein,
		MinGroupSize: 2,
	})
	clusters := strategy.Cluster(entries)

	require.GreaterOrEqual(t, len(clusters), 2)
	for i := 1; i < len(clusters); i++ {
		assert.GreaterOrEqual(t, clusters[i-1].Similarity, clusters[i].Similarity)
	}
}

func TestEveryItemExactlyOnce(t *testing.T) {
	names := []string{
		"a_report.pdf", "a_report_v2.pdf", "b_image.png", "b_image_copy.png",
		"stray.txt", "another.doc",
	}
	entries := nameEntries(names...)

	strategy := NewTransitiveClustering(Options{
		Threshold:    0.6,
		Algorithm:    domain.AlgorithmAuto,
		MinGroupSize: 2,
	})
	clusters := strategy.Cluster(entries)
	leftovers := Leftovers(len(entries), clusters)

	seen := make(map[int]int)
	for _, c := range clusters {
		for _, m := range c.Members {
			seen[m]++
		}
	}
	for _, m := range leftovers {
		seen[m]++
	}

	for i := range names {
		assert.Equal(t, 1, seen[i], "index %d must appear exactly once", i)
	}
}

func TestTieredClusteringIdenticalTier(t *testing.T) {
	// Identical bytes, wildly different names: tier 1 groups them anyway.
	a := NewFileEntry("vacation_2024.jpg")
	a.Size = 100
	a.SetHash("deadbeef")
	b := NewFileEntry("completely-unrelated-name.dat")
	b.Size = 100
	b.SetHash("deadbeef")
	c := NewFileEntry("other.txt")
	c.Size = 5
	c.SetHash("0ddba11")

	strategy := NewTieredClustering()
	clusters := strategy.Cluster([]*FileEntry{a, b, c})

	require.Len(t, clusters, 1)
	assert.Equal(t, domain.TierIdentical, clusters[0].Tier)
	assert.Equal(t, 1.0, clusters[0].Similarity)
	assert.Equal(t, []int{0, 1}, clusters[0].Members)
	assert.Equal(t, []int{2}, Leftovers(3, clusters))
}

func TestTieredClusteringContentTier(t *testing.T) {
	// Equal sizes, similar names, different hashes.
	a := NewFileEntry("report_v1.pdf")
	a.Size = 2048
	a.SetHash("hash-a")
	b := NewFileEntry("report_v2.pdf")
	b.Size = 2048
	b.SetHash("hash-b")

	strategy := NewTieredClustering()
	clusters := strategy.Cluster([]*FileEntry{a, b})

	require.Len(t, clusters, 1)
	assert.Equal(t, domain.TierContent, clusters[0].Tier)
	expected := NormalizedNameSimilarity("report_v1.pdf", "report_v2.pdf")
	assert.InDelta(t, expected, clusters[0].Similarity, 1e-12)
}

func TestTieredClusteringNameTier(t *testing.T) {
	// Different sizes and hashes, nearly identical names.
	a := NewFileEntry("document.txt")
	a.Size = 10
	a.SetHash("hash-a")
	b := NewFileEntry("document1.txt")
	b.Size = 999
	b.SetHash("hash-b")

	strategy := NewTieredClustering()
	clusters := strategy.Cluster([]*FileEntry{a, b})

	require.Len(t, clusters, 1)
	assert.Equal(t, domain.TierName, clusters[0].Tier)
	assert.Greater(t, clusters[0].Similarity, 0.9)
}

func TestTieredClusteringFirstMatchFixesTier(t *testing.T) {
	// The anchor's first match is an identical pair; a later content-tier
	// match must not change the group's tier, only lower its score.
	anchor := NewFileEntry("archive_v1.zip")
	anchor.Size = 500
	anchor.SetHash("same")
	twin := NewFileEntry("backup_of_archive.zip")
	twin.Size = 500
	twin.SetHash("same")
	near := NewFileEntry("archive_v2.zip")
	near.Size = 500
	near.SetHash("different")

	strategy := NewTieredClustering()
	clusters := strategy.Cluster([]*FileEntry{anchor, twin, near})

	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0].Members, 3)
	assert.Equal(t, domain.TierIdentical, clusters[0].Tier)
	expected := NormalizedNameSimilarity("archive_v1.zip", "archive_v2.zip")
	assert.InDelta(t, expected, clusters[0].Similarity, 1e-12, "score is the min over matches")
}

func TestTieredClusteringNotTransitive(t *testing.T) {
	// b matches the anchor a; c matches b but not a. Tiered grouping tests
	// only against the anchor, so c must stay out.
	a := NewFileEntry("aaaaaaaaaa.txt")
	a.Size = 1
	a.SetHash("ha")
	b := NewFileEntry("aaaaaaaaab.txt")
	b.Size = 2
	b.SetHash("hb")
	c := NewFileEntry("aaaaaaaabb.txt")
	c.Size = 3
	c.SetHash("hc")

	simAB := NormalizedNameSimilarity(a.Name, b.Name)
	simAC := NormalizedNameSimilarity(a.Name, c.Name)
	simBC := NormalizedNameSimilarity(b.Name, c.Name)
	require.Greater(t, simAB, 0.9)
	require.Greater(t, simBC, 0.9)
	require.LessOrEqual(t, simAC, 0.9)

	strategy := NewTieredClustering()
	clusters := strategy.Cluster([]*FileEntry{a, b, c})

	require.Len(t, clusters, 1)
	assert.Equal(t, []int{0, 1}, clusters[0].Members)
	assert.Equal(t, []int{2}, Leftovers(3, clusters))
}

func TestNewClusterStrategy(t *testing.T) {
	opts := Options{Threshold: 0.7, Algorithm: domain.AlgorithmAuto, MinGroupSize: 2}

	assert.Equal(t, "Transitive", NewClusterStrategy(domain.StrategyTransitive, opts).Name())
	assert.Equal(t, "Tiered", NewClusterStrategy(domain.StrategyTiered, opts).Name())
}
