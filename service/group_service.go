package service

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dupescope/dupescope/domain"
	"github.com/dupescope/dupescope/internal/analyzer"
)

// GroupServiceImpl implements the domain.GroupService interface
type GroupServiceImpl struct {
	progress        domain.ProgressReporter
	progressManager domain.ProgressManager
}

// NewGroupService creates a new group service.
// progress can be nil - the service can work without progress reporting.
func NewGroupService(progress domain.ProgressReporter) *GroupServiceImpl {
	return &GroupServiceImpl{
		progress: progress,
	}
}

// SetProgressManager attaches a progress bar to the signature acquisition
// phase. A nil manager disables progress display.
func (s *GroupServiceImpl) SetProgressManager(pm domain.ProgressManager) {
	s.progressManager = pm
}

// GroupFiles groups the files named by the request. Req.Files must already
// hold the collected file names; path resolution happens in the usecase layer.
func (s *GroupServiceImpl) GroupFiles(ctx context.Context, req *domain.GroupRequest) (*domain.GroupResponse, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if req == nil {
		return nil, fmt.Errorf("group request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid group request: %w", err)
	}

	return s.GroupNames(ctx, req.Files, req)
}

// GroupNames groups an already-collected list of file names
func (s *GroupServiceImpl) GroupNames(ctx context.Context, names []string, req *domain.GroupRequest) (*domain.GroupResponse, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if req == nil {
		return nil, fmt.Errorf("group request cannot be nil")
	}

	startTime := time.Now()

	names = dedupeNames(names)
	if len(names) < req.MinGroupSize {
		s.warn(fmt.Sprintf("only %d file(s) to compare, need at least %d for a group", len(names), req.MinGroupSize))
	}

	entries, skipped, err := s.buildEntries(ctx, names, req)
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("grouping cancelled: %w", ctx.Err())
	default:
	}

	strategy := analyzer.NewClusterStrategy(req.Strategy, analyzer.Options{
		Threshold:     req.ThresholdFraction(),
		Algorithm:     req.Algorithm,
		CaseSensitive: req.CaseSensitive,
		MinGroupSize:  req.MinGroupSize,
	})

	clusters := strategy.Cluster(entries)
	result := buildResult(entries, clusters, req.ThresholdFraction())

	return &domain.GroupResponse{
		Result:       result,
		SkippedFiles: skipped,
		Duration:     time.Since(startTime).Milliseconds(),
		Success:      true,
	}, nil
}

// ComputeSimilarity computes the similarity of two names under the request's
// algorithm and case sensitivity
func (s *GroupServiceImpl) ComputeSimilarity(ctx context.Context, a, b string, req *domain.GroupRequest) (float64, error) {
	if ctx == nil {
		return 0, fmt.Errorf("context cannot be nil")
	}
	if req == nil {
		return 0, fmt.Errorf("group request cannot be nil")
	}
	if !req.Algorithm.IsValid() {
		return 0, domain.NewValidationError(fmt.Sprintf("unknown algorithm: %s", req.Algorithm))
	}

	return analyzer.Score(a, b, req.Algorithm, req.CaseSensitive), nil
}

// buildEntries turns names into analyzer entries. In content-aware mode each
// entry is stat'ed and hashed; items whose signature cannot be read are
// reported as skipped instead of failing the batch.
func (s *GroupServiceImpl) buildEntries(ctx context.Context, names []string, req *domain.GroupRequest) ([]*analyzer.FileEntry, []string, error) {
	if req.Strategy != domain.StrategyTiered {
		entries := make([]*analyzer.FileEntry, 0, len(names))
		for _, name := range names {
			entries = append(entries, analyzer.NewFileEntry(name))
		}
		return entries, nil, nil
	}

	entries := make([]*analyzer.FileEntry, 0, len(names))
	var skipped []string

	for _, name := range names {
		entry, err := analyzer.StatFileEntry(name)
		if err != nil {
			s.warn(fmt.Sprintf("skipping: %v", domain.NewSignatureError(name, err)))
			skipped = append(skipped, name)
			continue
		}
		entries = append(entries, entry)
	}

	entries, hashSkipped, err := s.acquireSignatures(ctx, entries)
	if err != nil {
		return nil, nil, err
	}
	skipped = append(skipped, hashSkipped...)
	sort.Strings(skipped)

	return entries, skipped, nil
}

// acquireSignatures hashes entries on a bounded worker pool. Failed entries
// are dropped from the batch and returned as skipped paths. Input order of
// the surviving entries is preserved.
func (s *GroupServiceImpl) acquireSignatures(ctx context.Context, entries []*analyzer.FileEntry) ([]*analyzer.FileEntry, []string, error) {
	if len(entries) == 0 {
		return entries, nil, nil
	}

	maxWorkers := runtime.NumCPU()
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	semaphore := make(chan struct{}, maxWorkers)
	failed := make([]error, len(entries))

	if s.progressManager != nil {
		s.progressManager.Initialize(len(entries))
		s.progressManager.Start()
	}

	var processed int64
	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(idx int, e *analyzer.FileEntry) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			select {
			case <-ctx.Done():
				failed[idx] = ctx.Err()
				return
			default:
			}

			failed[idx] = e.EnsureHash()
			if s.progressManager != nil {
				done := atomic.AddInt64(&processed, 1)
				s.progressManager.Update(int(done), len(entries))
			}
		}(i, entry)
	}
	wg.Wait()

	if s.progressManager != nil {
		s.progressManager.Complete(ctx.Err() == nil)
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("signature acquisition cancelled: %w", err)
	}

	kept := make([]*analyzer.FileEntry, 0, len(entries))
	var skipped []string
	for i, entry := range entries {
		if failed[i] != nil {
			s.warn(fmt.Sprintf("skipping: %v", domain.NewSignatureError(entry.Path, failed[i])))
			skipped = append(skipped, entry.Path)
			continue
		}
		kept = append(kept, entry)
	}

	return kept, skipped, nil
}

func (s *GroupServiceImpl) warn(message string) {
	if s.progress != nil {
		s.progress.Warning(message)
	}
}

// buildResult converts strategy clusters into the externally visible result.
// Group IDs are 1-based and follow the cluster order (highest similarity
// first, as emitted by the strategies).
func buildResult(entries []*analyzer.FileEntry, clusters []*analyzer.Cluster, threshold float64) *domain.GroupingResult {
	groups := make([]domain.Group, 0, len(clusters))
	for i, cluster := range clusters {
		files := make([]string, 0, len(cluster.Members))
		for _, m := range cluster.Members {
			files = append(files, entries[m].Path)
		}
		groups = append(groups, domain.Group{
			ID:         i + 1,
			Files:      files,
			Similarity: cluster.Similarity,
			Tier:       cluster.Tier,
		})
	}

	leftovers := analyzer.Leftovers(len(entries), clusters)
	ungrouped := make([]string, 0, len(leftovers))
	for _, idx := range leftovers {
		ungrouped = append(ungrouped, entries[idx].Path)
	}

	return &domain.GroupingResult{
		Groups:    groups,
		Ungrouped: ungrouped,
		Summary: domain.Summary{
			TotalFiles:     len(entries),
			GroupsFound:    len(groups),
			UngroupedFiles: len(ungrouped),
			ThresholdUsed:  threshold,
		},
	}
}

// dedupeNames drops empty names and duplicates while preserving first-seen order
func dedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
