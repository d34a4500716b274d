package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dupescope/dupescope/domain"
)

// recordingReporter captures warnings for assertions
type recordingReporter struct {
	infos    []string
	warnings []string
}

func (r *recordingReporter) Info(message string)    { r.infos = append(r.infos, message) }
func (r *recordingReporter) Warning(message string) { r.warnings = append(r.warnings, message) }

func nameRequest() *domain.GroupRequest {
	req := domain.DefaultGroupRequest()
	req.Algorithm = domain.AlgorithmToken
	req.Threshold = 40
	req.Strategy = domain.StrategyTransitive
	return req
}

func TestGroupNamesTransitive(t *testing.T) {
	svc := NewGroupService(NewNoOpProgressReporter())
	req := nameRequest()

	resp, err := svc.GroupNames(context.Background(), []string{"report_v1.txt", "report_v2.txt", "summary.doc"}, req)
	require.NoError(t, err)
	require.True(t, resp.Success)

	result := resp.Result
	require.Len(t, result.Groups, 1)
	assert.Equal(t, 1, result.Groups[0].ID)
	assert.Equal(t, []string{"report_v1.txt", "report_v2.txt"}, result.Groups[0].Files)
	assert.InDelta(t, 0.5, result.Groups[0].Similarity, 1e-9)
	assert.Equal(t, []string{"summary.doc"}, result.Ungrouped)

	assert.Equal(t, 3, result.Summary.TotalFiles)
	assert.Equal(t, 1, result.Summary.GroupsFound)
	assert.Equal(t, 1, result.Summary.UngroupedFiles)
	assert.InDelta(t, 0.4, result.Summary.ThresholdUsed, 1e-9)
}

func TestGroupNamesDeduplicatesInput(t *testing.T) {
	svc := NewGroupService(NewNoOpProgressReporter())
	req := nameRequest()

	resp, err := svc.GroupNames(context.Background(), []string{"report_v1.txt", "report_v1.txt", "", "report_v2.txt"}, req)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Result.Summary.TotalFiles)
}

func TestGroupNamesWarnsWhenTooFewFiles(t *testing.T) {
	reporter := &recordingReporter{}
	svc := NewGroupService(reporter)
	req := nameRequest()
	req.MinGroupSize = 3

	resp, err := svc.GroupNames(context.Background(), []string{"a.txt", "b.txt"}, req)
	require.NoError(t, err)
	assert.Empty(t, resp.Result.Groups)
	assert.NotEmpty(t, reporter.warnings)
}

func TestGroupFilesValidatesRequest(t *testing.T) {
	svc := NewGroupService(nil)

	req := domain.DefaultGroupRequest()
	req.Files = []string{"a.txt", "b.txt"}
	req.Threshold = 150

	_, err := svc.GroupFiles(context.Background(), req)
	assert.Error(t, err)
}

func TestGroupFilesNilArguments(t *testing.T) {
	svc := NewGroupService(nil)

	_, err := svc.GroupFiles(context.Background(), nil)
	assert.Error(t, err)

	//nolint:staticcheck
	_, err = svc.GroupFiles(nil, domain.DefaultGroupRequest())
	assert.Error(t, err)
}

func TestGroupNamesTieredIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "budget_2023.xlsx")
	b := filepath.Join(dir, "household_expenses.xlsx")
	c := filepath.Join(dir, "vacation_photo.jpg")
	require.NoError(t, os.WriteFile(a, []byte("same bytes"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("same bytes"), 0o644))
	require.NoError(t, os.WriteFile(c, []byte("entirely different payload"), 0o644))

	svc := NewGroupService(NewNoOpProgressReporter())
	req := domain.DefaultGroupRequest()
	req.Strategy = domain.StrategyTiered

	resp, err := svc.GroupNames(context.Background(), []string{a, b, c}, req)
	require.NoError(t, err)

	result := resp.Result
	require.Len(t, result.Groups, 1)
	assert.Equal(t, domain.TierIdentical, result.Groups[0].Tier)
	assert.Equal(t, 1.0, result.Groups[0].Similarity)
	assert.ElementsMatch(t, []string{a, b}, result.Groups[0].Files)
	assert.Equal(t, []string{c}, result.Ungrouped)
	assert.Empty(t, resp.SkippedFiles)
}

func TestGroupNamesTieredSkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	missing := filepath.Join(dir, "missing.txt")
	require.NoError(t, os.WriteFile(a, []byte("same"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("same"), 0o644))

	reporter := &recordingReporter{}
	svc := NewGroupService(reporter)
	req := domain.DefaultGroupRequest()
	req.Strategy = domain.StrategyTiered

	resp, err := svc.GroupNames(context.Background(), []string{a, b, missing}, req)
	require.NoError(t, err)

	assert.Equal(t, []string{missing}, resp.SkippedFiles)
	assert.Equal(t, 2, resp.Result.Summary.TotalFiles)
	require.Len(t, resp.Result.Groups, 1)
	require.NotEmpty(t, reporter.warnings)
	assert.Contains(t, reporter.warnings[0], domain.ErrCodeSignatureError)
	assert.Contains(t, reporter.warnings[0], missing)

	// Skipped files appear in neither groups nor ungrouped
	for _, g := range resp.Result.Groups {
		assert.NotContains(t, g.Files, missing)
	}
	assert.NotContains(t, resp.Result.Ungrouped, missing)
}

func TestGroupNamesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewGroupService(nil)
	_, err := svc.GroupNames(ctx, []string{"a.txt", "b.txt"}, nameRequest())
	assert.Error(t, err)
}

func TestComputeSimilarity(t *testing.T) {
	svc := NewGroupService(nil)
	req := domain.DefaultGroupRequest()
	req.Algorithm = domain.AlgorithmLevenshtein

	score, err := svc.ComputeSimilarity(context.Background(), "hello", "hello", req)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)

	score, err = svc.ComputeSimilarity(context.Background(), "hello", "hallo", req)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, score, 1e-9)
}

func TestComputeSimilarityUnknownAlgorithm(t *testing.T) {
	svc := NewGroupService(nil)
	req := domain.DefaultGroupRequest()
	req.Algorithm = domain.Algorithm("soundex")

	_, err := svc.ComputeSimilarity(context.Background(), "a", "b", req)
	assert.Error(t, err)
}
