package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dupescope/dupescope/domain"
)

// GroupFormatterImpl implements the GroupOutputFormatter interface
type GroupFormatterImpl struct {
	showUngrouped bool
}

// NewGroupFormatter creates a new group output formatter
func NewGroupFormatter(showUngrouped bool) *GroupFormatterImpl {
	return &GroupFormatterImpl{showUngrouped: showUngrouped}
}

// FormatGroupResponse formats a grouping response according to the given format
func (f *GroupFormatterImpl) FormatGroupResponse(response *domain.GroupResponse, format domain.OutputFormat, writer io.Writer) error {
	if response == nil || response.Result == nil {
		return domain.NewOutputError("no grouping result to format", nil)
	}

	switch format {
	case domain.OutputFormatText:
		return f.formatText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response.Result)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response.Result)
	case domain.OutputFormatCSV:
		return f.formatCSV(response.Result, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *GroupFormatterImpl) formatText(response *domain.GroupResponse, writer io.Writer) error {
	result := response.Result

	if _, err := fmt.Fprint(writer, FormatMainHeader("File Similarity Groups")); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	if len(result.Groups) == 0 {
		fmt.Fprintln(writer, "No similar file groups found.")
		fmt.Fprintln(writer)
	}

	for _, group := range result.Groups {
		header := fmt.Sprintf("Group %d (similarity: %.0f%%)", group.ID, group.Similarity*100.0)
		if group.Tier != "" {
			header += fmt.Sprintf(" [%s]", group.Tier)
		}
		fmt.Fprintf(writer, "%s:\n", header)
		for _, file := range group.Files {
			fmt.Fprintf(writer, "  - %s\n", file)
		}
		fmt.Fprintln(writer)
	}

	if f.showUngrouped && len(result.Ungrouped) > 0 {
		fmt.Fprint(writer, FormatSectionHeader("Ungrouped Files"))
		for _, file := range result.Ungrouped {
			fmt.Fprintf(writer, "  - %s\n", file)
		}
		fmt.Fprintln(writer)
	}

	if len(response.SkippedFiles) > 0 {
		fmt.Fprint(writer, FormatSectionHeader("Skipped Files (unreadable)"))
		for _, file := range response.SkippedFiles {
			fmt.Fprintf(writer, "  - %s\n", file)
		}
		fmt.Fprintln(writer)
	}

	fmt.Fprint(writer, FormatSectionHeader("Summary"))
	fmt.Fprint(writer, FormatLabelWithIndent(SectionPadding, "Total files", result.Summary.TotalFiles))
	fmt.Fprint(writer, FormatLabelWithIndent(SectionPadding, "Groups found", result.Summary.GroupsFound))
	fmt.Fprint(writer, FormatLabelWithIndent(SectionPadding, "Ungrouped files", result.Summary.UngroupedFiles))
	threshold := fmt.Sprintf("%.0f%%", result.Summary.ThresholdUsed*100.0)
	_, err := fmt.Fprint(writer, FormatLabelWithIndent(SectionPadding, "Threshold used", threshold))
	if err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

func (f *GroupFormatterImpl) formatCSV(result *domain.GroupingResult, writer io.Writer) error {
	w := csv.NewWriter(writer)

	if err := w.Write([]string{"group_id", "file_name", "similarity", "status"}); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}

	for _, group := range result.Groups {
		for _, file := range group.Files {
			record := []string{
				strconv.Itoa(group.ID),
				file,
				FormatSimilarity(group.Similarity),
				"grouped",
			}
			if err := w.Write(record); err != nil {
				return domain.NewOutputError("failed to write CSV record", err)
			}
		}
	}

	for _, file := range result.Ungrouped {
		if err := w.Write([]string{"", file, "", "ungrouped"}); err != nil {
			return domain.NewOutputError("failed to write CSV record", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return domain.NewOutputError("failed to flush CSV output", err)
	}
	return nil
}
