package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"credinject/internal/pipeline"
)

// statusGlyphs map each step status to its terminal marker.
var statusGlyphs = map[pipeline.Status]string{
	pipeline.StatusApplied:        "+",
	pipeline.StatusAlreadyApplied: "=",
	pipeline.StatusSkipped:        "!",
	pipeline.StatusFailed:         "x",
}

// RenderReport formats a pipeline report as a step table, with diff blocks
// for dry runs.
func RenderReport(r *pipeline.Report) string {
	var sb strings.Builder

	header := fmt.Sprintf("run %s  package %s", r.RunID, r.Package)
	if r.DryRun {
		header += "  (dry run)"
	}
	sb.WriteString(headerStyle.Render(header))
	sb.WriteString("\n")

	for _, step := range r.Steps {
		sb.WriteString(renderStep(step))
	}

	sb.WriteString(summaryLine(r))
	sb.WriteString("\n")
	return sb.String()
}

func renderStep(s pipeline.StepResult) string {
	glyph := statusGlyphs[s.Status]
	line := fmt.Sprintf("%s %s %s %s",
		styleFor(s.Status).Render(glyph),
		stepStyle.Render(string(s.Step)),
		statusStyle.Render(string(s.Status)),
		pathStyle.Render(s.Path),
	)
	if s.Detail != "" {
		line += "\n    " + detailStyle.Render(s.Detail)
	}
	line += "\n"
	if s.Diff != "" {
		line += diffStyle.Render(strings.TrimRight(s.Diff, "\n")) + "\n"
	}
	return line
}

func summaryLine(r *pipeline.Report) string {
	switch {
	case r.Failed():
		return failedStyle.Render("pipeline failed")
	case r.DryRun:
		return noopStyle.Render("no files were modified (dry run)")
	case r.Mutated():
		return appliedStyle.Render("project mutated")
	default:
		return noopStyle.Render("nothing to do, project already injected")
	}
}

func styleFor(s pipeline.Status) lipgloss.Style {
	switch s {
	case pipeline.StatusApplied:
		return appliedStyle
	case pipeline.StatusAlreadyApplied:
		return noopStyle
	case pipeline.StatusSkipped:
		return skippedStyle
	default:
		return failedStyle
	}
}
