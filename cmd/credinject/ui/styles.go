// Package ui renders pipeline reports for the terminal.
package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors for step statuses.
var (
	Success = lipgloss.Color("#8BC34A") // Lime Green
	Warning = lipgloss.Color("#FFC107") // Yellow
	Failure = lipgloss.Color("#e53935") // Red
	Info    = lipgloss.Color("#2196F3") // Blue
	Muted   = lipgloss.Color("#7a8699")
)

var (
	appliedStyle = lipgloss.NewStyle().Foreground(Success).Bold(true)
	noopStyle    = lipgloss.NewStyle().Foreground(Info)
	skippedStyle = lipgloss.NewStyle().Foreground(Warning)
	failedStyle  = lipgloss.NewStyle().Foreground(Failure).Bold(true)

	stepStyle   = lipgloss.NewStyle().Bold(true).Width(14)
	statusStyle = lipgloss.NewStyle().Width(16)
	pathStyle   = lipgloss.NewStyle().Foreground(Muted)
	detailStyle = lipgloss.NewStyle().Foreground(Muted).Italic(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	diffStyle   = lipgloss.NewStyle().Foreground(Muted).MarginLeft(2)
)
