package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Color palette
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorDanger  = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorText    = lipgloss.Color("#F3F4F6")
	colorBorder  = lipgloss.Color("#4B5563")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	kpiLabelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	kpiValueStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	kpiBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			MarginRight(1)

	profitStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	lossStyle   = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDanger).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	progressBarStyle = lipgloss.NewStyle().
				Foreground(colorPrimary)

	progressEmptyStyle = lipgloss.NewStyle().
				Foreground(colorMuted)

	statusStyles = map[string]lipgloss.Style{
		"Completed": lipgloss.NewStyle().Foreground(colorSuccess),
		"Canceled":  lipgloss.NewStyle().Foreground(colorWarning),
		"Failed":    lipgloss.NewStyle().Foreground(colorDanger),
	}
)

func kpi(label, value string) string {
	return kpiBoxStyle.Render(kpiLabelStyle.Render(label) + "\n" + kpiValueStyle.Render(value))
}

// FormatKey formats a help key
func FormatKey(key, description string) string {
	return helpKeyStyle.Render(key) + " " + mutedStyle.Render(description)
}

// FormatProgressBar draws current/total as a bar of the given width.
func FormatProgressBar(current, total, width int) string {
	if total <= 0 {
		return ""
	}
	if current > total {
		current = total
	}
	filled := width * current / total
	bar := progressBarStyle.Render(strings.Repeat("━", filled)) + progressEmptyStyle.Render(strings.Repeat("━", width-filled))
	return bar + " " + mutedStyle.Render(strconv.Itoa(current)+"/"+strconv.Itoa(total))
}
