package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/toole-brendan/hrx-sub003/pkg/search"
)

// Define styles using lipgloss
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	groupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Margin(1, 0, 0, 0)

	hitTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("32"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Italic(true)

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

var titleCaser = cases.Title(language.English)

// formatResult renders a single hit with its rank position.
func formatResult(position int, hit search.Result) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%2d. %s %s",
		position,
		hitTitleStyle.Render(hit.Title),
		scoreStyle.Render("("+strconv.FormatFloat(hit.Score, 'f', 2, 64)+")")))

	if hit.Subtitle != "" {
		b.WriteString("\n    " + subtitleStyle.Render(hit.Subtitle))
	}
	if len(hit.Metadata) > 0 {
		parts := make([]string, 0, len(hit.Metadata))
		for _, field := range hit.Metadata {
			parts = append(parts, titleCaser.String(field.Icon)+": "+field.Value)
		}
		b.WriteString("\n    " + metaStyle.Render(strings.Join(parts, "  ")))
	}
	return b.String()
}

// formatGroupHeader renders a category group heading with its hit count.
func formatGroupHeader(group search.Group) string {
	return groupStyle.Render(fmt.Sprintf("=== %s (%d) ===", group.Label, len(group.Results)))
}

// formatTime formats a time relative to now or as an absolute date
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	// If it's within the last day, show relative time
	if diff < 24*time.Hour {
		if diff < time.Hour {
			minutes := int(diff.Minutes())
			if minutes < 1 {
				return "just now"
			}
			return fmt.Sprintf("%d minutes ago", minutes)
		}
		hours := int(diff.Hours())
		return fmt.Sprintf("%d hours ago", hours)
	}

	// If it's within the last week, show days ago
	if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%d days ago", days)
	}

	// Otherwise show the date
	if t.Year() == now.Year() {
		return t.Format("Jan 2, 15:04")
	}
	return t.Format("Jan 2, 2006")
}
