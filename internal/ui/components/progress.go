package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

const (
	filledCell = "█"
	emptyCell  = "░"
)

// ProgressBar is a horizontal bar drawn with block characters, used for
// level progress and per-operation accuracy.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0-1
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// Filled returns the number of filled cells for a bar of barWidth cells.
func (p ProgressBar) Filled(barWidth int) int {
	filled := int(float64(barWidth) * p.Percent)
	return max(0, min(filled, barWidth))
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(theme.Label.Render(p.Label))
		b.WriteString("  ")
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}
	barWidth := max(p.Width-lipgloss.Width(b.String())-percentWidth, 4)

	filled := p.Filled(barWidth)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).
		Render(strings.Repeat(filledCell, filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).
		Render(strings.Repeat(emptyCell, barWidth-filled)))

	if p.ShowPercent {
		b.WriteString(theme.Label.Render(fmt.Sprintf("  %d%%", int(p.Percent*100))))
	}
	return b.String()
}
