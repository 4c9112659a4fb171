// Package styles holds the preview palette and shared lipgloss styles.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/reelpreview/internal/timeline"
)

// Theme defines the color palette and pre-built styles for the preview.
type Theme struct {
	// Accent colors; the segment bar blends from Primary to Secondary.
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	// Unfilled part of the segment bar
	Track lipgloss.Color

	Success lipgloss.Color // playing
	Warning lipgloss.Color // paused, audio warnings
	Error   lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for the preview.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Current lipgloss.Style // label of the segment on screen
	Playing lipgloss.Style
	Paused  lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	Track: lipgloss.Color("#303030"),

	Success: lipgloss.Color("#42b883"),
	Warning: lipgloss.Color("#f1a208"),
	Error:   lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Current: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Playing: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Paused:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
	}
}

// KindGlyph returns the short marker shown next to a segment kind.
func KindGlyph(k timeline.Kind) string {
	switch k {
	case timeline.KindIntro:
		return "◆"
	case timeline.KindOutro:
		return "◇"
	case timeline.KindBefore:
		return "◐"
	case timeline.KindAfter:
		return "◑"
	case timeline.KindComparison:
		return "◒"
	case timeline.KindVideo:
		return "▣"
	default:
		return "●"
	}
}
