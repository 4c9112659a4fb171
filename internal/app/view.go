package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/llehouerou/reelpreview/internal/ui/previewbar"
	"github.com/llehouerou/reelpreview/internal/ui/render"
	"github.com/llehouerou/reelpreview/internal/ui/styles"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	b.WriteString(previewbar.Render(m.session.title(), m.snap, m.session.ctrl.Timeline(), width))
	b.WriteString("\n\n")
	b.WriteString(m.renderStatus(width))
	b.WriteString("\n")
	if m.help.ShowAll {
		b.WriteString(m.help.FullHelpView([][]key.Binding{m.keys}))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys))
	}
	return b.String()
}

func (m *Model) renderStatus(width int) string {
	if m.status == "" {
		return ""
	}
	s := styles.T().S()
	text := render.Truncate(m.status, width)
	switch m.statusKind {
	case statusWarning:
		return s.Warning.Render(text)
	case statusError:
		return s.Error.Render(text)
	default:
		return s.Muted.Render(text)
	}
}
