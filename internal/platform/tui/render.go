package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/platform-jumper/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorBall:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorPlatform: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorSentinel: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorHUD:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorCharge:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorOverlay:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorDanger:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorDim:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// renderView stacks the styled screen and the help line.
func renderView(s *core.Screen, helpLine string) string {
	return RenderScreen(s) + "\n" + helpStyle.Render(helpLine)
}
