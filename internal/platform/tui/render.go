package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-defense/internal/core"
)

// colorStyles maps cell roles to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:         lipgloss.NewStyle(),
	core.ColorGround:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorElevated:        lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	core.ColorEntry:           lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorExit:            lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	core.ColorEnemy:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	core.ColorEnemyWounded:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorEnemyFrozen:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorOperator:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorOperatorSkill:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorProjectile:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorBurning:         lipgloss.NewStyle().Foreground(lipgloss.Color("202")),
	core.ColorCursor:          lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorPlacementOK:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	core.ColorPlacementDenied: lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
	core.ColorHUD:             lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorMuted:           lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
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
