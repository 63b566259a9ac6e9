package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#00BFFF") // Cyan: primary accent
	colorAccent     = lipgloss.Color("#FFD700") // Gold: gates and prompts
	colorDanger     = lipgloss.Color("#FF5252") // Red: rejected codes
	colorMuted      = lipgloss.Color("#636363") // Gray: de-emphasized
	colorMutedLight = lipgloss.Color("#8C8C8C") // Lighter gray: normal text
	colorWhite      = lipgloss.Color("#EEEEEE") // Off-white: story text
	colorSurface    = lipgloss.Color("#1E1E2E") // Dark surface: status bar bg
	colorSurfaceDim = lipgloss.Color("#181825") // Darkest surface: footer bg
)

// Status bar styles.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatusLabel = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleStatusValue = lipgloss.NewStyle().
				Foreground(colorWhite)

	styleStatusFlag = lipgloss.NewStyle().
			Foreground(colorAccent)
)

// Story surface styles.
var (
	styleTextBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Foreground(colorWhite).
			Padding(0, 1)

	styleDirection = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleDirectionOff = lipgloss.NewStyle().
				Foreground(colorMuted)

	styleControl = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleNotice = lipgloss.NewStyle().
			Foreground(colorMutedLight).
			Italic(true)
)

// Overlay styles.
var (
	styleOverlay = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	styleOverlayTitle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	styleOverlayError = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true)
)

// Footer styles.
var (
	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorSurfaceDim).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(colorMuted)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFooterSep = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleFooterDesc = lipgloss.NewStyle().
			Foreground(colorMutedLight)
)

// shade maps a brightness level in [0, 1] to a gray used for the backdrop.
func shade(level float64) lipgloss.Color {
	level = min(max(level, 0), 1)
	v := int(0x20 + level*(0xE0-0x20))
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", v, v, v))
}
