package style

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Settings screen
	SetupTitle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("228")) // Bright yellow
	SetupItem         = lipgloss.NewStyle()
	SetupItemSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true) // Pinkish-reddish purple

	// Preview screen
	PreviewHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82")) // Green
	Stats         = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	Error         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")) // Bright red

	// Page styles
	TopPattern = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))            // Pinkish-reddish purple
	Title      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("228")) // Bright yellow
	Content    = lipgloss.NewStyle()
	Footer     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type RGB struct {
	R int
	G int
	B int
}

var RGBColor = map[string]RGB{
	"black":   {0, 0, 0},
	"red":     {255, 0, 0},
	"green":   {0, 255, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"magenta": {255, 0, 255},
	"cyan":    {0, 255, 255},
	"white":   {255, 255, 255},
	"grey":    {128, 128, 128},
	"brown":   {165, 42, 42},
}

// GenerateHexColor formats r, g, b (each 0-255) as #RRGGBB.
func GenerateHexColor(r, g, b int) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

const (
	brightMin    = 96
	brightGround = 32
	dimShift     = 64
	darkStep     = 12
)

// DepthColorShift darkens a color component the deeper the level is.
// It returns the bright and the dim variants of the component.
func DepthColorShift(colorNum, depth int) (int, int) {
	if colorNum == 0 {
		return 0, 0
	}
	if depth < 0 {
		depth = 0
	}
	bright := colorNum + brightGround - depth*darkStep
	if bright > 255 {
		bright = 255
	}
	if bright < brightMin {
		bright = brightMin
	}
	dim := bright - dimShift
	return bright, dim
}

// DepthStyles returns bright and dim foreground styles for the named color at depth.
func DepthStyles(color string, depth int) (bright, dim lipgloss.Style) {
	c, ok := RGBColor[color]
	if !ok {
		c = RGBColor["white"]
	}
	br, dr := DepthColorShift(c.R, depth)
	bg, dg := DepthColorShift(c.G, depth)
	bb, db := DepthColorShift(c.B, depth)
	bright = lipgloss.NewStyle().Foreground(lipgloss.Color(GenerateHexColor(br, bg, bb)))
	dim = lipgloss.NewStyle().Foreground(lipgloss.Color(GenerateHexColor(dr, dg, db)))
	return bright, dim
}
