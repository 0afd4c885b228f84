package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vinser/descent/internal/level"
	"github.com/vinser/descent/internal/style"
)

// Page renders page with title at the top, content block and footer at the bottom.
// Style of content is left intact.
func Page(title, renderedContent, footer string, width, height, termWidth, termHeight int) string {
	renderedTopPattern := style.TopPattern.Render(strings.Repeat("\\", width))
	renderedTitle := style.Title.Render(title)
	renderedFooter := style.Footer.Render(footer)

	// Whatever is left between the title and the footer goes to the content
	availableHeight := height - lipgloss.Height(renderedTopPattern) - lipgloss.Height(renderedTitle) - lipgloss.Height(renderedFooter)
	centeredContent := lipgloss.PlaceVertical(availableHeight, lipgloss.Center, renderedContent)

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		renderedTopPattern,
		renderedTitle,
		centeredContent,
		renderedFooter,
	)
	if termWidth > 0 && termHeight > 0 {
		return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

// Window draws the cols x rows block of cells whose top-left cell is
// (startCol, startRow) and returns one string per terminal line.
// Cells outside the level are skipped.
func Window(l *level.Level, shown, startCol, startRow, cols, rows int) []string {
	_, spriteHeight := level.SpriteDims(l.Config.SpriteSize)
	endCol := min(startCol+cols, l.Map.Width())
	endRow := min(startRow+rows, l.Map.Height())
	startCol, startRow = max(startCol, 0), max(startRow, 0)

	var out []string
	for row := startRow; row < endRow; row++ {
		lines := make([]strings.Builder, spriteHeight)
		for col := startCol; col < endCol; col++ {
			for i, s := range l.SpriteAt(col, row, shown) {
				lines[i].WriteString(s)
			}
		}
		for i := range lines {
			out = append(out, lines[i].String())
		}
	}
	return out
}

// GridSize returns the width and height in characters of a rendered level.
func GridSize(cfg level.Config) (int, int) {
	w, h := level.SpriteDims(cfg.SpriteSize)
	return cfg.Width * w, cfg.Height * h
}
