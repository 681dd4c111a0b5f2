package chart

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Surface is the grid sink the engine draws into. The engine only ever
// writes inside the rectangle it is handed and never reads cells back.
type Surface interface {
	// SetCell places one styled rune at absolute column x, row y.
	SetCell(x, y int, r rune, style lipgloss.Style)
}

// Rect is a viewport rectangle in character cells.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// CellBuffer is an in-memory Surface used by the TUI host and by tests.
// Cells start as plain spaces. Styled text is stored pre-rendered per
// cell, the way the TUI grid keeps it.
type CellBuffer struct {
	width  int
	height int
	runes  [][]rune
	cells  [][]string
}

// NewCellBuffer allocates a width×height buffer of blank cells.
func NewCellBuffer(width, height int) *CellBuffer {
	return NewFilledCellBuffer(width, height, ' ')
}

// NewFilledCellBuffer allocates a buffer pre-filled with the given rune,
// which makes untouched cells distinguishable from written spaces.
func NewFilledCellBuffer(width, height int, fill rune) *CellBuffer {
	runes := make([][]rune, height)
	cells := make([][]string, height)
	for y := range runes {
		runes[y] = make([]rune, width)
		cells[y] = make([]string, width)
		for x := range runes[y] {
			runes[y][x] = fill
			cells[y][x] = string(fill)
		}
	}
	return &CellBuffer{width: width, height: height, runes: runes, cells: cells}
}

// SetCell implements Surface. Writes outside the buffer are dropped.
func (b *CellBuffer) SetCell(x, y int, r rune, style lipgloss.Style) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.runes[y][x] = r
	b.cells[y][x] = style.Render(string(r))
}

// Row returns the raw runes of row y without styling.
func (b *CellBuffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	return string(b.runes[y])
}

// Rows returns every row as an unstyled string, top first.
func (b *CellBuffer) Rows() []string {
	out := make([]string, b.height)
	for y := range out {
		out[y] = b.Row(y)
	}
	return out
}

// String renders the buffer with ANSI styling applied, rows joined by
// newlines.
func (b *CellBuffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		sb.WriteString(strings.Join(b.cells[y], ""))
		if y < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
