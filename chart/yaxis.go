package chart

import "strings"

// yTickEvery is the row stride between printed tick labels, counted from
// the top row.
const yTickEvery = 4

// gutterDecoration is the width of the " ├ " / " │ " rail that follows
// the label field.
const gutterDecoration = 3

// YAxis maps prices to fractional row positions for a visible price range
// and renders the left gutter labels. The mapping is measured in row
// units from the bottom of the chart area: Calc(min) == 0 and
// Calc(max) == rows.
type YAxis struct {
	numeric Numeric
	rows    int
	min     float64
	max     float64
	labelW  int
}

// NewYAxis builds the axis for a chart area of rows character rows.
// A degenerate range (min == max) is tolerated; Calc then pins every
// price to the vertical center.
func NewYAxis(numeric Numeric, rows int, min, max float64) *YAxis {
	return &YAxis{
		numeric: numeric,
		rows:    rows,
		min:     min,
		max:     max,
		labelW:  numeric.EstimatedWidth(min, max),
	}
}

// SetLabelWidth pins the label field width. The engine sizes the gutter
// from the global price range before layout, so the gutter cannot shift
// when the visible range changes mid-session.
func (a *YAxis) SetLabelWidth(w int) {
	if w > a.labelW {
		a.labelW = w
	}
}

// Rows returns the chart row count the axis was built for.
func (a *YAxis) Rows() int {
	return a.rows
}

// Calc converts a price to a fractional height in row units measured from
// the bottom of the chart area.
func (a *YAxis) Calc(price float64) float64 {
	if a.max == a.min {
		return float64(a.rows) / 2
	}
	return (price - a.min) / (a.max - a.min) * float64(a.rows)
}

// Width returns the total gutter width including the rail.
func (a *YAxis) Width() int {
	return a.labelW + gutterDecoration
}

// Render returns one gutter string per chart row, top first. Tick rows
// carry a right-aligned label interpolated linearly from max (top row)
// to min (bottom edge); the values strictly decrease downward whenever
// the range is non-degenerate.
func (a *YAxis) Render() []string {
	labelW := a.labelW
	out := make([]string, 0, a.rows)
	for r := 0; r < a.rows; r++ {
		if r%yTickEvery == 0 {
			v := a.max - (a.max-a.min)*float64(r)/float64(a.rows)
			label := a.numeric.Format(v)
			pad := labelW - len(label)
			if pad < 0 {
				pad = 0
			}
			out = append(out, strings.Repeat(" ", pad)+label+yAxisTick)
		} else {
			out = append(out, strings.Repeat(" ", labelW)+yAxisRule)
		}
	}
	return out
}
