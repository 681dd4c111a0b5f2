package chart

import (
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// FitMode selects how the candle count is reconciled with the viewport
// width.
type FitMode int

const (
	// Fixed draws one candle per column at the window's time scale;
	// excess data is reachable by panning, not compressed.
	Fixed FitMode = iota
	// Fit stretches or squashes the whole series to fill the viewport
	// exactly.
	Fit
)

// Styles carries every color the engine uses. All styling is explicit
// configuration; there is no global style state.
type Styles struct {
	BullBody lipgloss.Style
	BearBody lipgloss.Style
	BullWick lipgloss.Style
	BearWick lipgloss.Style
	Axis     lipgloss.Style
	Base     lipgloss.Style
}

// DefaultStyles returns the stock green/red theme.
func DefaultStyles() Styles {
	return Styles{
		BullBody: lipgloss.NewStyle().Foreground(lipgloss.Color("#26a641")),
		BearBody: lipgloss.NewStyle().Foreground(lipgloss.Color("#e05c5c")),
		BullWick: lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		BearWick: lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		Axis:     lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")),
		Base:     lipgloss.NewStyle(),
	}
}

// Chart is the rendering engine. It holds configuration only; every
// render recomputes axes and layout from scratch so the output is a pure
// function of (series, viewport, cursor, configuration).
type Chart struct {
	interval Interval
	numeric  Numeric
	styles   Styles
	loc      *time.Location
	showY    bool
	showX    bool
	fitMode  FitMode
}

// Option configures a Chart.
type Option func(*Chart)

// WithInterval sets the candle period. Default one minute.
func WithInterval(i Interval) Option {
	return func(c *Chart) { c.interval = i }
}

// WithNumeric sets the price label policy.
func WithNumeric(n Numeric) Option {
	return func(c *Chart) { c.numeric = n }
}

// WithStyles replaces the whole color theme.
func WithStyles(s Styles) Option {
	return func(c *Chart) { c.styles = s }
}

// WithBullishStyle sets the body and wick colors for rising candles.
func WithBullishStyle(body, wick lipgloss.Style) Option {
	return func(c *Chart) {
		c.styles.BullBody = body
		c.styles.BullWick = wick
	}
}

// WithBearishStyle sets the body and wick colors for falling candles.
func WithBearishStyle(body, wick lipgloss.Style) Option {
	return func(c *Chart) {
		c.styles.BearBody = body
		c.styles.BearWick = wick
	}
}

// WithDisplayLocation sets the timezone used when formatting x-axis
// labels. Stored timestamps stay plain UTC milliseconds.
func WithDisplayLocation(loc *time.Location) Option {
	return func(c *Chart) { c.loc = loc }
}

// WithYAxis toggles the price gutter.
func WithYAxis(show bool) Option {
	return func(c *Chart) { c.showY = show }
}

// WithXAxis toggles the time ruler.
func WithXAxis(show bool) Option {
	return func(c *Chart) { c.showX = show }
}

// WithFitMode selects Fixed or Fit layout.
func WithFitMode(m FitMode) Option {
	return func(c *Chart) { c.fitMode = m }
}

// New builds a Chart with defaults: one-minute interval, three-decimal
// labels, stock theme, UTC labels, both axes shown, Fixed layout.
func New(opts ...Option) *Chart {
	c := &Chart{
		interval: OneMinute,
		numeric:  DefaultNumeric(),
		styles:   DefaultStyles(),
		loc:      time.UTC,
		showY:    true,
		showX:    true,
		fitMode:  Fixed,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Interval returns the configured candle period.
func (c *Chart) Interval() Interval {
	return c.interval
}

// FitModeSet returns the configured layout mode.
func (c *Chart) FitModeSet() FitMode {
	return c.fitMode
}

// SetFitMode switches the layout mode at runtime so a UI can toggle
// between windowed and stretch-to-fit views.
func (c *Chart) SetFitMode(m FitMode) {
	c.fitMode = m
}

// Render draws the series into sfc within area. candles must be
// timestamp-ascending. st carries the pinned cursor in and the window
// Info out; it may be nil when the caller does not pan.
//
// Window selection, state publication, and axis emission are shared by
// both layout modes; Fixed and Fit only differ in how the windowed
// candles are composited into the data columns.
//
// An empty series or a viewport smaller than the reserved axis gutters
// renders nothing at all.
func (c *Chart) Render(sfc Surface, area Rect, candles []Candle, st *State) {
	if len(candles) == 0 {
		return
	}

	globalMin, globalMax := priceRange(candles)
	gutter := 0
	if c.showY {
		gutter = c.numeric.EstimatedWidth(globalMin, globalMax) + gutterDecoration
	}
	bottom := 0
	if c.showX {
		bottom = xAxisHeight
	}
	cols := area.Width - gutter
	rows := area.Height - bottom
	if cols < 1 || rows < 1 {
		return
	}

	step := c.interval.Millis()
	first := candles[0].Timestamp
	last := candles[len(candles)-1].Timestamp

	end := last
	isLive := true
	if st != nil {
		if cur, ok := st.Cursor(); ok {
			end = cur
			isLive = false
		}
	}
	start := end - step*int64(cols-1)

	// Placeholder padding: one viewport width of zero candles on each
	// side lets the window slide past the data edges without
	// special-casing. The padding exists implicitly here; only window
	// membership and the published bounds depend on it.
	latestPadded := last + step*int64(cols-1)
	earliestPadded := first - step*int64(cols-1)

	windowStart := start
	if windowStart < earliestPadded {
		windowStart = earliestPadded
	}

	if st != nil {
		st.Info = Info{
			Earliest:          first,
			LatestPadded:      latestPadded,
			Interval:          c.interval,
			LastReal:          last,
			ScrolledPastStart: windowStart < first,
		}
	}

	// Real candles inside the window; placeholders never reach the
	// compositors.
	win := make([]Candle, 0, len(candles))
	for _, cd := range candles {
		if cd.Timestamp >= start && cd.Timestamp <= end {
			win = append(win, cd)
		}
	}

	// Visible price range comes from the windowed real candles only;
	// placeholders would drag the scale to zero.
	visMin, visMax := math.Inf(1), math.Inf(-1)
	for _, cd := range win {
		if cd.Low < visMin {
			visMin = cd.Low
		}
		if cd.High > visMax {
			visMax = cd.High
		}
	}
	if math.IsInf(visMin, 1) {
		// Window holds placeholders only; keep the global scale.
		visMin, visMax = globalMin, globalMax
	}

	ya := c.buildYAxis(rows, visMin, visMax, candles)
	c.drawAxes(sfc, area, ya, gutter, cols, rows, start, end, isLive)

	if c.fitMode == Fit {
		c.compositeFit(sfc, area, win, ya, gutter, cols)
		return
	}
	c.compositeFixed(sfc, area, win, ya, gutter, cols, start, step)
}

// compositeFixed places each windowed candle at its interval column.
func (c *Chart) compositeFixed(sfc Surface, area Rect, win []Candle, ya *YAxis, gutter, cols int, start, step int64) {
	for _, cd := range win {
		col := int((cd.Timestamp - start) / step)
		if col < 0 || col >= cols {
			continue
		}
		c.drawColumn(sfc, area.X+gutter+col, area.Y, cd, cd.Render(ya))
	}
}

// compositeFit stretches or squashes the windowed candles to fill the
// data columns exactly. A series denser than the chart interval can put
// more candles than columns inside the window; those are squashed first.
func (c *Chart) compositeFit(sfc Surface, area Rect, win []Candle, ya *YAxis, gutter, cols int) {
	if len(win) == 0 {
		return
	}
	drawn := win
	if len(drawn) > cols {
		drawn = squash(drawn, cols)
	}

	count := len(drawn)
	base := cols / count
	extra := cols - base*count
	gaps := count - 1

	x := area.X + gutter
	for i, cd := range drawn {
		stretched := cd.RenderStretched(ya, base)
		for r, rowRunes := range stretched {
			for dx, g := range rowRunes {
				c.drawCell(sfc, x+dx, area.Y+r, g, cd.Type())
			}
		}
		x += base
		if i < gaps && extraGap(i, gaps, extra) {
			x++
		}
	}
}

// extraGap reports whether inter-candle gap i receives one of the extra
// spacer columns. Spacer j targets the fractional position
// (j+0.5)*gaps/extra, truncated. Truncation keeps every target below
// gaps and, since consecutive targets are at least one apart when
// extra <= gaps, marks exactly extra distinct gaps, so the stretched
// row always sums to the full column count.
func extraGap(i, gaps, extra int) bool {
	for j := 0; j < extra; j++ {
		if int((float64(j)+0.5)*float64(gaps)/float64(extra)) == i {
			return true
		}
	}
	return false
}

// squash partitions the series into consecutive groups and merges each
// into one synthetic candle so at most cols candles remain.
func squash(candles []Candle, cols int) []Candle {
	size := (len(candles) + cols - 1) / cols
	out := make([]Candle, 0, (len(candles)+size-1)/size)
	for i := 0; i < len(candles); i += size {
		j := i + size
		if j > len(candles) {
			j = len(candles)
		}
		out = append(out, merge(candles[i:j]))
	}
	return out
}

// buildYAxis constructs the visible-range axis with the gutter width
// pinned to the global range so it cannot shift between renders.
func (c *Chart) buildYAxis(rows int, visMin, visMax float64, all []Candle) *YAxis {
	ya := NewYAxis(c.numeric, rows, visMin, visMax)
	gMin, gMax := priceRange(all)
	ya.SetLabelWidth(c.numeric.EstimatedWidth(gMin, gMax))
	return ya
}

// drawAxes writes the y gutter, elbow, and x ruler.
func (c *Chart) drawAxes(sfc Surface, area Rect, ya *YAxis, gutter, cols, rows int, tsMin, tsMax int64, isLive bool) {
	if c.showY {
		for r, line := range ya.Render() {
			for i, g := range []rune(line) {
				sfc.SetCell(area.X+i, area.Y+r, g, c.styles.Axis)
			}
		}
	}
	if !c.showX {
		return
	}
	borderRow := area.Y + rows
	if c.showY && gutter >= 2 {
		for i, g := range []rune(xAxisElbow) {
			sfc.SetCell(area.X+gutter-2+i, borderRow, g, c.styles.Axis)
		}
	}
	xa := NewXAxis(cols, tsMin, tsMax, c.interval, isLive)
	for r, line := range xa.Render(c.loc) {
		for i, g := range []rune(line) {
			sfc.SetCell(area.X+gutter+i, borderRow+r, g, c.styles.Axis)
		}
	}
}

// drawColumn writes one vertical run of glyphs for a single-column candle.
func (c *Chart) drawColumn(sfc Surface, x, y int, cd Candle, glyphs []rune) {
	for r, g := range glyphs {
		c.drawCell(sfc, x, y+r, g, cd.Type())
	}
}

// drawCell applies the color policy: wick glyphs get the wick style, any
// other ink the body style, voids the base style.
func (c *Chart) drawCell(sfc Surface, x, y int, g rune, t CandleType) {
	style := c.styles.Base
	switch {
	case g == Void:
	case IsWickGlyph(g):
		if t == Bullish {
			style = c.styles.BullWick
		} else {
			style = c.styles.BearWick
		}
	default:
		if t == Bullish {
			style = c.styles.BullBody
		} else {
			style = c.styles.BearBody
		}
	}
	sfc.SetCell(x, y, g, style)
}

// priceRange returns the series-wide low and high.
func priceRange(candles []Candle) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, c := range candles {
		if c.Low < min {
			min = c.Low
		}
		if c.High > max {
			max = c.High
		}
	}
	return min, max
}
