package chart

// Glyphs used to compose candles. A character cell is split into an upper
// and a lower half; each half is void, wick, or body, and the pair picks
// the rune.
const (
	Void           = ' '
	Body           = '┃'
	Wick           = '│'
	HalfBodyTop    = '╹'
	HalfBodyBottom = '╻'
	HalfWickTop    = '╵'
	HalfWickBottom = '╷'
	TopWickBody    = '╽' // wick above, body below
	TopBodyWick    = '╿' // body above, wick below

	// Stretched-mode extras.
	LeftHalfBlock    = '▌'
	RightHalfBlock   = '▐'
	LeftEighthBlock  = '▏'
	RightEighthBlock = '▕'
	FullBlock        = '█'
)

// Axis furniture.
const (
	yAxisTick   = " ├ "
	yAxisRule   = " │ "
	xAxisRule   = '─'
	xAxisTick   = '┴'
	xAxisElbow  = "└──"
	liveMarker  = '*'
	fullTimeFmt = "2006/01/02 15:04"
	timeOnlyFmt = "15:04"
)

// IsWickGlyph reports whether r is drawn with the wick color rather than
// the body color.
func IsWickGlyph(r rune) bool {
	switch r {
	case Wick, HalfWickTop, HalfWickBottom, LeftEighthBlock, RightEighthBlock:
		return true
	}
	return false
}
