package chart

import (
	"time"
)

// xAxisHeight is the number of rows reserved below the chart area. Only
// the first two are written (tick border and labels); the third is left
// untouched as breathing room.
const xAxisHeight = 3

// tickStride is the fixed column spacing between consecutive ticks,
// sized so a starred full timestamp label fits between them.
const tickStride = 17

// XAxis renders the horizontal ruler under the chart area: a border row
// with tick marks and a label row with formatted timestamps anchored at
// the tick columns.
type XAxis struct {
	width  int
	tsMin  int64
	tsMax  int64
	step   Interval
	isLive bool
}

// NewXAxis builds the ruler for width data columns spanning
// [tsMin, tsMax] at one interval per column.
func NewXAxis(width int, tsMin, tsMax int64, step Interval, isLive bool) *XAxis {
	return &XAxis{width: width, tsMin: tsMin, tsMax: tsMax, step: step, isLive: isLive}
}

// Render returns the two written ruler rows. Timestamps are shifted into
// loc for display only; a nil location formats in UTC. Ticks are placed
// right to left from the live edge; each label is right-aligned ending at
// its tick column, in the full date form when it fits and the short time
// form otherwise. A column range too narrow for even the short form gets
// no tick at all. The rightmost tick carries the live marker when the
// view tracks newest data.
func (x *XAxis) Render(loc *time.Location) []string {
	if loc == nil {
		loc = time.UTC
	}

	border := make([]rune, x.width)
	labels := make([]rune, x.width)
	for i := range border {
		border[i] = xAxisRule
		labels[i] = ' '
	}

	for pos := x.width - 1; pos >= 0; pos -= tickStride {
		ts := x.columnTime(pos)
		t := time.UnixMilli(ts).In(loc)

		star := ""
		if x.isLive && pos == x.width-1 {
			star = string(liveMarker)
		}
		label := star + t.Format(fullTimeFmt)
		if len(label) > pos+1 {
			label = star + t.Format(timeOnlyFmt)
		}
		if len(label) > pos+1 {
			break
		}

		border[pos] = xAxisTick
		for i, r := range []rune(label) {
			labels[pos-len(label)+1+i] = r
		}
	}

	return []string{string(border), string(labels)}
}

// columnTime maps a data column to its timestamp. Interpolating between
// the window edges handles both one-interval-per-column windows and
// squashed layouts where a column spans several intervals.
func (x *XAxis) columnTime(pos int) int64 {
	if x.width <= 1 {
		return x.tsMin
	}
	return x.tsMin + int64(pos)*(x.tsMax-x.tsMin)/int64(x.width-1)
}
