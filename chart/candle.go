package chart

import (
	"fmt"
	"math"
)

// CandleType classifies a candle by its open/close relation.
type CandleType int

const (
	Bullish CandleType = iota // close >= open
	Bearish                   // close < open
)

// Candle is one OHLC sample. Values are immutable after construction.
type Candle struct {
	Timestamp int64 // milliseconds since epoch
	Open      float64
	High      float64
	Low       float64
	Close     float64
}

// NewCandle validates the OHLC ordering invariant and returns the candle.
func NewCandle(timestamp int64, open, high, low, close float64) (Candle, error) {
	c := Candle{Timestamp: timestamp, Open: open, High: high, Low: low, Close: close}
	if low > math.Min(open, close) || math.Max(open, close) > high {
		return Candle{}, fmt.Errorf("chart: invalid candle at %d: low=%v open=%v close=%v high=%v", timestamp, low, open, close, high)
	}
	return c, nil
}

// Type derives the candle classification; it is never stored.
func (c Candle) Type() CandleType {
	if c.Close >= c.Open {
		return Bullish
	}
	return Bearish
}

// merge aggregates consecutive candles into one synthetic candle: first
// open, last close, extreme high/low, first timestamp. Used by squash
// layout.
func merge(group []Candle) Candle {
	m := Candle{
		Timestamp: group[0].Timestamp,
		Open:      group[0].Open,
		High:      group[0].High,
		Low:       group[0].Low,
		Close:     group[len(group)-1].Close,
	}
	for _, c := range group[1:] {
		if c.High > m.High {
			m.High = c.High
		}
		if c.Low < m.Low {
			m.Low = c.Low
		}
	}
	return m
}

// Render produces one glyph per character row, top row first, for a
// single-column candle through the y-axis mapping.
//
// Each row covers one vertical unit; the glyph is chosen at half-cell
// resolution from where the body span (open/close) and the wick span
// (high/low) fall inside the row band. A body or wick boundary landing
// between row gridlines renders as a half-cap glyph. The top and bottom
// cap cells only show the body when the wick tip rounds into the same
// cell; a wick reaching well past the cap claims the whole cell.
func (c Candle) Render(ya *YAxis) []rune {
	rows := ya.Rows()
	mn := ya.Calc(math.Min(c.Open, c.Close))
	mx := ya.Calc(math.Max(c.Open, c.Close))
	lo := ya.Calc(c.Low)
	hi := ya.Calc(c.High)

	out := make([]rune, 0, rows)
	for y := rows; y >= 1; y-- {
		out = append(out, cellGlyph(float64(y), mn, mx, lo, hi))
	}
	return out
}

// cellGlyph resolves the glyph for the cell band (y-1, y].
func cellGlyph(y, mn, mx, lo, hi float64) rune {
	switch {
	case y > math.Ceil(hi):
		return Void

	case y > math.Ceil(mx):
		return upperWickGlyph(y, hi)

	case y == math.Ceil(mx):
		// Body-top cap cell. The body is drawn here only when the wick
		// tip rounds into this cell (or there is no upper wick at all);
		// otherwise the wick owns the cell.
		if math.Round(hi) != y && hi != mx {
			return upperWickGlyph(y, hi)
		}
		f := mx - (y - 1)
		switch {
		case f > 0.5:
			if (hi < y || hi == mx) && hi-(y-1) >= 0.75 {
				return Body // wick stub absorbed into a full body cell
			}
			if hi > mx {
				return TopWickBody
			}
			return HalfBodyBottom
		case f >= 0.25:
			if hi >= y-0.5 && hi > mx {
				return TopWickBody
			}
			return HalfBodyBottom
		default:
			return upperWickGlyph(y, hi)
		}

	case y > math.Ceil(mn):
		return Body

	case y == math.Ceil(mn):
		// Body-bottom cap cell, mirror of the top cap.
		if math.Round(lo) != y-1 && lo != mn {
			return lowerWickGlyph(y, lo)
		}
		p := y - mn
		switch {
		case p > 0.5:
			if (lo > y-1 || lo == mn) && y-lo >= 0.75 {
				return Body
			}
			if lo < mn {
				return TopBodyWick
			}
			return HalfBodyTop
		case p >= 0.25:
			if lo <= y-0.5 && lo < mn {
				return TopBodyWick
			}
			return HalfBodyTop
		default:
			return lowerWickGlyph(y, lo)
		}

	case y >= math.Floor(lo)+1:
		return lowerWickGlyph(y, lo)
	}
	return Void
}

// upperWickGlyph renders a cell crossed or tipped by the upper wick.
func upperWickGlyph(y, hi float64) rune {
	if hi >= y {
		return Wick
	}
	if hi-(y-1) > 0.5 {
		return Wick
	}
	return HalfWickBottom
}

// lowerWickGlyph renders a cell crossed or tipped by the lower wick.
func lowerWickGlyph(y, lo float64) rune {
	if lo <= y-1 {
		return Wick
	}
	if y-lo > 0.5 {
		return Wick
	}
	return HalfWickTop
}

// RenderStretched replicates Render horizontally across width columns.
// Full body rows become solid blocks with half-block edges; cap rows keep
// their half glyph framed by eighth-block wick markers; wick rows stay a
// single thin column at the center.
func (c Candle) RenderStretched(ya *YAxis, width int) [][]rune {
	single := c.Render(ya)
	rows := make([][]rune, len(single))
	if width <= 1 {
		for i, g := range single {
			rows[i] = []rune{g}
		}
		return rows
	}

	center := (width - 1) / 2
	for i, g := range single {
		row := make([]rune, width)
		for x := range row {
			row[x] = Void
		}
		switch g {
		case Body:
			for x := 1; x < width-1; x++ {
				row[x] = FullBlock
			}
			row[0] = RightHalfBlock
			row[width-1] = LeftHalfBlock
		case TopWickBody, TopBodyWick, HalfBodyTop, HalfBodyBottom:
			for x := 1; x < width-1; x++ {
				row[x] = g
			}
			row[0] = RightEighthBlock
			row[width-1] = LeftEighthBlock
		case Wick, HalfWickTop, HalfWickBottom:
			row[center] = g
		}
		rows[i] = row
	}
	return rows
}
