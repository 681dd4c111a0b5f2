package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCandleValidation(t *testing.T) {
	_, err := NewCandle(0, 0.9, 3.0, 0.0, 2.1)
	require.NoError(t, err)

	_, err = NewCandle(0, 0.9, 3.0, 1.0, 2.1)
	assert.Error(t, err, "low above open must be rejected")

	_, err = NewCandle(0, 0.9, 2.0, 0.0, 2.1)
	assert.Error(t, err, "close above high must be rejected")
}

func TestCandleType(t *testing.T) {
	up, err := NewCandle(0, 1.0, 3.0, 0.5, 2.0)
	require.NoError(t, err)
	assert.Equal(t, Bullish, up.Type())

	down, err := NewCandle(0, 2.0, 3.0, 0.5, 1.0)
	require.NoError(t, err)
	assert.Equal(t, Bearish, down.Type())

	flat, err := NewCandle(0, 2.0, 3.0, 0.5, 2.0)
	require.NoError(t, err)
	assert.Equal(t, Bullish, flat.Type(), "doji counts as bullish")
}

func TestMerge(t *testing.T) {
	a, _ := NewCandle(0, 1.0, 2.0, 0.5, 1.5)
	b, _ := NewCandle(60000, 1.5, 4.0, 1.2, 3.0)
	c, _ := NewCandle(120000, 3.0, 3.5, 0.2, 0.9)

	m := merge([]Candle{a, b, c})
	assert.Equal(t, int64(0), m.Timestamp, "merged candle keeps the first timestamp")
	assert.Equal(t, 1.0, m.Open)
	assert.Equal(t, 0.9, m.Close)
	assert.Equal(t, 4.0, m.High)
	assert.Equal(t, 0.2, m.Low)
}

func TestMergeAssociativity(t *testing.T) {
	a, _ := NewCandle(0, 1.0, 2.0, 0.5, 1.5)
	b, _ := NewCandle(60000, 1.5, 4.0, 1.2, 3.0)
	c, _ := NewCandle(120000, 3.0, 3.5, 0.2, 0.9)
	d, _ := NewCandle(180000, 0.9, 1.1, 0.8, 1.0)

	all := merge([]Candle{a, b, c, d})
	halves := merge([]Candle{merge([]Candle{a, b}), merge([]Candle{c, d})})
	assert.Equal(t, all, halves)
}

func TestRenderSingleColumn(t *testing.T) {
	ya := NewYAxis(DefaultNumeric(), 5, 0.0, 3.0)
	c, err := NewCandle(0, 0.9, 3.0, 0.0, 2.1)
	require.NoError(t, err)

	got := c.Render(ya)
	assert.Equal(t, "││┃││", string(got))
}

func TestRenderWicklessCandle(t *testing.T) {
	ya := NewYAxis(DefaultNumeric(), 5, 0.0, 5.0)
	c, err := NewCandle(0, 1.2, 3.8, 1.2, 3.8)
	require.NoError(t, err)

	got := c.Render(ya)
	assert.Equal(t, " ┃┃┃ ", string(got), "body covering whole rows draws full blocks only")
}

func TestRenderPointCandle(t *testing.T) {
	// A zero-range candle still leaves visible ink in its row.
	ya := NewYAxis(DefaultNumeric(), 5, 0.0, 1000.0)
	c, err := NewCandle(0, 50.0, 50.0, 50.0, 50.0)
	require.NoError(t, err)

	got := c.Render(ya)
	assert.Equal(t, "    ╻", string(got))
}

func TestRenderStretchedSingleColumn(t *testing.T) {
	ya := NewYAxis(DefaultNumeric(), 5, 0.0, 3.0)
	c, err := NewCandle(0, 0.9, 3.0, 0.0, 2.1)
	require.NoError(t, err)

	thin := c.Render(ya)
	wide := c.RenderStretched(ya, 1)
	require.Len(t, wide, len(thin))
	for i, row := range wide {
		assert.Equal(t, string(thin[i]), string(row))
	}
}

func TestRenderStretchedWide(t *testing.T) {
	ya := NewYAxis(DefaultNumeric(), 4, 0.0, 4.0)
	c, err := NewCandle(0, 0.0, 4.0, 0.0, 4.0)
	require.NoError(t, err)

	rows := c.RenderStretched(ya, 4)
	require.Len(t, rows, 4)
	for _, row := range rows {
		assert.Equal(t, "▐██▌", string(row), "full body rows fill the column span")
	}
}

func TestRenderStretchedWickStaysThin(t *testing.T) {
	ya := NewYAxis(DefaultNumeric(), 4, 0.0, 4.0)
	c, err := NewCandle(0, 1.0, 4.0, 0.0, 2.0)
	require.NoError(t, err)

	rows := c.RenderStretched(ya, 5)
	require.Len(t, rows, 4)
	assert.Equal(t, "  │  ", string(rows[0]), "upper wick keeps a single centered column")
	assert.Equal(t, "  │  ", string(rows[3]), "lower wick keeps a single centered column")
}
