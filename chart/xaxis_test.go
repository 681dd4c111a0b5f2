package chart

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXAxisFullLabel(t *testing.T) {
	xa := NewXAxis(17, 0, 16*OneMinute.Millis(), OneMinute, true)
	rows := xa.Render(time.UTC)
	require.Len(t, rows, 2)

	assert.Equal(t, "────────────────┴", rows[0])
	assert.Equal(t, "*1970/01/01 00:16", rows[1], "a wide column range gets the dated form")
}

func TestXAxisShortLabelFallback(t *testing.T) {
	xa := NewXAxis(6, 0, 5*OneMinute.Millis(), OneMinute, true)
	rows := xa.Render(time.UTC)

	assert.Equal(t, "─────┴", rows[0])
	assert.Equal(t, "*00:05", rows[1], "a narrow column range falls back to the time-only form")
}

func TestXAxisNoRoomForLabel(t *testing.T) {
	xa := NewXAxis(3, 0, 2*OneMinute.Millis(), OneMinute, true)
	rows := xa.Render(time.UTC)

	assert.Equal(t, "───", rows[0], "no tick is placed when even the short form cannot fit")
	assert.Equal(t, "   ", rows[1])
}

func TestXAxisLiveMarker(t *testing.T) {
	pinned := NewXAxis(6, 0, 5*OneMinute.Millis(), OneMinute, false)
	rows := pinned.Render(time.UTC)
	assert.Equal(t, " 00:05", rows[1], "a pinned view drops the live marker")
}

func TestXAxisTickStride(t *testing.T) {
	width := 40
	xa := NewXAxis(width, 0, int64(width-1)*OneMinute.Millis(), OneMinute, true)
	rows := xa.Render(time.UTC)

	border := []rune(rows[0])
	require.Len(t, border, width)
	assert.Equal(t, xAxisTick, border[width-1])
	assert.Equal(t, xAxisTick, border[width-1-17], "ticks repeat every 17 columns right to left")
	assert.Equal(t, xAxisTick, border[width-1-34])
	assert.Equal(t, 3, strings.Count(rows[0], string(xAxisTick)))
}

func TestXAxisDisplayLocation(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	xa := NewXAxis(6, 0, 5*OneMinute.Millis(), OneMinute, true)
	rows := xa.Render(berlin)
	assert.Equal(t, "*01:05", rows[1], "labels shift into the display timezone")
}
