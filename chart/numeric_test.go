package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumericFormat(t *testing.T) {
	n := DefaultNumeric()
	assert.Equal(t, "3.000", n.Format(3.0))
	assert.Equal(t, "0.600", n.Format(0.6))
	assert.Equal(t, "-12.500", n.Format(-12.5))

	coarse := Numeric{Precision: 0}
	assert.Equal(t, "42", coarse.Format(42.4))
}

func TestNumericEstimatedWidth(t *testing.T) {
	n := DefaultNumeric()

	assert.Equal(t, 10, n.EstimatedWidth(0.0, 3.0), "short labels keep the minimum gutter")
	assert.Equal(t, 15, n.EstimatedWidth(0.0, 123456789.0))
	assert.Equal(t, 15, n.EstimatedWidth(-12345678.0, 0.0), "the wider bound wins")
}

func TestParseInterval(t *testing.T) {
	assert.Equal(t, OneSecond, ParseInterval("1s"))
	assert.Equal(t, OneMinute, ParseInterval("1m"))
	assert.Equal(t, FourHours, ParseInterval("4h"))
	assert.Equal(t, OneDay, ParseInterval("1d"))
	assert.Equal(t, OneMinute, ParseInterval("7w"), "unknown tokens fall back to one minute")
}

func TestIntervalUnits(t *testing.T) {
	assert.Equal(t, int64(60000), OneMinute.Millis())
	assert.Equal(t, int64(86400000), OneDay.Millis())
	assert.Equal(t, "1m0s", OneMinute.Duration().String())
}
