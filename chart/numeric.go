package chart

import "strconv"

// minLabelWidth keeps the y-axis gutter from collapsing on short prices.
const minLabelWidth = 10

// Numeric is the display policy for price labels: a fixed decimal
// precision applied uniformly to every formatted value.
type Numeric struct {
	Precision int
}

// DefaultNumeric formats with three decimal places.
func DefaultNumeric() Numeric {
	return Numeric{Precision: 3}
}

// Format renders v as a fixed-precision decimal string.
func (n Numeric) Format(v float64) string {
	return strconv.FormatFloat(v, 'f', n.Precision, 64)
}

// EstimatedWidth returns the label column count to reserve so that any
// value in [min, max] fits right-aligned with two leading spaces.
func (n Numeric) EstimatedWidth(min, max float64) int {
	w := len(n.Format(min))
	if l := len(n.Format(max)); l > w {
		w = l
	}
	w += 2
	if w < minLabelWidth {
		w = minLabelWidth
	}
	return w
}
