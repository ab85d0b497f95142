package chart

import (
	"math"
	"strconv"
)

// Funding axis bounds: gridlines every 100M from 0 to 1.1B
const (
	AxisMax  = 1.1e9
	TickStep = 1e8
)

// TickLabel formats a funding axis value: 0 renders as "0", one billion as
// "1B", and everything else in millions rounded to the nearest whole unit
// with an "M" suffix.
func TickLabel(v float64) string {
	switch v {
	case 0:
		return "0"
	case 1e9:
		return "1B"
	default:
		return strconv.FormatFloat(math.Round(v/1e6), 'f', -1, 64) + "M"
	}
}

// TickValues returns the axis tick positions from 0 to max inclusive
func TickValues(max, step float64) []float64 {
	var ticks []float64
	for i := 0; float64(i)*step <= max+step/2; i++ {
		ticks = append(ticks, float64(i)*step)
	}
	return ticks
}
