package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

var sparklineBlockRunes = []rune(sparklineBlocks)

// PercentSparkline renders a sparkline for a percentage series, colored by
// the most recent value's severity threshold.
func PercentSparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	spark, last := buildSparkline(data, width)
	return lipgloss.NewStyle().Foreground(MetricColor(last)).Render(spark)
}

// RawSparkline renders a sparkline for an unbounded series (bytes, rates)
// in a fixed color, since absolute magnitudes carry no severity.
func RawSparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	spark, _ := buildSparkline(data, width)
	return lipgloss.NewStyle().Foreground(ColorInfo).Render(spark)
}

// buildSparkline maps the most recent width data points onto the 8 block
// levels based on the min/max range, returning the unstyled string and the
// last value.
func buildSparkline(data []float64, width int) (string, float64) {
	if len(data) > width {
		data = data[len(data)-width:]
	}

	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	var sb strings.Builder
	sb.Grow(len(data) * 4)

	numLevels := len(sparklineBlockRunes)
	valueRange := maxVal - minVal

	for _, v := range data {
		var level int
		if valueRange == 0 {
			level = numLevels / 2
		} else {
			normalized := (v - minVal) / valueRange
			level = int(normalized * float64(numLevels-1))
			if level < 0 {
				level = 0
			} else if level >= numLevels {
				level = numLevels - 1
			}
		}
		sb.WriteRune(sparklineBlockRunes[level])
	}

	return sb.String(), data[len(data)-1]
}
