package monitor

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestMetricColor(t *testing.T) {
	tests := []struct {
		percent float64
		want    lipgloss.Color
	}{
		{0, ColorHealthy},
		{69.9, ColorHealthy},
		{70, ColorWarning},
		{89.9, ColorWarning},
		{90, ColorCritical},
		{100, ColorCritical},
		{math.NaN(), ColorUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MetricColor(tt.percent), "percent=%v", tt.percent)
	}
}

func TestMetricColorWithThresholds(t *testing.T) {
	assert.Equal(t, ColorWarning, MetricColorWithThresholds(55, 50, 80))
	assert.Equal(t, ColorCritical, MetricColorWithThresholds(80, 50, 80))
	assert.Equal(t, ColorHealthy, MetricColorWithThresholds(49, 50, 80))

	// Zero thresholds fall back to the defaults.
	assert.Equal(t, ColorHealthy, MetricColorWithThresholds(60, 0, 0))
	assert.Equal(t, ColorCritical, MetricColorWithThresholds(95, 0, 0))
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		percent float64
		filled  int
	}{
		{"empty", 10, 0, 0},
		{"half", 10, 50, 5},
		{"full", 10, 100, 10},
		{"over 100 clamps", 10, 150, 10},
		{"negative clamps", 10, -20, 0},
		{"unknown is empty", 10, math.NaN(), 0},
		{"zero width becomes one", 0, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar(tt.width, tt.percent)
			width := tt.width
			if width < 1 {
				width = 1
			}
			assert.Equal(t, tt.filled, strings.Count(bar, "▰"))
			assert.Equal(t, width-tt.filled, strings.Count(bar, "▱"))
		})
	}
}

func TestColorProfile(t *testing.T) {
	assert.Equal(t, termenv.Ascii, ColorProfile("never", termenv.TrueColor))
	assert.Equal(t, termenv.ANSI256, ColorProfile("always", termenv.Ascii))
	assert.Equal(t, termenv.TrueColor, ColorProfile("always", termenv.TrueColor))
	assert.Equal(t, termenv.ANSI, ColorProfile("auto", termenv.ANSI))
	assert.Equal(t, termenv.Ascii, ColorProfile("", termenv.Ascii))
}

func TestSectionHeader(t *testing.T) {
	h := SectionHeader("CPU", "4 cores", 40)
	assert.Contains(t, h, "CPU")
	assert.Contains(t, h, "4 cores")
	assert.Equal(t, 40, lipgloss.Width(h))
}

func TestSectionContentLine(t *testing.T) {
	line := SectionContentLine("hello", 30)
	assert.Equal(t, 30, lipgloss.Width(line))
	assert.True(t, strings.HasPrefix(line, "│ hello"))

	// Content wider than the panel is not cut.
	long := SectionContentLine(strings.Repeat("x", 50), 30)
	assert.Contains(t, long, strings.Repeat("x", 50))
}

func TestSectionFooter(t *testing.T) {
	assert.Equal(t, 20, lipgloss.Width(SectionFooter(20)))
	assert.Equal(t, 2, lipgloss.Width(SectionFooter(0)))
}
