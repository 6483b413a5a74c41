package monitor

import (
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	// Semantic colors for metrics
	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")
	ColorUnknown  = lipgloss.Color("#6B6B8D")

	// Text colors
	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent = lipgloss.Color("#FF2E97")
	ColorGraph  = lipgloss.Color("#00FFFF")
)

// Default thresholds for metric severity levels
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	PausedStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)
)

// ColorProfile maps an output.color mode onto a terminal colour profile.
// "never" strips colour, "always" forces at least 256 colours even when the
// terminal was not detected, and anything else keeps the detected profile.
func ColorProfile(mode string, detected termenv.Profile) termenv.Profile {
	switch mode {
	case "never":
		return termenv.Ascii
	case "always":
		if detected == termenv.Ascii {
			return termenv.ANSI256
		}
		return detected
	default:
		return detected
	}
}

// ApplyColorMode sets the lipgloss renderer's profile for mode, detecting
// the terminal on stdout.
func ApplyColorMode(mode string) {
	detected := termenv.NewOutput(os.Stdout).ColorProfile()
	lipgloss.SetColorProfile(ColorProfile(mode, detected))
}

// MetricColorWithThresholds returns the color for a percentage-based metric
// using the provided warning and critical threshold values. Unknown values
// are muted. A zero threshold falls back to the default.
func MetricColorWithThresholds(percent float64, warning, critical int) lipgloss.Color {
	if math.IsNaN(percent) {
		return ColorUnknown
	}
	if warning <= 0 {
		warning = int(WarningThreshold)
	}
	if critical <= 0 {
		critical = int(CriticalThreshold)
	}
	switch {
	case percent >= float64(critical):
		return ColorCritical
	case percent >= float64(warning):
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// MetricColor returns the color for a percentage using the default
// thresholds: green < 70%, yellow 70-90%, red >= 90%.
func MetricColor(percent float64) lipgloss.Color {
	return MetricColorWithThresholds(percent, int(WarningThreshold), int(CriticalThreshold))
}

// ProgressBarWithThresholds renders a bracketless bar of width cells.
// An unknown percentage renders an empty, muted bar.
func ProgressBarWithThresholds(width int, percent float64, warning, critical int) string {
	if width < 1 {
		width = 1
	}

	filled := 0
	if !math.IsNaN(percent) {
		// Clamp percentage to 0-100
		p := math.Max(0, math.Min(100, percent))
		filled = int(p / 100.0 * float64(width))
	}

	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
	return lipgloss.NewStyle().
		Foreground(MetricColorWithThresholds(percent, warning, critical)).
		Render(bar)
}

// ProgressBar renders a bar using the default thresholds.
func ProgressBar(width int, percent float64) string {
	return ProgressBarWithThresholds(width, percent, int(WarningThreshold), int(CriticalThreshold))
}

// SectionHeader renders a section header with the title on the left and value on the right.
// Format: ╭─ Title ────────────────────────────────────── Value ╮
func SectionHeader(title, value string, width int) string {
	if width < 10 {
		width = 10
	}

	// Left: "╭─ " (3 chars) + title + " " (1 char)
	leftWidth := 3 + lipgloss.Width(title) + 1

	// Right: " " (1 char) + value + " ╮" (2 chars)
	rightWidth := 1 + lipgloss.Width(value) + 2

	fillWidth := width - leftWidth - rightWidth
	if fillWidth < 1 {
		fillWidth = 1
	}
	middle := strings.Repeat("─", fillWidth)

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	titleStyle := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(ColorGraph).Bold(true)

	return borderStyle.Render("╭─ ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+middle+" ") +
		valueStyle.Render(value) +
		borderStyle.Render(" ╮")
}

// SectionFooter renders the bottom border of a section.
// Format: ╰────────────────────────────────────────────────────╯
func SectionFooter(width int) string {
	if width < 2 {
		width = 2
	}
	middle := strings.Repeat("─", width-2)
	return lipgloss.NewStyle().Foreground(ColorBorder).Render("╰" + middle + "╯")
}

// SectionContentLine renders a content line with left and right borders, padded to width.
// Format: │ content                                              │
func SectionContentLine(content string, width int) string {
	if width < 4 {
		width = 4
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)

	// Inner width is total width minus "│ " on the left and " │" on the right
	innerWidth := width - 4
	padding := innerWidth - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}

	return borderStyle.Render("│") + " " + content + strings.Repeat(" ", padding) + " " + borderStyle.Render("│")
}
