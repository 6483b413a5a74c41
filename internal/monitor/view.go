package monitor

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/hibou/internal/sampler"
)

// Column widths inside a section line.
const (
	labelWidth   = 18
	sizeWidth    = 10
	percentWidth = 8
	minBarWidth  = 10
	maxPanel     = 100
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.frame == nil {
		b.WriteString(LabelStyle.Render("Collecting first sample..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderResources(*m.frame))
		b.WriteString("\n")
		b.WriteString(m.renderCPU(*m.frame))
		b.WriteString("\n")
		b.WriteString(m.renderNetwork(*m.frame))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

// panelWidth is the outer width of each section.
func (m Model) panelWidth() int {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	if w > maxPanel {
		w = maxPanel
	}
	return w
}

// barWidth is whatever the fixed columns leave over.
func (m Model) barWidth() int {
	// "│ " + label + " " + size + " " + bar + " " + percent + " │"
	w := m.panelWidth() - 4 - labelWidth - sizeWidth - percentWidth - 3
	if w < minBarWidth {
		w = minBarWidth
	}
	return w
}

// renderHeader renders the title line with host details.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("hibou")

	var parts []string
	if m.info.Hostname != "" {
		parts = append(parts, m.info.Hostname)
	}
	if osName := m.info.OS(); osName != "" {
		parts = append(parts, osName)
	}
	if m.info.KernelVersion != "" {
		parts = append(parts, "kernel "+m.info.KernelVersion)
	}
	if up := m.info.Uptime(m.clock()); up > 0 {
		parts = append(parts, "up "+FormatUptime(up))
	}

	stats := ""
	if len(parts) > 0 {
		stats = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			Render(" | " + strings.Join(parts, " | "))
	}

	header := HeaderStyle.Render(title + stats)
	if m.paused {
		header += " " + PausedStyle.Render("PAUSED")
	}
	return header
}

// usageLine formats one label/size/bar/percent row.
func (m Model) usageLine(label, size string, percent float64, failed bool) string {
	labelCell := LabelStyle.Render(padRight(truncate(label, labelWidth), labelWidth))
	sizeCell := ValueStyle.Render(padLeft(size, sizeWidth))
	bar := ProgressBarWithThresholds(m.barWidth(), percent, m.thresholds.Warning, m.thresholds.Critical)

	pctStyle := lipgloss.NewStyle().Foreground(MetricColorWithThresholds(percent, m.thresholds.Warning, m.thresholds.Critical))
	if failed {
		pctStyle = ErrorStyle
	}
	pctCell := pctStyle.Render(padLeft(sampler.FormatPercent(percent), percentWidth))

	return SectionContentLine(labelCell+" "+sizeCell+" "+bar+" "+pctCell, m.panelWidth())
}

// renderResources renders memory and every tracked filesystem.
func (m Model) renderResources(f sampler.Frame) string {
	width := m.panelWidth()
	lines := []string{SectionHeader("Resources", fmt.Sprintf("%d filesystems", len(f.Filesystems)), width)}

	lines = append(lines, m.usageLine("memory", sampler.FormatSize(f.Memory.TotalBytes), f.Memory.Percent, f.Memory.Err != nil))
	for _, fs := range f.Filesystems {
		label := fmt.Sprintf("storage(%s)", fs.Label)
		lines = append(lines, m.usageLine(label, sampler.FormatSize(fs.TotalBytes), fs.Percent, fs.Err != nil))
	}

	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// renderCPU renders one bar per core, headed by the mean of known cores.
func (m Model) renderCPU(f sampler.Frame) string {
	width := m.panelWidth()
	summary := fmt.Sprintf("%d cores | avg %s", len(f.Cores), sampler.FormatPercent(averageUsage(f.Cores)))
	lines := []string{SectionHeader("CPU", summary, width)}

	for _, c := range f.Cores {
		label := fmt.Sprintf("cpu %d", c.ID)
		if c.Stale {
			label += " (stale)"
		}
		lines = append(lines, m.usageLine(label, "", c.Percent, false))
	}

	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// renderNetwork renders inbound and outbound throughput.
func (m Model) renderNetwork(f sampler.Frame) string {
	width := m.panelWidth()
	value := ""
	if f.Network.Reset {
		value = "counters reset"
	}
	lines := []string{SectionHeader("Network", value, width)}

	in := LabelStyle.Render(padRight("traffic in  <-", labelWidth)) + " " + ValueStyle.Render(sampler.FormatMbps(f.Network.InMbps))
	out := LabelStyle.Render(padRight("traffic out ->", labelWidth)) + " " + ValueStyle.Render(sampler.FormatMbps(f.Network.OutMbps))
	lines = append(lines, SectionContentLine(in, width), SectionContentLine(out, width))

	if f.Network.Err != nil {
		lines = append(lines, SectionContentLine(ErrorStyle.Render(truncate(f.Network.Err.Error(), width-4)), width))
	}

	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// renderFooter renders refresh rate, sampling latency and key hints.
func (m Model) renderFooter() string {
	status := []string{fmt.Sprintf("%s fps", formatFPS(m.period))}
	if m.latency.Count > 0 {
		status = append(status, "sample p99 "+m.latency.P99.String())
	}
	if !m.lastUpdate.IsZero() {
		status = append(status, "updated "+m.lastUpdate.Format("15:04:05"))
	}

	return FooterStyle.Render(strings.Join(status, " | ")) + "\n" + FooterStyle.Render(m.help.View(m.keys))
}

// averageUsage is the mean of the cores whose usage is known, or NaN.
func averageUsage(cores []sampler.CoreUsage) float64 {
	var sum float64
	n := 0
	for _, c := range cores {
		if c.Known() {
			sum += c.Percent
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// formatFPS renders the tick rate for a period, trimming a whole number.
func formatFPS(period time.Duration) string {
	if period <= 0 {
		return "?"
	}
	fps := float64(time.Second) / float64(period)
	if math.Abs(fps-math.Round(fps)) < 0.01 {
		return fmt.Sprintf("%.0f", fps)
	}
	return fmt.Sprintf("%.1f", fps)
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// truncate shortens s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
