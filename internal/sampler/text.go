package sampler

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[H\033[2J"

var (
	textHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	textCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	textRightStyle  = textCellStyle.Align(lipgloss.Right)
)

// TextRenderer writes each Frame as a resource/size/usage table. It is used
// when the dashboard runs without the full-screen TUI.
type TextRenderer struct {
	w     io.Writer
	clear bool
}

// NewTextRenderer renders to w. When clear is true the screen is cleared
// before every frame, giving a top-like display on a terminal.
func NewTextRenderer(w io.Writer, clear bool) *TextRenderer {
	return &TextRenderer{w: w, clear: clear}
}

// Render implements Renderer.
func (r *TextRenderer) Render(f Frame) error {
	if r.clear {
		if _, err := io.WriteString(r.w, clearScreen); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.w, FrameTable(f))
	return err
}

// FrameRows flattens a Frame into resource/size/usage rows in display order.
func FrameRows(f Frame) [][]string {
	rows := [][]string{
		{"memory", FormatSize(f.Memory.TotalBytes), FormatPercent(f.Memory.Percent)},
	}
	for _, fs := range f.Filesystems {
		rows = append(rows, []string{fmt.Sprintf("storage(%s)", fs.Label), FormatSize(fs.TotalBytes), FormatPercent(fs.Percent)})
	}
	for _, c := range f.Cores {
		rows = append(rows, []string{fmt.Sprintf("cpu %d", c.ID), "", FormatPercent(c.Percent)})
	}
	rows = append(rows,
		[]string{"traffic", "<-", FormatMbps(f.Network.InMbps)},
		[]string{"", "->", FormatMbps(f.Network.OutMbps)},
	)
	return rows
}

// FrameTable renders a Frame as a bordered table.
func FrameTable(f Frame) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("resource", "size", "usage").
		Rows(FrameRows(f)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return textHeaderStyle
			case col == 0:
				return textCellStyle
			default:
				return textRightStyle
			}
		})
	return t.String()
}
