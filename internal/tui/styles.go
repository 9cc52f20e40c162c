package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))

	panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#444466"))
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// sparkline samples values down to width cells. NaN cells stay blank.
func sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	lo, hi := 0.0, 0.0
	first := true
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if first || v < lo {
			lo = v
		}
		if first || v > hi {
			hi = v
		}
		first = false
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	cells := width
	if len(values) < cells {
		cells = len(values)
	}

	var sb strings.Builder
	for i := 0; i < cells; i++ {
		j := i * len(values) / cells
		if i == cells-1 {
			j = len(values) - 1
		}
		v := values[j]
		if math.IsNaN(v) {
			sb.WriteRune(' ')
			continue
		}
		idx := int((v - lo) / rng * float64(len(sparkChars)-1))
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(sparkChars[idx])
	}
	return sb.String()
}

// rangeBar marks where value sits inside [lo, hi].
func rangeBar(value, lo, hi float64, width int) string {
	pos := int((value - lo) / (hi - lo) * float64(width-1))
	switch {
	case value < lo || hi <= lo:
		return red.Render("◀") + dimmer.Render(strings.Repeat("─", width))
	case value > hi:
		return dimmer.Render(strings.Repeat("─", width)) + red.Render("▶")
	}
	return cyan.Render(strings.Repeat("━", pos)) + white.Render("●") + dimmer.Render(strings.Repeat("─", width-1-pos))
}
