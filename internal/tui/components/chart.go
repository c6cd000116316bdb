package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/finmate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders one block per value, scaled to the largest.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	peak := peakOf(values)

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = min(max(idx, 0), len(sparkBlocks)-1)
		buf.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(buf.String())
}

// BarChart renders one bar per value over a dollar y axis, with labels
// under the bars. Areas too small for bars get a Sparkline.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	n := len(values)
	if n == 0 {
		return ""
	}

	ceiling, step, intervals := chartScale(peakOf(values), height)
	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)

	// one column per bar plus a gap between bars
	barW := min((width-yLabelW-1-(n-1))/n, 6)
	if barW < 1 || height < 3 {
		return Sparkline(values, color)
	}

	t := theme.Active
	surface := lipgloss.NewStyle().Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	topStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)

	rowsPerTick := max(height/intervals, 1)
	chartH := rowsPerTick * intervals

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		label := ""
		if row%rowsPerTick == 0 {
			label = formatChartLabel(step * float64(row/rowsPerTick))
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, label)))

		top := ceiling * float64(row) / float64(chartH)
		bottom := ceiling * float64(row-1) / float64(chartH)
		style := barStyle
		if row == chartH {
			style = topStyle
		}
		for i, v := range values {
			if i > 0 {
				b.WriteString(surface.Render(" "))
			}
			b.WriteString(style.Render(strings.Repeat(barCell(v, bottom, top), barW)))
		}
		b.WriteString("\n")
	}

	axisLen := n*barW + n - 1
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == n {
		cells := make([]string, n)
		for i, l := range labels {
			if len(l) > barW {
				l = l[:barW]
			}
			cells[i] = fmt.Sprintf("%-*s", barW, l)
		}
		b.WriteString("\n")
		b.WriteString(surface.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(strings.TrimRight(strings.Join(cells, " "), " ")))
	}
	return b.String()
}

// barCell picks the glyph for a bar of height v within one row.
func barCell(v, bottom, top float64) string {
	switch {
	case v >= top:
		return "█"
	case v > bottom:
		idx := int((v - bottom) / (top - bottom) * float64(len(sparkBlocks)))
		return string(sparkBlocks[min(max(idx, 0), len(sparkBlocks)-1)])
	default:
		return " "
	}
}

// chartScale picks a round tick step so the axis has at most height/2
// intervals, and returns the axis ceiling, the step and the interval count.
func chartScale(peak float64, height int) (ceiling, step float64, intervals int) {
	step = chartTickStep(peak)
	maxIntervals := max(height/2, 2)
	for math.Ceil(peak/step) > float64(maxIntervals) {
		step *= 2
	}
	intervals = max(int(math.Ceil(peak/step)), 1)
	return step * float64(intervals), step, intervals
}

// chartTickStep computes a 1-2-5 tick interval targeting about 5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))

	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func peakOf(values []float64) float64 {
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		return 1
	}
	return peak
}

// formatChartLabel renders an axis tick as whole dollars, abbreviating
// thousands.
func formatChartLabel(v float64) string {
	switch {
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("$%.0fk", v/1e3)
		}
		return fmt.Sprintf("$%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("$%.0f", v)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}
