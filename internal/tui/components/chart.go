package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/hpgo/internal/tui/tuistyles"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// BarChart renders values as a row of block columns scaled between their
// minimum and maximum, resampled to at most width columns.
type BarChart struct {
	Title  string
	Values []float64
	Width  int
	Height int
}

// NewBarChart creates a chart 60 columns wide and 8 rows high.
func NewBarChart(title string, values []float64) *BarChart {
	return &BarChart{Title: title, Values: values, Width: 60, Height: 8}
}

// WithSize sets the chart dimensions.
func (c *BarChart) WithSize(width, height int) *BarChart {
	if width > 0 {
		c.Width = width
	}
	if height > 0 {
		c.Height = height
	}
	return c
}

// Render draws the chart. Each row covers one eighth-block band per level.
func (c *BarChart) Render() string {
	if len(c.Values) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}
	cols := resample(c.Values, c.Width)
	lo, hi := bounds(cols)
	span := hi - lo

	levels := c.Height * len(blocks)
	heights := make([]int, len(cols))
	for i, v := range cols {
		if span == 0 {
			heights[i] = levels / 2
			continue
		}
		heights[i] = int(math.Round((v - lo) / span * float64(levels-1)))
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		b.WriteString("\n")
	}
	bar := lipgloss.NewStyle().Foreground(tuistyles.ColorSecondary)
	for row := c.Height - 1; row >= 0; row-- {
		var line strings.Builder
		floor := row * len(blocks)
		for _, h := range heights {
			switch {
			case h >= floor+len(blocks)-1:
				line.WriteRune(blocks[len(blocks)-1])
			case h >= floor:
				line.WriteRune(blocks[h-floor])
			default:
				line.WriteRune(' ')
			}
		}
		b.WriteString(bar.Render(line.String()))
		b.WriteString("\n")
	}
	return b.String()
}

func resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return values
	}
	if width == 1 {
		return values[len(values)-1:]
	}
	out := make([]float64, width)
	for i := range out {
		out[i] = values[i*(len(values)-1)/(width-1)]
	}
	return out
}

func bounds(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
