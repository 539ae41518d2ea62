package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"
)

// ResonancePlot charts a strength sweep normalised to its largest value.
func ResonancePlot(freqs, values []float64, width, height int) string {
	if len(values) == 0 || len(freqs) != len(values) {
		return ""
	}
	norm := make([]float64, len(values))
	copy(norm, values)
	if peak := floats.Max(norm); peak > 0 {
		floats.Scale(1/peak, norm)
	}
	caption := fmt.Sprintf("strength, %.0f-%.0f Hz", freqs[0], freqs[len(freqs)-1])
	return asciigraph.Plot(norm,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	)
}

// Sparkline is a small history chart for the TUI side panel.
func Sparkline(values []float64, width, height int) string {
	if len(values) < 2 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
	)
}
