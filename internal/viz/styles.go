package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from one Theme.
type Styles struct {
	Title       lipgloss.Style
	Plate       lipgloss.Style
	Sand        lipgloss.Style
	Panel       lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Muted       lipgloss.Style
	Running     lipgloss.Style
	Paused      lipgloss.Style
	Sweeping    lipgloss.Style
	Selected    lipgloss.Style
	MeterHigh   lipgloss.Style
	MeterMid    lipgloss.Style
	MeterLow    lipgloss.Style
	ErrorBanner lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		Plate: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Plate),
		Sand: lipgloss.NewStyle().Foreground(t.Sand),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Label:    lipgloss.NewStyle().Foreground(t.Muted),
		Value:    lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Running:  lipgloss.NewStyle().Foreground(t.Running).Bold(true),
		Paused:   lipgloss.NewStyle().Foreground(t.Paused).Bold(true),
		Sweeping: lipgloss.NewStyle().Foreground(t.Sweeping).Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(t.Accent).
			Background(t.Highlight).
			Bold(true),
		MeterHigh:   lipgloss.NewStyle().Foreground(t.Running),
		MeterMid:    lipgloss.NewStyle().Foreground(t.Paused),
		MeterLow:    lipgloss.NewStyle().Foreground(t.Muted),
		ErrorBanner: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4757")).Bold(true),
	}
}

// Meter renders a horizontal bar for a value in [0, 1].
func (s Styles) Meter(v float64, width int) string {
	filled := int(v * float64(width))
	filled = max(0, min(width, filled))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case v > 0.66:
		return s.MeterHigh.Render(bar)
	case v > 0.33:
		return s.MeterMid.Render(bar)
	}
	return s.MeterLow.Render(bar)
}

// Field renders "label value" with the label padded to width.
func (s Styles) Field(label, value string, width int) string {
	pad := width - lipgloss.Width(label)
	if pad < 1 {
		pad = 1
	}
	return s.Label.Render(label) + strings.Repeat(" ", pad) + s.Value.Render(value)
}
