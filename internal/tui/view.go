package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/chladni/internal/geom"
	"github.com/san-kum/chladni/internal/viz"
)

func (m model) View() string {
	p := m.sim.Params()

	title := m.styles.Title.Render(fmt.Sprintf("chladni  %s · %s", p.Shape, p.Material.Name))

	if m.nodal {
		proj := viz.DrawNodal(m.canvas, m.sim.Shape(), m.sim.Field(), 0.05)
		viz.DrawOutline(m.canvas, proj, m.sim.Shape())
	} else {
		viz.DrawPlate(m.canvas, m.sim.Shape(), m.sim.Positions(), true)
	}
	plateView := m.styles.Plate.Render(m.styles.Sand.Render(strings.Join(m.canvas.Lines(), "\n")))

	body := lipgloss.JoinHorizontal(lipgloss.Top, plateView, " ", m.panel())
	return lipgloss.JoinVertical(lipgloss.Left, title, body, m.help.View(m.keys))
}

func (m model) panel() string {
	s := m.styles
	p := m.sim.Params()
	const w = panelWidth - 4

	var b strings.Builder
	switch {
	case m.sweeping:
		b.WriteString(s.Sweeping.Render("● sweeping"))
	case m.paused:
		b.WriteString(s.Paused.Render("○ paused"))
	default:
		b.WriteString(s.Running.Render("● running"))
	}
	if m.audioOn {
		b.WriteString(s.Muted.Render("  ♪ tone"))
	}
	b.WriteString("\n\n")

	b.WriteString(s.Field("f", fmt.Sprintf("%.1f Hz", p.Frequency), 6) + "\n")
	if m.targetHz != p.Frequency {
		b.WriteString(s.Field("→", fmt.Sprintf("%.1f Hz", m.targetHz), 6) + "\n")
	}
	b.WriteString(s.Field("k", fmt.Sprintf("%.2f 1/m", m.sim.Field().WaveNumber(p.Frequency)), 6) + "\n")
	level := 0.0
	if n := len(m.history); n > 0 {
		level = m.history[n-1]
	}
	b.WriteString(m.meter.ViewAs(level) + "\n")
	if spark := viz.Sparkline(m.history, w-8, 3); spark != "" {
		b.WriteString(spark + "\n")
	}
	field := m.sim.Field()
	b.WriteString(s.Label.Render(fmt.Sprintf("modes %d  ◂ %.0f  %.0f ▸",
		field.ActiveModes(), field.PrevResonance(p.Frequency), field.NextResonance(p.Frequency))) + "\n\n")

	values := m.sim.GetParams()
	rows := visibleTunables(p.Shape)
	for i, t := range rows {
		val := fmt.Sprintf(t.format, values[t.name])
		if t.name == "frequency" {
			val = fmt.Sprintf(t.format, m.targetHz)
		}
		if i == m.cursor%len(rows) {
			if m.editing {
				val = m.input.View()
			}
			b.WriteString(s.Selected.Render(fmt.Sprintf("▸ %-10s", t.label)) + " " + s.Value.Render(val) + "\n")
			continue
		}
		b.WriteString("  " + s.Field(t.label, val, 11) + "\n")
	}
	b.WriteString("\n")

	if p.Shape == geom.KindPolygon {
		b.WriteString(s.Field("outline", p.Polygon, 10) + "\n")
	}
	b.WriteString(s.Field("grains", fmt.Sprintf("%d/%d", m.sim.ActualCount(), m.sim.TargetCount()), 10) + "\n")
	b.WriteString(s.Field("edge", p.Policy.String(), 10) + "\n")
	for _, mt := range m.sim.Metrics() {
		b.WriteString(s.Field(mt.Name(), fmt.Sprintf("%.4g", mt.Value()), 10) + "\n")
	}
	b.WriteString(s.Field("fps", fmt.Sprintf("%.0f", m.fps), 10) + "\n")

	if m.status != "" {
		b.WriteString("\n" + s.ErrorBanner.Render(m.status))
	}
	return s.Panel.Width(panelWidth).Render(b.String())
}
