// Package tui is the interactive terminal front end for a plate session.
package tui

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/chladni/internal/audio"
	"github.com/san-kum/chladni/internal/geom"
	"github.com/san-kum/chladni/internal/modal"
	"github.com/san-kum/chladni/internal/plate"
	"github.com/san-kum/chladni/internal/sand"
	"github.com/san-kum/chladni/internal/viz"
)

const (
	sweepMin = 50.0
	sweepMax = 4000.0

	// sweepOctave is how many seconds the sweep takes to double the frequency.
	sweepOctave = 6.0

	// meterDecades is the strength range the meter and the tone level span.
	meterDecades = 4.0

	historyLen = 120
	panelWidth = 36
)

type model struct {
	sim *plate.Simulator

	keys   keyMap
	help   help.Model
	input  textinput.Model
	meter  progress.Model
	theme  viz.Theme
	styles viz.Styles
	canvas *viz.Canvas

	cursor  int
	editing bool
	paused  bool
	nodal   bool

	sweeping bool
	spring   harmonica.Spring
	hz       float64
	hzVel    float64
	targetHz float64

	peak    float64
	peakKey plate.Parameters
	history []float64

	tone    *audio.Tone
	player  *audio.Player
	audioOn bool

	lastFrame time.Time
	fps       float64
	status    string

	width, height int
}

func newModel(sim *plate.Simulator, theme viz.Theme) model {
	ti := textinput.New()
	ti.CharLimit = 12
	ti.Prompt = ""

	tone := audio.NewTone()
	hz := sim.Params().Frequency
	m := model{
		sim:      sim,
		keys:     defaultKeys(),
		help:     help.New(),
		input:    ti,
		meter:    progress.New(progress.WithScaledGradient(string(theme.Plate), string(theme.Accent)), progress.WithoutPercentage()),
		theme:    theme,
		styles:   viz.NewStyles(theme),
		spring:   harmonica.NewSpring(harmonica.FPS(int(sand.TargetFPS)), 6.0, 1.0),
		hz:       hz,
		targetHz: hz,
		tone:     tone,
		player:   audio.NewPlayer(tone),
		history:  make([]float64, 0, historyLen),
	}
	m.meter.Width = panelWidth - 4
	m.resize(100, 32)
	return m
}

func (m model) Init() tea.Cmd { return tick() }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) resize(w, h int) {
	m.width, m.height = w, h
	cw := max(w-panelWidth-4, 10)
	ch := max(h-6, 5)
	m.canvas = viz.NewCanvas(cw, ch)
	m.help.Width = w
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.editKey(msg)
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		dt := 1.0 / sand.TargetFPS
		if !m.lastFrame.IsZero() {
			if d := now.Sub(m.lastFrame).Seconds(); d > 0 {
				dt = d
				m.fps = 1.0 / d
			}
		}
		m.lastFrame = now
		m.advance(dt)
		return m, tick()
	}
	return m, nil
}

// advance moves the frequency glide and the sand forward by dt seconds.
func (m *model) advance(dt float64) {
	if m.sweeping {
		m.targetHz *= math.Pow(2, dt/sweepOctave)
		if m.targetHz > sweepMax {
			m.targetHz, m.hz, m.hzVel = sweepMin, sweepMin, 0
		}
	}
	if m.hz != m.targetHz || m.hzVel != 0 {
		m.hz, m.hzVel = m.spring.Update(m.hz, m.hzVel, m.targetHz)
		if math.Abs(m.hz-m.targetHz) < 0.01 && math.Abs(m.hzVel) < 0.01 {
			m.hz, m.hzVel = m.targetHz, 0
		}
		m.sim.SetFrequency(m.hz)
	}
	if !m.paused {
		m.sim.Step(dt)
	}

	level := m.level()
	if len(m.history) == historyLen {
		m.history = m.history[1:]
	}
	m.history = append(m.history, level)
	if m.audioOn {
		m.tone.SetTarget(m.sim.Params().Frequency, level)
	}
}

// level maps the current strength onto [0, 1] on a log scale relative to
// the strongest resonance of the sweep range.
func (m *model) level() float64 {
	p := m.sim.Params()
	key := p
	key.Frequency, key.Grains, key.Policy, key.TimeScale, key.StepScale = 0, 0, 0, 0, 0
	if key != m.peakKey || m.peak == 0 {
		_, values := m.sim.Field().Sweep(sweepMin, sweepMax, 800)
		m.peak = floats.Max(values)
		m.peakKey = key
	}
	s := m.sim.Strength(p.Frequency)
	if s <= 0 || m.peak <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, 1+math.Log10(s/m.peak)/meterDecades))
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	rows := visibleTunables(m.sim.Params().Shape)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopAudio()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keys.Regenerate):
		m.sim.Regenerate()
	case key.Matches(msg, m.keys.Reset):
		m.sim.Reset()
		m.sweeping = false
		m.hz, m.hzVel, m.targetHz = m.sim.Params().Frequency, 0, m.sim.Params().Frequency
		m.history = m.history[:0]
	case key.Matches(msg, m.keys.Sweep):
		m.sweeping = !m.sweeping
		if m.sweeping && m.targetHz < sweepMin {
			m.targetHz = sweepMin
		}
	case key.Matches(msg, m.keys.NextRes):
		m.jump(m.sim.Field().NextResonance(m.targetHz))
	case key.Matches(msg, m.keys.PrevRes):
		m.jump(m.sim.Field().PrevResonance(m.targetHz))
	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor + len(rows) - 1) % len(rows)
	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(rows)
	case key.Matches(msg, m.keys.Inc):
		m.nudge(rows[m.cursor%len(rows)], 1)
	case key.Matches(msg, m.keys.Dec):
		m.nudge(rows[m.cursor%len(rows)], -1)
	case key.Matches(msg, m.keys.Edit):
		t := rows[m.cursor%len(rows)]
		m.editing = true
		m.input.SetValue(strconv.FormatFloat(m.sim.GetParams()[t.name], 'g', 6, 64))
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Shape):
		next := geom.Kind((int(m.sim.Params().Shape) + 1) % 3)
		m.report(m.sim.SetShapeKind(next))
		m.cursor = 0
	case key.Matches(msg, m.keys.Polygon):
		m.report(m.cyclePolygon())
	case key.Matches(msg, m.keys.Material):
		names := modal.MaterialNames()
		next := names[(slices.Index(names, m.sim.Params().Material.Name)+1)%len(names)]
		m.report(m.sim.SetMaterialByName(next))
	case key.Matches(msg, m.keys.Policy):
		next := sand.PolicyRemove
		if m.sim.Params().Policy == sand.PolicyRemove {
			next = sand.PolicyClamp
		}
		m.report(m.sim.SetPolicy(next))
	case key.Matches(msg, m.keys.Grains):
		m.report(m.sim.SetGrainCount(nextPreset(m.sim.TargetCount())))
	case key.Matches(msg, m.keys.View):
		m.nodal = !m.nodal
	case key.Matches(msg, m.keys.Theme):
		m.theme = viz.NextTheme(m.theme)
		m.styles = viz.NewStyles(m.theme)
		m.meter = progress.New(progress.WithScaledGradient(string(m.theme.Plate), string(m.theme.Accent)), progress.WithoutPercentage())
		m.meter.Width = panelWidth - 4
	case key.Matches(msg, m.keys.Audio):
		m.toggleAudio()
	}
	return m, nil
}

func (m model) editKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		m.input.Blur()
		rows := visibleTunables(m.sim.Params().Shape)
		v, err := strconv.ParseFloat(m.input.Value(), 64)
		if err != nil {
			m.status = fmt.Sprintf("not a number: %q", m.input.Value())
			return m, nil
		}
		m.set(rows[m.cursor%len(rows)], v)
		return m, nil
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// jump glides to a resonance found by the field, 0 meaning none.
func (m *model) jump(hz float64) {
	if hz <= 0 || hz > plate.Limits.Frequency.Max {
		m.status = "no further resonance below the mode limit"
		return
	}
	m.sweeping = false
	m.targetHz = hz
}

func (m *model) nudge(t tunable, dir float64) {
	v := m.sim.GetParams()[t.name]
	if t.name == "frequency" {
		v = m.targetHz
	}
	m.set(t, v+dir*t.step)
}

func (m *model) set(t tunable, v float64) {
	if t.name == "frequency" {
		m.sweeping = false
		m.targetHz = plate.Limits.Frequency.Clamp(v)
		return
	}
	m.report(m.sim.SetParam(t.name, v))
}

func (m *model) cyclePolygon() error {
	names := geom.PolygonPresetNames()
	next := names[(slices.Index(names, m.sim.Params().Polygon)+1)%len(names)]
	if err := m.sim.SetPolygon(next); err != nil {
		return err
	}
	if m.sim.Params().Shape != geom.KindPolygon {
		m.cursor = 0
		return m.sim.SetShapeKind(geom.KindPolygon)
	}
	return nil
}

func nextPreset(current int) int {
	for _, n := range sand.GrainPresets {
		if n > current {
			return n
		}
	}
	return sand.GrainPresets[0]
}

func (m *model) toggleAudio() {
	if m.audioOn {
		m.stopAudio()
		return
	}
	m.tone.SetTarget(m.sim.Params().Frequency, 0)
	if err := m.player.Start(); err != nil {
		m.status = err.Error()
		return
	}
	m.audioOn = true
}

func (m *model) stopAudio() {
	if m.audioOn {
		m.player.Stop()
		m.audioOn = false
	}
}

func (m *model) report(err error) {
	if err != nil {
		m.status = err.Error()
	}
}

// RunInteractive runs the TUI on sim until the user quits.
func RunInteractive(sim *plate.Simulator, themeName string) error {
	p := tea.NewProgram(newModel(sim, viz.GetTheme(themeName)), tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(model); ok {
		fm.stopAudio()
	}
	return err
}
