package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause      key.Binding
	Regenerate key.Binding
	Reset      key.Binding
	Sweep      key.Binding
	NextRes    key.Binding
	PrevRes    key.Binding
	Up         key.Binding
	Down       key.Binding
	Inc        key.Binding
	Dec        key.Binding
	Edit       key.Binding
	Shape      key.Binding
	Polygon    key.Binding
	Material   key.Binding
	Policy     key.Binding
	Grains     key.Binding
	View       key.Binding
	Theme      key.Binding
	Audio      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Pause:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Regenerate: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new sand")),
		Reset:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
		Sweep:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "sweep")),
		NextRes:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next mode")),
		PrevRes:    key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev mode")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "select")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "select")),
		Inc:        key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→/+", "increase")),
		Dec:        key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/-", "decrease")),
		Edit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit value")),
		Shape:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shape")),
		Polygon:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "polygon")),
		Material:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "material")),
		Policy:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "edge policy")),
		Grains:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grains")),
		View:       key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "sand/nodal")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Audio:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "tone")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Sweep, k.NextRes, k.Shape, k.Regenerate, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Regenerate, k.Reset, k.View},
		{k.Sweep, k.NextRes, k.PrevRes, k.Audio},
		{k.Up, k.Down, k.Inc, k.Dec, k.Edit},
		{k.Shape, k.Polygon, k.Material, k.Policy, k.Grains},
		{k.Theme, k.Help, k.Quit},
	}
}
