package viz

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/chladni/internal/geom"
)

func TestCanvas_SetBits(t *testing.T) {
	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, 0x2801},
		{1, 0, 0x2808},
		{0, 3, 0x2840},
		{1, 3, 0x2880},
		{0, 2, 0x2804},
	}

	for _, tt := range tests {
		c := NewCanvas(1, 1)
		c.Set(tt.x, tt.y)
		if got := []rune(c.Lines()[0])[0]; got != tt.want {
			t.Errorf("Set(%d,%d) = %U, want %U", tt.x, tt.y, got, tt.want)
		}
		if !c.IsSet(tt.x, tt.y) {
			t.Errorf("IsSet(%d,%d) = false", tt.x, tt.y)
		}
		c.Unset(tt.x, tt.y)
		if got := []rune(c.Lines()[0])[0]; got != brailleBlank {
			t.Errorf("Unset(%d,%d) left %U", tt.x, tt.y, got)
		}
	}
}

func TestCanvas_OutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(4, 0)
	c.Set(0, 8)
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r != brailleBlank && r != '\n' }) {
		t.Errorf("out of range dots were drawn:\n%s", c)
	}
}

func TestCanvas_FullCell(t *testing.T) {
	c := NewCanvas(1, 1)
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			c.Set(x, y)
		}
	}
	if got := c.String(); got != "⣿\n" {
		t.Errorf("full cell = %q, want ⣿", got)
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("diagonal dot (%d,%d) not set", i, i)
		}
	}

	c.Clear()
	c.DrawLine(6, 3, 1, 3)
	for x := 1; x <= 6; x++ {
		if !c.IsSet(x, 3) {
			t.Errorf("horizontal dot (%d,3) not set", x)
		}
	}
	if c.IsSet(0, 3) || c.IsSet(7, 3) {
		t.Error("line overran its end points")
	}
}

func TestProjection_RoundTrip(t *testing.T) {
	c := NewCanvas(40, 20)
	p := Fit(c, 0.32, 0.32)

	x, y := p.Dot(r2.Vec{})
	dw, dh := c.Dots()
	if x != dw/2 && x != (dw-1)/2 {
		t.Errorf("origin x = %d, want centre of %d", x, dw)
	}
	if y != dh/2 && y != (dh-1)/2 {
		t.Errorf("origin y = %d, want centre of %d", y, dh)
	}

	tx, ty := p.Dot(r2.Vec{X: 0.16, Y: 0.16})
	if ty != 0 || tx <= x {
		t.Errorf("top-right corner at (%d,%d)", tx, ty)
	}
	back := p.Point(p.Dot(r2.Vec{X: 0.1, Y: -0.05}))
	if d := r2.Norm(r2.Sub(back, r2.Vec{X: 0.1, Y: -0.05})); d > 1/p.Scale {
		t.Errorf("Point(Dot(v)) off by %g m", d)
	}
}

func TestDrawPlate(t *testing.T) {
	c := NewCanvas(20, 10)
	rect := geom.NewRectangle(0.2, 0.2)
	grains := []r2.Vec{{X: 0, Y: 0}, {X: 0.05, Y: 0.05}}

	p := DrawPlate(c, rect, grains, false)
	for _, g := range grains {
		if !c.IsSet(p.Dot(g)) {
			t.Errorf("grain %v not drawn", g)
		}
	}
	if c.IsSet(p.Dot(r2.Vec{X: -0.1, Y: -0.1})) {
		t.Error("corner drawn without outline")
	}

	DrawPlate(c, rect, nil, true)
	if !c.IsSet(p.Dot(r2.Vec{X: -0.1, Y: -0.1})) {
		t.Error("outline corner missing")
	}
}

type radial struct{}

func (radial) Displacement(p r2.Vec) float64 { return r2.Norm(p) }

func TestDrawNodal(t *testing.T) {
	c := NewCanvas(20, 10)
	p := DrawNodal(c, geom.NewRectangle(0.2, 0.2), radial{}, 0.1)
	if !c.IsSet(p.Dot(r2.Vec{})) {
		t.Error("zero-displacement centre not marked")
	}
	if c.IsSet(p.Dot(r2.Vec{X: 0.09, Y: 0.09})) {
		t.Error("high-displacement corner marked")
	}
}

func TestResonancePlot(t *testing.T) {
	if ResonancePlot(nil, nil, 40, 5) != "" {
		t.Error("empty sweep should plot nothing")
	}
	out := ResonancePlot([]float64{100, 200, 300}, []float64{1e-9, 4e-9, 2e-9}, 40, 5)
	if !strings.Contains(out, "100-300 Hz") {
		t.Errorf("caption missing:\n%s", out)
	}
	if !strings.Contains(out, "1.00") {
		t.Errorf("plot not normalised to 1:\n%s", out)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != DefaultTheme.Name {
		t.Error("unknown theme should fall back to the default")
	}
	seen := map[string]bool{}
	th := DefaultTheme
	for range Themes {
		seen[th.Name] = true
		th = NextTheme(th)
	}
	if len(seen) != len(Themes) || th.Name != DefaultTheme.Name {
		t.Errorf("NextTheme visited %v", seen)
	}
}
