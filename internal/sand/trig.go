package sand

import "math"

// DirectionTable maps a uniform draw in [0, 1) to a unit vector, using
// linear interpolation between precomputed angles.
type DirectionTable struct {
	cos []float64
	sin []float64
	n   int
}

// DefaultDirections has 4096 entries (~0.0015 rad resolution).
var DefaultDirections = NewDirectionTable(4096)

func NewDirectionTable(n int) *DirectionTable {
	if n < 4 {
		n = 4
	}
	t := &DirectionTable{
		cos: make([]float64, n+1),
		sin: make([]float64, n+1),
		n:   n,
	}
	for i := 0; i <= n; i++ {
		angle := float64(i) * 2 * math.Pi / float64(n)
		t.cos[i] = math.Cos(angle)
		t.sin[i] = math.Sin(angle)
	}
	return t
}

// Direction returns (cos, sin) of the angle 2*pi*u. u outside [0, 1) is
// wrapped.
func (t *DirectionTable) Direction(u float64) (cos, sin float64) {
	u -= math.Floor(u)
	idx := u * float64(t.n)
	i := int(idx)
	if i >= t.n {
		i = t.n - 1
	}
	frac := idx - float64(i)

	cos = t.cos[i]*(1-frac) + t.cos[i+1]*frac
	sin = t.sin[i]*(1-frac) + t.sin[i+1]*frac
	return
}
