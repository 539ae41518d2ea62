package modal

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/chladni/internal/assert"
)

const (
	// DefaultModeLimit is the highest mode index M summed in each direction.
	DefaultModeLimit = 16

	// DefaultDamping is D in gamma = D/sqrt(ab).
	DefaultDamping = 0.02

	// SourceThreshold drops modes whose excitation term is smaller than this
	// fraction of the strongest one.
	SourceThreshold = 1e-3
)

// Field is the steady-state displacement field of a driven plate.
type Field struct {
	width, height float64
	excitation    r2.Vec // plate-centred
	material      Material
	damping       float64
	limit         int
	frequency     float64

	cache      modeCache
	cosX, cosY []float64
}

// NewField creates a field for a width x height plate excited at its centre.
func NewField(width, height float64, material Material) *Field {
	f := &Field{
		width:     width,
		height:    height,
		material:  material,
		damping:   DefaultDamping,
		frequency: 440,
	}
	f.allocate(DefaultModeLimit)
	return f
}

func (f *Field) allocate(limit int) {
	f.limit = limit
	f.cache = newModeCache(limit)
	f.cosX = make([]float64, limit+1)
	f.cosY = make([]float64, limit+1)
}

func (f *Field) geometry() geometry {
	return geometry{
		a:     f.width,
		b:     f.height,
		x0:    f.excitation.X + f.width/2,
		y0:    f.excitation.Y + f.height/2,
		gamma: f.Gamma(),
		limit: f.limit,
	}
}

// SetPlate resizes the plate. The excitation point is not moved; callers
// re-clamp it against their boundary.
func (f *Field) SetPlate(width, height float64) {
	if width == f.width && height == f.height {
		return
	}
	assert.That(width > 0 && height > 0, "plate must have positive size, got %gx%g", width, height)
	f.width, f.height = width, height
	f.cache.invalidate()
}

func (f *Field) SetExcitation(p r2.Vec) {
	if p == f.excitation {
		return
	}
	f.excitation = p
	f.cache.invalidate()
}

func (f *Field) SetDamping(d float64) {
	if d == f.damping {
		return
	}
	f.damping = d
	f.cache.invalidate()
}

// SetModeLimit changes M. This reallocates the cache buffers.
func (f *Field) SetModeLimit(limit int) {
	if limit < 1 {
		limit = 1
	}
	if limit == f.limit {
		return
	}
	f.allocate(limit)
}

// SetMaterial changes the dispersion constant. The cache is keyed by wave
// number, so the next query at a changed k rebuilds it on its own.
func (f *Field) SetMaterial(m Material) { f.material = m }

func (f *Field) SetFrequency(hz float64) {
	assert.That(hz > 0, "frequency must be positive, got %g", hz)
	f.frequency = hz
}

func (f *Field) Plate() (float64, float64) { return f.width, f.height }
func (f *Field) Excitation() r2.Vec        { return f.excitation }
func (f *Field) Material() Material        { return f.material }
func (f *Field) Damping() float64          { return f.damping }
func (f *Field) ModeLimit() int            { return f.limit }
func (f *Field) Frequency() float64        { return f.frequency }

// Gamma is the damping ratio D/sqrt(ab).
func (f *Field) Gamma() float64 {
	area := f.width * f.height
	if area <= 0 {
		return 0
	}
	return f.damping / math.Sqrt(area)
}

// WaveNumber converts a driving frequency to k for the current material.
func (f *Field) WaveNumber(hz float64) float64 {
	if hz <= 0 || f.material.Dispersion <= 0 {
		return 0
	}
	return math.Sqrt(hz / f.material.Dispersion)
}

// ActiveModes reports how many modes survive the source threshold.
func (f *Field) ActiveModes() int {
	f.ensureModes()
	return f.cache.count
}

func (f *Field) ensureModes() {
	if !f.cache.built {
		f.cache.rebuildModes(f.geometry())
	}
}

func (f *Field) usable(hz float64) bool {
	return hz > 0 && f.width*f.height > 0 && f.material.Dispersion > 0
}

// Displacement is |Psi| at p (plate-centred) for the current frequency.
func (f *Field) Displacement(p r2.Vec) float64 {
	if !f.usable(f.frequency) {
		return 0
	}
	c := &f.cache
	c.recomputeIfStale(f.geometry(), f.WaveNumber(f.frequency))

	chebyshev(f.cosX, math.Pi*(p.X+f.width/2)/f.width)
	chebyshev(f.cosY, math.Pi*(p.Y+f.height/2)/f.height)

	var re, im float64
	for i := 0; i < c.count; i++ {
		t := f.cosX[c.m[i]] * f.cosY[c.n[i]]
		re += c.re[i] * t
		im += c.im[i] * t
	}
	return math.Sqrt(re*re + im*im)
}

// Strength is the resonance curve value at hz:
// sum phi_mn(x0,y0)^2 / ((k^2-k_mn^2)^2 + 4(gamma k)^2).
// It does not touch the cached weights.
func (f *Field) Strength(hz float64) float64 {
	assert.That(hz > 0, "frequency must be positive, got %g", hz)
	if !f.usable(hz) {
		return 0
	}
	f.ensureModes()
	c := &f.cache
	k := f.WaveNumber(hz)
	k2 := k * k
	gk := f.Gamma() * k
	damp := 4 * gk * gk

	sum := 0.0
	for i := 0; i < c.count; i++ {
		d := k2 - c.kmn2[i]
		den := d*d + damp
		if den == 0 {
			continue
		}
		sum += c.src[i] * c.src[i] / den
	}
	return sum
}

// ModalFrequency is the driving frequency whose wave number equals k_mn.
func (f *Field) ModalFrequency(m, n int) float64 {
	if f.width <= 0 || f.height <= 0 {
		return 0
	}
	fm, fn := float64(m)/f.width, float64(n)/f.height
	return f.material.Dispersion * math.Pi * math.Pi * (fm*fm + fn*fn)
}

// chebyshev fills dst[j] = cos(j*theta) with the recurrence
// cos(j t) = 2 cos(t) cos((j-1) t) - cos((j-2) t).
func chebyshev(dst []float64, theta float64) {
	if len(dst) == 0 {
		return
	}
	dst[0] = 1
	if len(dst) == 1 {
		return
	}
	c := math.Cos(theta)
	dst[1] = c
	for j := 2; j < len(dst); j++ {
		dst[j] = 2*c*dst[j-1] - dst[j-2]
	}
}
