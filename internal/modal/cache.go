package modal

import "math"

// geometry is everything the surviving-mode list depends on.
type geometry struct {
	a, b   float64 // plate size
	x0, y0 float64 // excitation in corner coordinates
	gamma  float64
	limit  int
}

// modeCache holds the surviving modes and their resonance weights for the
// last wave number. The slices are sized once for the mode limit and
// overwritten in place.
type modeCache struct {
	key   float64 // wave number the weights were built for
	valid bool    // weights match key
	built bool    // mode list matches the current geometry

	count int
	m, n  []int
	kmn2  []float64 // squared modal wave number
	src   []float64 // phi_mn at the excitation point
	re    []float64
	im    []float64
}

func newModeCache(limit int) modeCache {
	size := (limit+1)*(limit+1) - 1
	return modeCache{
		m:    make([]int, size),
		n:    make([]int, size),
		kmn2: make([]float64, size),
		src:  make([]float64, size),
		re:   make([]float64, size),
		im:   make([]float64, size),
	}
}

func (c *modeCache) invalidate() {
	c.built = false
	c.valid = false
}

// rebuildModes selects the modes whose source term survives the relative
// threshold. Squared magnitudes are compared to skip a square root.
func (c *modeCache) rebuildModes(g geometry) {
	maxSrc2 := 0.0
	for m := 0; m <= g.limit; m++ {
		cx := math.Cos(float64(m) * math.Pi * g.x0 / g.a)
		for n := 0; n <= g.limit; n++ {
			if m == 0 && n == 0 {
				continue
			}
			s := cx * math.Cos(float64(n)*math.Pi*g.y0/g.b)
			maxSrc2 = math.Max(maxSrc2, s*s)
		}
	}

	cut := SourceThreshold * SourceThreshold * maxSrc2
	c.count = 0
	for m := 0; m <= g.limit; m++ {
		cx := math.Cos(float64(m) * math.Pi * g.x0 / g.a)
		for n := 0; n <= g.limit; n++ {
			if m == 0 && n == 0 {
				continue
			}
			s := cx * math.Cos(float64(n)*math.Pi*g.y0/g.b)
			if s*s < cut || s == 0 {
				continue
			}
			fm, fn := float64(m)/g.a, float64(n)/g.b
			i := c.count
			c.m[i], c.n[i] = m, n
			c.kmn2[i] = math.Pi * math.Pi * (fm*fm + fn*fn)
			c.src[i] = s
			c.count++
		}
	}
	c.built = true
	c.valid = false
}

// recomputeIfStale rebuilds the resonance weights when k differs from the
// cached key. The 4/(ab) normalisation is folded into the weights.
func (c *modeCache) recomputeIfStale(g geometry, k float64) {
	if !c.built {
		c.rebuildModes(g)
	}
	if c.valid && c.key == k {
		return
	}

	norm := 4 / (g.a * g.b)
	k2 := k * k
	damp := 2 * g.gamma * k
	for i := 0; i < c.count; i++ {
		d := k2 - c.kmn2[i]
		den := d*d + damp*damp
		if den == 0 {
			c.re[i], c.im[i] = 0, 0
			continue
		}
		w := norm * c.src[i] / den
		c.re[i] = w * d
		c.im[i] = -w * damp
	}
	c.key = k
	c.valid = true
}
