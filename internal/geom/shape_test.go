package geom_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/chladni/internal/geom"
)

func samplePoints(rng *rand.Rand, extent float64, n int) []r2.Vec {
	pts := []r2.Vec{{}, {X: extent}, {Y: -extent}, {X: extent, Y: extent}}
	for i := 0; i < n; i++ {
		pts = append(pts, r2.Vec{
			X: (rng.Float64()*2 - 1) * extent,
			Y: (rng.Float64()*2 - 1) * extent,
		})
	}
	return pts
}

func mustPreset(name string) []r2.Vec {
	v, ok := geom.PolygonPreset(name)
	Expect(ok).To(BeTrue(), name)
	return v
}

var _ = Describe("Shape contract", func() {
	var rng *rand.Rand

	BeforeEach(func() {
		rng = rand.New(rand.NewSource(7))
	})

	shapes := map[string]func() geom.Shape{
		"rectangle": func() geom.Shape { return geom.NewRectangle(0.32, 0.2) },
		"disc":      func() geom.Shape { return geom.NewAnnulus(0.16, 0) },
		"ring":      func() geom.Shape { return geom.NewAnnulus(0.16, 0.08) },
		"hexagon":   func() geom.Shape { return geom.NewPolygon(mustPreset("hexagon"), 0.15) },
		"star":      func() geom.Shape { return geom.NewPolygon(mustPreset("star"), 0.15) },
		"guitar":    func() geom.Shape { return geom.NewPolygon(mustPreset("guitar"), 0.15) },
		"square":    func() geom.Shape { return geom.NewPolygon(mustPreset("square"), 0.1) },
	}

	for name, build := range shapes {
		name, build := name, build

		It("clamps every point into the region for "+name, func() {
			s := build()
			for _, p := range samplePoints(rng, 0.5, 500) {
				q := s.Clamp(p)
				Expect(s.Contains(q)).To(BeTrue(), "clamp(%v) = %v", p, q)
				if s.Contains(p) {
					Expect(q).To(Equal(p))
				}
			}
		})

		It("samples random points inside "+name, func() {
			s := build()
			for i := 0; i < 2000; i++ {
				Expect(s.Contains(s.RandomPoint(rng))).To(BeTrue())
			}
		})

		It("keeps the outline within the bounds of "+name, func() {
			s := build()
			w, h := s.Bounds()
			for _, loop := range s.Outline() {
				Expect(len(loop)).To(BeNumerically(">=", 3))
				for _, v := range loop {
					Expect(math.Abs(v.X)).To(BeNumerically("<=", w/2+1e-12))
					Expect(math.Abs(v.Y)).To(BeNumerically("<=", h/2+1e-12))
				}
			}
		})
	}
})

var _ = Describe("Rectangle", func() {
	It("clamps each axis independently", func() {
		r := geom.NewRectangle(0.4, 0.2)
		Expect(r.Clamp(r2.Vec{X: 1, Y: 0.05})).To(Equal(r2.Vec{X: 0.2, Y: 0.05}))
		Expect(r.Clamp(r2.Vec{X: -1, Y: -1})).To(Equal(r2.Vec{X: -0.2, Y: -0.1}))
	})

	It("includes its edges", func() {
		r := geom.NewRectangle(0.4, 0.2)
		Expect(r.Contains(r2.Vec{X: 0.2, Y: 0.1})).To(BeTrue())
		Expect(r.Contains(r2.Vec{X: 0.2001, Y: 0})).To(BeFalse())
	})
})

var _ = Describe("Annulus", func() {
	It("clamps the inner radius below outer minus the gap", func() {
		a := geom.NewAnnulus(0.16, 0)
		a.SetInnerRadius(0.17)
		Expect(a.InnerRadius()).To(BeNumerically("~", 0.14, 1e-12))
		Expect(a.InnerRadius()).To(BeNumerically("<=", a.OuterRadius()-geom.MinGap+1e-15))

		edge := a.OuterRadius() - geom.MinGap
		a.SetInnerRadius(edge)
		Expect(a.InnerRadius()).To(Equal(edge))
	})

	It("pulls the inner radius in when the outer radius shrinks", func() {
		a := geom.NewAnnulus(0.3, 0.25)
		a.SetOuterRadius(0.1)
		Expect(a.InnerRadius()).To(BeNumerically("~", 0.08, 1e-12))
	})

	It("never goes negative", func() {
		a := geom.NewAnnulus(0.16, -1)
		Expect(a.InnerRadius()).To(Equal(0.0))
	})

	It("holds the invariant over arbitrary radius mutations", func() {
		rng := rand.New(rand.NewSource(3))
		a := geom.NewAnnulus(0.16, 0)
		for i := 0; i < 1000; i++ {
			if rng.Intn(2) == 0 {
				a.SetOuterRadius(rng.Float64() * 0.6)
			} else {
				a.SetInnerRadius(rng.Float64()*0.8 - 0.1)
			}
			Expect(a.InnerRadius()).To(BeNumerically(">=", 0))
			Expect(a.InnerRadius()).To(BeNumerically("<=", a.OuterRadius()-geom.MinGap+1e-12))
		}
	})

	It("resolves the centre to the inner edge along +x", func() {
		a := geom.NewAnnulus(0.16, 0.05)
		p := a.Clamp(r2.Vec{})
		Expect(p.Y).To(Equal(0.0))
		Expect(p.X).To(BeNumerically("~", 0.05, 1e-9))
		Expect(a.Contains(p)).To(BeTrue())
		Expect(a.Clamp(r2.Vec{})).To(Equal(p))
	})

	It("projects radially onto the violated bound", func() {
		a := geom.NewAnnulus(0.16, 0.05)
		p := a.Clamp(r2.Vec{X: 0, Y: 1})
		Expect(p.X).To(Equal(0.0))
		Expect(p.Y).To(BeNumerically("~", 0.16, 1e-9))

		q := a.Clamp(r2.Vec{X: -0.01, Y: 0})
		Expect(q.X).To(BeNumerically("~", -0.05, 1e-9))
	})

	It("has two outline loops only with a hole", func() {
		Expect(geom.NewAnnulus(0.16, 0).Outline()).To(HaveLen(1))
		Expect(geom.NewAnnulus(0.16, 0.04).Outline()).To(HaveLen(2))
	})
})

var _ = Describe("Polygon", func() {
	It("contains nothing with fewer than three vertices", func() {
		p := geom.NewPolygon([]r2.Vec{{X: -1}, {X: 1}}, 0.1)
		Expect(p.Contains(r2.Vec{})).To(BeFalse())
		Expect(p.Area()).To(Equal(0.0))
	})

	It("treats clockwise and counter-clockwise outlines alike", func() {
		ccw := mustPreset("hexagon")
		cw := make([]r2.Vec, len(ccw))
		for i := range ccw {
			cw[i] = ccw[len(ccw)-1-i]
		}
		a, b := geom.NewPolygon(ccw, 0.1), geom.NewPolygon(cw, 0.1)
		outside := r2.Vec{X: 0.3, Y: 0.02}
		pa, pb := a.Clamp(outside), b.Clamp(outside)
		Expect(pa.X).To(BeNumerically("~", pb.X, 1e-9))
		Expect(pa.Y).To(BeNumerically("~", pb.Y, 1e-9))
		Expect(b.Contains(pb)).To(BeTrue())
	})

	It("tests the notch of the star as outside", func() {
		p := geom.NewPolygon(mustPreset("star"), 1)
		Expect(p.Contains(r2.Vec{})).To(BeTrue())
		Expect(p.Contains(r2.Vec{X: 0, Y: -0.9})).To(BeFalse())
	})

	It("rescales its bounding box", func() {
		p := geom.NewPolygon(mustPreset("square"), 0.1)
		w, h := p.Bounds()
		Expect(w).To(BeNumerically("~", 0.2, 1e-12))
		Expect(h).To(BeNumerically("~", 0.2, 1e-12))

		p.SetScale(0.2)
		w, _ = p.Bounds()
		Expect(w).To(BeNumerically("~", 0.4, 1e-12))
		Expect(p.Area()).To(BeNumerically("~", 0.16, 1e-12))
	})

	It("clamps inside custom outlines the nudges cannot reach", func() {
		outlines := map[string][]r2.Vec{
			"sliver": {{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1e-7}},
			"horseshoe": {
				{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: 0.9, Y: 1},
				{X: 0.9, Y: -0.9}, {X: -0.9, Y: -0.9}, {X: -0.9, Y: 1}, {X: -1, Y: 1},
			},
			"needle": {{X: -1, Y: -1e-6}, {X: 1, Y: -1e-6}, {X: 1, Y: 1e-6}, {X: -1, Y: 1e-6}},
		}
		rng := rand.New(rand.NewSource(3))
		for name, unit := range outlines {
			for _, scale := range []float64{0.05, 0.16, 0.5} {
				p := geom.NewPolygon(unit, scale)
				pts := samplePoints(rng, 2*scale, 500)
				pts = append(pts, p.Vertices()...)
				for _, q := range pts {
					c := p.Clamp(q)
					Expect(p.Contains(c)).To(BeTrue(), "%s at scale %v: Clamp(%v) = %v", name, scale, q, c)
				}
			}
		}
	})

	It("recentres off-centre outlines on their bounding box", func() {
		p := geom.NewPolygon([]r2.Vec{{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 4}}, 1)
		Expect(p.Contains(r2.Vec{})).To(BeTrue())
		Expect(p.Vertices()[0]).To(Equal(r2.Vec{X: -1, Y: -1}))
	})
})

var _ = Describe("Kind", func() {
	It("round-trips through its name", func() {
		for _, k := range []geom.Kind{geom.KindRectangle, geom.KindAnnulus, geom.KindPolygon} {
			got, ok := geom.ParseKind(k.String())
			Expect(ok).To(BeTrue())
			Expect(got).To(Equal(k))
		}
		_, ok := geom.ParseKind("triangle")
		Expect(ok).To(BeFalse())
	})

	It("lists presets in order", func() {
		Expect(geom.PolygonPresetNames()).To(Equal([]string{"guitar", "hexagon", "square", "star"}))
	})
})
