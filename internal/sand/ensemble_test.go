package sand_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/chladni/internal/geom"
	"github.com/san-kum/chladni/internal/sand"
)

type constField float64

func (c constField) Displacement(r2.Vec) float64 { return float64(c) }

// lineField vanishes on x = 0.
type lineField struct{}

func (lineField) Displacement(p r2.Vec) float64 { return math.Abs(p.X) }

const frame = 1.0 / sand.TargetFPS

func allInside(s geom.Shape, pts []r2.Vec) bool {
	for _, p := range pts {
		if !s.Contains(p) {
			return false
		}
	}
	return true
}

var _ = Describe("Ensemble", func() {
	var (
		plate *geom.Rectangle
		e     *sand.Ensemble
	)

	BeforeEach(func() {
		plate = geom.NewRectangle(0.32, 0.32)
		e = sand.New(plate, rand.New(rand.NewSource(11)), 2500)
		e.Initialize()
	})

	It("draws exactly the target inside the plate", func() {
		Expect(e.Count()).To(Equal(2500))
		Expect(allInside(plate, e.Positions())).To(BeTrue())
	})

	It("keeps every grain in place on a still plate", func() {
		before := append([]r2.Vec(nil), e.Positions()...)
		e.Step(frame, constField(0))
		Expect(e.Positions()).To(Equal(before))
	})

	Context("with the clamp policy", func() {
		It("keeps the population and the boundary", func() {
			e.StepScale = 0.05
			for i := 0; i < 50; i++ {
				e.Step(frame, constField(1))
				Expect(e.Count()).To(Equal(2500))
			}
			Expect(allInside(plate, e.Positions())).To(BeTrue())
		})
	})

	Context("with the remove policy", func() {
		BeforeEach(func() {
			e.SetPolicy(sand.PolicyRemove)
			e.StepScale = 0.05
		})

		It("only ever shrinks", func() {
			prev := e.Count()
			for i := 0; i < 50; i++ {
				e.Step(frame, constField(1))
				Expect(e.Count()).To(BeNumerically("<=", prev))
				prev = e.Count()
			}
			Expect(prev).To(BeNumerically("<", 2500))
			Expect(allInside(plate, e.Positions())).To(BeTrue())
		})

		It("is refilled by Regenerate", func() {
			for i := 0; i < 20; i++ {
				e.Step(frame, constField(1))
			}
			Expect(e.Count()).To(BeNumerically("<", e.Target()))

			e.Regenerate()
			Expect(e.Count()).To(Equal(e.Target()))
			Expect(allInside(plate, e.Positions())).To(BeTrue())
		})

		It("drops grains stranded by a shrinking plate", func() {
			plate.SetSize(0.1, 0.1)
			e.ClampToBounds()
			Expect(e.Count()).To(BeNumerically("<", 2500))
			Expect(allInside(plate, e.Positions())).To(BeTrue())
		})
	})

	It("pulls stranded grains back after the plate shrinks", func() {
		plate.SetSize(0.1, 0.2)
		e.ClampToBounds()
		Expect(e.Count()).To(Equal(2500))
		Expect(allInside(plate, e.Positions())).To(BeTrue())
	})

	It("re-applies the boundary when the shape is swapped", func() {
		ring := geom.NewAnnulus(0.1, 0.04)
		e.SetShape(ring)
		Expect(e.Shape()).To(BeIdenticalTo(geom.Shape(ring)))
		Expect(allInside(ring, e.Positions())).To(BeTrue())
	})

	It("redistributes on a new target", func() {
		e.SetTarget(1000)
		Expect(e.Count()).To(Equal(1000))
		e.SetTarget(5000)
		Expect(e.Count()).To(Equal(5000))
		Expect(allInside(plate, e.Positions())).To(BeTrue())
	})

	It("collects grains on the nodal line", func() {
		near := func() float64 {
			n := 0
			for _, p := range e.Positions() {
				if math.Abs(p.X) < 0.01 {
					n++
				}
			}
			return float64(n) / float64(e.Count())
		}
		start := near()
		e.StepScale = 1
		for i := 0; i < 200; i++ {
			e.Step(frame, lineField{})
		}
		Expect(start).To(BeNumerically("<", 0.1))
		Expect(near()).To(BeNumerically(">", 0.8))
	})

	It("scales the step with time", func() {
		one := sand.New(plate, rand.New(rand.NewSource(5)), 1)
		two := sand.New(plate, rand.New(rand.NewSource(5)), 1)
		one.Initialize()
		two.Initialize()
		start := one.Positions()[0]
		two.TimeScale = 2
		one.Step(frame, constField(0.1))
		two.Step(frame, constField(0.1))

		d1 := r2.Norm(r2.Sub(one.Positions()[0], start))
		d2 := r2.Norm(r2.Sub(two.Positions()[0], start))
		if plate.Contains(r2.Add(start, r2.Scale(2, r2.Sub(one.Positions()[0], start)))) {
			Expect(d2).To(BeNumerically("~", 2*d1, 1e-12))
		}
	})
})

var _ = Describe("Policy", func() {
	It("parses its names", func() {
		for _, p := range []sand.Policy{sand.PolicyClamp, sand.PolicyRemove} {
			got, ok := sand.ParsePolicy(p.String())
			Expect(ok).To(BeTrue())
			Expect(got).To(Equal(p))
		}
		_, ok := sand.ParsePolicy("bounce")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("DirectionTable", func() {
	It("returns unit vectors", func() {
		t := sand.NewDirectionTable(1024)
		for _, u := range []float64{0, 0.1, 0.25, 0.5, 0.999, 1.3, -0.2} {
			c, s := t.Direction(u)
			Expect(math.Hypot(c, s)).To(BeNumerically("~", 1, 1e-5))
		}
		c, s := t.Direction(0.25)
		Expect(c).To(BeNumerically("~", 0, 1e-9))
		Expect(s).To(BeNumerically("~", 1, 1e-9))
	})
})
