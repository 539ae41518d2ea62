package metrics

// Survival is the share of the target population still on the plate.
type Survival struct {
	name string
	last float64
}

func NewSurvival() *Survival {
	return &Survival{name: "survival", last: 1}
}

func (s *Survival) Name() string { return s.name }

func (s *Survival) Observe(f Frame) {
	if f.Target == 0 {
		s.last = 1
		return
	}
	s.last = float64(len(f.Positions)) / float64(f.Target)
}

func (s *Survival) Value() float64 { return s.last }

func (s *Survival) Reset() { s.last = 1 }
