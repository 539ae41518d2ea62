package modal

import "sort"

// Material relates driving frequency to wave number: k = sqrt(f/Dispersion).
type Material struct {
	Name       string  `yaml:"name"`
	Dispersion float64 `yaml:"dispersion"`
}

// Dispersion constants for a plate about 1 mm thick.
var Materials = map[string]Material{
	"copper":    {Name: "copper", Dispersion: 0.178},
	"brass":     {Name: "brass", Dispersion: 0.160},
	"aluminium": {Name: "aluminium", Dispersion: 0.237},
	"steel":     {Name: "steel", Dispersion: 0.232},
	"glass":     {Name: "glass", Dispersion: 0.238},
}

// DefaultMaterial is the plate material used by the classic demonstration.
var DefaultMaterial = Materials["copper"]

func LookupMaterial(name string) (Material, bool) {
	m, ok := Materials[name]
	return m, ok
}

func MaterialNames() []string {
	names := make([]string, 0, len(Materials))
	for name := range Materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
