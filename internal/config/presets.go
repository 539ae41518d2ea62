package config

import "sort"

// Presets are named scenes grouped by plate shape.
var Presets = map[string]map[string]*Config{
	"rectangle": {
		"classic": scene(func(c *Config) {
			c.Frequency = 1000
			c.Excitation = ExcitationPoint{X: 0, Y: 0}
		}),
		"offcentre": scene(func(c *Config) {
			c.Frequency = 1760
			c.Excitation = ExcitationPoint{X: 0.05, Y: 0.03}
		}),
		"violin": scene(func(c *Config) {
			c.Plate.Width, c.Plate.Height = 0.2, 0.36
			c.Material = "brass"
			c.Frequency = 2300
		}),
	},
	"annulus": {
		"disc": scene(func(c *Config) {
			c.Shape = "annulus"
			c.Frequency = 1200
		}),
		"ring": scene(func(c *Config) {
			c.Shape = "annulus"
			c.Plate.InnerRadius = 0.05
			c.Frequency = 2450
			c.Sand.Policy = "remove"
		}),
	},
	"polygon": {
		"guitar": scene(func(c *Config) {
			c.Shape = "polygon"
			c.Plate.Polygon = "guitar"
			c.Material = "aluminium"
			c.Frequency = 1500
		}),
		"star": scene(func(c *Config) {
			c.Shape = "polygon"
			c.Plate.Polygon = "star"
			c.Plate.PolygonScale = 0.18
			c.Frequency = 3100
		}),
		"hexagon": scene(func(c *Config) {
			c.Shape = "polygon"
			c.Plate.Polygon = "hexagon"
			c.Material = "glass"
			c.Frequency = 2700
			c.Sand.Grains = 20000
		}),
	},
}

func scene(edit func(*Config)) *Config {
	c := DefaultConfig()
	edit(c)
	return c
}

// GetPreset returns a copy of a preset so callers may edit it.
func GetPreset(shape, preset string) *Config {
	shapePresets, ok := Presets[shape]
	if !ok {
		return nil
	}
	cfg, ok := shapePresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// FindPreset looks a preset up by name across every shape.
func FindPreset(preset string) *Config {
	for _, shape := range Shapes() {
		if cfg := GetPreset(shape, preset); cfg != nil {
			return cfg
		}
	}
	return nil
}

func ListPresets(shape string) []string {
	shapePresets, ok := Presets[shape]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(shapePresets))
	for name := range shapePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Shapes() []string {
	shapes := make([]string, 0, len(Presets))
	for s := range Presets {
		shapes = append(shapes, s)
	}
	sort.Strings(shapes)
	return shapes
}
