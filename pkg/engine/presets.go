package engine

import "strings"

// Preset is a named base colour offered by hosts as a one-press shortcut
type Preset struct {
	Name  string
	Group string
	Color Color
}

const (
	GroupStandard = "Standard"
	GroupDesigner = "Designer"
)

var presets = []Preset{
	{Name: "White", Group: GroupStandard, Color: White},
	{Name: "Red", Group: GroupStandard, Color: Red},
	{Name: "Green", Group: GroupStandard, Color: Green},
	{Name: "Blue", Group: GroupStandard, Color: Blue},
	{Name: "Warm", Group: GroupStandard, Color: Color{255, 180, 100}},
	{Name: "Cool", Group: GroupStandard, Color: Color{180, 200, 255}},

	{Name: "Prussian", Group: GroupDesigner, Color: Color{0, 49, 83}},
	{Name: "Hermès", Group: GroupDesigner, Color: Color{255, 88, 0}},
	{Name: "LV Brown", Group: GroupDesigner, Color: Color{101, 67, 33}},
	{Name: "Tiffany", Group: GroupDesigner, Color: Color{0, 175, 152}},
	{Name: "Louboutin", Group: GroupDesigner, Color: Color{224, 23, 58}},
}

// Presets returns the standard presets followed by the designer presets
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset finds a preset by name, ignoring case
func LookupPreset(name string) (Preset, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, true
		}
	}
	return Preset{}, false
}
