package engine

var (
	neonCycle = []Color{Red, Orange, Yellow, Green, Blue, Indigo, Violet}

	sunPair  = []Color{{255, 200, 0}, {255, 160, 0}}
	moonPair = []Color{{200, 200, 255}, {160, 160, 200}}
)

// customDim is how far the Custom effect's second colour drops below the base
const customDim = 100

// buildPalette returns a fresh palette for kind seeded from base. Sun and
// Moon only use the first entry as the reference colour for their pulse.
func buildPalette(kind EffectKind, base Color) []Color {
	var p []Color
	switch kind {
	case EffectStrobe:
		p = []Color{base, Black}
	case EffectPolice:
		p = []Color{Red, Blue}
	case EffectAmbulance:
		p = []Color{Red, White}
	case EffectNeon:
		p = neonCycle
	case EffectSun:
		p = sunPair
	case EffectMoon:
		p = moonPair
	case EffectCustom:
		p = []Color{base, base.Darken(customDim)}
	default:
		return nil
	}
	out := make([]Color, len(p))
	copy(out, p)
	return out
}
