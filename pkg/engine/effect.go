package engine

import (
	"errors"
	"fmt"
	"strings"
)

// EffectKind selects the lighting effect
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectStrobe
	EffectPolice
	EffectAmbulance
	EffectNeon
	EffectSun
	EffectMoon
	EffectCustom
)

var effectNames = [...]string{
	EffectNone:      "None",
	EffectStrobe:    "Strobe",
	EffectPolice:    "Police",
	EffectAmbulance: "Ambulance",
	EffectNeon:      "Neon",
	EffectSun:       "Sun",
	EffectMoon:      "Moon",
	EffectCustom:    "Custom",
}

// ErrUnknownEffect is returned when an effect name cannot be parsed
var ErrUnknownEffect = errors.New("unknown effect")

// Kinds returns every effect in selector order
func Kinds() []EffectKind {
	kinds := make([]EffectKind, len(effectNames))
	for i := range effectNames {
		kinds[i] = EffectKind(i)
	}
	return kinds
}

func (k EffectKind) String() string {
	if k < 0 || int(k) >= len(effectNames) {
		return fmt.Sprintf("EffectKind(%d)", int(k))
	}
	return effectNames[k]
}

// Next returns the following effect in selector order, wrapping to None
func (k EffectKind) Next() EffectKind {
	return EffectKind((int(k) + 1) % len(effectNames))
}

// ParseEffectKind matches an effect by name, ignoring case
func ParseEffectKind(name string) (EffectKind, error) {
	for i, n := range effectNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return EffectKind(i), nil
		}
	}
	return EffectNone, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
}
