package hover

import (
	"fmt"
	"sort"
)

// Easing maps linear progress in [0, 1] to eased progress. Every Easing here
// is monotonic with f(0)=0 and f(1)=1.
type Easing func(t float32) float32

// Linear is the identity easing.
func Linear(t float32) float32 { return clamp01(t) }

// EaseOutQuad decelerates towards the end.
func EaseOutQuad(t float32) float32 {
	t = clamp01(t)
	return 1 - (1-t)*(1-t)
}

// EaseInOutCubic accelerates then decelerates.
func EaseInOutCubic(t float32) float32 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Smoothstep is the Hermite 3t²-2t³ curve.
func Smoothstep(t float32) float32 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

var easings = map[string]Easing{
	"linear":            Linear,
	"ease-out-quad":     EaseOutQuad,
	"ease-in-out-cubic": EaseInOutCubic,
	"smoothstep":        Smoothstep,
}

// ParseEasing looks up an easing by its config name.
func ParseEasing(name string) (Easing, error) {
	if name == "" {
		return Linear, nil
	}
	e, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (have %v)", name, EasingNames())
	}
	return e, nil
}

// EasingNames lists the accepted easing names, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
