package frame

import (
	"fmt"

	"github.com/Faultbox/hoverplane/internal/idle"
)

// HitPolicy selects which intersections drive the hover highlight.
type HitPolicy int

const (
	// HitsNearest highlights only the triangle nearest to the camera.
	HitsNearest HitPolicy = iota
	// HitsAll highlights every triangle the pointer ray crosses.
	HitsAll
)

func (p HitPolicy) String() string {
	if p == HitsAll {
		return "all"
	}
	return "nearest"
}

// ParseHitPolicy maps a config name to a HitPolicy.
func ParseHitPolicy(name string) (HitPolicy, error) {
	switch name {
	case "nearest", "":
		return HitsNearest, nil
	case "all":
		return HitsAll, nil
	default:
		return HitsNearest, fmt.Errorf("unknown hit policy %q", name)
	}
}

// Policy collects the behaviours that varied between page variants.
type Policy struct {
	Hits HitPolicy
	Axes idle.Axes
}
