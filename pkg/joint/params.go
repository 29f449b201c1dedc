package joint

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidParams is wrapped by every Params.Validate failure.
var ErrInvalidParams = errors.New("invalid joint parameters")

// Params is the immutable configuration shared by both generators. Lengths
// are in document units (mm by default).
type Params struct {
	ToothCount          int     `json:"toothCount"`          // number of tabs (and slots)
	IncludeEdgeFeatures bool    `json:"includeEdgeFeatures"` // edge ends are tabs rather than margins
	FlipSide            bool    `json:"flipSide"`            // which perpendicular is outward
	Kerf                float64 `json:"kerf"`                // material removed by the cut
	Thickness           float64 `json:"thickness"`           // material depth, tab protrusion
	GapClearance        float64 `json:"gapClearance"`        // extra slot width for fit
}

// DefaultParams returns the defaults used when a parameter is not given.
func DefaultParams() Params {
	return Params{
		ToothCount:          3,
		IncludeEdgeFeatures: true,
		FlipSide:            true,
		Kerf:                0.15,
		Thickness:           3.0,
		GapClearance:        0,
	}
}

// Validate checks the documented parameter constraints. The generators do
// not call it; they stay total for any input.
func (p Params) Validate() error {
	var problems []string
	if p.ToothCount < 1 {
		problems = append(problems, fmt.Sprintf("tooth count %d must be at least 1", p.ToothCount))
	}
	if p.Kerf <= 0 {
		problems = append(problems, fmt.Sprintf("kerf %g must be positive", p.Kerf))
	}
	if p.Thickness <= 0 {
		problems = append(problems, fmt.Sprintf("thickness %g must be positive", p.Thickness))
	}
	if p.GapClearance < 0 {
		problems = append(problems, fmt.Sprintf("gap clearance %g must not be negative", p.GapClearance))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidParams, strings.Join(problems, "; "))
	}
	return nil
}

// Type selects which halves of the joint are generated.
type Type int

const (
	TypeBoth Type = iota
	TypeTabs
	TypeSlots
)

func (t Type) String() string {
	switch t {
	case TypeBoth:
		return "both"
	case TypeTabs:
		return "tabs"
	case TypeSlots:
		return "slots"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Tabs reports whether the joint type rewrites the edge with tabs.
func (t Type) Tabs() bool { return t == TypeTabs || t == TypeBoth }

// Slots reports whether the joint type generates slot cutouts.
func (t Type) Slots() bool { return t == TypeSlots || t == TypeBoth }

// ParseType parses "tabs", "slots" or "both", case-insensitively.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "both", "":
		return TypeBoth, nil
	case "tabs", "tab":
		return TypeTabs, nil
	case "slots", "slot":
		return TypeSlots, nil
	}
	return 0, fmt.Errorf("unknown joint type %q, expected tabs, slots or both", s)
}
