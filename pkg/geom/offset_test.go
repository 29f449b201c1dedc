package geom

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestStepParallel(t *testing.T) {
	tests := []struct {
		name     string
		origin   Vec
		guide    Vec
		distance float64
		want     Vec
	}{
		{"along x", Vec{}, Vec{X: 90}, 18.075, Vec{X: 18.07}},
		{"guide magnitude ignored", Vec{X: 1, Y: 1}, Vec{X: 0.001}, 5, Vec{X: 6, Y: 1}},
		{"along negative y", Vec{X: 10, Y: 10}, Vec{Y: -3}, 4, Vec{X: 10, Y: 6}},
		{"backwards", Vec{X: 10}, Vec{X: 1}, -2.5, Vec{X: 7.5}},
		{"diagonal", Vec{}, Vec{X: 1, Y: 1}, 10, Vec{X: 7.07, Y: 7.07}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.T(t, StepParallel(tt.origin, tt.guide, tt.distance), tt.want)
		})
	}
}

func TestStepPerpendicular(t *testing.T) {
	guide := Vec{X: 90}
	test.T(t, StepPerpendicular(Vec{X: 5}, guide, 3.075, true), Vec{X: 5, Y: 3.07})
	test.T(t, StepPerpendicular(Vec{X: 5}, guide, 3, false), Vec{X: 5, Y: -3})

	// Rotation follows the guide direction.
	up := Vec{Y: 20}
	test.T(t, StepPerpendicular(Vec{}, up, 2, true), Vec{X: -2})
	test.T(t, StepPerpendicular(Vec{}, up, 2, false), Vec{X: 2})
}

func TestStepZeroDistance(t *testing.T) {
	origins := []Vec{{}, {X: 12.34, Y: -5.67}, {X: -100, Y: 0.01}}
	guides := []Vec{{X: 1}, {X: 3, Y: 4}, {X: -7, Y: -0.5}, {}}
	for _, o := range origins {
		for _, g := range guides {
			test.T(t, StepParallel(o, g, 0), o, o, g)
			test.T(t, StepPerpendicular(o, g, 0, true), o, o, g)
			test.T(t, StepPerpendicular(o, g, 0, false), o, o, g)
		}
	}
}

func TestOffsetsAccumulateWithoutDrift(t *testing.T) {
	// Each step is (0.0084, 0.0112). Rounding per step would reach
	// (0.1, 0.1); summing first lands on (0.084, 0.112).
	guide := Vec{X: 3, Y: 4}
	var cur, stepped Vec
	for i := 0; i < 10; i++ {
		cur = cur.Add(Parallel(guide, 0.014))
		stepped = StepParallel(stepped, guide, 0.014)
	}
	test.T(t, cur.Round(), Vec{X: 0.08, Y: 0.11})
	test.T(t, stepped, Vec{X: 0.1, Y: 0.1})

	test.T(t, Perpendicular(Vec{X: 1}, 2, true).Round(), Vec{Y: 2})
	test.T(t, Perpendicular(Vec{X: 1}, 2, false).Round(), Vec{Y: -2})
}
