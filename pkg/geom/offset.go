package geom

import "math"

// StepParallel returns origin advanced by distance along the direction of
// guide. Only the angle of guide matters, not its magnitude. A negative
// distance steps backwards.
func StepParallel(origin, guide Vec, distance float64) Vec {
	return origin.Add(Parallel(guide, distance)).Round()
}

// StepPerpendicular returns origin advanced by distance at right angles to
// guide: rotated +90° when invert is set, -90° otherwise.
func StepPerpendicular(origin, guide Vec, distance float64, invert bool) Vec {
	return origin.Add(Perpendicular(guide, distance, invert)).Round()
}

// Parallel is the unrounded offset behind StepParallel. Generators walking
// many steps accumulate with it and round only the points they emit.
func Parallel(guide Vec, distance float64) Vec {
	return rect(distance, guide.Angle())
}

// Perpendicular is the unrounded offset behind StepPerpendicular.
func Perpendicular(guide Vec, distance float64, invert bool) Vec {
	phi := guide.Angle()
	if invert {
		phi += math.Pi / 2
	} else {
		phi -= math.Pi / 2
	}
	return rect(distance, phi)
}
