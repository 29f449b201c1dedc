package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/fingerjoint/pkg/joint"
	"github.com/chazu/fingerjoint/pkg/path"
)

// ---------------------------------------------------------------------------
// Tier 2: Geometric validation (errors + warnings)
// ---------------------------------------------------------------------------

// validateGeometry runs all Tier 2 geometric checks.
// Returns errors (blocking) and warnings (advisory) separately.
func validateGeometry(g *DesignGraph) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	errs = append(errs, validatePanels(g)...)
	errs = append(errs, validateJointParams(g)...)

	edgeErrs, edgeWarnings := validateJointEdges(g)
	errs = append(errs, edgeErrs...)
	warnings = append(warnings, edgeWarnings...)

	return errs, warnings
}

// validatePanels checks that every panel has a positive material thickness
// and an outline with at least one edge.
func validatePanels(g *DesignGraph) []ValidationError {
	var errs []ValidationError

	for _, node := range g.Panels() {
		pd := node.Data.(PanelData)
		if pd.Material.Thickness <= 0 {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  fmt.Sprintf("panel material thickness is %.4f, must be positive", pd.Material.Thickness),
				Severity: SeverityError,
			})
		}
		if _, err := path.ResolveEdge(path.Normalize(pd.Outline), 1); errors.Is(err, path.ErrNoDrawableEdge) {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  fmt.Sprintf("panel %q outline has no drawable edge", node.Name),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateJointParams checks every joint's parameters against their
// documented ranges.
func validateJointParams(g *DesignGraph) []ValidationError {
	var errs []ValidationError

	for _, node := range g.Joints() {
		jd := node.Data.(JointData)
		if err := jd.Params.Validate(); err != nil {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  err.Error(),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateJointEdges replays each panel's joints in order, the way the cut
// sheet applies them, so that an edge index is checked against the outline
// it will actually cut. A failing joint stops the replay for its panel.
// Geometry hazards reported by joint.Diagnose become warnings.
func validateJointEdges(g *DesignGraph) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	ids := joint.NewSequence()
	for _, panel := range g.Panels() {
		outline := panel.Data.(PanelData).Outline
		for _, node := range g.JointsOf(panel.ID) {
			jd := node.Data.(JointData)
			res, err := joint.Apply(outline, jd.Edge, jd.Type, jd.Params, ids)
			if err != nil {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("edge %d of panel %q: %v", jd.Edge, panel.Name, err),
					Severity: SeverityError,
				})
				break
			}
			for _, w := range res.Warnings {
				warnings = append(warnings, ValidationWarning{NodeID: node.ID, Message: w})
			}
			outline = res.Path
		}
	}

	return errs, warnings
}

// ---------------------------------------------------------------------------
// Tier 3: Material warnings
// ---------------------------------------------------------------------------

// thicknessTolerance is how far joint thickness may differ from the mating
// sheet before a warning, in mm.
const thicknessTolerance = 0.05

// validateMaterial runs all Tier 3 material advisory checks.
func validateMaterial(g *DesignGraph) []ValidationWarning {
	var warnings []ValidationWarning
	warnings = append(warnings, validateMateThickness(g)...)
	warnings = append(warnings, validateClearance(g)...)
	return warnings
}

// validateMateThickness warns when a joint's tab depth and slot height do
// not match the thickness of the panel it mates with. Tabs that are too
// short leave the joint loose; too long and they stand proud.
func validateMateThickness(g *DesignGraph) []ValidationWarning {
	var warnings []ValidationWarning

	for _, node := range g.Joints() {
		jd := node.Data.(JointData)
		if jd.Mate.IsZero() {
			continue
		}
		mate := g.Nodes[jd.Mate]
		if mate == nil {
			continue
		}
		pd, ok := mate.Data.(PanelData)
		if !ok {
			continue
		}
		if math.Abs(pd.Material.Thickness-jd.Params.Thickness) > thicknessTolerance {
			warnings = append(warnings, ValidationWarning{
				NodeID: node.ID,
				Message: fmt.Sprintf("joint thickness %.2fmm does not match %q material thickness %.2fmm",
					jd.Params.Thickness, mate.Name, pd.Material.Thickness),
			})
		}
	}

	return warnings
}

// validateClearance warns when the slot gap clearance is at least the
// material thickness, which no longer holds a tab.
func validateClearance(g *DesignGraph) []ValidationWarning {
	var warnings []ValidationWarning

	for _, node := range g.Joints() {
		jd := node.Data.(JointData)
		if !jd.Type.Slots() || jd.Params.Thickness <= 0 {
			continue
		}
		if jd.Params.GapClearance >= jd.Params.Thickness {
			warnings = append(warnings, ValidationWarning{
				NodeID: node.ID,
				Message: fmt.Sprintf("slot gap clearance %.2fmm is not smaller than thickness %.2fmm",
					jd.Params.GapClearance, jd.Params.Thickness),
			})
		}
	}

	return warnings
}
