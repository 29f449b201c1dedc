package graph

import "fmt"

// ValidationSeverity indicates whether a validation finding blocks evaluation
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks evaluation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   NodeID             // which node has the problem (zero if graph-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	NodeID  NodeID
	Message string
}

// ValidationResult bundles errors (blocking) and warnings (advisory)
// from all validation tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// Validate runs all Tier 1 structural validation checks on the design graph
// and returns a slice of validation errors. An empty slice means the graph is
// valid. This function is read-only and never mutates the graph.
func Validate(g *DesignGraph) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateDAG(g)...)
	errs = append(errs, validateReferences(g)...)
	errs = append(errs, validateNames(g)...)
	errs = append(errs, validateRoots(g)...)
	errs = append(errs, validateJointTargets(g)...)
	return errs
}

// ValidateAll runs all validation tiers (structural, geometric, material)
// and returns a ValidationResult with separated errors and warnings.
// Geometric checks only run when the structure is sound.
func ValidateAll(g *DesignGraph) ValidationResult {
	// Tier 1: structural validation (existing).
	tier1 := Validate(g)

	// Tier 2: geometric validation.
	var tier2Errs []ValidationError
	var tier2Warnings []ValidationWarning
	if !hasErrors(tier1) {
		tier2Errs, tier2Warnings = validateGeometry(g)
	}

	// Tier 3: material warnings.
	tier3Warnings := validateMaterial(g)

	// Separate Tier 1 findings into errors and warnings.
	var result ValidationResult
	for _, e := range tier1 {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{
				NodeID:  e.NodeID,
				Message: e.Message,
			})
		} else {
			result.Errors = append(result.Errors, e)
		}
	}

	result.Errors = append(result.Errors, tier2Errs...)
	result.Warnings = append(result.Warnings, tier2Warnings...)
	result.Warnings = append(result.Warnings, tier3Warnings...)

	return result
}

// validateDAG checks for cycles using DFS with 3-color marking.
// White (0) = unvisited, gray (1) = in current DFS path, black (2) = fully explored.
// If we encounter a gray node during traversal, we have found a cycle.
func validateDAG(g *DesignGraph) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int) // default zero = white
	var errs []ValidationError

	var visit func(id NodeID) bool // returns true if cycle found
	visit = func(id NodeID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("cycle detected: node %s is part of a cycle", id.Short()),
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray

		node, ok := g.Nodes[id]
		if !ok {
			// Dangling reference; handled by validateReferences.
			color[id] = black
			return false
		}

		// Walk Children edges.
		for _, childID := range node.Children {
			if visit(childID) {
				return true
			}
		}

		color[id] = black
		return false
	}

	// Start DFS from every node to catch disconnected components.
	for _, id := range g.Order {
		if color[id] == white {
			if visit(id) {
				// One cycle error is sufficient; stop early.
				break
			}
		}
	}

	return errs
}

func hasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (g *DesignGraph) ordered() []*Node {
	out := make([]*Node, 0, len(g.Order))
	for _, id := range g.Order {
		if n := g.Nodes[id]; n != nil {
			out = append(out, n)
		}
	}
	return out
}

// validateReferences checks that every NodeID referenced anywhere in the graph
// points to a node that actually exists in g.Nodes.
func validateReferences(g *DesignGraph) []ValidationError {
	var errs []ValidationError

	for _, node := range g.ordered() {
		for _, childID := range node.Children {
			if _, ok := g.Nodes[childID]; !ok {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("child reference %s does not exist", childID.Short()),
					Severity: SeverityError,
				})
			}
		}

		jd, ok := node.Data.(JointData)
		if !ok {
			continue
		}
		if _, ok := g.Nodes[jd.Panel]; !ok {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  fmt.Sprintf("joint panel reference %s does not exist", jd.Panel.Short()),
				Severity: SeverityError,
			})
		}
		if !jd.Mate.IsZero() {
			if _, ok := g.Nodes[jd.Mate]; !ok {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("joint mate reference %s does not exist", jd.Mate.Short()),
					Severity: SeverityError,
				})
			}
		}
	}

	return errs
}

// validateNames checks that the NameIndex is injective (no two nodes share the
// same name) and that every entry in NameIndex points to an existing node.
func validateNames(g *DesignGraph) []ValidationError {
	var errs []ValidationError

	for name, id := range g.NameIndex {
		if _, ok := g.Nodes[id]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name index entry %q references non-existent node %s", name, id.Short()),
				Severity: SeverityError,
			})
		}
	}

	nameToNodes := make(map[string][]NodeID)
	var names []string
	for _, node := range g.ordered() {
		if node.Name == "" {
			continue
		}
		if _, seen := nameToNodes[node.Name]; !seen {
			names = append(names, node.Name)
		}
		nameToNodes[node.Name] = append(nameToNodes[node.Name], node.ID)
	}
	for _, name := range names {
		if ids := nameToNodes[name]; len(ids) > 1 {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("duplicate name %q assigned to %d nodes", name, len(ids)),
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// validateRoots checks that every root ID references an existing node and
// warns about orphan nodes (nodes unreachable from any root). A joint is
// reachable when the panel it cuts is.
func validateRoots(g *DesignGraph) []ValidationError {
	var errs []ValidationError

	for _, rid := range g.Roots {
		if _, ok := g.Nodes[rid]; !ok {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("root reference %s does not exist", rid.Short()),
				Severity: SeverityError,
			})
		}
	}

	if len(g.Nodes) == 0 {
		return errs
	}

	reachable := make(map[NodeID]bool)
	queue := make([]NodeID, 0, len(g.Roots))
	for _, rid := range g.Roots {
		if _, ok := g.Nodes[rid]; ok && !reachable[rid] {
			reachable[rid] = true
			queue = append(queue, rid)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		node := g.Nodes[current]
		if node == nil {
			continue
		}
		for _, childID := range node.Children {
			if !reachable[childID] {
				reachable[childID] = true
				queue = append(queue, childID)
			}
		}
	}

	for _, node := range g.Joints() {
		if jd := node.Data.(JointData); reachable[jd.Panel] {
			reachable[node.ID] = true
		}
	}

	for _, node := range g.ordered() {
		if reachable[node.ID] {
			continue
		}
		name := node.Name
		if name == "" {
			name = node.ID.Short()
		}
		errs = append(errs, ValidationError{
			NodeID:   node.ID,
			Message:  fmt.Sprintf("node %q is not reachable from any root (orphan)", name),
			Severity: SeverityWarning,
		})
	}

	return errs
}

// validateJointTargets checks that joint nodes cut a panel, that the mate,
// when given, is a different panel, and that no other node lists a joint as
// a child.
func validateJointTargets(g *DesignGraph) []ValidationError {
	var errs []ValidationError

	for _, node := range g.ordered() {
		for _, cid := range node.Children {
			if c := g.Nodes[cid]; c != nil && c.Kind == NodeJoint {
				errs = append(errs, ValidationError{
					NodeID:   node.ID,
					Message:  fmt.Sprintf("joint %s cannot be a child of a %s", cid.Short(), node.Kind),
					Severity: SeverityError,
				})
			}
		}

		jd, ok := node.Data.(JointData)
		if !ok {
			continue
		}
		if p, ok := g.Nodes[jd.Panel]; ok && p.Kind != NodePanel {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  fmt.Sprintf("joint panel %s is %s, not panel", jd.Panel.Short(), p.Kind),
				Severity: SeverityError,
			})
		}
		if jd.Mate.IsZero() {
			continue
		}
		if jd.Mate == jd.Panel {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  "joint mates a panel with itself (self-joint)",
				Severity: SeverityError,
			})
		}
		if m, ok := g.Nodes[jd.Mate]; ok && m.Kind != NodePanel {
			errs = append(errs, ValidationError{
				NodeID:   node.ID,
				Message:  fmt.Sprintf("joint mate %s is %s, not panel", jd.Mate.Short(), m.Kind),
				Severity: SeverityError,
			})
		}
	}

	return errs
}
