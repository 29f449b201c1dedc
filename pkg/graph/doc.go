// Package graph defines the design graph for laser-cut finger joint designs.
// The design graph is an immutable DAG of panels, joints, placements and
// assemblies produced by evaluating a design script.
package graph
