// Package joint generates laser-cut finger joints along one edge of a path.
//
// Tabs replaces the edge with a zigzag of protruding tabs and recessed
// valleys; Slots produces independent rectangular cutouts sized to receive
// the tabs of a mating part. Both are kerf-compensated so that the parts fit
// after the laser has removed its kerf. Apply resolves the edge, runs the
// generators for the requested joint type, and splices the result back into
// the path.
package joint
