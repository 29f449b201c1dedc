// Package geom provides the 2-D vector type and the two offset primitives
// every joint pattern is built from. All constructed points are rounded to
// Precision decimal places so drift never accumulates into visible gaps.
package geom
