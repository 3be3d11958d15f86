// Package projective is the small amount of projective plane algebra the
// bigon engine needs: homogeneous points and lines, 3x3 matrices, projective
// lifts to the standard frame, cross ratios and corner invariants.
//
// Points are homogeneous, so any nonzero multiple of a Point names the same
// point. Nothing in this package normalizes silently except Intersection,
// which dehomogenizes its result when it lies on the affine patch z != 0.
package projective
