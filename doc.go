// Package bezier finds the intersections of planar Bézier curves of arbitrary
// degree.
//
// # Curves
//
// [Bez] is a Bézier curve given by two or more control points. It can be
// evaluated, differentiated, split, elevated and reduced in degree, and
// flattened to a polyline. [Line], [QuadBez] and [CubicBez] are fixed-degree
// curves with the same semantics; all of them implement [Curve], which is what
// the intersection routines accept.
//
// Curves are immutable. Every operation that produces a curve allocates new
// control points, so curves may be shared freely between goroutines.
//
// # Intersections
//
// [Intersect] and [IntersectOpt] find the points at which two curves meet, to
// within a tolerance on the distance between the curves. The search
// subdivides both curves, discards pairs of sub-curves whose control point
// bounding boxes don't overlap, and treats sub-curves as line segments once
// they are flat enough. Candidate points are refined with Newton's method on
// the difference of the two curves.
//
// Each intersection is classified as a [Crossing], a [Tangent], or an
// [Endpoint] touch. Curves that share an arc report an [Overlap] with the
// matching parameter ranges instead of a dense run of points. Curves that are
// degree-elevated versions of lower-degree curves are reduced before
// searching, so a line written with three collinear control points behaves
// like a line.
//
// The search never fails on numerical grounds. If it hits the depth limit,
// runs out of Newton iterations, or is canceled, [Result.Status] says so and
// the result holds everything that could be resolved. [Result.Err] turns the
// status into an error for callers that prefer one.
//
// [SelfIntersections] finds the points at which a single curve crosses
// itself.
//
// # Literature
//
// This package makes use of the following ideas:
//   - [A Primer on Bézier Curves]
//   - [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality] by Oliveira and Takahashi
//   - [How to solve a cubic equation, revisited] by Christoph Peters
//   - Curve intersection using Bézier clipping, by Sederberg and Nishita
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
// [How to solve a cubic equation, revisited]: https://momentsingraphics.de/CubicRoots.html
package bezier
