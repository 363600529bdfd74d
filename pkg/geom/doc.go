// Package geom provides the data-space geometry used by geodraw diagrams.
//
// # Points
//
// [Point] is an unscaled data-space coordinate. Arithmetic is delegated to
// gonum's spatial/r2 vectors so every package shares one implementation of
// dot products, cross products and rotations.
//
// # Transformations
//
// The four rigid/similarity transformations are pure functions:
//
//	Translate(p, v)          // p + v
//	Rotate(p, c, deg)        // counter-clockwise about c for deg > 0
//	Reflect(p, from, to)     // mirror across the line through from and to
//	Dilate(p, c, k)          // c + k(p - c)
//
// [Transformation] is a sealed sum type over [Translation], [Reflection],
// [Rotation] and [Dilation]. [Image] maps a point set through any variant:
//
//	img, err := geom.Image(geom.Rotation{Center: geom.Pt(0, 0), AngleDegrees: 90}, tri)
//
// Reflection across a zero-length line is the only failure mode and is
// reported as a [*DegenerateAxisError].
package geom
