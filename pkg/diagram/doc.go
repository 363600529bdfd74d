// Package diagram defines the declarative input geodraw renders: triangle
// constructions and transformed polygons.
//
// A [Document] wraps one diagram with its family, name and drawing size.
// Input files hold either a single document or a batch:
//
//	{"diagrams": [{"name": "reflect", "family": "transformation", "diagram": {...}}]}
//
// [Decode] reads both forms. Decoding is strict: unknown fields are an
// error. [Validate] enforces the structural rules a render relies on and
// reports violations as coded errors from pkg/errors. References between
// annotations and point identifiers are not validated; a dangling reference
// only skips that annotation at render time.
package diagram
