// Package registry implements the outfit registry: the ordered list of
// outfits and managed models, and the operations that mutate them or
// apply an outfit to the scene.
//
// The registry is a pure logic layer. It never reads files or talks to
// the CLI; all scene access goes through the Host capability interface,
// which the scene.Document satisfies. This keeps every operation
// testable against an in-memory scene.
//
// Failure policy:
//   - Structural errors (invalid-selection, out-of-range,
//     no-shape-keys, invalid-reference) abort the single requested
//     mutation and leave registry state untouched.
//   - Stale references discovered during Apply are skipped and
//     recorded as warnings on the ApplyReport; Apply itself only fails
//     on a bad outfit index.
package registry
