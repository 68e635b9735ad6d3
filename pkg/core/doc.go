// Package core provides a small, stable facade over SmartMask's internal
// detection and masking packages for external integrations. It deliberately
// re-exports a narrow API surface so other tools can depend on a stable
// import path without exposing internal implementation packages.
//
// Example:
//
//	ds, err := core.Detect(text, nil) // rule detection only
//	if err != nil { /* handle */ }
//	masked := core.Mask(text, ds)
package core
