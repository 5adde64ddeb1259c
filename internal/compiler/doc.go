// Package compiler turns authored CUE catalog definitions into typed
// catalog items.
//
// Catalog administrators author belts, pulleys, and gearmotor performance
// points as CUE structs:
//
//	belt: PVC120: {
//		display_name: "PVC 120 Smooth Top"
//		piw: 120
//		min_dia_no_vguide:   3.0
//		min_dia_with_vguide: 4.0
//	}
//
// CompileBelt/CompilePulley/CompileGearmotor parse one CUE struct each and
// return a *CompileError with source position on malformed input. Validate
// then applies the catalog-write business rules (the admin-side half of the
// INTERNAL_BEARINGS constraint lives here; the pulley filter re-derives it
// defensively at evaluation time).
package compiler
