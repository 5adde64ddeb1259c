// Package harness provides conformance testing for the catalog decision
// engines.
//
// The harness loads YAML scenarios, executes each step against the pure
// decision engines (minimum-diameter resolution, pulley filtering,
// gearmotor selection, tracking recommendation), and snapshots the outputs
// as canonical JSON for golden-file comparison.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	steps:
//	  - op: min_diameters
//	    belt: profiled
//	  - op: pulley_filter
//	    pulleys: [standard_drum_4, lagged_drum_6]
//	    criteria:
//	      station: head_drive
//	      face_width_required: 18
//	      min_diameter: 4.5
//	  - op: gearmotor_select
//	    primary:
//	      - { part_number: "VG-H63-050", hp: 0.5, rpm: 62, torque: 1300 }
//	    inputs:
//	      required_output_rpm: 60
//	      required_output_torque: 1200
//	      chosen_service_factor: 1.0
//	  - op: tracking
//	    tracking:
//	      length_in: 240
//	      width_in: 30
//	      reversing: true
//
// Belt and pulley fixtures are referenced by name from the shared fixture
// set in internal/testutil; gearmotor performance points are declared
// inline per step.
//
// # Deterministic Snapshots
//
// Every engine is a pure function of its inputs, so a scenario's snapshot
// is fully determined by the scenario file. Snapshots serialize through
// canonical JSON (sorted keys, shortest-form floats, NFC strings); the one
// value with no JSON representation, the infinite L/W ratio of a zero-width
// tracking input, is pre-rendered as the string "infinite".
//
// Golden files live in testdata/golden and are regenerated with:
//
//	go test ./internal/harness -update
package harness
