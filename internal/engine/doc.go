// Package engine implements the engineering catalog decision engines for
// the conveyor configurator.
//
// Four independent, stateless components:
//
//   - Belt Minimum-Diameter Resolver (ResolveMinPulleyDiameters): per-field
//     precedence between the legacy catalog columns and the optional
//     material profile.
//   - Pulley Compatibility Filter (FilterPulleys, CompatiblePulleys,
//     SelectBestPulley): evaluates candidate pulleys against a station and
//     load requirement, producing per-candidate issues and a ranked
//     shortlist.
//   - Gearmotor Selector (SelectGearmotor): evaluates vendor performance
//     points against required torque/speed with service-factor
//     normalization and a primary/fallback series policy.
//   - Tracking Recommendation Engine (RecommendTracking): infers a belt
//     tracking method from geometry and disturbance inputs via a fixed
//     band x severity matrix.
//
// ARCHITECTURE:
//
// Every function here is pure, synchronous, and side-effect free over
// immutable inputs: no I/O, no shared state, no blocking. Calls are safe to
// run concurrently with no locking. A call either returns a result
// (possibly an empty list, possibly nil) or, for malformed caller input, an
// *InputError listing every violation.
//
// CRITICAL PATTERNS:
//
// Deterministic ordering: all rankings use stable sorts with fixed
// tie-break keys, so identical inputs produce byte-identical ordered output
// regardless of evaluation order.
//
// Fail-closed constraints: hard constraints (INTERNAL_BEARINGS pulleys are
// tail-only) are re-derived from first principles at filter time instead of
// trusting potentially stale stored eligibility flags.
//
// Domain "no match" outcomes are never errors: SelectBestPulley returning
// nil, CompatiblePulleys returning an empty list, and the gearmotor
// selector returning zero ranked candidates are all valid terminal results.
package engine
