package catalog

import (
	"encoding/json"
	"math"
)

// TrackingMode identifies a belt tracking method. The declared order is the
// tracking-control strength order: Crowned < Hybrid < VGuided.
type TrackingMode string

const (
	TrackingAuto    TrackingMode = "auto" // let the engine decide
	TrackingCrowned TrackingMode = "crowned"
	TrackingHybrid  TrackingMode = "hybrid"
	TrackingVGuided TrackingMode = "v_guided"
)

// ControlStrength returns the tracking-control strength rank of a mode.
// Used to decide whether a user override is weaker than the computed
// recommendation. TrackingAuto has no strength and ranks below everything.
func (m TrackingMode) ControlStrength() int {
	switch m {
	case TrackingCrowned:
		return 1
	case TrackingHybrid:
		return 2
	case TrackingVGuided:
		return 3
	default:
		return 0
	}
}

// RatioBand is the L/W ratio band used by the recommendation matrix.
type RatioBand string

const (
	BandLow    RatioBand = "low"    // ratio <= 5
	BandMedium RatioBand = "medium" // ratio <= 10
	BandHigh   RatioBand = "high"
)

// DisturbanceSeverity is a totally-ordered three-step scale of operating
// disturbance. The zero value is SeverityMinimal.
type DisturbanceSeverity int

const (
	DisturbanceMinimal DisturbanceSeverity = iota
	DisturbanceModerate
	DisturbanceSignificant
)

// Next returns the severity one step worse, capping at significant.
func (s DisturbanceSeverity) Next() DisturbanceSeverity {
	if s >= DisturbanceSignificant {
		return DisturbanceSignificant
	}
	return s + 1
}

// String returns the wire name of the severity.
func (s DisturbanceSeverity) String() string {
	switch s {
	case DisturbanceModerate:
		return "moderate"
	case DisturbanceSignificant:
		return "significant"
	default:
		return "minimal"
	}
}

// MarshalText implements encoding.TextMarshaler so severities serialize as
// their wire names in JSON output.
func (s DisturbanceSeverity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ApplicationClass values with recommendation-matrix significance.
const (
	ApplicationBulkHandling = "bulk_handling"
	ApplicationUnitHandling = "unit_handling"
)

// BeltConstruction values treated as stiff/profiled for the severity nudge.
var StiffBeltConstructions = map[string]bool{
	"monolithic":   true,
	"profiled_top": true,
	"cleated":      true,
}

// TrackingRecommendationInput is the geometry and operating-disturbance
// description fed to the tracking recommendation engine.
type TrackingRecommendationInput struct {
	LengthIn float64 `json:"length_in"` // conveyor length
	WidthIn  float64 `json:"width_in"`  // belt width

	ApplicationClass string `json:"application_class,omitempty"`
	BeltConstruction string `json:"belt_construction,omitempty"`

	// Five independent disturbance flags.
	Reversing        bool `json:"reversing"`
	SideLoading      bool `json:"side_loading"`
	LoadVariability  bool `json:"load_variability"`
	Environment      bool `json:"environment"`
	InstallationRisk bool `json:"installation_risk"`

	// TrackingPreference, when set to a concrete mode (not empty, not
	// TrackingAuto), overrides the matrix result verbatim.
	TrackingPreference TrackingMode `json:"tracking_preference,omitempty"`
}

// DisturbanceCount returns how many of the five disturbance flags are set.
func (in TrackingRecommendationInput) DisturbanceCount() int {
	count := 0
	for _, flag := range []bool{in.Reversing, in.SideLoading, in.LoadVariability, in.Environment, in.InstallationRisk} {
		if flag {
			count++
		}
	}
	return count
}

// TrackingRecommendationOutput carries the full decision trail: the ratio
// and band, raw and modified severities, the final mode, and a non-empty
// rationale. Note is set for advisory "(note)" matrix cells and for
// weaker-than-recommended overrides.
type TrackingRecommendationOutput struct {
	LWRatio          float64             `json:"lw_ratio"` // rounded to one decimal; +Inf when width is zero
	Band             RatioBand           `json:"band"`
	DisturbanceCount int                 `json:"disturbance_count"`
	RawSeverity      DisturbanceSeverity `json:"raw_severity"`
	ModifiedSeverity DisturbanceSeverity `json:"modified_severity"`

	Mode       TrackingMode `json:"mode"`
	WithNote   bool         `json:"with_note"`
	Note       string       `json:"note,omitempty"`
	Overridden bool         `json:"overridden"`
	Rationale  string       `json:"rationale"`
}

// MarshalJSON renders an infinite L/W ratio (zero belt width) as the string
// "infinite"; encoding/json has no representation for +Inf.
func (o TrackingRecommendationOutput) MarshalJSON() ([]byte, error) {
	type plain TrackingRecommendationOutput
	shadow := struct {
		plain
		LWRatio any `json:"lw_ratio"`
	}{plain: plain(o), LWRatio: o.LWRatio}
	if math.IsInf(o.LWRatio, 1) {
		shadow.LWRatio = "infinite"
	}
	return json.Marshal(shadow)
}
