package engine

import (
	"fmt"
	"math"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
)

// trackingCell is one entry of the fixed band x severity recommendation
// matrix. Cells flagged withNote produce an advisory message even though no
// override is in play.
type trackingCell struct {
	mode     catalog.TrackingMode
	withNote bool
}

// trackingMatrix maps [band][modified severity] to a recommendation.
// Bands index low/medium/high; severities index minimal/moderate/significant.
var trackingMatrix = map[catalog.RatioBand][3]trackingCell{
	catalog.BandLow: {
		{mode: catalog.TrackingCrowned},
		{mode: catalog.TrackingCrowned, withNote: true},
		{mode: catalog.TrackingHybrid},
	},
	catalog.BandMedium: {
		{mode: catalog.TrackingCrowned, withNote: true},
		{mode: catalog.TrackingHybrid},
		{mode: catalog.TrackingVGuided},
	},
	catalog.BandHigh: {
		{mode: catalog.TrackingHybrid},
		{mode: catalog.TrackingVGuided},
		{mode: catalog.TrackingVGuided},
	},
}

// RecommendTracking infers a belt tracking method from geometry and
// operating-disturbance inputs.
//
// The L/W ratio (rounded to one decimal; infinite when the width is zero or
// missing, which forces the high band) picks a band; the disturbance flags
// derive a raw severity; application-class and belt-construction modifiers
// nudge the severity used for the recommendation one step worse each,
// capped at significant. The raw severity is reported unmodified.
//
// An explicit non-auto tracking preference overrides the matrix result
// verbatim. Overriding to a weaker tracking-control mode than the computed
// recommendation earns a conflict note; overriding "up" is never flagged.
func RecommendTracking(in catalog.TrackingRecommendationInput) catalog.TrackingRecommendationOutput {
	ratio := lwRatio(in.LengthIn, in.WidthIn)
	band := ratioBand(ratio)

	count := in.DisturbanceCount()
	raw := rawSeverity(in, count)

	// Modifiers shape only the recommendation, never the reported raw
	// severity. Both can stack; Next() caps at significant.
	modified := raw
	if in.ApplicationClass == catalog.ApplicationBulkHandling {
		modified = modified.Next()
	}
	if catalog.StiffBeltConstructions[in.BeltConstruction] {
		modified = modified.Next()
	}

	cell := trackingMatrix[band][modified]

	out := catalog.TrackingRecommendationOutput{
		LWRatio:          ratio,
		Band:             band,
		DisturbanceCount: count,
		RawSeverity:      raw,
		ModifiedSeverity: modified,
		Mode:             cell.mode,
	}

	if pref := in.TrackingPreference; pref != "" && pref != catalog.TrackingAuto {
		out.Mode = pref
		out.Overridden = true
		if pref.ControlStrength() < cell.mode.ControlStrength() {
			out.WithNote = true
			out.Note = fmt.Sprintf("selected %s tracking provides less tracking control than the recommended %s for this geometry and duty", pref, cell.mode)
		}
	} else if cell.withNote {
		out.WithNote = true
		out.Note = fmt.Sprintf("%s tracking is workable here but leaves little margin; review alignment and transition lengths at installation", cell.mode)
	}

	out.Rationale = trackingRationale(out)
	return out
}

// lwRatio returns length/width rounded to one decimal. A zero or missing
// width yields +Inf, which forces the high band.
func lwRatio(length, width float64) float64 {
	if width <= 0 {
		return math.Inf(1)
	}
	return math.Round(length/width*10) / 10
}

func ratioBand(ratio float64) catalog.RatioBand {
	switch {
	case ratio <= 5:
		return catalog.BandLow
	case ratio <= 10:
		return catalog.BandMedium
	default:
		return catalog.BandHigh
	}
}

// rawSeverity derives the unmodified disturbance severity. Reversing
// combined with side-loading is a special-case escalation: that pairing is
// treated as significant even at count 2, independent of the generic
// count-of-three rule.
func rawSeverity(in catalog.TrackingRecommendationInput, count int) catalog.DisturbanceSeverity {
	if count >= 3 || (in.Reversing && in.SideLoading) {
		return catalog.DisturbanceSignificant
	}
	if count >= 1 {
		return catalog.DisturbanceModerate
	}
	return catalog.DisturbanceMinimal
}

// trackingRationale renders the always-non-empty explanation string from
// the final mode, band, severity, and override status.
func trackingRationale(out catalog.TrackingRecommendationOutput) string {
	ratio := "infinite"
	if !math.IsInf(out.LWRatio, 1) {
		ratio = fmt.Sprintf("%.1f", out.LWRatio)
	}
	if out.Overridden {
		return fmt.Sprintf("%s tracking selected by explicit preference (L/W ratio %s, %s band, %s disturbance)",
			out.Mode, ratio, out.Band, out.ModifiedSeverity)
	}
	return fmt.Sprintf("%s tracking recommended for L/W ratio %s (%s band) with %s disturbance",
		out.Mode, ratio, out.Band, out.ModifiedSeverity)
}
