package harness

import (
	"math"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
)

// Snapshot builders convert engine outputs to plain map/slice/scalar trees
// so MarshalCanonical can serialize them. Keys mirror the JSON wire names
// of the underlying types; optional fields are omitted rather than nulled.

func minDiametersSnapshot(beltKey string, eff catalog.EffectiveMinPulleyDiameters) map[string]any {
	snapshot := map[string]any{
		"belt_catalog_key": beltKey,
		"no_vguide":        eff.NoVGuide,
		"with_vguide":      eff.WithVGuide,
		"source":           string(eff.Source),
	}
	if eff.Banding != nil {
		banding := map[string]any{"supported": eff.Banding.Supported}
		if eff.Banding.MinNoVGuideIn != nil {
			banding["min_no_vguide_in"] = *eff.Banding.MinNoVGuideIn
		}
		if eff.Banding.MinWithVGuideIn != nil {
			banding["min_with_vguide_in"] = *eff.Banding.MinWithVGuideIn
		}
		snapshot["banding"] = banding
	}
	return snapshot
}

func pulleyFilterSnapshot(results []catalog.PulleySelectionResult) map[string]any {
	list := make([]any, len(results))
	for i, result := range results {
		issues := make([]any, len(result.Issues))
		for j, issue := range result.Issues {
			issues[j] = map[string]any{
				"code":     issue.Code,
				"severity": string(issue.Severity),
				"message":  issue.Message,
			}
		}
		list[i] = map[string]any{
			"catalog_key":        result.Pulley.CatalogKey,
			"effective_diameter": result.EffectiveDiameter,
			"has_errors":         result.HasErrors(),
			"issues":             issues,
		}
	}
	return map[string]any{"results": list}
}

func gearmotorSnapshot(selection catalog.GearmotorSelection) map[string]any {
	candidates := make([]any, len(selection.Candidates))
	for i, candidate := range selection.Candidates {
		candidates[i] = map[string]any{
			"part_number":       candidate.PartNumber,
			"motor_hp":          candidate.MotorHP,
			"output_rpm":        candidate.OutputRPM,
			"output_torque":     candidate.OutputTorque,
			"adjusted_capacity": candidate.AdjustedCapacity,
			"oversize_ratio":    candidate.OversizeRatio,
			"speed_delta":       candidate.SpeedDelta,
			"speed_delta_pct":   candidate.SpeedDeltaPct,
		}
	}
	return map[string]any{
		"candidates":    candidates,
		"series_used":   selection.SeriesUsed,
		"used_fallback": selection.UsedFallback,
	}
}

func trackingSnapshot(out catalog.TrackingRecommendationOutput) map[string]any {
	// The infinite ratio has no JSON representation; pre-render it.
	var ratio any = out.LWRatio
	if math.IsInf(out.LWRatio, 1) {
		ratio = "infinite"
	}

	snapshot := map[string]any{
		"lw_ratio":          ratio,
		"band":              string(out.Band),
		"disturbance_count": out.DisturbanceCount,
		"raw_severity":      out.RawSeverity.String(),
		"modified_severity": out.ModifiedSeverity.String(),
		"mode":              string(out.Mode),
		"with_note":         out.WithNote,
		"overridden":        out.Overridden,
		"rationale":         out.Rationale,
	}
	if out.Note != "" {
		snapshot["note"] = out.Note
	}
	return snapshot
}
