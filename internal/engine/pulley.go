package engine

import (
	"sort"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
)

// EffectivePulleyDiameter returns the diameter the belt actually wraps:
// shell diameter plus twice the lagging thickness when lagged. A nil
// lagging thickness on a lagged pulley contributes zero additional
// thickness rather than failing.
func EffectivePulleyDiameter(p catalog.PulleyCatalogItem) float64 {
	if !p.Lagged || p.LaggingThicknessIn == nil {
		return p.Diameter
	}
	return p.Diameter + 2*(*p.LaggingThicknessIn)
}

// FilterPulleys evaluates every candidate against the criteria and returns
// one PulleySelectionResult per surviving candidate. It never fails:
// problems are reported as issues attached to the candidate, not errors.
//
// Candidates excluded by the exact diameter/construction filters are
// dropped from the result list entirely. All remaining checks are
// independent and all evaluated - no short-circuiting - so a candidate
// reports every problem it has at once.
//
// Ordering: results with zero error-severity issues come first; within the
// error-free group, preferred pulleys first, then ascending effective
// diameter. The sort is stable, so identical inputs produce identical
// output regardless of how many times or in what call order it runs.
func FilterPulleys(pulleys []catalog.PulleyCatalogItem, criteria catalog.PulleyFilterCriteria) []catalog.PulleySelectionResult {
	results := make([]catalog.PulleySelectionResult, 0, len(pulleys))

	for _, p := range pulleys {
		// Exact-match filters exclude rather than annotate.
		if criteria.Diameter != nil && p.Diameter != *criteria.Diameter {
			continue
		}
		if criteria.Construction != nil && p.Construction != *criteria.Construction {
			continue
		}

		results = append(results, evaluatePulley(p, criteria))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return orderPulleyResults(results[i], results[j])
	})

	return results
}

// evaluatePulley runs every per-candidate check against one pulley.
func evaluatePulley(p catalog.PulleyCatalogItem, criteria catalog.PulleyFilterCriteria) catalog.PulleySelectionResult {
	effective := EffectivePulleyDiameter(p)
	issues := []catalog.Issue{}

	// Fail-closed guard: the tail-only constraint for INTERNAL_BEARINGS
	// pulleys is re-derived from the shaft arrangement itself, before and
	// regardless of whatever the stored eligibility flags claim. A stale
	// flag must never let one of these onto a drive shaft.
	if p.Shaft == catalog.ShaftInternalBearings && criteria.Station != catalog.StationTail {
		issues = append(issues, errorIssue(IssueInternalBearingsTailOnly,
			"%s has internal bearings and may only be used at the tail station", p.CatalogKey))
	} else if !p.AllowsStation(criteria.Station) {
		issues = append(issues, errorIssue(IssueStationNotAllowed,
			"%s is not rated for the %s station", p.CatalogKey, criteria.Station))
	}

	if criteria.FaceWidthRequired < p.FaceWidthMin {
		issues = append(issues, errorIssue(IssueFaceWidthBelowMin,
			"required face width %g\" is below the %g\" minimum for %s",
			criteria.FaceWidthRequired, p.FaceWidthMin, p.CatalogKey))
	}
	if criteria.FaceWidthRequired > p.FaceWidthMax {
		issues = append(issues, errorIssue(IssueFaceWidthExceeded,
			"required face width %g\" exceeds the %g\" maximum for %s",
			criteria.FaceWidthRequired, p.FaceWidthMax, p.CatalogKey))
	}

	if criteria.MinDiameter != nil && effective < *criteria.MinDiameter {
		issues = append(issues, errorIssue(IssueDiameterTooSmall,
			"effective diameter %g\" is below the required minimum %g\"",
			effective, *criteria.MinDiameter))
	}

	if criteria.BeltSpeed != nil && p.MaxBeltSpeed != nil && *criteria.BeltSpeed > *p.MaxBeltSpeed {
		issues = append(issues, warningIssue(IssueSpeedLimitExceeded,
			"belt speed %g fpm exceeds the published %g fpm limit for %s",
			*criteria.BeltSpeed, *p.MaxBeltSpeed, p.CatalogKey))
	}

	return catalog.PulleySelectionResult{
		Pulley:            p,
		EffectiveDiameter: effective,
		Issues:            issues,
	}
}

// orderPulleyResults implements the ranking law: error-free before
// erroring, then preferred first, then smallest effective diameter.
// Candidates with errors keep their input order (stable sort).
func orderPulleyResults(a, b catalog.PulleySelectionResult) bool {
	aErr, bErr := a.HasErrors(), b.HasErrors()
	if aErr != bErr {
		return !aErr
	}
	if aErr {
		return false
	}
	if a.Pulley.IsPreferred != b.Pulley.IsPreferred {
		return a.Pulley.IsPreferred
	}
	return a.EffectiveDiameter < b.EffectiveDiameter
}

// CompatiblePulleys returns only the candidates with no error-severity
// issues, in ranked order. Warnings are permitted.
func CompatiblePulleys(pulleys []catalog.PulleyCatalogItem, criteria catalog.PulleyFilterCriteria) []catalog.PulleySelectionResult {
	all := FilterPulleys(pulleys, criteria)
	compatible := make([]catalog.PulleySelectionResult, 0, len(all))
	for _, r := range all {
		if !r.HasErrors() {
			compatible = append(compatible, r)
		}
	}
	return compatible
}

// SelectBestPulley returns the top-ranked compatible candidate, or nil when
// none qualifies. Never an error: an empty shortlist is a valid outcome.
func SelectBestPulley(pulleys []catalog.PulleyCatalogItem, criteria catalog.PulleyFilterCriteria) *catalog.PulleySelectionResult {
	compatible := CompatiblePulleys(pulleys, criteria)
	if len(compatible) == 0 {
		return nil
	}
	return &compatible[0]
}
