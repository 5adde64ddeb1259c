package engine

import (
	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
)

// ResolveMinPulleyDiameters resolves a belt's effective minimum pulley
// diameters, applying per-field precedence between the optional material
// profile and the legacy catalog columns.
//
// The no-vguide and with-vguide fields resolve independently: for each, if
// the profile defines that specific field, the profile value wins;
// otherwise the legacy column is used. Source is SourceMaterialProfile iff
// at least one field used the profile value, even when the other fell back.
//
// Two scalar coalesce operations, not a deep merge of the two source
// objects - the profile carries fields that have no business leaking into
// this result.
//
// Banding info is reported only when the profile declares banding support;
// its two minimum sub-fields are each independently optional and omitted
// (not defaulted) when the profile leaves them unset.
func ResolveMinPulleyDiameters(belt catalog.BeltCatalogItem) catalog.EffectiveMinPulleyDiameters {
	result := catalog.EffectiveMinPulleyDiameters{
		NoVGuide:   belt.MinDiaNoVGuide,
		WithVGuide: belt.MinDiaWithVGuide,
		Source:     catalog.SourceCatalog,
	}

	profile := belt.MaterialProfile
	if profile == nil {
		return result
	}

	fromProfile := false
	if profile.MinDiaNoVGuideIn != nil {
		result.NoVGuide = *profile.MinDiaNoVGuideIn
		fromProfile = true
	}
	if profile.MinDiaWithVGuideIn != nil {
		result.WithVGuide = *profile.MinDiaWithVGuideIn
		fromProfile = true
	}
	if fromProfile {
		result.Source = catalog.SourceMaterialProfile
	}

	if profile.SupportsBanding {
		result.Banding = &catalog.BandingInfo{
			Supported:       true,
			MinNoVGuideIn:   profile.BandingMinDiaNoVGuideIn,
			MinWithVGuideIn: profile.BandingMinDiaWithVGuideIn,
		}
	}

	return result
}
