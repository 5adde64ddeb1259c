package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
)

func TestRecommendTracking_MediumBandMinimal(t *testing.T) {
	// 120/12 = ratio 10.0, medium band, zero disturbances: Crowned with an
	// advisory note.
	out := RecommendTracking(catalog.TrackingRecommendationInput{
		LengthIn: 120,
		WidthIn:  12,
	})

	assert.Equal(t, 10.0, out.LWRatio)
	assert.Equal(t, catalog.BandMedium, out.Band)
	assert.Equal(t, catalog.DisturbanceMinimal, out.RawSeverity)
	assert.Equal(t, catalog.TrackingCrowned, out.Mode)
	assert.True(t, out.WithNote)
	assert.NotEmpty(t, out.Note)
	assert.NotEmpty(t, out.Rationale)
}

func TestRecommendTracking_ZeroWidthForcesHighBand(t *testing.T) {
	out := RecommendTracking(catalog.TrackingRecommendationInput{LengthIn: 60})

	assert.True(t, math.IsInf(out.LWRatio, 1))
	assert.Equal(t, catalog.BandHigh, out.Band)
	assert.Equal(t, catalog.TrackingHybrid, out.Mode)
	assert.NotEmpty(t, out.Rationale)
}

func TestRecommendTracking_RatioRounding(t *testing.T) {
	// 100/21 = 4.7619 rounds to 4.8, low band.
	out := RecommendTracking(catalog.TrackingRecommendationInput{LengthIn: 100, WidthIn: 21})
	assert.Equal(t, 4.8, out.LWRatio)
	assert.Equal(t, catalog.BandLow, out.Band)
}

func TestRecommendTracking_ReversingPlusSideLoadingEscalates(t *testing.T) {
	// Count is only 2, but the reversing + side-loading pairing forces the
	// raw severity to significant independent of the count rule.
	out := RecommendTracking(catalog.TrackingRecommendationInput{
		LengthIn:    60,
		WidthIn:     24,
		Reversing:   true,
		SideLoading: true,
	})

	assert.Equal(t, 2, out.DisturbanceCount)
	assert.Equal(t, catalog.DisturbanceSignificant, out.RawSeverity)
}

func TestRecommendTracking_CountRules(t *testing.T) {
	base := catalog.TrackingRecommendationInput{LengthIn: 60, WidthIn: 24}

	out := RecommendTracking(base)
	assert.Equal(t, catalog.DisturbanceMinimal, out.RawSeverity)

	one := base
	one.Environment = true
	assert.Equal(t, catalog.DisturbanceModerate, RecommendTracking(one).RawSeverity)

	two := base
	two.Environment = true
	two.LoadVariability = true
	assert.Equal(t, catalog.DisturbanceModerate, RecommendTracking(two).RawSeverity,
		"two disturbances without the special pairing stay moderate")

	three := two
	three.InstallationRisk = true
	assert.Equal(t, catalog.DisturbanceSignificant, RecommendTracking(three).RawSeverity)
}

func TestRecommendTracking_ModifiersShapeOnlyRecommendation(t *testing.T) {
	// Bulk handling nudges the recommendation severity one step, but the
	// raw severity reported is untouched.
	out := RecommendTracking(catalog.TrackingRecommendationInput{
		LengthIn:         60,
		WidthIn:          24,
		ApplicationClass: catalog.ApplicationBulkHandling,
	})

	assert.Equal(t, catalog.DisturbanceMinimal, out.RawSeverity)
	assert.Equal(t, catalog.DisturbanceModerate, out.ModifiedSeverity)
}

func TestRecommendTracking_ModifiersStackAndCap(t *testing.T) {
	out := RecommendTracking(catalog.TrackingRecommendationInput{
		LengthIn:         60,
		WidthIn:          24,
		Environment:      true, // moderate raw
		ApplicationClass: catalog.ApplicationBulkHandling,
		BeltConstruction: "cleated",
	})

	assert.Equal(t, catalog.DisturbanceModerate, out.RawSeverity)
	assert.Equal(t, catalog.DisturbanceSignificant, out.ModifiedSeverity, "both nudges stack, capped at significant")
}

func TestSeverityNext_Caps(t *testing.T) {
	assert.Equal(t, catalog.DisturbanceModerate, catalog.DisturbanceMinimal.Next())
	assert.Equal(t, catalog.DisturbanceSignificant, catalog.DisturbanceModerate.Next())
	assert.Equal(t, catalog.DisturbanceSignificant, catalog.DisturbanceSignificant.Next())
}

func TestRecommendTracking_MatrixCorners(t *testing.T) {
	// Low band, significant severity: Hybrid.
	out := RecommendTracking(catalog.TrackingRecommendationInput{
		LengthIn:  60,
		WidthIn:   24,
		Reversing: true, SideLoading: true,
	})
	assert.Equal(t, catalog.BandLow, out.Band)
	assert.Equal(t, catalog.TrackingHybrid, out.Mode)

	// High band, moderate severity: V-guided.
	out = RecommendTracking(catalog.TrackingRecommendationInput{
		LengthIn:    240,
		WidthIn:     12,
		Environment: true,
	})
	assert.Equal(t, catalog.BandHigh, out.Band)
	assert.Equal(t, catalog.TrackingVGuided, out.Mode)
}

func TestRecommendTracking_WeakerOverrideFlagsConflict(t *testing.T) {
	// Matrix says V-guided; the caller insists on crowned. Override wins
	// verbatim but earns a conflict note.
	out := RecommendTracking(catalog.TrackingRecommendationInput{
		LengthIn:           240,
		WidthIn:            12,
		Environment:        true,
		TrackingPreference: catalog.TrackingCrowned,
	})

	assert.Equal(t, catalog.TrackingCrowned, out.Mode)
	assert.True(t, out.Overridden)
	assert.True(t, out.WithNote)
	assert.NotEmpty(t, out.Note)
}

func TestRecommendTracking_StrongerOverrideNotFlagged(t *testing.T) {
	// Matrix says Crowned; overriding up to V-guided is never flagged.
	out := RecommendTracking(catalog.TrackingRecommendationInput{
		LengthIn:           60,
		WidthIn:            24,
		TrackingPreference: catalog.TrackingVGuided,
	})

	assert.Equal(t, catalog.TrackingVGuided, out.Mode)
	assert.True(t, out.Overridden)
	assert.False(t, out.WithNote)
	assert.Empty(t, out.Note)
}

func TestRecommendTracking_AutoPreferenceIsNotOverride(t *testing.T) {
	out := RecommendTracking(catalog.TrackingRecommendationInput{
		LengthIn:           60,
		WidthIn:            24,
		TrackingPreference: catalog.TrackingAuto,
	})

	assert.False(t, out.Overridden)
	assert.Equal(t, catalog.TrackingCrowned, out.Mode)
}

func TestRecommendTracking_RationaleAlwaysPresent(t *testing.T) {
	inputs := []catalog.TrackingRecommendationInput{
		{LengthIn: 60, WidthIn: 24},
		{LengthIn: 240, WidthIn: 12, Reversing: true, SideLoading: true},
		{LengthIn: 60, TrackingPreference: catalog.TrackingHybrid},
	}
	for _, in := range inputs {
		assert.NotEmpty(t, RecommendTracking(in).Rationale)
	}
}
