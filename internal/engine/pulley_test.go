package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
	"github.com/mc3abe-oss/conveyor-console/internal/testutil"
)

func issueCodes(r catalog.PulleySelectionResult) []string {
	codes := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		codes = append(codes, issue.Code)
	}
	return codes
}

func TestEffectivePulleyDiameter(t *testing.T) {
	bare := testutil.StandardDrum4()
	assert.Equal(t, 4.0, EffectivePulleyDiameter(bare))

	lagged := testutil.LaggedDrum6()
	assert.Equal(t, 6.5, EffectivePulleyDiameter(lagged), "diameter + 2 x lagging thickness")

	// Nil thickness on a lagged pulley contributes zero, not a failure.
	lagged.LaggingThicknessIn = nil
	assert.Equal(t, 6.0, EffectivePulleyDiameter(lagged))
}

func TestFilterPulleys_InternalBearingsTailOnly(t *testing.T) {
	ib := testutil.InternalBearingTail4()

	for _, station := range []catalog.Station{
		catalog.StationHeadDrive, catalog.StationSnub, catalog.StationBend, catalog.StationTakeup,
	} {
		results := FilterPulleys([]catalog.PulleyCatalogItem{ib}, catalog.PulleyFilterCriteria{
			Station:           station,
			FaceWidthRequired: 12,
		})
		require.Len(t, results, 1)
		assert.Contains(t, issueCodes(results[0]), IssueInternalBearingsTailOnly, "station %s", station)
		assert.True(t, results[0].HasErrors())
	}

	// At tail it never fires.
	results := FilterPulleys([]catalog.PulleyCatalogItem{ib}, catalog.PulleyFilterCriteria{
		Station:           catalog.StationTail,
		FaceWidthRequired: 12,
	})
	require.Len(t, results, 1)
	assert.NotContains(t, issueCodes(results[0]), IssueInternalBearingsTailOnly)
	assert.False(t, results[0].HasErrors())
}

func TestFilterPulleys_InternalBearingsIgnoresStoredFlags(t *testing.T) {
	// A stale row that claims head-drive eligibility still gets rejected:
	// the constraint is re-derived from the shaft arrangement, fail-closed.
	stale := testutil.InternalBearingTail4()
	stale.AllowHeadDrive = true

	results := FilterPulleys([]catalog.PulleyCatalogItem{stale}, catalog.PulleyFilterCriteria{
		Station:           catalog.StationHeadDrive,
		FaceWidthRequired: 12,
	})
	require.Len(t, results, 1)
	assert.Contains(t, issueCodes(results[0]), IssueInternalBearingsTailOnly)
}

func TestFilterPulleys_FaceWidth(t *testing.T) {
	drum := testutil.StandardDrum4()

	// Above the 24" max.
	results := FilterPulleys([]catalog.PulleyCatalogItem{drum}, catalog.PulleyFilterCriteria{
		Station:           catalog.StationHeadDrive,
		FaceWidthRequired: 30,
	})
	require.Len(t, results, 1)
	assert.Equal(t, []string{IssueFaceWidthExceeded}, issueCodes(results[0]))

	// Below the 6" min.
	results = FilterPulleys([]catalog.PulleyCatalogItem{drum}, catalog.PulleyFilterCriteria{
		Station:           catalog.StationHeadDrive,
		FaceWidthRequired: 4,
	})
	require.Len(t, results, 1)
	assert.Equal(t, []string{IssueFaceWidthBelowMin}, issueCodes(results[0]))

	// In range: no face-width issues.
	results = FilterPulleys([]catalog.PulleyCatalogItem{drum}, catalog.PulleyFilterCriteria{
		Station:           catalog.StationHeadDrive,
		FaceWidthRequired: 18,
	})
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Issues)
}

func TestFilterPulleys_ChecksAreIndependent(t *testing.T) {
	// One candidate can report several problems at once; checks never
	// short-circuit.
	drum := testutil.StandardDrum4()
	results := FilterPulleys([]catalog.PulleyCatalogItem{drum}, catalog.PulleyFilterCriteria{
		Station:           catalog.StationHeadDrive,
		FaceWidthRequired: 30,
		MinDiameter:       testutil.FloatPtr(6.0),
		BeltSpeed:         testutil.FloatPtr(400),
	})
	require.Len(t, results, 1)

	codes := issueCodes(results[0])
	assert.Contains(t, codes, IssueFaceWidthExceeded)
	assert.Contains(t, codes, IssueDiameterTooSmall)
	assert.Contains(t, codes, IssueSpeedLimitExceeded)
}

func TestFilterPulleys_SpeedLimitIsWarning(t *testing.T) {
	drum := testutil.StandardDrum4()
	results := FilterPulleys([]catalog.PulleyCatalogItem{drum}, catalog.PulleyFilterCriteria{
		Station:           catalog.StationHeadDrive,
		FaceWidthRequired: 18,
		BeltSpeed:         testutil.FloatPtr(400),
	})
	require.Len(t, results, 1)
	require.Len(t, results[0].Issues, 1)
	assert.Equal(t, IssueSpeedLimitExceeded, results[0].Issues[0].Code)
	assert.Equal(t, catalog.SeverityWarning, results[0].Issues[0].Severity)
	assert.False(t, results[0].HasErrors(), "speed limit is advisory, not disqualifying")
}

func TestFilterPulleys_MinDiameterUsesEffectiveDiameter(t *testing.T) {
	// 6" shell + 2 x 0.25" lagging = 6.5" effective, which clears a 6.25"
	// minimum the bare shell would fail.
	lagged := testutil.LaggedDrum6()
	results := FilterPulleys([]catalog.PulleyCatalogItem{lagged}, catalog.PulleyFilterCriteria{
		Station:           catalog.StationHeadDrive,
		FaceWidthRequired: 18,
		MinDiameter:       testutil.FloatPtr(6.25),
	})
	require.Len(t, results, 1)
	assert.Equal(t, 6.5, results[0].EffectiveDiameter)
	assert.Empty(t, results[0].Issues)
}

func TestFilterPulleys_ExactFiltersExclude(t *testing.T) {
	pulleys := []catalog.PulleyCatalogItem{testutil.StandardDrum4(), testutil.LaggedDrum6()}

	results := FilterPulleys(pulleys, catalog.PulleyFilterCriteria{
		Station:           catalog.StationHeadDrive,
		FaceWidthRequired: 18,
		Diameter:          testutil.FloatPtr(6.0),
	})
	require.Len(t, results, 1, "non-matching diameters are excluded entirely")
	assert.Equal(t, "LAG_DRUM_6", results[0].Pulley.CatalogKey)

	wing := catalog.ConstructionWing
	results = FilterPulleys(pulleys, catalog.PulleyFilterCriteria{
		Station:           catalog.StationHeadDrive,
		FaceWidthRequired: 18,
		Construction:      &wing,
	})
	assert.Empty(t, results)
}

func TestFilterPulleys_Ordering(t *testing.T) {
	small := testutil.StandardDrum4()                  // error-free, 4.0"
	preferred := testutil.LaggedDrum6()                // error-free, preferred, 6.5"
	failing := testutil.StandardDrum4()                // face width error
	failing.CatalogKey = "STD_DRUM_4_NARROW"
	failing.FaceWidthMax = 12

	results := FilterPulleys([]catalog.PulleyCatalogItem{failing, small, preferred}, catalog.PulleyFilterCriteria{
		Station:           catalog.StationHeadDrive,
		FaceWidthRequired: 18,
	})
	require.Len(t, results, 3)

	// Preferred first within the error-free group, then ascending
	// effective diameter; erroring candidates last.
	assert.Equal(t, "LAG_DRUM_6", results[0].Pulley.CatalogKey)
	assert.Equal(t, "STD_DRUM_4", results[1].Pulley.CatalogKey)
	assert.Equal(t, "STD_DRUM_4_NARROW", results[2].Pulley.CatalogKey)
}

func TestFilterPulleys_Idempotent(t *testing.T) {
	pulleys := []catalog.PulleyCatalogItem{
		testutil.LaggedDrum6(), testutil.StandardDrum4(), testutil.InternalBearingTail4(),
	}
	criteria := catalog.PulleyFilterCriteria{
		Station:           catalog.StationHeadDrive,
		FaceWidthRequired: 18,
	}

	first := FilterPulleys(pulleys, criteria)
	second := FilterPulleys(pulleys, criteria)
	assert.Equal(t, first, second, "identical inputs must produce identical ordered output")
}

func TestCompatiblePulleys_FiltersErrors(t *testing.T) {
	pulleys := []catalog.PulleyCatalogItem{
		testutil.StandardDrum4(),
		testutil.InternalBearingTail4(),
	}

	compatible := CompatiblePulleys(pulleys, catalog.PulleyFilterCriteria{
		Station:           catalog.StationHeadDrive,
		FaceWidthRequired: 18,
	})
	require.Len(t, compatible, 1)
	assert.Equal(t, "STD_DRUM_4", compatible[0].Pulley.CatalogKey)
}

func TestSelectBestPulley(t *testing.T) {
	pulleys := []catalog.PulleyCatalogItem{testutil.StandardDrum4(), testutil.LaggedDrum6()}

	best := SelectBestPulley(pulleys, catalog.PulleyFilterCriteria{
		Station:           catalog.StationHeadDrive,
		FaceWidthRequired: 18,
	})
	require.NotNil(t, best)
	assert.Equal(t, "LAG_DRUM_6", best.Pulley.CatalogKey)

	// Nothing qualifies: nil, never a panic or error.
	best = SelectBestPulley(pulleys, catalog.PulleyFilterCriteria{
		Station:           catalog.StationHeadDrive,
		FaceWidthRequired: 100,
	})
	assert.Nil(t, best)
}
