package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
)

func floatPtr(v float64) *float64 { return &v }

func TestValidate_PulleyInternalBearings(t *testing.T) {
	item := catalog.PulleyCatalogItem{
		CatalogKey:     "IB_BAD",
		DisplayName:    "Bad IB",
		Diameter:       4,
		FaceWidthMin:   6,
		FaceWidthMax:   24,
		Shaft:          catalog.ShaftInternalBearings,
		AllowHeadDrive: true,
	}

	errs := Validate(item)
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.Equal(t, ErrInternalBearingsRule, e.Code)
	}
}

func TestValidate_BeltProfileCodes(t *testing.T) {
	belt := catalog.BeltCatalogItem{
		CatalogKey:       "B",
		DisplayName:      "Belt",
		MinDiaNoVGuide:   3,
		MinDiaWithVGuide: 4,
		MaterialProfile: &catalog.MaterialProfile{
			MaterialFamily:          "pvc",
			MinDiaNoVGuideIn:        floatPtr(75),
			BandingMinDiaNoVGuideIn: floatPtr(3),
		},
	}

	errs := Validate(belt)
	require.Len(t, errs, 2)

	codes := map[string]bool{}
	for _, e := range errs {
		codes[e.Code] = true
	}
	assert.True(t, codes[ErrProfileRule], "diameter bound violation carries the profile code")
	assert.True(t, codes[ErrBandingRule], "banding-without-flag carries the banding code")
}

func TestValidate_CleanItemsProduceNoErrors(t *testing.T) {
	assert.Empty(t, Validate(catalog.PulleyCatalogItem{
		CatalogKey:   "STD_DRUM_4",
		DisplayName:  "Drum",
		Diameter:     4,
		FaceWidthMin: 6,
		FaceWidthMax: 24,
		AllowTail:    true,
	}))
	assert.Empty(t, Validate(catalog.GearmotorSelectionInputs{
		RequiredOutputRPM:    100,
		RequiredOutputTorque: 700,
		ChosenServiceFactor:  1,
	}))
}

func TestValidate_UnsupportedType(t *testing.T) {
	errs := Validate(42)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrUnsupportedType, errs[0].Code)
}

func TestValidationError_Error(t *testing.T) {
	e := ValidationError{Field: "diameter", Message: "must be greater than 0", Code: ErrPulleyRule, Line: 7}
	assert.Equal(t, "[E120] line 7: diameter: must be greater than 0", e.Error())

	e.Line = 0
	assert.Equal(t, "[E120] diameter: must be greater than 0", e.Error())
}
