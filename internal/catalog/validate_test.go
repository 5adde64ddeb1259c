package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestValidateMaterialProfile_NilIsValid(t *testing.T) {
	assert.Nil(t, ValidateMaterialProfile(nil), "the profile is optional")
}

func TestValidateMaterialProfile_Valid(t *testing.T) {
	errs := ValidateMaterialProfile(&MaterialProfile{
		MaterialFamily:     "pvc",
		MinDiaNoVGuideIn:   floatPtr(2.5),
		MinDiaWithVGuideIn: floatPtr(3.0),
	})
	assert.Empty(t, errs)
}

func TestValidateMaterialProfile_MissingFamily(t *testing.T) {
	errs := ValidateMaterialProfile(&MaterialProfile{})
	assert.Contains(t, errs, "material_family is required")
}

func TestValidateMaterialProfile_DiameterBounds(t *testing.T) {
	errs := ValidateMaterialProfile(&MaterialProfile{
		MaterialFamily:     "pvc",
		MinDiaNoVGuideIn:   floatPtr(-1),
		MinDiaWithVGuideIn: floatPtr(75),
	})
	assert.Contains(t, errs, "min_dia_no_vguide_in must be between 0 and 60 inches")
	assert.Contains(t, errs, "min_dia_with_vguide_in must be between 0 and 60 inches")
}

func TestValidateMaterialProfile_NonRealNumbers(t *testing.T) {
	errs := ValidateMaterialProfile(&MaterialProfile{
		MaterialFamily:     "pvc",
		MinDiaNoVGuideIn:   floatPtr(math.NaN()),
		MinDiaWithVGuideIn: floatPtr(math.Inf(1)),
	})
	assert.Contains(t, errs, "min_dia_no_vguide_in must be a real number")
	assert.Contains(t, errs, "min_dia_with_vguide_in must be a real number")
}

func TestValidateMaterialProfile_BandingRequiresFlag(t *testing.T) {
	// supports_banding unset while a banding minimum is present.
	errs := ValidateMaterialProfile(&MaterialProfile{
		MaterialFamily:            "pvc",
		BandingMinDiaWithVGuideIn: floatPtr(4.0),
	})
	assert.Contains(t, errs, "banding_min_dia_with_vguide_in requires supports_banding = true")
}

func TestValidateMaterialProfile_AccumulatesAllViolations(t *testing.T) {
	// One call reports everything at once: missing family, a bound
	// violation, and both banding-without-flag errors.
	errs := ValidateMaterialProfile(&MaterialProfile{
		MinDiaNoVGuideIn:          floatPtr(100),
		BandingMinDiaNoVGuideIn:   floatPtr(3.0),
		BandingMinDiaWithVGuideIn: floatPtr(4.0),
	})
	assert.Len(t, errs, 4)
}

func TestValidatePulleyCatalogItem_Valid(t *testing.T) {
	errs := ValidatePulleyCatalogItem(PulleyCatalogItem{
		CatalogKey:   "STD_DRUM_4",
		DisplayName:  `4" Steel Drum`,
		Diameter:     4,
		FaceWidthMin: 6,
		FaceWidthMax: 24,
		AllowTail:    true,
	})
	assert.Empty(t, errs)
}

func TestValidatePulleyCatalogItem_RequiredFields(t *testing.T) {
	errs := ValidatePulleyCatalogItem(PulleyCatalogItem{})
	assert.Contains(t, errs, "catalog_key is required")
	assert.Contains(t, errs, "display_name is required")
	assert.Contains(t, errs, "diameter must be greater than 0")
	assert.Contains(t, errs, "face_width_max must be greater than 0")
}

func TestValidatePulleyCatalogItem_FaceWidthOrdering(t *testing.T) {
	errs := ValidatePulleyCatalogItem(PulleyCatalogItem{
		CatalogKey:   "K",
		DisplayName:  "D",
		Diameter:     4,
		FaceWidthMin: 30,
		FaceWidthMax: 24,
	})
	assert.Contains(t, errs, "face_width_min must be less than or equal to face_width_max")
}

func TestValidatePulleyCatalogItem_Lagging(t *testing.T) {
	item := PulleyCatalogItem{
		CatalogKey:   "K",
		DisplayName:  "D",
		Diameter:     6,
		FaceWidthMin: 6,
		FaceWidthMax: 24,
		Lagged:       true,
	}
	assert.Contains(t, ValidatePulleyCatalogItem(item), "lagged pulleys require lagging_thickness_in")

	item.LaggingThicknessIn = floatPtr(-0.25)
	assert.Contains(t, ValidatePulleyCatalogItem(item), "lagging_thickness_in must not be negative")

	item.LaggingThicknessIn = floatPtr(0)
	assert.Empty(t, ValidatePulleyCatalogItem(item), "zero thickness is allowed")
}

func TestValidatePulleyCatalogItem_InternalBearings(t *testing.T) {
	// Every violated station gets its own message so an admin sees all of
	// them together.
	item := PulleyCatalogItem{
		CatalogKey:     "IB_BAD",
		DisplayName:    "Bad IB",
		Diameter:       4,
		FaceWidthMin:   6,
		FaceWidthMax:   24,
		Shaft:          ShaftInternalBearings,
		AllowHeadDrive: true,
		AllowSnub:      true,
		AllowBend:      true,
		AllowTakeup:    true,
	}

	errs := ValidatePulleyCatalogItem(item)
	assert.Contains(t, errs, "INTERNAL_BEARINGS pulleys must have allow_tail = true")
	assert.Contains(t, errs, "INTERNAL_BEARINGS pulleys must not allow station head_drive")
	assert.Contains(t, errs, "INTERNAL_BEARINGS pulleys must not allow station snub")
	assert.Contains(t, errs, "INTERNAL_BEARINGS pulleys must not allow station bend")
	assert.Contains(t, errs, "INTERNAL_BEARINGS pulleys must not allow station takeup")
	assert.Len(t, errs, 5)
}

func TestValidateGearmotorSelectionInputs(t *testing.T) {
	errs := ValidateGearmotorSelectionInputs(GearmotorSelectionInputs{
		RequiredOutputRPM:    100,
		RequiredOutputTorque: 700,
		ChosenServiceFactor:  0.8,
	})
	assert.Empty(t, errs, "chosen factors below 1.0 are valid")

	errs = ValidateGearmotorSelectionInputs(GearmotorSelectionInputs{})
	assert.Contains(t, errs, "required_output_rpm must be greater than 0")
	assert.Contains(t, errs, "required_output_torque must be greater than 0")
	assert.Contains(t, errs, "chosen_service_factor must be greater than 0")

	errs = ValidateGearmotorSelectionInputs(GearmotorSelectionInputs{
		RequiredOutputRPM:    100,
		RequiredOutputTorque: 700,
		ChosenServiceFactor:  math.NaN(),
	})
	assert.Contains(t, errs, "chosen_service_factor must be greater than 0", "NaN is not positive")
}

func TestValidateBeltCatalogItem(t *testing.T) {
	errs := ValidateBeltCatalogItem(BeltCatalogItem{})
	assert.Contains(t, errs, "catalog_key is required")
	assert.Contains(t, errs, "min_dia_no_vguide must be greater than 0")

	// Profile violations surface through the belt validator too.
	errs = ValidateBeltCatalogItem(BeltCatalogItem{
		CatalogKey:       "B",
		DisplayName:      "Belt",
		MinDiaNoVGuide:   3,
		MinDiaWithVGuide: 4,
		MaterialProfile:  &MaterialProfile{},
	})
	assert.Contains(t, errs, "material_family is required")
}
