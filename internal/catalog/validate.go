package catalog

import (
	"fmt"
	"math"
)

// Profile diameter fields are sanity-bounded: no belt in the product line
// wraps a pulley larger than 60 inches.
const (
	minProfileDiameterIn = 0.0
	maxProfileDiameterIn = 60.0
)

// ValidateMaterialProfile checks a belt's optional material profile.
//
// A nil profile is trivially valid (the profile is optional; the legacy
// catalog columns carry the belt). All violations are accumulated - a single
// call can return multiple error strings. Returns nil when valid.
func ValidateMaterialProfile(p *MaterialProfile) []string {
	if p == nil {
		return nil
	}

	var errs []string

	if p.MaterialFamily == "" {
		errs = append(errs, "material_family is required")
	}

	errs = appendDiameterFieldErrors(errs, "min_dia_no_vguide_in", p.MinDiaNoVGuideIn)
	errs = appendDiameterFieldErrors(errs, "min_dia_with_vguide_in", p.MinDiaWithVGuideIn)
	errs = appendDiameterFieldErrors(errs, "banding_min_dia_no_vguide_in", p.BandingMinDiaNoVGuideIn)
	errs = appendDiameterFieldErrors(errs, "banding_min_dia_with_vguide_in", p.BandingMinDiaWithVGuideIn)

	// Banding minimums are only meaningful on belts that support banding.
	if !p.SupportsBanding {
		if p.BandingMinDiaNoVGuideIn != nil {
			errs = append(errs, "banding_min_dia_no_vguide_in requires supports_banding = true")
		}
		if p.BandingMinDiaWithVGuideIn != nil {
			errs = append(errs, "banding_min_dia_with_vguide_in requires supports_banding = true")
		}
	}

	return errs
}

// appendDiameterFieldErrors validates one optional diameter field: it must
// be a real number (not NaN/Inf) within [0, 60] inches.
func appendDiameterFieldErrors(errs []string, field string, value *float64) []string {
	if value == nil {
		return errs
	}
	v := *value
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(errs, fmt.Sprintf("%s must be a real number", field))
	}
	if v < minProfileDiameterIn || v > maxProfileDiameterIn {
		return append(errs, fmt.Sprintf("%s must be between %g and %g inches", field, minProfileDiameterIn, maxProfileDiameterIn))
	}
	return errs
}

// ValidatePulleyCatalogItem checks a pulley catalog row at authoring time.
//
// This is the admin-side half of the INTERNAL_BEARINGS constraint; the
// pulley filter re-derives the same constraint defensively at evaluation
// time rather than trusting the stored flags. All violations are
// accumulated. Returns nil when valid.
func ValidatePulleyCatalogItem(p PulleyCatalogItem) []string {
	var errs []string

	if p.CatalogKey == "" {
		errs = append(errs, "catalog_key is required")
	}
	if p.DisplayName == "" {
		errs = append(errs, "display_name is required")
	}
	if p.Diameter <= 0 {
		errs = append(errs, "diameter must be greater than 0")
	}
	if p.FaceWidthMax <= 0 {
		errs = append(errs, "face_width_max must be greater than 0")
	}
	if p.FaceWidthMin > p.FaceWidthMax {
		errs = append(errs, "face_width_min must be less than or equal to face_width_max")
	}

	if p.Lagged {
		if p.LaggingThicknessIn == nil {
			errs = append(errs, "lagged pulleys require lagging_thickness_in")
		} else if *p.LaggingThicknessIn < 0 {
			errs = append(errs, "lagging_thickness_in must not be negative")
		}
	}

	if p.Shaft == ShaftInternalBearings {
		if !p.AllowTail {
			errs = append(errs, "INTERNAL_BEARINGS pulleys must have allow_tail = true")
		}
		// One message per violated station.
		if p.AllowHeadDrive {
			errs = append(errs, "INTERNAL_BEARINGS pulleys must not allow station head_drive")
		}
		if p.AllowSnub {
			errs = append(errs, "INTERNAL_BEARINGS pulleys must not allow station snub")
		}
		if p.AllowBend {
			errs = append(errs, "INTERNAL_BEARINGS pulleys must not allow station bend")
		}
		if p.AllowTakeup {
			errs = append(errs, "INTERNAL_BEARINGS pulleys must not allow station takeup")
		}
	}

	return errs
}

// ValidateBeltCatalogItem checks a belt catalog row at authoring time,
// including its optional material profile. Returns nil when valid.
func ValidateBeltCatalogItem(b BeltCatalogItem) []string {
	var errs []string

	if b.CatalogKey == "" {
		errs = append(errs, "catalog_key is required")
	}
	if b.DisplayName == "" {
		errs = append(errs, "display_name is required")
	}
	if b.MinDiaNoVGuide <= 0 {
		errs = append(errs, "min_dia_no_vguide must be greater than 0")
	}
	if b.MinDiaWithVGuide <= 0 {
		errs = append(errs, "min_dia_with_vguide must be greater than 0")
	}

	errs = append(errs, ValidateMaterialProfile(b.MaterialProfile)...)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateGearmotorSelectionInputs checks the caller-supplied requirement
// set for gearmotor selection. A violation here is a caller error, distinct
// from a "no candidates found" outcome. Returns nil when valid.
func ValidateGearmotorSelectionInputs(in GearmotorSelectionInputs) []string {
	var errs []string

	if !(in.RequiredOutputRPM > 0) {
		errs = append(errs, "required_output_rpm must be greater than 0")
	}
	if !(in.RequiredOutputTorque > 0) {
		errs = append(errs, "required_output_torque must be greater than 0")
	}
	// Values below 1.0 are legitimate (the designer accepts less margin
	// than the vendor rating assumes); only non-positive values are out.
	if !(in.ChosenServiceFactor > 0) {
		errs = append(errs, "chosen_service_factor must be greater than 0")
	}
	if in.SpeedTolerancePct != nil && *in.SpeedTolerancePct < 0 {
		errs = append(errs, "speed_tolerance_pct must not be negative")
	}

	return errs
}
