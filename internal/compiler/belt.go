package compiler

import (
	"cuelang.org/go/cue"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
)

// CompileBelt parses a CUE value into a BeltCatalogItem.
//
// The CUE value should be the belt struct itself; the struct label becomes
// the catalog key:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`belt: PVC120: { ... }`)
//	belt, err := CompileBelt(v.LookupPath(cue.ParsePath("belt.PVC120")))
func CompileBelt(v cue.Value) (*catalog.BeltCatalogItem, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	belt := &catalog.BeltCatalogItem{CatalogKey: labelOf(v)}

	var err error
	if belt.DisplayName, err = requiredString(v, "display_name"); err != nil {
		return nil, err
	}
	if belt.PIW, err = optionalFloatDefault(v, "piw", 0); err != nil {
		return nil, err
	}
	if belt.PIL, err = optionalFloatDefault(v, "pil", 0); err != nil {
		return nil, err
	}
	if belt.Thickness, err = optionalFloatDefault(v, "thickness", 0); err != nil {
		return nil, err
	}
	if belt.MinDiaNoVGuide, err = requiredFloat(v, "min_dia_no_vguide"); err != nil {
		return nil, err
	}
	if belt.MinDiaWithVGuide, err = requiredFloat(v, "min_dia_with_vguide"); err != nil {
		return nil, err
	}

	profileVal := v.LookupPath(cue.ParsePath("material_profile"))
	if profileVal.Exists() {
		profile, err := compileMaterialProfile(profileVal)
		if err != nil {
			return nil, err
		}
		belt.MaterialProfile = profile
	}

	return belt, nil
}

// compileMaterialProfile parses the optional material_profile struct.
// Structural parsing only; business rules (banding flag, diameter bounds)
// are applied by Validate after compilation.
func compileMaterialProfile(v cue.Value) (*catalog.MaterialProfile, error) {
	profile := &catalog.MaterialProfile{}

	var err error
	if profile.MaterialFamily, err = requiredString(v, "material_family"); err != nil {
		return nil, err
	}
	if profile.MinDiaNoVGuideIn, err = optionalFloat(v, "min_dia_no_vguide_in"); err != nil {
		return nil, err
	}
	if profile.MinDiaWithVGuideIn, err = optionalFloat(v, "min_dia_with_vguide_in"); err != nil {
		return nil, err
	}
	if profile.SupportsBanding, err = optionalBool(v, "supports_banding"); err != nil {
		return nil, err
	}
	if profile.BandingMinDiaNoVGuideIn, err = optionalFloat(v, "banding_min_dia_no_vguide_in"); err != nil {
		return nil, err
	}
	if profile.BandingMinDiaWithVGuideIn, err = optionalFloat(v, "banding_min_dia_with_vguide_in"); err != nil {
		return nil, err
	}

	return profile, nil
}
