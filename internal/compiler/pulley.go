package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
)

var validConstructions = map[catalog.Construction]bool{
	catalog.ConstructionDrum:   true,
	catalog.ConstructionWing:   true,
	catalog.ConstructionSpiral: true,
}

var validShaftArrangements = map[catalog.ShaftArrangement]bool{
	catalog.ShaftThrough:          true,
	catalog.ShaftInternalBearings: true,
}

// CompilePulley parses a CUE value into a PulleyCatalogItem. The struct
// label becomes the catalog key.
func CompilePulley(v cue.Value) (*catalog.PulleyCatalogItem, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	pulley := &catalog.PulleyCatalogItem{CatalogKey: labelOf(v)}

	var err error
	if pulley.DisplayName, err = requiredString(v, "display_name"); err != nil {
		return nil, err
	}
	if pulley.Diameter, err = requiredFloat(v, "diameter"); err != nil {
		return nil, err
	}
	if pulley.FaceWidthMin, err = optionalFloatDefault(v, "face_width_min", 0); err != nil {
		return nil, err
	}
	if pulley.FaceWidthMax, err = requiredFloat(v, "face_width_max"); err != nil {
		return nil, err
	}

	construction, err := optionalString(v, "construction")
	if err != nil {
		return nil, err
	}
	if construction == "" {
		pulley.Construction = catalog.ConstructionDrum
	} else {
		pulley.Construction = catalog.Construction(construction)
		if !validConstructions[pulley.Construction] {
			return nil, &CompileError{
				Field:   "construction",
				Message: fmt.Sprintf("unknown construction %q", construction),
				Pos:     v.Pos(),
			}
		}
	}

	shaft, err := optionalString(v, "shaft_arrangement")
	if err != nil {
		return nil, err
	}
	if shaft == "" {
		pulley.Shaft = catalog.ShaftThrough
	} else {
		pulley.Shaft = catalog.ShaftArrangement(shaft)
		if !validShaftArrangements[pulley.Shaft] {
			return nil, &CompileError{
				Field:   "shaft_arrangement",
				Message: fmt.Sprintf("unknown shaft arrangement %q", shaft),
				Pos:     v.Pos(),
			}
		}
	}

	if pulley.Lagged, err = optionalBool(v, "lagged"); err != nil {
		return nil, err
	}
	if pulley.LaggingThicknessIn, err = optionalFloat(v, "lagging_thickness_in"); err != nil {
		return nil, err
	}
	if pulley.LaggingMaterial, err = optionalString(v, "lagging_material"); err != nil {
		return nil, err
	}

	if pulley.AllowHeadDrive, err = optionalBool(v, "allow_head_drive"); err != nil {
		return nil, err
	}
	if pulley.AllowTail, err = optionalBool(v, "allow_tail"); err != nil {
		return nil, err
	}
	if pulley.AllowSnub, err = optionalBool(v, "allow_snub"); err != nil {
		return nil, err
	}
	if pulley.AllowBend, err = optionalBool(v, "allow_bend"); err != nil {
		return nil, err
	}
	if pulley.AllowTakeup, err = optionalBool(v, "allow_takeup"); err != nil {
		return nil, err
	}

	if pulley.MaxBeltSpeed, err = optionalFloat(v, "max_belt_speed"); err != nil {
		return nil, err
	}
	if pulley.IsPreferred, err = optionalBool(v, "is_preferred"); err != nil {
		return nil, err
	}

	return pulley, nil
}
