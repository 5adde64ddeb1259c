package compiler

import (
	"cuelang.org/go/cue"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
)

// CompileGearmotor parses a CUE value into one vendor performance point.
// The struct label becomes the part number.
func CompileGearmotor(v cue.Value) (*catalog.GearmotorCandidate, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	gm := &catalog.GearmotorCandidate{PartNumber: labelOf(v)}

	var err error
	if gm.Vendor, err = requiredString(v, "vendor"); err != nil {
		return nil, err
	}
	if gm.Series, err = requiredString(v, "series"); err != nil {
		return nil, err
	}
	if gm.SizeCode, err = optionalString(v, "size_code"); err != nil {
		return nil, err
	}
	if gm.MotorHP, err = requiredFloat(v, "motor_hp"); err != nil {
		return nil, err
	}
	if gm.OutputRPM, err = requiredFloat(v, "output_rpm"); err != nil {
		return nil, err
	}
	if gm.OutputTorque, err = requiredFloat(v, "output_torque"); err != nil {
		return nil, err
	}
	// Vendors that publish unfactored ratings default to SF 1.0.
	if gm.ServiceFactorCatalog, err = optionalFloatDefault(v, "service_factor_catalog", 1.0); err != nil {
		return nil, err
	}

	return gm, nil
}
