// Package testutil provides shared catalog fixtures for engine, store, and
// harness tests. Fixtures mirror real catalog rows from the standard drum
// pulley and modular belt lines so tests exercise realistic numbers.
package testutil

import (
	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
)

// FloatPtr returns a pointer to v. Optional catalog fields are pointers.
func FloatPtr(v float64) *float64 {
	return &v
}

// StandardDrum4 is a 4" steel drum pulley, face width 6-24", rated for
// every station, unlagged.
func StandardDrum4() catalog.PulleyCatalogItem {
	return catalog.PulleyCatalogItem{
		CatalogKey:     "STD_DRUM_4",
		DisplayName:    `4" Steel Drum`,
		Diameter:       4.0,
		FaceWidthMin:   6.0,
		FaceWidthMax:   24.0,
		Construction:   catalog.ConstructionDrum,
		Shaft:          catalog.ShaftThrough,
		AllowHeadDrive: true,
		AllowTail:      true,
		AllowSnub:      true,
		AllowBend:      true,
		AllowTakeup:    true,
		MaxBeltSpeed:   FloatPtr(350),
	}
}

// LaggedDrum6 is a 6" drum with 0.25" lagging (6.5" effective), preferred,
// drive/tail rated.
func LaggedDrum6() catalog.PulleyCatalogItem {
	return catalog.PulleyCatalogItem{
		CatalogKey:         "LAG_DRUM_6",
		DisplayName:        `6" Lagged Drum`,
		Diameter:           6.0,
		FaceWidthMin:       8.0,
		FaceWidthMax:       36.0,
		Construction:       catalog.ConstructionDrum,
		Shaft:              catalog.ShaftThrough,
		Lagged:             true,
		LaggingThicknessIn: FloatPtr(0.25),
		LaggingMaterial:    "neoprene",
		AllowHeadDrive:     true,
		AllowTail:          true,
		MaxBeltSpeed:       FloatPtr(500),
		IsPreferred:        true,
	}
}

// InternalBearingTail4 is a 4" internal-bearing idler pulley. Per the hard
// catalog constraint it is tail-only.
func InternalBearingTail4() catalog.PulleyCatalogItem {
	return catalog.PulleyCatalogItem{
		CatalogKey:   "IB_TAIL_4",
		DisplayName:  `4" Internal Bearing Tail`,
		Diameter:     4.0,
		FaceWidthMin: 6.0,
		FaceWidthMax: 30.0,
		Construction: catalog.ConstructionDrum,
		Shaft:        catalog.ShaftInternalBearings,
		AllowTail:    true,
	}
}

// LegacyBelt is a belt carried only by the legacy catalog columns, no
// material profile.
func LegacyBelt() catalog.BeltCatalogItem {
	return catalog.BeltCatalogItem{
		CatalogKey:       "PVC120",
		DisplayName:      "PVC 120 Smooth Top",
		PIW:              120,
		PIL:              35,
		Thickness:        0.125,
		MinDiaNoVGuide:   3.0,
		MinDiaWithVGuide: 4.0,
	}
}

// ProfiledBelt is LegacyBelt plus a material profile that overrides only
// the no-vguide minimum and declares banding support.
func ProfiledBelt() catalog.BeltCatalogItem {
	belt := LegacyBelt()
	belt.CatalogKey = "PVC120_HF"
	belt.DisplayName = "PVC 120 High Flex"
	belt.MaterialProfile = &catalog.MaterialProfile{
		MaterialFamily:          "pvc",
		MinDiaNoVGuideIn:        FloatPtr(2.5),
		SupportsBanding:         true,
		BandingMinDiaNoVGuideIn: FloatPtr(3.5),
	}
	return belt
}

// GearmotorPoint builds one vendor performance point with the given torque
// and rpm at catalog service factor 1.0.
func GearmotorPoint(partNumber string, hp, rpm, torque float64) catalog.GearmotorCandidate {
	return catalog.GearmotorCandidate{
		Vendor:               "Vector",
		Series:               "VG-H",
		SizeCode:             "63",
		PartNumber:           partNumber,
		MotorHP:              hp,
		OutputRPM:            rpm,
		OutputTorque:         torque,
		ServiceFactorCatalog: 1.0,
	}
}
