package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// validCatalogCUE is a small well-formed catalog used across command tests.
const validCatalogCUE = `
package catalog

belt: PVC120: {
	display_name:        "PVC 120 Black"
	min_dia_no_vguide:   3.0
	min_dia_with_vguide: 4.0
}

belt: PVC120_HF: {
	display_name:        "PVC 120 High Flex"
	min_dia_no_vguide:   3.0
	min_dia_with_vguide: 4.0
	material_profile: {
		material_family:              "pvc"
		min_dia_no_vguide_in:         2.5
		supports_banding:             true
		banding_min_dia_no_vguide_in: 3.5
	}
}

pulley: DRUM4: {
	display_name:     "4in Drum"
	diameter:         4.0
	face_width_min:   6.0
	face_width_max:   24.0
	allow_head_drive: true
	allow_tail:       true
	allow_snub:       true
	allow_bend:       true
	allow_takeup:     true
	max_belt_speed:   350.0
}

pulley: DRUM6L: {
	display_name:         "6in Lagged Drum"
	diameter:             6.0
	face_width_min:       6.0
	face_width_max:       30.0
	lagged:               true
	lagging_thickness_in: 0.25
	allow_head_drive:     true
	allow_tail:           true
	is_preferred:         true
}

gearmotor: "VG-H63-050": {
	vendor:        "Vector"
	series:        "VG-H"
	size_code:     "63"
	motor_hp:      0.5
	output_rpm:    62.0
	output_torque: 1300.0
}

gearmotor: "VG-H63-100": {
	vendor:        "Vector"
	series:        "VG-H"
	size_code:     "63"
	motor_hp:      1.0
	output_rpm:    60.0
	output_torque: 1500.0
}
`

// writeCatalogFixture writes the shared catalog fixture to a temp dir.
func writeCatalogFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "catalog.cue"), []byte(validCatalogCUE), 0644)
	require.NoError(t, err)
	return dir
}

// writeFile writes arbitrary test input (YAML requests, CUE fragments) to a
// temp file and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
