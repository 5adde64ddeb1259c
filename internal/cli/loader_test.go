package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFieldToErrorCode(t *testing.T) {
	// Field names as the belt/pulley/gearmotor compilers emit them.
	cases := []struct {
		field string
		want  string
	}{
		{"display_name", ErrCodeMissingKey},
		{"vendor", ErrCodeMissingKey},
		{"diameter", ErrCodeInvalidGeometry},
		{"face_width_min", ErrCodeInvalidGeometry},
		{"face_width_max", ErrCodeInvalidGeometry},
		{"min_dia_no_vguide", ErrCodeInvalidGeometry},
		{"min_dia_with_vguide", ErrCodeInvalidGeometry},
		{"construction", ErrCodeInvalidEnum},
		{"shaft_arrangement", ErrCodeInvalidEnum},
		{"material_profile", ErrCodeInvalidProfile},
		{"material_family", ErrCodeInvalidProfile},
		{"banding_min_dia_no_vguide_in", ErrCodeInvalidProfile},
		{"no_such_field", ErrCodeGeneric},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MapFieldToErrorCode(tc.field), "field %s", tc.field)
	}
}

func TestLoadCatalogGeometryErrorCode(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "catalog.cue"), []byte(`
package catalog

pulley: NODIAM: {
	display_name:   "No Diameter"
	face_width_max: 24.0
	allow_tail:     true
}
`), 0644)
	require.NoError(t, err)

	_, errs := LoadCatalog(dir, LoadModeCollectAll)
	require.Len(t, errs, 1)

	var loadErr *LoadError
	require.True(t, errors.As(errs[0], &loadErr))
	assert.Equal(t, ErrCodeInvalidGeometry, loadErr.Code)
	assert.Contains(t, loadErr.Message, "diameter is required")
}

func TestLoadCatalogEnumErrorCode(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "catalog.cue"), []byte(`
package catalog

pulley: BADSHAFT: {
	display_name:      "Bad Shaft"
	diameter:          4.0
	face_width_max:    24.0
	shaft_arrangement: "FLOATING"
	allow_tail:        true
}
`), 0644)
	require.NoError(t, err)

	_, errs := LoadCatalog(dir, LoadModeCollectAll)
	require.Len(t, errs, 1)

	var loadErr *LoadError
	require.True(t, errors.As(errs[0], &loadErr))
	assert.Equal(t, ErrCodeInvalidEnum, loadErr.Code)
}
