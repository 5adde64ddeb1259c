package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPulleyFilterAll(t *testing.T) {
	catalogDir := writeCatalogFixture(t)
	criteria := writeFile(t, "criteria.yaml", `
station: head_drive
face_width_required: 18
min_diameter: 4.5
`)

	buf := &bytes.Buffer{}
	cmd := NewPulleyCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--catalog", catalogDir, criteria})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "2 candidate(s) for station head_drive")
	// DRUM4 at 4.00 effective falls below the 4.5 minimum.
	assert.Contains(t, output, "✗ DRUM4")
	assert.Contains(t, output, "DIAMETER_TOO_SMALL")
	// DRUM6L lagging brings the effective diameter to 6.50.
	assert.Contains(t, output, "✓ DRUM6L  6.50 in effective")
}

func TestPulleyCompatibleOnlyJSON(t *testing.T) {
	catalogDir := writeCatalogFixture(t)
	criteria := writeFile(t, "criteria.yaml", `
station: head_drive
face_width_required: 18
min_diameter: 4.5
`)

	buf := &bytes.Buffer{}
	cmd := NewPulleyCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--catalog", catalogDir, "--compatible-only", criteria})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   PulleyResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Results, 1)
	assert.Equal(t, "DRUM6L", resp.Data.Results[0].Pulley.CatalogKey)
	assert.InDelta(t, 6.5, resp.Data.Results[0].EffectiveDiameter, 1e-9)
}

func TestPulleyBest(t *testing.T) {
	catalogDir := writeCatalogFixture(t)
	criteria := writeFile(t, "criteria.yaml", `
station: tail
face_width_required: 18
`)

	buf := &bytes.Buffer{}
	cmd := NewPulleyCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--catalog", catalogDir, "--best", criteria})

	err := cmd.Execute()
	require.NoError(t, err)
	// DRUM6L is preferred, so it wins despite the larger diameter.
	assert.Contains(t, buf.String(), "Best: DRUM6L")
}

func TestPulleyBestNoneCompatible(t *testing.T) {
	catalogDir := writeCatalogFixture(t)
	criteria := writeFile(t, "criteria.yaml", `
station: head_drive
face_width_required: 60
`)

	buf := &bytes.Buffer{}
	cmd := NewPulleyCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--catalog", catalogDir, "--best", criteria})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "no compatible pulley found")
}

func TestPulleyInvalidStation(t *testing.T) {
	catalogDir := writeCatalogFixture(t)
	criteria := writeFile(t, "criteria.yaml", `
station: sideways
face_width_required: 18
`)

	cmd := NewPulleyCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--catalog", catalogDir, criteria})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid station")
}
