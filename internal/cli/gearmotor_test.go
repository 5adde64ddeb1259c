package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mc3abe-oss/conveyor-console/internal/store"
)

func TestGearmotorSelect(t *testing.T) {
	catalogDir := writeCatalogFixture(t)
	inputs := writeFile(t, "inputs.yaml", `
required_output_rpm: 60
required_output_torque: 1200
chosen_service_factor: 1.0
`)

	buf := &bytes.Buffer{}
	cmd := NewGearmotorCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--catalog", catalogDir, "--vendor", "Vector", "--series", "VG-H", inputs})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp struct {
		Status string          `json:"status"`
		Data   GearmotorResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	sel := resp.Data.Selection
	require.Len(t, sel.Candidates, 2)
	assert.Equal(t, "VG-H", sel.SeriesUsed)
	assert.False(t, sel.UsedFallback)

	// The half-horsepower point has the smaller oversize ratio and wins.
	assert.Equal(t, "VG-H63-050", sel.Candidates[0].PartNumber)
	assert.InDelta(t, 1300.0/1200.0, sel.Candidates[0].OversizeRatio, 1e-9)
	assert.Equal(t, "VG-H63-100", sel.Candidates[1].PartNumber)
}

func TestGearmotorNoCandidates(t *testing.T) {
	catalogDir := writeCatalogFixture(t)
	inputs := writeFile(t, "inputs.yaml", `
required_output_rpm: 500
required_output_torque: 1200
chosen_service_factor: 1.0
`)

	buf := &bytes.Buffer{}
	cmd := NewGearmotorCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--catalog", catalogDir, "--vendor", "Vector", "--series", "VG-H", inputs})

	// An empty result is a valid terminal outcome, not an error.
	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No qualifying gearmotors")
}

func TestGearmotorInvalidInputs(t *testing.T) {
	catalogDir := writeCatalogFixture(t)
	inputs := writeFile(t, "inputs.yaml", `
required_output_rpm: 0
required_output_torque: 1200
chosen_service_factor: 1.0
`)

	buf := &bytes.Buffer{}
	cmd := NewGearmotorCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--catalog", catalogDir, "--vendor", "Vector", "--series", "VG-H", inputs})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "required_output_rpm must be greater than 0")
}

func TestGearmotorRecordRequiresDB(t *testing.T) {
	catalogDir := writeCatalogFixture(t)
	inputs := writeFile(t, "inputs.yaml", `
required_output_rpm: 60
required_output_torque: 1200
chosen_service_factor: 1.0
`)

	cmd := NewGearmotorCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--catalog", catalogDir, "--vendor", "Vector", "--series", "VG-H", "--record", inputs})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--record requires --db")
}

func TestGearmotorRecordWritesAuditRun(t *testing.T) {
	catalogDir := writeCatalogFixture(t)
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	// Import first so the database has the series.
	importCmd := NewImportCommand(&RootOptions{Format: "text"})
	importCmd.SetOut(&bytes.Buffer{})
	importCmd.SetErr(&bytes.Buffer{})
	importCmd.SetArgs([]string{"--db", dbPath, catalogDir})
	require.NoError(t, importCmd.Execute())

	inputs := writeFile(t, "inputs.yaml", `
required_output_rpm: 60
required_output_torque: 1200
chosen_service_factor: 1.0
`)

	buf := &bytes.Buffer{}
	cmd := NewGearmotorCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--vendor", "Vector", "--series", "VG-H", "--record", inputs})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp struct {
		Data GearmotorResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.RunID)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()
	count, err := st.CountSelectionRuns(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGearmotorFallbackSeries(t *testing.T) {
	catalogDir := writeCatalogFixture(t)
	inputs := writeFile(t, "inputs.yaml", `
required_output_rpm: 60
required_output_torque: 1200
chosen_service_factor: 1.0
`)

	buf := &bytes.Buffer{}
	cmd := NewGearmotorCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	// Primary series has no points; the fallback is consulted alone.
	cmd.SetArgs([]string{"--catalog", catalogDir, "--vendor", "Vector", "--series", "VG-X", "--fallback-series", "VG-H", inputs})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp struct {
		Data GearmotorResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.True(t, resp.Data.Selection.UsedFallback)
	assert.Equal(t, "VG-H", resp.Data.Selection.SeriesUsed)
	assert.Len(t, resp.Data.Selection.Candidates, 2)
}
