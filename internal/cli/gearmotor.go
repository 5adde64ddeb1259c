package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
	"github.com/mc3abe-oss/conveyor-console/internal/compiler"
	"github.com/mc3abe-oss/conveyor-console/internal/engine"
	"github.com/mc3abe-oss/conveyor-console/internal/store"
)

// GearmotorOptions holds flags for the gearmotor command.
type GearmotorOptions struct {
	*SourceOptions
	Vendor         string
	Series         string
	FallbackSeries string
	Record         bool
}

// gearmotorRequest is the YAML shape of a selection inputs file.
type gearmotorRequest struct {
	RequiredOutputRPM    float64  `yaml:"required_output_rpm"`
	RequiredOutputTorque float64  `yaml:"required_output_torque"`
	ChosenServiceFactor  float64  `yaml:"chosen_service_factor"`
	SpeedTolerancePct    *float64 `yaml:"speed_tolerance_pct"`
}

// GearmotorResult is the gearmotor command payload.
type GearmotorResult struct {
	Inputs    catalog.GearmotorSelectionInputs `json:"inputs"`
	Selection catalog.GearmotorSelection       `json:"selection"`
	RunID     string                           `json:"run_id,omitempty"`
}

// NewGearmotorCommand creates the gearmotor command.
func NewGearmotorCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GearmotorOptions{SourceOptions: &SourceOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "gearmotor <inputs-file>",
		Short: "Select and rank gearmotors for a requirement set",
		Long: `Select gearmotors from a vendor series against a YAML requirement file.

Candidates whose adjusted capacity meets the required torque and whose output
speed falls inside the tolerance window are ranked by oversize ratio, then
speed delta, then motor power. When the primary series yields nothing the
fallback series (if given) is consulted on its own - pools are never mixed.

Inputs file example:
  required_output_rpm: 60
  required_output_torque: 1200
  chosen_service_factor: 1.2
  speed_tolerance_pct: 10

Example:
  conveyorctl gearmotor --db ./catalog.db --vendor Vector --series VG-H ./inputs.yaml
  conveyorctl gearmotor --db ./catalog.db --vendor Vector --series VG-H --fallback-series VG-S --record ./inputs.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGearmotor(opts, args[0], cmd)
		},
	}

	addSourceFlags(cmd, opts.SourceOptions)
	cmd.Flags().StringVar(&opts.Vendor, "vendor", "", "gearmotor vendor (required)")
	cmd.Flags().StringVar(&opts.Series, "series", "", "primary series (required)")
	cmd.Flags().StringVar(&opts.FallbackSeries, "fallback-series", "", "fallback series consulted when the primary yields nothing")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "record a selection audit run (requires --db)")
	_ = cmd.MarkFlagRequired("vendor")
	_ = cmd.MarkFlagRequired("series")

	return cmd
}

func runGearmotor(opts *GearmotorOptions, inputsPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if err := opts.validate(); err != nil {
		return err
	}
	if opts.Record && opts.Database == "" {
		return NewExitError(ExitCommandError, "--record requires --db")
	}

	inputs, err := loadGearmotorInputs(inputsPath)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load inputs", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	primary, err := opts.findGearmotorSeries(ctx, opts.Vendor, opts.Series)
	if err != nil {
		_ = formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
		return err
	}
	var fallback []catalog.GearmotorCandidate
	if opts.FallbackSeries != "" {
		fallback, err = opts.findGearmotorSeries(ctx, opts.Vendor, opts.FallbackSeries)
		if err != nil {
			_ = formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
			return err
		}
	}
	formatter.VerboseLog("Primary pool %s/%s: %d point(s); fallback: %d point(s)",
		opts.Vendor, opts.Series, len(primary), len(fallback))

	selection, err := engine.SelectGearmotor(primary, fallback, inputs)
	if err != nil {
		if engine.IsInputError(err) {
			_ = formatter.Error(compiler.ErrGearmotorInputRule, err.Error(), nil)
			return WrapExitError(ExitFailure, "invalid selection inputs", err)
		}
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "selection failed", err)
	}

	result := GearmotorResult{Inputs: inputs, Selection: selection}

	if opts.Record {
		st, err := store.Open(opts.Database)
		if err != nil {
			_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()
		runID, err := st.RecordSelectionRun(ctx, inputs, selection)
		if err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to record selection run", err)
		}
		result.RunID = runID
	}

	return formatter.SuccessText(renderGearmotorResult(result), result)
}

// loadGearmotorInputs reads and converts a YAML selection inputs file.
func loadGearmotorInputs(path string) (catalog.GearmotorSelectionInputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.GearmotorSelectionInputs{}, fmt.Errorf("reading inputs file: %w", err)
	}

	var req gearmotorRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return catalog.GearmotorSelectionInputs{}, fmt.Errorf("parsing inputs file: %w", err)
	}

	return catalog.GearmotorSelectionInputs{
		RequiredOutputRPM:    req.RequiredOutputRPM,
		RequiredOutputTorque: req.RequiredOutputTorque,
		ChosenServiceFactor:  req.ChosenServiceFactor,
		SpeedTolerancePct:    req.SpeedTolerancePct,
	}, nil
}

// renderGearmotorResult produces the human-readable gearmotor report.
func renderGearmotorResult(r GearmotorResult) string {
	var b strings.Builder

	if len(r.Selection.Candidates) == 0 {
		b.WriteString("No qualifying gearmotors")
		if r.Selection.UsedFallback {
			b.WriteString(" (fallback series consulted)")
		}
		return b.String()
	}

	fmt.Fprintf(&b, "%d candidate(s) from series %s", len(r.Selection.Candidates), r.Selection.SeriesUsed)
	if r.Selection.UsedFallback {
		b.WriteString(" (fallback)")
	}
	b.WriteString("\n")

	for i, c := range r.Selection.Candidates {
		fmt.Fprintf(&b, "%d. %s  %.2f hp  %.1f rpm  oversize %.3f  speed delta %.2f%%\n",
			i+1, c.PartNumber, c.MotorHP, c.OutputRPM, c.OversizeRatio, c.SpeedDeltaPct)
	}
	if r.RunID != "" {
		fmt.Fprintf(&b, "Recorded run %s\n", r.RunID)
	}
	return strings.TrimRight(b.String(), "\n")
}
