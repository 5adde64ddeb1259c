package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
	"github.com/mc3abe-oss/conveyor-console/internal/engine"
)

// PulleyOptions holds flags for the pulley command.
type PulleyOptions struct {
	*SourceOptions
	CompatibleOnly bool
	Best           bool
}

// pulleyRequest is the YAML shape of a pulley criteria file.
type pulleyRequest struct {
	Station           string   `yaml:"station"`
	FaceWidthRequired float64  `yaml:"face_width_required"`
	MinDiameter       *float64 `yaml:"min_diameter"`
	BeltSpeed         *float64 `yaml:"belt_speed"`
	Diameter          *float64 `yaml:"diameter"`
	Construction      *string  `yaml:"construction"`
}

// PulleyResult is the pulley command payload.
type PulleyResult struct {
	Criteria catalog.PulleyFilterCriteria    `json:"criteria"`
	Results  []catalog.PulleySelectionResult `json:"results"`
	Best     *catalog.PulleySelectionResult  `json:"best,omitempty"`
}

// NewPulleyCommand creates the pulley command.
func NewPulleyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PulleyOptions{SourceOptions: &SourceOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "pulley <criteria-file>",
		Short: "Filter catalog pulleys against a requirement set",
		Long: `Evaluate every catalog pulley against a YAML requirement file.

Each candidate is annotated with its lagging-adjusted effective diameter and
any compatibility issues (station eligibility, face width, minimum diameter,
speed rating). Results are ordered error-free first, then preferred, then by
effective diameter ascending.

Criteria file example:
  station: head_drive
  face_width_required: 18
  min_diameter: 4.5
  belt_speed: 200

Example:
  conveyorctl pulley --db ./catalog.db ./criteria.yaml
  conveyorctl pulley --catalog ./catalog ./criteria.yaml --best --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPulley(opts, args[0], cmd)
		},
	}

	addSourceFlags(cmd, opts.SourceOptions)
	cmd.Flags().BoolVar(&opts.CompatibleOnly, "compatible-only", false, "only list candidates with no error issues")
	cmd.Flags().BoolVar(&opts.Best, "best", false, "report only the single best candidate")

	return cmd
}

func runPulley(opts *PulleyOptions, criteriaPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if err := opts.validate(); err != nil {
		return err
	}

	criteria, err := loadPulleyCriteria(criteriaPath)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load criteria", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	set, err := opts.loadSet(ctx)
	if err != nil {
		_ = formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
		return err
	}
	formatter.VerboseLog("Evaluating %d pulley(s) for station %s", len(set.Pulleys), criteria.Station)

	result := PulleyResult{Criteria: criteria}
	switch {
	case opts.Best:
		result.Best = engine.SelectBestPulley(set.Pulleys, criteria)
		if result.Best == nil {
			_ = formatter.Error(ErrCodeGeneric, "no compatible pulley found", nil)
			return NewExitError(ExitFailure, "no compatible pulley found")
		}
	case opts.CompatibleOnly:
		result.Results = engine.CompatiblePulleys(set.Pulleys, criteria)
	default:
		result.Results = engine.FilterPulleys(set.Pulleys, criteria)
	}

	return formatter.SuccessText(renderPulleyResult(result), result)
}

// loadPulleyCriteria reads and converts a YAML criteria file.
func loadPulleyCriteria(path string) (catalog.PulleyFilterCriteria, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.PulleyFilterCriteria{}, fmt.Errorf("reading criteria file: %w", err)
	}

	var req pulleyRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return catalog.PulleyFilterCriteria{}, fmt.Errorf("parsing criteria file: %w", err)
	}

	station := catalog.Station(req.Station)
	if !catalog.ValidStations[station] {
		return catalog.PulleyFilterCriteria{}, fmt.Errorf("invalid station %q", req.Station)
	}

	criteria := catalog.PulleyFilterCriteria{
		Station:           station,
		FaceWidthRequired: req.FaceWidthRequired,
		MinDiameter:       req.MinDiameter,
		BeltSpeed:         req.BeltSpeed,
		Diameter:          req.Diameter,
	}
	if req.Construction != nil {
		c := catalog.Construction(*req.Construction)
		criteria.Construction = &c
	}
	return criteria, nil
}

// renderPulleyResult produces the human-readable pulley report.
func renderPulleyResult(r PulleyResult) string {
	var b strings.Builder

	if r.Best != nil {
		fmt.Fprintf(&b, "Best: %s (%.2f in effective)", r.Best.Pulley.CatalogKey, r.Best.EffectiveDiameter)
		return b.String()
	}

	fmt.Fprintf(&b, "%d candidate(s) for station %s\n", len(r.Results), r.Criteria.Station)
	for _, res := range r.Results {
		marker := "✓"
		if res.HasErrors() {
			marker = "✗"
		}
		fmt.Fprintf(&b, "%s %s  %.2f in effective\n", marker, res.Pulley.CatalogKey, res.EffectiveDiameter)
		for _, issue := range res.Issues {
			fmt.Fprintf(&b, "    [%s] %s: %s\n", issue.Severity, issue.Code, issue.Message)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
