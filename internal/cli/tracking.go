package cli

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
	"github.com/mc3abe-oss/conveyor-console/internal/engine"
)

// trackingRequest is the YAML shape of a tracking recommendation input file.
type trackingRequest struct {
	LengthIn float64 `yaml:"length_in"`
	WidthIn  float64 `yaml:"width_in"`

	ApplicationClass string `yaml:"application_class"`
	BeltConstruction string `yaml:"belt_construction"`

	Reversing        bool `yaml:"reversing"`
	SideLoading      bool `yaml:"side_loading"`
	LoadVariability  bool `yaml:"load_variability"`
	Environment      bool `yaml:"environment"`
	InstallationRisk bool `yaml:"installation_risk"`

	TrackingPreference string `yaml:"tracking_preference"`
}

// NewTrackingCommand creates the tracking command.
func NewTrackingCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracking <input-file>",
		Short: "Recommend a belt tracking method",
		Long: `Recommend a belt tracking method from geometry and operating conditions.

Computes the length-to-width ratio band, scores the operating disturbances,
and reads the recommendation matrix. A concrete tracking_preference in the
input overrides the matrix verbatim; a weaker-than-recommended override is
honored but flagged with a conflict note.

Input file example:
  length_in: 240
  width_in: 30
  application_class: bulk_handling
  reversing: true
  side_loading: true

Example:
  conveyorctl tracking ./input.yaml
  conveyorctl tracking ./input.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTracking(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runTracking(opts *RootOptions, inputPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	input, err := loadTrackingInput(inputPath)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load input", err)
	}

	formatter.VerboseLog("Recommending tracking for %.0f x %.0f in, %d disturbance(s)",
		input.LengthIn, input.WidthIn, input.DisturbanceCount())

	out := engine.RecommendTracking(input)
	return formatter.SuccessText(renderTracking(out), out)
}

// loadTrackingInput reads and converts a YAML tracking input file.
func loadTrackingInput(path string) (catalog.TrackingRecommendationInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.TrackingRecommendationInput{}, fmt.Errorf("reading input file: %w", err)
	}

	var req trackingRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return catalog.TrackingRecommendationInput{}, fmt.Errorf("parsing input file: %w", err)
	}

	input := catalog.TrackingRecommendationInput{
		LengthIn:         req.LengthIn,
		WidthIn:          req.WidthIn,
		ApplicationClass: req.ApplicationClass,
		BeltConstruction: req.BeltConstruction,
		Reversing:        req.Reversing,
		SideLoading:      req.SideLoading,
		LoadVariability:  req.LoadVariability,
		Environment:      req.Environment,
		InstallationRisk: req.InstallationRisk,
	}

	if req.TrackingPreference != "" {
		pref := catalog.TrackingMode(req.TrackingPreference)
		switch pref {
		case catalog.TrackingAuto, catalog.TrackingCrowned, catalog.TrackingHybrid, catalog.TrackingVGuided:
			input.TrackingPreference = pref
		default:
			return catalog.TrackingRecommendationInput{}, fmt.Errorf("invalid tracking_preference %q", req.TrackingPreference)
		}
	}

	return input, nil
}

// renderTracking produces the human-readable tracking report.
func renderTracking(out catalog.TrackingRecommendationOutput) string {
	var b strings.Builder

	mode := string(out.Mode)
	if out.Overridden {
		mode += " (override)"
	}
	fmt.Fprintf(&b, "Recommended tracking: %s\n", mode)
	fmt.Fprintf(&b, "  L/W ratio: %s (%s band)\n", formatRatio(out.LWRatio), out.Band)
	fmt.Fprintf(&b, "  Disturbances: %d (%s, modified %s)\n", out.DisturbanceCount, out.RawSeverity, out.ModifiedSeverity)
	if out.Note != "" {
		fmt.Fprintf(&b, "  Note: %s\n", out.Note)
	}
	fmt.Fprintf(&b, "  Rationale: %s", out.Rationale)
	return b.String()
}

// formatRatio renders the rounded ratio, using "infinite" for the
// zero-width degenerate case.
func formatRatio(ratio float64) string {
	if math.IsInf(ratio, 1) {
		return "infinite"
	}
	return fmt.Sprintf("%.1f", ratio)
}
