package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
	"github.com/mc3abe-oss/conveyor-console/internal/engine"
)

// MinDiaResult is the mindia command payload.
type MinDiaResult struct {
	BeltCatalogKey string                              `json:"belt_catalog_key"`
	Effective      catalog.EffectiveMinPulleyDiameters `json:"effective"`
}

// NewMinDiaCommand creates the mindia command.
func NewMinDiaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SourceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "mindia <belt-catalog-key>",
		Short: "Resolve a belt's effective minimum pulley diameters",
		Long: `Resolve the effective minimum pulley diameters for one belt.

Coalesces the material profile fields (when present) over the legacy catalog
columns, field by field, and reports which source each resolution used along
with banding support.

Example:
  conveyorctl mindia --db ./catalog.db PVC120
  conveyorctl mindia --catalog ./catalog PVC120_HF --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMinDia(opts, args[0], cmd)
		},
	}

	addSourceFlags(cmd, opts)
	return cmd
}

func runMinDia(opts *SourceOptions, beltKey string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if err := opts.validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	belt, err := opts.findBelt(ctx, beltKey)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return err
	}

	formatter.VerboseLog("Resolving minimum diameters for %s", belt.CatalogKey)
	effective := engine.ResolveMinPulleyDiameters(belt)

	result := MinDiaResult{
		BeltCatalogKey: belt.CatalogKey,
		Effective:      effective,
	}
	return formatter.SuccessText(renderMinDia(result), result)
}

// renderMinDia produces the human-readable mindia report.
func renderMinDia(r MinDiaResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Belt: %s\n", r.BeltCatalogKey)
	fmt.Fprintf(&b, "  Min diameter (no v-guide):   %.2f in\n", r.Effective.NoVGuide)
	fmt.Fprintf(&b, "  Min diameter (with v-guide): %.2f in\n", r.Effective.WithVGuide)
	fmt.Fprintf(&b, "  Source: %s\n", r.Effective.Source)

	if r.Effective.Banding == nil || !r.Effective.Banding.Supported {
		b.WriteString("  Banding: not supported")
		return b.String()
	}

	b.WriteString("  Banding: supported\n")
	if r.Effective.Banding.MinNoVGuideIn != nil {
		fmt.Fprintf(&b, "    Min diameter (no v-guide):   %.2f in\n", *r.Effective.Banding.MinNoVGuideIn)
	}
	if r.Effective.Banding.MinWithVGuideIn != nil {
		fmt.Fprintf(&b, "    Min diameter (with v-guide): %.2f in\n", *r.Effective.Banding.MinWithVGuideIn)
	}
	return strings.TrimRight(b.String(), "\n")
}
