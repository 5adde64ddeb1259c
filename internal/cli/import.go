package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mc3abe-oss/conveyor-console/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database string
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Belts      int `json:"belts"`
	Pulleys    int `json:"pulleys"`
	Gearmotors int `json:"gearmotors"`
	Files      int `json:"files"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <catalog-dir>",
		Short: "Import catalog definitions into a database",
		Long: `Compile CUE catalog definitions and import them into a SQLite database.

Each belt, pulley, and gearmotor is validated against the catalog-write
rules before it is written; a row that fails validation is rejected and the
import stops. The database is created if it does not exist.

Example:
  conveyorctl import --db ./catalog.db ./catalog
  conveyorctl import --db /tmp/test.db ./fixtures/catalog --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runImport(opts *ImportOptions, catalogDir string, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if !opts.Verbose {
		logLevel = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	logger.Info("loading catalog", "dir", catalogDir)
	set, loadErrors := LoadCatalog(catalogDir, LoadModeCollectAll)
	if set == nil && len(loadErrors) > 0 {
		_ = formatter.Error(ErrCodeLoadFailed, loadErrors[0].Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load catalog", loadErrors[0])
	}
	if len(loadErrors) > 0 {
		for _, err := range loadErrors {
			logger.Error("catalog load error", "error", err)
		}
		_ = formatter.Error(ErrCodeLoadFailed, fmt.Sprintf("catalog has %d error(s)", len(loadErrors)), nil)
		return NewExitError(ExitFailure, fmt.Sprintf("catalog has %d error(s)", len(loadErrors)))
	}
	logger.Info("catalog loaded",
		"belts", len(set.Belts), "pulleys", len(set.Pulleys), "gearmotors", len(set.Gearmotors))

	logger.Info("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	for _, belt := range set.Belts {
		if err := st.UpsertBelt(ctx, belt); err != nil {
			return importWriteError(formatter, "belt", belt.CatalogKey, err)
		}
		logger.Debug("imported belt", "catalog_key", belt.CatalogKey)
	}
	for _, pulley := range set.Pulleys {
		if err := st.UpsertPulley(ctx, pulley); err != nil {
			return importWriteError(formatter, "pulley", pulley.CatalogKey, err)
		}
		logger.Debug("imported pulley", "catalog_key", pulley.CatalogKey)
	}
	for _, gm := range set.Gearmotors {
		if err := st.UpsertGearmotor(ctx, gm); err != nil {
			return importWriteError(formatter, "gearmotor", gm.PartNumber, err)
		}
		logger.Debug("imported gearmotor", "part_number", gm.PartNumber)
	}

	result := ImportResult{
		Belts:      len(set.Belts),
		Pulleys:    len(set.Pulleys),
		Gearmotors: len(set.Gearmotors),
		Files:      set.FileCount,
	}
	text := fmt.Sprintf("✓ Imported %d belt(s), %d pulley(s), %d gearmotor(s) from %d file(s)",
		result.Belts, result.Pulleys, result.Gearmotors, result.Files)
	return formatter.SuccessText(text, result)
}

// importWriteError reports one rejected catalog row. Validation rejections
// are failures (exit 1); anything else is a command error (exit 2).
func importWriteError(formatter *OutputFormatter, kind, key string, err error) error {
	var valErr *store.ValidationError
	if errors.As(err, &valErr) {
		_ = formatter.Error(ErrCodeWriteFailed,
			fmt.Sprintf("%s %q rejected: %v", kind, key, err), valErr.Violations)
		return WrapExitError(ExitFailure, fmt.Sprintf("%s %q rejected", kind, key), err)
	}
	_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("failed to write %s %q: %v", kind, key, err), nil)
	return WrapExitError(ExitCommandError, fmt.Sprintf("failed to write %s %q", kind, key), err)
}
