package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/token"
	"github.com/spf13/cobra"

	"github.com/mc3abe-oss/conveyor-console/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <catalog-dir>",
		Short: "Validate catalog definitions without importing",
		Long: `Validate CUE belt, pulley, and gearmotor definitions without importing.

Performs syntax checking, schema compilation, and the catalog-write business
rules (diameter ranges, banding flags, internal-bearing station constraints)
without touching a database. Faster than import for authoring feedback.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, catalogDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	// Use shared loader with fail-fast mode for validation
	set, loadErrors := LoadCatalog(catalogDir, LoadModeFailFast)

	// Handle load errors (directory not found, no files, etc.)
	if set == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputValidateError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputValidateError(formatter, ErrCodeGeneric, loadErrors[0].Error(), nil)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", set.FileCount, catalogDir)

	// Validate all catalog items using the loaded CUE value
	validationErrors := validateAll(set.CUEValue, formatter)

	// Add any load errors as validation errors
	for _, err := range loadErrors {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			validationErrors = append(validationErrors, compiler.ValidationError{
				Field:   "load",
				Message: loadErr.Message,
				Code:    loadErr.Code,
				Line:    getLineFromCuePos(loadErr.Pos),
			})
		}
	}

	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, validationErrors)
	}

	// Output success
	return outputValidateSuccess(formatter)
}

// validateAll validates every belt, pulley, and gearmotor in the CUE value.
// Compiles each item and runs the catalog-write business rules on it.
func validateAll(value cue.Value, formatter *OutputFormatter) []compiler.ValidationError {
	var allErrors []compiler.ValidationError
	itemCount := 0

	validateSection := func(path, label string, compile func(cue.Value) (any, error)) {
		sectionVal := value.LookupPath(cue.ParsePath(path))
		if !sectionVal.Exists() {
			return
		}
		iter, err := sectionVal.Fields()
		if err != nil {
			return
		}
		for iter.Next() {
			itemCount++
			name := iter.Label()
			formatter.VerboseLog("Validating %s: %s", label, name)

			item, compileErr := compile(iter.Value())
			if compileErr != nil {
				var cErr *compiler.CompileError
				if errors.As(compileErr, &cErr) {
					allErrors = append(allErrors, compiler.ValidationError{
						Field:   cErr.Field,
						Message: cErr.Message,
						Code:    MapFieldToErrorCode(cErr.Field),
						Line:    getLineFromCuePos(cErr.Pos),
					})
				} else {
					allErrors = append(allErrors, compiler.ValidationError{
						Field:   path + "." + name,
						Message: compileErr.Error(),
						Code:    ErrCodeGeneric,
					})
				}
				continue
			}

			// Run the catalog-write rules on the compiled item. A nil
			// item means the section has no rules beyond compilation.
			if item != nil {
				allErrors = append(allErrors, compiler.Validate(item)...)
			}
		}
	}

	validateSection("belt", "belt", func(v cue.Value) (any, error) {
		item, err := compiler.CompileBelt(v)
		if err != nil {
			return nil, err
		}
		return item, nil
	})
	validateSection("pulley", "pulley", func(v cue.Value) (any, error) {
		item, err := compiler.CompilePulley(v)
		if err != nil {
			return nil, err
		}
		return item, nil
	})
	validateSection("gearmotor", "gearmotor", func(v cue.Value) (any, error) {
		// Performance points have no write-time business rules beyond
		// what compilation enforces.
		_, err := compiler.CompileGearmotor(v)
		return nil, err
	})

	if itemCount == 0 && len(allErrors) == 0 {
		allErrors = append(allErrors, compiler.ValidationError{
			Field:   "catalog",
			Message: "no belts, pulleys, or gearmotors found in catalog",
			Code:    ErrCodeGeneric,
		})
	}

	return allErrors
}

// getLineFromCuePos extracts line number from a token.Pos.
func getLineFromCuePos(pos token.Pos) int {
	if pos.IsValid() {
		return pos.Line()
	}
	return 0
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.Format == "json" {
		result := ValidationResult{Valid: true}
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, "✓ Catalog valid")
	return nil
}

// outputValidateError outputs a single validation error.
func outputValidateError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	// Load errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		result := ValidationResult{
			Valid:  false,
			Errors: errs,
		}

		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}

// ValidateCatalogDir validates all catalog definitions in a directory.
// This is a helper function for external callers.
func ValidateCatalogDir(catalogDir string) ([]compiler.ValidationError, error) {
	set, loadErrors := LoadCatalog(catalogDir, LoadModeFailFast)
	if set == nil && len(loadErrors) > 0 {
		return nil, loadErrors[0]
	}

	silentFormatter := &OutputFormatter{Format: "text", Verbose: false, Writer: io.Discard}
	return validateAll(set.CUEValue, silentFormatter), nil
}
