package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
	"github.com/mc3abe-oss/conveyor-console/internal/compiler"
)

// LoadMode controls how errors are handled during catalog loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// CatalogSet contains the results of loading catalog definitions from a directory.
type CatalogSet struct {
	Belts      []catalog.BeltCatalogItem
	Pulleys    []catalog.PulleyCatalogItem
	Gearmotors []catalog.GearmotorCandidate
	CUEValue   cue.Value // The raw CUE value for additional processing
	FileCount  int       // Number of CUE files found
}

// LoadError represents an error that occurred during catalog loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadCatalog loads and compiles CUE catalog definitions from a directory.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
func LoadCatalog(dir string, mode LoadMode) (*CatalogSet, []error) {
	var errs []error

	// Verify directory exists
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalog directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing catalog directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	// Find CUE files
	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	// Load CUE instances
	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}

	// Check for load errors
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	// Build value from instance
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	result := &CatalogSet{
		CUEValue:  value,
		FileCount: len(cueFiles),
	}

	// Extract belts
	beltsVal := value.LookupPath(cue.ParsePath("belt"))
	if beltsVal.Exists() {
		iter, iterErr := beltsVal.Fields()
		if iterErr != nil {
			errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating belts: %v", iterErr)})
			if mode == LoadModeFailFast {
				return result, errs
			}
		} else {
			for iter.Next() {
				belt, compileErr := compiler.CompileBelt(iter.Value())
				if compileErr != nil {
					errs = append(errs, convertCompileError(compileErr, "belt."+iter.Label()))
					if mode == LoadModeFailFast {
						return result, errs
					}
					continue
				}
				result.Belts = append(result.Belts, *belt)
			}
		}
	}

	// Extract pulleys
	pulleysVal := value.LookupPath(cue.ParsePath("pulley"))
	if pulleysVal.Exists() {
		iter, iterErr := pulleysVal.Fields()
		if iterErr != nil {
			errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating pulleys: %v", iterErr)})
			if mode == LoadModeFailFast {
				return result, errs
			}
		} else {
			for iter.Next() {
				pulley, compileErr := compiler.CompilePulley(iter.Value())
				if compileErr != nil {
					errs = append(errs, convertCompileError(compileErr, "pulley."+iter.Label()))
					if mode == LoadModeFailFast {
						return result, errs
					}
					continue
				}
				result.Pulleys = append(result.Pulleys, *pulley)
			}
		}
	}

	// Extract gearmotors
	gearmotorsVal := value.LookupPath(cue.ParsePath("gearmotor"))
	if gearmotorsVal.Exists() {
		iter, iterErr := gearmotorsVal.Fields()
		if iterErr != nil {
			errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating gearmotors: %v", iterErr)})
			if mode == LoadModeFailFast {
				return result, errs
			}
		} else {
			for iter.Next() {
				gm, compileErr := compiler.CompileGearmotor(iter.Value())
				if compileErr != nil {
					errs = append(errs, convertCompileError(compileErr, "gearmotor."+iter.Label()))
					if mode == LoadModeFailFast {
						return result, errs
					}
					continue
				}
				result.Gearmotors = append(result.Gearmotors, *gm)
			}
		}
	}

	// Check if we found anything
	if len(result.Belts) == 0 && len(result.Pulleys) == 0 && len(result.Gearmotors) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no belts, pulleys, or gearmotors found in catalog"})
	}

	return result, errs
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error, context string) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // File write error

	// Catalog compile errors
	ErrCodeMissingKey      = "E101" // Missing catalog key / part number
	ErrCodeInvalidGeometry = "E102" // Invalid diameter or face width field
	ErrCodeInvalidEnum     = "E103" // Unknown construction or shaft arrangement
	ErrCodeInvalidProfile  = "E104" // Malformed material profile block
)

// MapFieldToErrorCode maps a compiler error field to an error code. The
// field names match what CompileBelt/CompilePulley/CompileGearmotor put in
// CompileError.Field.
func MapFieldToErrorCode(field string) string {
	switch field {
	case "display_name", "vendor", "series":
		return ErrCodeMissingKey
	case "diameter", "face_width_min", "face_width_max",
		"min_dia_no_vguide", "min_dia_with_vguide", "lagging_thickness_in":
		return ErrCodeInvalidGeometry
	case "construction", "shaft_arrangement":
		return ErrCodeInvalidEnum
	case "material_profile", "material_family",
		"min_dia_no_vguide_in", "min_dia_with_vguide_in",
		"supports_banding", "banding_min_dia_no_vguide_in", "banding_min_dia_with_vguide_in":
		return ErrCodeInvalidProfile
	default:
		return ErrCodeGeneric
	}
}
