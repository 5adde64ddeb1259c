package compiler

import (
	"fmt"
	"strings"

	"github.com/mc3abe-oss/conveyor-console/internal/catalog"
)

// Validation error codes (E100-E199)
const (
	// General validation errors (E100)
	ErrUnsupportedType = "E100" // unsupported value type for validation

	// Belt errors (E110-E119)
	ErrBeltRule    = "E110" // belt catalog row rule violated
	ErrProfileRule = "E111" // material profile rule violated
	ErrBandingRule = "E112" // banding field without supports_banding

	// Pulley errors (E120-E129)
	ErrPulleyRule           = "E120" // pulley catalog row rule violated
	ErrInternalBearingsRule = "E121" // INTERNAL_BEARINGS station constraint

	// Gearmotor errors (E130-E139)
	ErrGearmotorInputRule = "E130" // selection input rule violated
)

// ValidationError represents a catalog-write validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate applies the catalog-write business rules to a compiled item.
// Returns all errors found (does not fail-fast). Supports BeltCatalogItem,
// PulleyCatalogItem, MaterialProfile, and GearmotorSelectionInputs.
//
// The underlying rule checks live in the catalog package so the store and
// the engines share exactly one implementation; this wrapper attaches the
// error codes the CLI and admin surfaces key on.
func Validate(v any) []ValidationError {
	switch item := v.(type) {
	case *catalog.BeltCatalogItem:
		return beltErrors(catalog.ValidateBeltCatalogItem(*item))
	case catalog.BeltCatalogItem:
		return beltErrors(catalog.ValidateBeltCatalogItem(item))
	case *catalog.MaterialProfile:
		return beltErrors(catalog.ValidateMaterialProfile(item))
	case *catalog.PulleyCatalogItem:
		return pulleyErrors(catalog.ValidatePulleyCatalogItem(*item))
	case catalog.PulleyCatalogItem:
		return pulleyErrors(catalog.ValidatePulleyCatalogItem(item))
	case catalog.GearmotorSelectionInputs:
		return inputErrors(catalog.ValidateGearmotorSelectionInputs(item))
	default:
		return []ValidationError{{
			Field:   "value",
			Message: fmt.Sprintf("unsupported type for validation: %T", v),
			Code:    ErrUnsupportedType,
		}}
	}
}

func beltErrors(violations []string) []ValidationError {
	errs := make([]ValidationError, 0, len(violations))
	for _, msg := range violations {
		code := ErrBeltRule
		switch {
		case strings.Contains(msg, "banding"):
			code = ErrBandingRule
		case strings.Contains(msg, "material_family") || strings.Contains(msg, "_in "):
			code = ErrProfileRule
		}
		errs = append(errs, ValidationError{Field: fieldOfViolation(msg), Message: msg, Code: code})
	}
	return errs
}

func pulleyErrors(violations []string) []ValidationError {
	errs := make([]ValidationError, 0, len(violations))
	for _, msg := range violations {
		code := ErrPulleyRule
		if strings.HasPrefix(msg, "INTERNAL_BEARINGS") {
			code = ErrInternalBearingsRule
		}
		errs = append(errs, ValidationError{Field: fieldOfViolation(msg), Message: msg, Code: code})
	}
	return errs
}

func inputErrors(violations []string) []ValidationError {
	errs := make([]ValidationError, 0, len(violations))
	for _, msg := range violations {
		errs = append(errs, ValidationError{Field: fieldOfViolation(msg), Message: msg, Code: ErrGearmotorInputRule})
	}
	return errs
}

// fieldOfViolation extracts the leading field token from a violation
// message. The catalog validators phrase every message as
// "<field> <constraint>".
func fieldOfViolation(msg string) string {
	if i := strings.IndexByte(msg, ' '); i > 0 {
		return msg[:i]
	}
	return msg
}
