package compiler

import (
	"strconv"

	"cuelang.org/go/cue"
)

// Field access helpers shared by the belt/pulley/gearmotor compilers. All
// of them surface CUE evaluation failures as *CompileError with the field
// name the administrator wrote.

// labelOf returns the last path selector of a CUE value - the struct label
// the item was authored under, which becomes its catalog key. Quoted labels
// (part numbers contain dashes) are unquoted.
func labelOf(v cue.Value) string {
	selectors := v.Path().Selectors()
	if len(selectors) == 0 {
		return ""
	}
	label := selectors[len(selectors)-1].String()
	if unquoted, err := strconv.Unquote(label); err == nil {
		return unquoted
	}
	return label
}

// requiredString reads a required string field.
func requiredString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", &CompileError{Field: field, Message: field + " is required", Pos: v.Pos()}
	}
	s, err := fv.String()
	if err != nil {
		return "", &CompileError{Field: field, Message: "must be a string", Pos: fv.Pos()}
	}
	return s, nil
}

// optionalString reads an optional string field, returning "" when absent.
func optionalString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", &CompileError{Field: field, Message: "must be a string", Pos: fv.Pos()}
	}
	return s, nil
}

// requiredFloat reads a required numeric field.
func requiredFloat(v cue.Value, field string) (float64, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return 0, &CompileError{Field: field, Message: field + " is required", Pos: v.Pos()}
	}
	f, err := fv.Float64()
	if err != nil {
		return 0, &CompileError{Field: field, Message: "must be a number", Pos: fv.Pos()}
	}
	return f, nil
}

// optionalFloat reads an optional numeric field, returning a nil pointer
// when absent.
func optionalFloat(v cue.Value, field string) (*float64, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, nil
	}
	f, err := fv.Float64()
	if err != nil {
		return nil, &CompileError{Field: field, Message: "must be a number", Pos: fv.Pos()}
	}
	return &f, nil
}

// optionalFloatDefault reads an optional numeric field with a fallback.
func optionalFloatDefault(v cue.Value, field string, def float64) (float64, error) {
	p, err := optionalFloat(v, field)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return def, nil
	}
	return *p, nil
}

// optionalBool reads an optional boolean field, defaulting to false.
func optionalBool(v cue.Value, field string) (bool, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return false, nil
	}
	b, err := fv.Bool()
	if err != nil {
		return false, &CompileError{Field: field, Message: "must be a boolean", Pos: fv.Pos()}
	}
	return b, nil
}
