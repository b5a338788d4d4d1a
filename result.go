package rulekit

import (
	"slices"

	json "github.com/goccy/go-json"
)

// FieldErrors is the evaluation result of one schema field.
//
// For a field declared with Rules, Errors lists the failed rule names in
// declaration order. For an OR-group where every alternative failed,
// Alternatives holds one failure list per alternative, in declaration order.
// A passing field has neither.
type FieldErrors struct {
	Errors       []string
	Alternatives [][]string
}

// Valid reports whether the field passed.
func (e FieldErrors) Valid() bool {
	for _, alt := range e.Alternatives {
		if len(alt) == 0 {
			return true
		}
	}
	return len(e.Errors) == 0 && len(e.Alternatives) == 0
}

// MarshalJSON encodes the field either as a list of rule names or, for a
// failed OR-group, as a list of lists.
func (e FieldErrors) MarshalJSON() ([]byte, error) {
	if len(e.Alternatives) > 0 {
		return json.Marshal(e.Alternatives)
	}
	if e.Errors == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e.Errors)
}

// SchemaErrors maps field names to their evaluation results.
type SchemaErrors map[string]FieldErrors

// Valid reports whether every field passed.
func (s SchemaErrors) Valid() bool {
	for _, e := range s {
		if !e.Valid() {
			return false
		}
	}
	return true
}

// Failed returns the sorted names of the fields that did not pass.
func (s SchemaErrors) Failed() []string {
	var fields []string
	for name, e := range s {
		if !e.Valid() {
			fields = append(fields, name)
		}
	}
	slices.Sort(fields)
	return fields
}
