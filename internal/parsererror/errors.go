// Package parsererror defines the error taxonomy of the ledger pipeline and the
// rendering used for the tagged failure variant of every response.
package parsererror

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ParseError represents a single cell that could not be converted.
// The coercer logs these and drops the row; they never reach the caller.
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DateFormatError is returned when a reference date supplied by the caller
// does not match the expected layout.
type DateFormatError struct {
	Value  string
	Layout string
	Err    error
}

func (e *DateFormatError) Error() string {
	detail := fmt.Sprintf("cannot parse %q", e.Value)
	if e.Layout != "" {
		detail += fmt.Sprintf(" as %s", e.Layout)
	}
	if e.Err != nil {
		detail += fmt.Sprintf(": %v", e.Err)
	}
	return "date format error: " + detail
}

func (e *DateFormatError) Unwrap() error {
	return e.Err
}

// MissingColumnsError lists the canonical columns absent after normalization.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

// FileNotFoundError is returned when a ledger or settings path does not exist.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("file not found: %s: %v", e.Path, e.Err)
	}
	return "file not found: " + e.Path
}

func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an input file whose format is not supported
// or whose content does not match its extension.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// Describe renders err as the single-line message carried by failure responses.
// Known pipeline errors render their own message; anything else renders as
// "<kind>: <detail>" where kind is the name of the most specific typed error
// found in the wrap chain.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var dateErr *DateFormatError
	var columnsErr *MissingColumnsError
	var notFoundErr *FileNotFoundError
	switch {
	case errors.As(err, &dateErr):
		return dateErr.Error()
	case errors.As(err, &columnsErr):
		return columnsErr.Error()
	case errors.As(err, &notFoundErr):
		return notFoundErr.Error()
	}

	return fmt.Sprintf("%s: %s", Kind(err), err.Error())
}

// Kind derives a short classification for err from its concrete type.
func Kind(err error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if name := typeName(e); name != "" {
			return name
		}
	}
	return "error"
}

// genericTypes are the anonymous carriers produced by errors.New and fmt.Errorf.
var genericTypes = map[string]bool{
	"errorString": true,
	"wrapError":   true,
	"wrapErrors":  true,
	"joinError":   true,
}

func typeName(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" || genericTypes[name] {
		return ""
	}
	return name
}
