// Package errors provides structured error types for the demand pipeline.
//
// Only structural failures are represented as errors: a sheet with no data
// rows, a required column absent from the input schema, or no input workbook
// to process. Conversion failures and business-rule violations are recorded
// as report content by the validation layer, never raised as errors.
package errors

import (
	"errors"
	"fmt"
)

// PipelineError represents a structured pipeline failure.
type PipelineError struct {
	Code    string      `json:"error_code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is matches errors by code, so sentinels match derived instances.
func (e *PipelineError) Is(target error) bool {
	var pe *PipelineError
	if errors.As(target, &pe) {
		return pe.Code == e.Code
	}
	return false
}

// New creates a new PipelineError with the given code and message.
func New(code, message string) *PipelineError {
	return &PipelineError{Code: code, Message: message}
}

// Wrap creates a new PipelineError wrapping an underlying cause.
func Wrap(err error, code, message string) *PipelineError {
	return &PipelineError{Code: code, Message: message, Err: err}
}

// Error codes for structural failures.
const (
	CodeEmptySheet    = "EMPTY_SHEET"
	CodeMissingColumn = "MISSING_COLUMN"
	CodeSheetNotFound = "SHEET_NOT_FOUND"
	CodeNoInputFile   = "NO_INPUT_FILE"
)

// Predefined sentinels for structural failures.
var (
	ErrEmptySheet    = New(CodeEmptySheet, "sheet has no data rows")
	ErrMissingColumn = New(CodeMissingColumn, "required column absent from sheet schema")
	ErrSheetNotFound = New(CodeSheetNotFound, "sheet not present in workbook")
	ErrNoInputFile   = New(CodeNoInputFile, "no input workbook found")
)

// EmptySheet returns an EMPTY_SHEET error naming the offending sheet.
func EmptySheet(sheet string) *PipelineError {
	return &PipelineError{
		Code:    CodeEmptySheet,
		Message: fmt.Sprintf("sheet %q has no data rows", sheet),
		Details: map[string]string{"sheet": sheet},
	}
}

// MissingColumn returns a MISSING_COLUMN error naming the sheet and column.
func MissingColumn(sheet, column string) *PipelineError {
	return &PipelineError{
		Code:    CodeMissingColumn,
		Message: fmt.Sprintf("sheet %q is missing required column %q", sheet, column),
		Details: map[string]string{"sheet": sheet, "column": column},
	}
}

// SheetNotFound returns a SHEET_NOT_FOUND error naming the sheet.
func SheetNotFound(sheet string) *PipelineError {
	return &PipelineError{
		Code:    CodeSheetNotFound,
		Message: fmt.Sprintf("sheet %q not present in workbook", sheet),
		Details: map[string]string{"sheet": sheet},
	}
}
