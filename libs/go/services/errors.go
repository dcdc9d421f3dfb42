package services

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var (
	// ErrClientNameRequired blocks generation for a draft without a client name
	ErrClientNameRequired = errors.New("client name is required")
	// ErrItemDescriptionRequired blocks generation when any line item lacks a description
	ErrItemDescriptionRequired = errors.New("item description is required")
	// ErrNoLineItems blocks generation for a draft without line items
	ErrNoLineItems = errors.New("at least one line item is required")
	// ErrInvalidRecipient is returned when a document cannot be emailed to the client address
	ErrInvalidRecipient = errors.New("invalid recipient email address")
	// ErrEmailNotConfigured is returned when email delivery was requested but is disabled
	ErrEmailNotConfigured = errors.New("email delivery is not configured")
	// ErrExportNotConfigured is returned when a blocking export is requested but no sink is wired
	ErrExportNotConfigured = errors.New("row export is not configured")
)

// ValidationError describes one invalid field of a draft
type ValidationError struct {
	Err     error
	Field   string
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationErrors flattens a combined validation error into its parts
func ValidationErrors(err error) []*ValidationError {
	var out []*ValidationError
	for _, e := range multierr.Errors(err) {
		var ve *ValidationError
		if errors.As(e, &ve) {
			out = append(out, ve)
		}
	}
	return out
}

// IsValidationError reports whether err contains at least one validation failure
func IsValidationError(err error) bool {
	return len(ValidationErrors(err)) > 0
}

// ExportError is a failed delivery to one sink
type ExportError struct {
	Sheet string
	Err   error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s sheet failed: %v", e.Sheet, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// ExportErrors flattens a combined export error into its per-sheet parts
func ExportErrors(err error) []*ExportError {
	var out []*ExportError
	for _, e := range multierr.Errors(err) {
		var ee *ExportError
		if errors.As(e, &ee) {
			out = append(out, ee)
		}
	}
	return out
}
