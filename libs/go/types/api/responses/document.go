package responses

import (
	"github.com/ledgerprint/ledgerprint-api/libs/go/layout"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/business"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// FieldError is one rejected field of a request
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse lists every violation found in a draft
type ValidationErrorResponse struct {
	Error         string       `json:"error"`
	CorrelationID string       `json:"correlation_id,omitempty"`
	Details       []FieldError `json:"details"`
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status string `json:"status"`
}

// TotalsResponse is the computed breakdown with display strings
type TotalsResponse struct {
	Kind      business.DocumentKind    `json:"kind"`
	Number    string                   `json:"number"`
	Totals    business.TotalsBreakdown `json:"totals"`
	Formatted FormattedTotals          `json:"formatted"`
}

// FormattedTotals mirrors the values printed on the document
type FormattedTotals struct {
	Subtotal   string `json:"subtotal"`
	RoundOff   string `json:"round_off"`
	Total      string `json:"total"`
	BalanceDue string `json:"balance_due,omitempty"`
}

// LayoutResponse exposes the draw-instruction stream of a document
type LayoutResponse struct {
	Totals   business.TotalsBreakdown `json:"totals"`
	Document *layout.Document         `json:"document"`
}

// ExportResponse reports a completed blocking export
type ExportResponse struct {
	Status     string   `json:"status"`
	DocumentID string   `json:"document_id"`
	Sheets     []string `json:"sheets"`
}
