package interfaces

import (
	"context"
	"time"

	"github.com/ledgerprint/ledgerprint-api/libs/go/layout"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/business"
)

// RowSink is an opaque, send-only tabular store
type RowSink interface {
	Append(ctx context.Context, sheet string, rows [][]any, timestamp time.Time) error
}

// DocumentService validates drafts and produces totals, layouts and encoded documents
type DocumentService interface {
	Validate(draft *business.DocumentDraft) error
	ComputeTotals(ctx context.Context, draft *business.DocumentDraft) (business.TotalsBreakdown, error)
	Layout(ctx context.Context, draft *business.DocumentDraft) (*layout.Document, business.TotalsBreakdown, error)
	Render(ctx context.Context, draft *business.DocumentDraft) (*business.RenderedDocument, error)
}

// ExportService delivers a draft's rows to the item and summary sinks. at is the document's
// generation instant and fixes the exported document id.
type ExportService interface {
	Export(ctx context.Context, draft *business.DocumentDraft, totals business.TotalsBreakdown, at time.Time) error
	ExportAsync(ctx context.Context, draft *business.DocumentDraft, totals business.TotalsBreakdown, at time.Time) <-chan error
}

// EmailService sends rendered documents to clients
type EmailService interface {
	SendDocument(ctx context.Context, email business.DocumentEmail) error
}

// DocumentEncoder turns a layout into bytes
type DocumentEncoder interface {
	Encode(doc *layout.Document) ([]byte, error)
}
