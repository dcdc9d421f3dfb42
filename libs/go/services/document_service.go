package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgerprint/ledgerprint-api/libs/go/constants"
	"github.com/ledgerprint/ledgerprint-api/libs/go/helpers"
	"github.com/ledgerprint/ledgerprint-api/libs/go/interfaces"
	"github.com/ledgerprint/ledgerprint-api/libs/go/layout"
	"github.com/ledgerprint/ledgerprint-api/libs/go/logger"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/business"
	"go.uber.org/zap"
)

// DocumentService runs validate, compute, layout and encode for one draft
type DocumentService struct {
	calculator *LedgerCalculator
	encoder    interfaces.DocumentEncoder
	options    layout.Options
	now        func() time.Time
	log        *logger.StructuredLogger
}

// DocumentOption configures the document service
type DocumentOption func(*DocumentService)

// WithDocumentClock overrides the time source used for timestamps and filenames
func WithDocumentClock(now func() time.Time) DocumentOption {
	return func(s *DocumentService) {
		s.now = now
	}
}

// WithDocumentLogger sets the logger
func WithDocumentLogger(log *zap.Logger) DocumentOption {
	return func(s *DocumentService) {
		s.log = logger.NewStructuredLogger(log, logger.ComponentDocument)
	}
}

// NewDocumentService creates a document service. layoutOptions supplies the issuer, geometry,
// money formatter and measurer; its GeneratedAt is ignored and set per call.
func NewDocumentService(encoder interfaces.DocumentEncoder, layoutOptions layout.Options, opts ...DocumentOption) *DocumentService {
	s := &DocumentService{
		calculator: NewLedgerCalculator(),
		encoder:    encoder,
		options:    layoutOptions,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.NewStructuredLogger(nil, logger.ComponentDocument)
	}
	return s
}

// Validate checks the draft's required fields
func (s *DocumentService) Validate(draft *business.DocumentDraft) error {
	return ValidateDraft(draft)
}

// ComputeTotals validates the draft and returns its totals
func (s *DocumentService) ComputeTotals(ctx context.Context, draft *business.DocumentDraft) (business.TotalsBreakdown, error) {
	if err := ctx.Err(); err != nil {
		return business.TotalsBreakdown{}, err
	}
	if err := s.Validate(draft); err != nil {
		return business.TotalsBreakdown{}, err
	}
	return s.calculator.Compute(draft), nil
}

// Layout validates the draft and returns its placed draw instructions with the totals they show
func (s *DocumentService) Layout(ctx context.Context, draft *business.DocumentDraft) (*layout.Document, business.TotalsBreakdown, error) {
	return s.layoutAt(ctx, draft, s.now())
}

func (s *DocumentService) layoutAt(ctx context.Context, draft *business.DocumentDraft, at time.Time) (*layout.Document, business.TotalsBreakdown, error) {
	totals, err := s.ComputeTotals(ctx, draft)
	if err != nil {
		return nil, business.TotalsBreakdown{}, err
	}

	opts := s.options
	opts.GeneratedAt = at

	doc, err := layout.Render(draft, totals, opts)
	if err != nil {
		return nil, business.TotalsBreakdown{}, fmt.Errorf("failed to lay out document: %w", err)
	}
	return doc, totals, nil
}

// Render produces the encoded document. Nothing is produced for an invalid draft.
func (s *DocumentService) Render(ctx context.Context, draft *business.DocumentDraft) (*business.RenderedDocument, error) {
	at := s.now()
	documentID := helpers.DocumentID(draft.Client.Name, at)
	log := s.log.WithDocument(documentID, draft.Kind.String())

	var (
		doc     *layout.Document
		totals  business.TotalsBreakdown
		content []byte
	)
	err := log.LogOperation("render_document", func() error {
		var err error
		doc, totals, err = s.layoutAt(ctx, draft, at)
		if err != nil {
			return err
		}
		content, err = s.encoder.Encode(doc)
		if err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithField("pages", len(doc.Pages)).WithField("bytes", len(content)).Info("Document rendered")

	return &business.RenderedDocument{
		Filename:    helpers.DocumentFilename(draft.Kind.String(), draft.Client.Name, at),
		MimeType:    constants.PDFMimeType,
		Content:     content,
		Pages:       len(doc.Pages),
		DocumentID:  documentID,
		Totals:      totals,
		GeneratedAt: at,
	}, nil
}
