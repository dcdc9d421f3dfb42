package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/ledgerprint/ledgerprint-api/libs/go/constants"
	"github.com/ledgerprint/ledgerprint-api/libs/go/helpers"
	"github.com/ledgerprint/ledgerprint-api/libs/go/interfaces"
	"github.com/ledgerprint/ledgerprint-api/libs/go/logger"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ExportRows holds the two row matrices of one export
type ExportRows struct {
	DocumentID string
	Items      [][]any
	Summary    [][]any
}

// ExportService sends item rows and the summary row to their sinks concurrently
type ExportService struct {
	itemsSink   interfaces.RowSink
	summarySink interfaces.RowSink
	location    *time.Location
	now         func() time.Time
	log         *logger.StructuredLogger
}

// ExportOption configures the export service
type ExportOption func(*ExportService)

// WithExportLocation sets the timezone used for date cells
func WithExportLocation(loc *time.Location) ExportOption {
	return func(s *ExportService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithExportClock overrides the time source
func WithExportClock(now func() time.Time) ExportOption {
	return func(s *ExportService) {
		s.now = now
	}
}

// WithExportLogger sets the logger
func WithExportLogger(log *zap.Logger) ExportOption {
	return func(s *ExportService) {
		s.log = logger.NewStructuredLogger(log, logger.ComponentExport)
	}
}

// NewExportService creates an export service. A nil summary sink reuses the items sink.
func NewExportService(itemsSink, summarySink interfaces.RowSink, opts ...ExportOption) *ExportService {
	if summarySink == nil {
		summarySink = itemsSink
	}
	s := &ExportService{
		itemsSink:   itemsSink,
		summarySink: summarySink,
		location:    helpers.LoadLocation(constants.DefaultExportTimezone),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.NewStructuredLogger(nil, logger.ComponentExport)
	}
	return s
}

// Export delivers both matrices and waits for both calls. Each sink gets a single attempt;
// a failure of one never cancels the other. All failures are combined in the result.
// at is the generation instant of the rendered document, so both carry the same document id;
// a zero at uses the current time.
func (s *ExportService) Export(ctx context.Context, draft *business.DocumentDraft, totals business.TotalsBreakdown, at time.Time) error {
	at = s.instant(at)
	return s.send(ctx, BuildExportRows(draft, totals, at, s.location), at)
}

// ExportAsync builds the rows immediately and delivers them in the background, detached from
// ctx cancellation. The channel yields the combined result once and is then closed; reporting
// that result is left to the reader.
func (s *ExportService) ExportAsync(ctx context.Context, draft *business.DocumentDraft, totals business.TotalsBreakdown, at time.Time) <-chan error {
	at = s.instant(at)
	rows := BuildExportRows(draft, totals, at, s.location)
	detached := context.WithoutCancel(ctx)

	result := make(chan error, 1)
	go func() {
		defer close(result)
		result <- s.send(detached, rows, at)
	}()
	return result
}

func (s *ExportService) instant(at time.Time) time.Time {
	if at.IsZero() {
		return s.now()
	}
	return at
}

func (s *ExportService) send(ctx context.Context, rows ExportRows, at time.Time) error {
	log := s.log.WithDocument(rows.DocumentID, "")
	var itemsErr, summaryErr error

	// errgroup without a derived context, so one failure does not cancel its sibling
	var g errgroup.Group
	g.Go(func() error {
		itemsErr = s.deliver(ctx, log, s.itemsSink, constants.ItemsSheet, rows.Items, at)
		return nil
	})
	g.Go(func() error {
		summaryErr = s.deliver(ctx, log, s.summarySink, constants.SummarySheet, rows.Summary, at)
		return nil
	})
	_ = g.Wait()

	return multierr.Combine(itemsErr, summaryErr)
}

func (s *ExportService) deliver(ctx context.Context, log *logger.StructuredLogger, sink interfaces.RowSink, sheet string, rows [][]any, at time.Time) error {
	start := time.Now()
	err := sink.Append(ctx, sheet, rows, at)
	log.LogExportEvent(sheet, len(rows), time.Since(start), err)
	if err != nil {
		return &ExportError{Sheet: sheet, Err: err}
	}
	return nil
}

// BuildExportRows flattens a draft into one row per line item and exactly one summary row
func BuildExportRows(draft *business.DocumentDraft, totals business.TotalsBreakdown, at time.Time, loc *time.Location) ExportRows {
	if loc == nil {
		loc = time.UTC
	}
	documentID := helpers.DocumentID(draft.Client.Name, at)
	client := draft.Client
	kind := draft.Kind.String()

	advance := decimal.Zero
	if draft.Kind.IsInvoice() {
		advance = draft.AdvancePaid
	}

	items := make([][]any, 0, len(draft.Items))
	quantity := decimal.Zero
	for i, item := range draft.Items {
		quantity = quantity.Add(item.Quantity)
		items = append(items, []any{
			i + 1,
			documentID,
			client.Name,
			client.Email,
			client.Address,
			client.Phone,
			client.PostalCode,
			describe(item),
			number(item.Quantity),
			number(item.UnitPrice),
			number(item.Amount()),
			number(totals.RoundedTotal),
			number(advance),
			kind,
			number(item.DeliveryFee),
			number(item.CornerCuttingFee),
			draft.PaymentMode,
		})
	}

	issued := draft.IssueDate
	if issued.IsZero() {
		issued = at
	}

	summary := [][]any{{
		documentID,
		client.Name,
		client.Email,
		client.Address,
		client.Phone,
		client.PostalCode,
		number(totals.RoundedTotal),
		number(advance),
		number(totals.BalanceDue),
		kind,
		draft.PaymentMode,
		issued.In(loc).Format("2006-01-02"),
		len(draft.Items),
		number(quantity),
		number(totals.Subtotal),
		number(totals.DeliveryTotal),
		number(totals.CornerCuttingTotal),
	}}

	return ExportRows{DocumentID: documentID, Items: items, Summary: summary}
}

func describe(item business.LineItem) string {
	features := item.FeatureLines()
	if len(features) == 0 {
		return item.Description
	}
	return item.Description + " - " + strings.Join(features, ", ")
}

// number keeps exact decimal text on the wire while still encoding as a JSON number
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
