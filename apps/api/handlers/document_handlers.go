package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerprint/ledgerprint-api/libs/go/constants"
	"github.com/ledgerprint/ledgerprint-api/libs/go/helpers"
	"github.com/ledgerprint/ledgerprint-api/libs/go/interfaces"
	"github.com/ledgerprint/ledgerprint-api/libs/go/layout"
	"github.com/ledgerprint/ledgerprint-api/libs/go/logger"
	"github.com/ledgerprint/ledgerprint-api/libs/go/middleware"
	"github.com/ledgerprint/ledgerprint-api/libs/go/services"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/api/requests"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/api/responses"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/business"
	"go.uber.org/zap"
)

// Side-effect states reported in response headers of the render endpoint
const (
	ExportStatusHeader = "X-Export-Status"
	EmailStatusHeader  = "X-Email-Status"

	statusQueued   = "queued"
	statusDisabled = "disabled"
	statusSkipped  = "skipped"

	emailTimeout = 30 * time.Second
)

// DocumentHandler serves totals, layout, rendering and export of document drafts
type DocumentHandler struct {
	documents  interfaces.DocumentService
	exports    interfaces.ExportService
	email      interfaces.EmailService
	money      layout.MoneyFormatter
	location   *time.Location
	now        func() time.Time
	background func(task func())
	logger     *zap.Logger
}

// DocumentHandlerConfig contains the dependencies of DocumentHandler.
// Exports and Email are optional; leave them nil to disable the side effect.
type DocumentHandlerConfig struct {
	Documents  interfaces.DocumentService
	Exports    interfaces.ExportService
	Email      interfaces.EmailService
	Money      layout.MoneyFormatter
	Location   *time.Location
	Now        func() time.Time
	Background func(task func())
	Logger     *zap.Logger
}

func NewDocumentHandler(config DocumentHandlerConfig) *DocumentHandler {
	h := &DocumentHandler{
		documents:  config.Documents,
		exports:    config.Exports,
		email:      config.Email,
		money:      config.Money,
		location:   config.Location,
		now:        config.Now,
		background: config.Background,
		logger:     config.Logger,
	}
	if h.location == nil {
		h.location = time.UTC
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.background == nil {
		h.background = func(task func()) { go task() }
	}
	if h.logger == nil {
		h.logger = logger.Log
	}
	return h
}

func (h *DocumentHandler) bindDraft(c *gin.Context, req *requests.DocumentRequest) (*business.DocumentDraft, bool) {
	draft, err := req.ToDraft(h.now(), h.location)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return nil, false
	}
	return draft, true
}

// ComputeTotals returns the totals breakdown of a draft
// POST /api/v1/documents/totals
func (h *DocumentHandler) ComputeTotals(c *gin.Context) {
	var req requests.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	draft, ok := h.bindDraft(c, &req)
	if !ok {
		return
	}

	totals, err := h.documents.ComputeTotals(c.Request.Context(), draft)
	if err != nil {
		handleServiceError(c, err, "Failed to compute totals")
		return
	}

	formatted := responses.FormattedTotals{
		Subtotal: h.money.Format(totals.Subtotal),
		RoundOff: h.money.Format(totals.RoundOff),
		Total:    h.money.FormatWhole(totals.RoundedTotal),
	}
	if draft.Kind.IsInvoice() && totals.AdvancePaid.IsPositive() {
		formatted.BalanceDue = h.money.FormatWhole(totals.BalanceDue)
	}

	sendSuccess(c, http.StatusOK, responses.TotalsResponse{
		Kind:      draft.Kind,
		Number:    draft.DisplayNumber(),
		Totals:    totals,
		Formatted: formatted,
	})
}

// Layout returns the draw-instruction stream of a draft
// POST /api/v1/documents/layout
func (h *DocumentHandler) Layout(c *gin.Context) {
	var req requests.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	draft, ok := h.bindDraft(c, &req)
	if !ok {
		return
	}

	doc, totals, err := h.documents.Layout(c.Request.Context(), draft)
	if err != nil {
		handleServiceError(c, err, "Failed to lay out document")
		return
	}

	sendSuccess(c, http.StatusOK, responses.LayoutResponse{Totals: totals, Document: doc})
}

// Render returns the PDF as an attachment. Export and email run in the
// background and never delay or fail the response.
// POST /api/v1/documents/render
func (h *DocumentHandler) Render(c *gin.Context) {
	var req requests.RenderDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	draft, ok := h.bindDraft(c, &req.DocumentRequest)
	if !ok {
		return
	}

	rendered, err := h.documents.Render(c.Request.Context(), draft)
	if err != nil {
		handleServiceError(c, err, "Failed to render document")
		return
	}

	log := h.logger.With(
		zap.String("correlation_id", middleware.GetCorrelationID(c)),
		zap.String("document_id", rendered.DocumentID),
	)

	if req.Export {
		c.Header(ExportStatusHeader, h.queueExport(c.Request.Context(), draft, rendered, log))
	}
	if req.SendEmail {
		c.Header(EmailStatusHeader, h.queueEmail(c.Request.Context(), draft, rendered, log))
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, rendered.Filename))
	c.Header("X-Document-ID", rendered.DocumentID)
	c.Header("X-Page-Count", strconv.Itoa(rendered.Pages))
	c.Data(http.StatusOK, rendered.MimeType, rendered.Content)
}

// queueExport sends the rows under the rendered document's id
func (h *DocumentHandler) queueExport(ctx context.Context, draft *business.DocumentDraft, rendered *business.RenderedDocument, log *zap.Logger) string {
	if h.exports == nil {
		return statusDisabled
	}
	result := h.exports.ExportAsync(ctx, draft, rendered.Totals, rendered.GeneratedAt)
	h.background(func() {
		if err := <-result; err != nil {
			log.Error("Background export failed", zap.Error(err))
			return
		}
		log.Info("Background export completed")
	})
	return statusQueued
}

func (h *DocumentHandler) queueEmail(ctx context.Context, draft *business.DocumentDraft, rendered *business.RenderedDocument, log *zap.Logger) string {
	if h.email == nil {
		return statusDisabled
	}
	if draft.Client.Email == "" {
		return statusSkipped
	}

	message := business.DocumentEmail{
		To:          draft.Client.Email,
		ClientName:  draft.Client.Name,
		Kind:        draft.Kind,
		Number:      draft.DisplayNumber(),
		Total:       h.money.FormatWhole(rendered.Totals.RoundedTotal),
		Filename:    rendered.Filename,
		Content:     rendered.Content,
		ContentType: rendered.MimeType,
	}
	detached := context.WithoutCancel(ctx)
	h.background(func() {
		sendCtx, cancel := context.WithTimeout(detached, emailTimeout)
		defer cancel()
		if err := h.email.SendDocument(sendCtx, message); err != nil {
			log.Error("Failed to email document", zap.Error(err))
			return
		}
		log.Info("Document emailed", zap.String("to", message.To))
	})
	return statusQueued
}

// Export delivers the rows of a draft and waits for both sheets
// POST /api/v1/documents/export
func (h *DocumentHandler) Export(c *gin.Context) {
	if h.exports == nil {
		sendError(c, http.StatusServiceUnavailable, "Row export is not configured", services.ErrExportNotConfigured)
		return
	}

	var req requests.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	draft, ok := h.bindDraft(c, &req)
	if !ok {
		return
	}

	totals, err := h.documents.ComputeTotals(c.Request.Context(), draft)
	if err != nil {
		handleServiceError(c, err, "Failed to compute totals")
		return
	}

	at := h.now()
	if err := h.exports.Export(c.Request.Context(), draft, totals, at); err != nil {
		sendError(c, http.StatusBadGateway, "Row export failed", err)
		return
	}

	sendSuccess(c, http.StatusOK, responses.ExportResponse{
		Status:     "exported",
		DocumentID: helpers.DocumentID(draft.Client.Name, at),
		Sheets:     []string{constants.ItemsSheet, constants.SummarySheet},
	})
}
