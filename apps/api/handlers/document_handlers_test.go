package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerprint/ledgerprint-api/libs/go/helpers"
	"github.com/ledgerprint/ledgerprint-api/libs/go/layout"
	"github.com/ledgerprint/ledgerprint-api/libs/go/logger"
	"github.com/ledgerprint/ledgerprint-api/libs/go/middleware"
	"github.com/ledgerprint/ledgerprint-api/libs/go/mocks"
	"github.com/ledgerprint/ledgerprint-api/libs/go/services"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/api/responses"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const invoiceBody = `{
	"client": {"name": "Asha Rao", "email": "asha@example.com"},
	"kind": "invoice",
	"number": "INV0042",
	"issue_date": "2024-06-01",
	"items": [{"description": "Counter top", "quantity": 2, "unit_price": "75.375", "delivery_fee": 40}],
	"discount": 20,
	"advance_paid": 100,
	"payment_mode": "UPI"
}`

var fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func init() {
	logger.Log = zap.NewNop()
	gin.SetMode(gin.TestMode)
}

type handlerDeps struct {
	documents *mocks.MockDocumentService
	exports   *mocks.MockExportService
	email     *mocks.MockEmailService
}

func newTestRouter(t *testing.T, withExports, withEmail bool) (*gin.Engine, handlerDeps) {
	deps := handlerDeps{documents: mocks.NewMockDocumentServiceForTest(t)}
	config := DocumentHandlerConfig{
		Documents:  deps.documents,
		Money:      helpers.NewMoneyFormatter("INR", "en-IN"),
		Now:        func() time.Time { return fixedNow },
		Background: func(task func()) { task() },
		Logger:     zap.NewNop(),
	}
	if withExports {
		deps.exports = mocks.NewMockExportServiceForTest(t)
		config.Exports = deps.exports
	}
	if withEmail {
		deps.email = mocks.NewMockEmailServiceForTest(t)
		config.Email = deps.email
	}
	handler := NewDocumentHandler(config)

	router := gin.New()
	router.Use(middleware.CorrelationIDMiddleware())
	router.POST("/documents/totals", handler.ComputeTotals)
	router.POST("/documents/layout", handler.Layout)
	router.POST("/documents/render", handler.Render)
	router.POST("/documents/export", handler.Export)
	return router, deps
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func sampleTotals() business.TotalsBreakdown {
	return services.ComputeTotals(&business.DocumentDraft{
		Kind: business.KindInvoice,
		Items: []business.LineItem{{
			ID:          "1",
			Description: "Counter top",
			Quantity:    decimal.NewFromInt(2),
			UnitPrice:   decimal.RequireFromString("75.375"),
			DeliveryFee: decimal.NewFromInt(40),
		}},
		Discount:    decimal.NewFromInt(20),
		AdvancePaid: decimal.NewFromInt(100),
	})
}

func invalidDraftError() error {
	return multierr.Combine(
		&services.ValidationError{Err: services.ErrClientNameRequired, Field: "client.name"},
		&services.ValidationError{Err: services.ErrItemDescriptionRequired, Field: "items[0].description", Details: "line item 1 has no description"},
	)
}

func TestDocumentHandler_ComputeTotals(t *testing.T) {
	t.Run("returns breakdown with display strings", func(t *testing.T) {
		router, deps := newTestRouter(t, false, false)
		deps.documents.EXPECT().ComputeTotals(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, draft *business.DocumentDraft) (business.TotalsBreakdown, error) {
				assert.Equal(t, "Asha Rao", draft.Client.Name)
				assert.Equal(t, business.KindInvoice, draft.Kind)
				require.Len(t, draft.Items, 1)
				assert.True(t, draft.Items[0].UnitPrice.Equal(decimal.RequireFromString("75.375")))
				return sampleTotals(), nil
			})

		w := post(router, "/documents/totals", invoiceBody)

		require.Equal(t, http.StatusOK, w.Code)
		var resp responses.TotalsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "INV0042", resp.Number)
		assert.Equal(t, "INR 150.75", resp.Formatted.Subtotal)
		assert.Equal(t, "INR 0.25", resp.Formatted.RoundOff)
		assert.Equal(t, "INR 171", resp.Formatted.Total)
		assert.Equal(t, "INR 71", resp.Formatted.BalanceDue)
		assert.True(t, resp.Totals.RoundedTotal.Equal(decimal.NewFromInt(171)))
	})

	t.Run("validation failures list every field", func(t *testing.T) {
		router, deps := newTestRouter(t, false, false)
		deps.documents.EXPECT().ComputeTotals(gomock.Any(), gomock.Any()).
			Return(business.TotalsBreakdown{}, invalidDraftError())

		w := post(router, "/documents/totals", invoiceBody)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp ValidationErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Details, 2)
		assert.Equal(t, "client.name", resp.Details[0].Field)
		assert.Equal(t, "items[0].description", resp.Details[1].Field)
		assert.Contains(t, resp.Details[1].Message, "line item 1")
		assert.NotEmpty(t, resp.CorrelationID)
	})

	t.Run("malformed json is a bad request", func(t *testing.T) {
		router, _ := newTestRouter(t, false, false)

		w := post(router, "/documents/totals", `{"kind":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown kind is a bad request", func(t *testing.T) {
		router, _ := newTestRouter(t, false, false)

		w := post(router, "/documents/totals", `{"kind":"receipt","client":{"name":"A"}}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unknown document kind")
	})

	t.Run("missing kind fails binding", func(t *testing.T) {
		router, _ := newTestRouter(t, false, false)

		w := post(router, "/documents/totals", `{"client":{"name":"A"}}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDocumentHandler_Layout(t *testing.T) {
	router, deps := newTestRouter(t, false, false)
	doc := &layout.Document{Paper: layout.A4, Pages: []layout.Page{{Number: 1}, {Number: 2}}}
	deps.documents.EXPECT().Layout(gomock.Any(), gomock.Any()).Return(doc, sampleTotals(), nil)

	w := post(router, "/documents/layout", invoiceBody)

	require.Equal(t, http.StatusOK, w.Code)
	var resp responses.LayoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Document)
	assert.Len(t, resp.Document.Pages, 2)
	assert.Equal(t, 210.0, resp.Document.Paper.Width)
}

func renderedFixture() *business.RenderedDocument {
	return &business.RenderedDocument{
		Filename:    "invoice_Asha_Rao_1717236000000.pdf",
		MimeType:    "application/pdf",
		Content:     []byte("%PDF-1.3 fake"),
		Pages:       2,
		DocumentID:  "asha_rao_1717236000000",
		Totals:      sampleTotals(),
		GeneratedAt: fixedNow,
	}
}

func TestDocumentHandler_Render(t *testing.T) {
	t.Run("returns the pdf without side effects by default", func(t *testing.T) {
		router, deps := newTestRouter(t, true, true)
		deps.documents.EXPECT().Render(gomock.Any(), gomock.Any()).Return(renderedFixture(), nil)

		w := post(router, "/documents/render", invoiceBody)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="invoice_Asha_Rao_1717236000000.pdf"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "asha_rao_1717236000000", w.Header().Get("X-Document-ID"))
		assert.Equal(t, "2", w.Header().Get("X-Page-Count"))
		assert.Empty(t, w.Header().Get(ExportStatusHeader))
		assert.Equal(t, "%PDF-1.3 fake", w.Body.String())
	})

	t.Run("queues export and email", func(t *testing.T) {
		router, deps := newTestRouter(t, true, true)
		deps.documents.EXPECT().Render(gomock.Any(), gomock.Any()).Return(renderedFixture(), nil)

		result := make(chan error, 1)
		result <- errors.New("sink down")
		close(result)
		deps.exports.EXPECT().ExportAsync(gomock.Any(), gomock.Any(), gomock.Any(), fixedNow).Return(result)
		deps.email.EXPECT().SendDocument(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, email business.DocumentEmail) error {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				assert.Equal(t, "asha@example.com", email.To)
				assert.Equal(t, "INV0042", email.Number)
				assert.Equal(t, "INR 171", email.Total)
				assert.Equal(t, "invoice_Asha_Rao_1717236000000.pdf", email.Filename)
				assert.Equal(t, []byte("%PDF-1.3 fake"), email.Content)
				return nil
			})

		body := strings.Replace(invoiceBody, `"payment_mode": "UPI"`, `"payment_mode": "UPI", "export": true, "send_email": true`, 1)
		w := post(router, "/documents/render", body)

		require.Equal(t, http.StatusOK, w.Code, "export failures never fail rendering")
		assert.Equal(t, "queued", w.Header().Get(ExportStatusHeader))
		assert.Equal(t, "queued", w.Header().Get(EmailStatusHeader))
	})

	t.Run("reports disabled side effects", func(t *testing.T) {
		router, deps := newTestRouter(t, false, false)
		deps.documents.EXPECT().Render(gomock.Any(), gomock.Any()).Return(renderedFixture(), nil)

		w := post(router, "/documents/render", `{"kind":"estimate","client":{"name":"Asha"},"items":[{"description":"x"}],"export":true,"send_email":true}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "disabled", w.Header().Get(ExportStatusHeader))
		assert.Equal(t, "disabled", w.Header().Get(EmailStatusHeader))
	})

	t.Run("skips email without a client address", func(t *testing.T) {
		router, deps := newTestRouter(t, false, true)
		deps.documents.EXPECT().Render(gomock.Any(), gomock.Any()).Return(renderedFixture(), nil)

		w := post(router, "/documents/render", `{"kind":"estimate","client":{"name":"Asha"},"items":[{"description":"x"}],"send_email":true}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "skipped", w.Header().Get(EmailStatusHeader))
	})

	t.Run("invalid draft produces nothing", func(t *testing.T) {
		router, deps := newTestRouter(t, true, true)
		deps.documents.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil, invalidDraftError())

		body := strings.Replace(invoiceBody, `"payment_mode": "UPI"`, `"payment_mode": "UPI", "export": true`, 1)
		w := post(router, "/documents/render", body)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Empty(t, w.Header().Get("Content-Disposition"))
	})

	t.Run("encoder failure is an internal error", func(t *testing.T) {
		router, deps := newTestRouter(t, false, false)
		deps.documents.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

		w := post(router, "/documents/render", invoiceBody)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestDocumentHandler_Export(t *testing.T) {
	t.Run("waits for both sheets", func(t *testing.T) {
		router, deps := newTestRouter(t, true, false)
		totals := sampleTotals()
		deps.documents.EXPECT().ComputeTotals(gomock.Any(), gomock.Any()).Return(totals, nil)
		deps.exports.EXPECT().Export(gomock.Any(), gomock.Any(), totals, fixedNow).Return(nil)

		w := post(router, "/documents/export", invoiceBody)

		require.Equal(t, http.StatusOK, w.Code)
		var resp responses.ExportResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "exported", resp.Status)
		assert.Equal(t, "asha_rao_1717236000000", resp.DocumentID)
		assert.Equal(t, []string{"items", "summary"}, resp.Sheets)
	})

	t.Run("sink failure is a bad gateway", func(t *testing.T) {
		router, deps := newTestRouter(t, true, false)
		deps.documents.EXPECT().ComputeTotals(gomock.Any(), gomock.Any()).Return(sampleTotals(), nil)
		deps.exports.EXPECT().Export(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&services.ExportError{Sheet: "summary", Err: errors.New("503")})

		w := post(router, "/documents/export", invoiceBody)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("invalid draft is never exported", func(t *testing.T) {
		router, deps := newTestRouter(t, true, false)
		deps.documents.EXPECT().ComputeTotals(gomock.Any(), gomock.Any()).
			Return(business.TotalsBreakdown{}, invalidDraftError())

		w := post(router, "/documents/export", invoiceBody)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("unavailable without a sink", func(t *testing.T) {
		router, _ := newTestRouter(t, false, false)

		w := post(router, "/documents/export", invoiceBody)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
