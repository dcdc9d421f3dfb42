package layout_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ledgerprint/ledgerprint-api/libs/go/helpers"
	"github.com/ledgerprint/ledgerprint-api/libs/go/layout"
	"github.com/ledgerprint/ledgerprint-api/libs/go/services"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/business"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

func testOptions(g layout.Geometry) layout.Options {
	return layout.Options{
		Issuer: layout.IssuerProfile{
			Name:    "Blessing Designers",
			Address: "12 Market Road",
			City:    "Bengaluru",
		},
		Geometry:    g,
		Money:       helpers.NewMoneyFormatter("INR", "en-IN"),
		Measurer:    layout.FixedWidthMeasurer{},
		GeneratedAt: generatedAt,
	}
}

func draftWithItems(kind business.DocumentKind, n int) *business.DocumentDraft {
	draft := &business.DocumentDraft{
		Client:    business.ClientInfo{Name: "Asha Rao"},
		IssueDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Kind:      kind,
	}
	for i := 1; i <= n; i++ {
		draft.Items = append(draft.Items, business.LineItem{
			ID:          fmt.Sprint(i),
			Description: fmt.Sprintf("Item %d", i),
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(10),
		})
	}
	return draft
}

func render(t *testing.T, draft *business.DocumentDraft, g layout.Geometry) *layout.Document {
	t.Helper()
	doc, err := layout.Render(draft, services.ComputeTotals(draft), testOptions(g))
	require.NoError(t, err)
	return doc
}

func findText(page layout.Page, text string) (layout.TextRun, bool) {
	for _, run := range page.Texts() {
		if run.Text == text {
			return run, true
		}
	}
	return layout.TextRun{}, false
}

func itemRows(table *layout.TableRegion) []layout.TableRow {
	var rows []layout.TableRow
	for _, row := range table.Rows {
		if !row.Header {
			rows = append(rows, row)
		}
	}
	return rows
}

func TestRender_PaginatesLongTable(t *testing.T) {
	g := layout.DefaultGeometry()
	g.Paper = layout.PaperSize{Name: "Tall", Width: 210, Height: 350}

	doc := render(t, draftWithItems(business.KindEstimate, 40), g)

	require.Len(t, doc.Pages, 2)

	first := doc.Pages[0].Tables()
	require.Len(t, first, 1)
	assert.True(t, first[0].Rows[0].Header)
	assert.Len(t, itemRows(first[0]), 25)

	second := doc.Pages[1].Tables()
	require.Len(t, second, 1)
	assert.True(t, second[0].Rows[0].Header, "header row must repeat on continuation pages")
	assert.Equal(t, g.ContinuationTop, second[0].Rows[0].Y)
	rows := itemRows(second[0])
	require.Len(t, rows, 15)
	assert.Equal(t, "Item 26", rows[0].Cells[0].Lines[0])

	subtotal, ok := findText(doc.Pages[1], "Subtotal:")
	require.True(t, ok, "totals must follow the last row on page 2")
	last := rows[len(rows)-1]
	assert.Greater(t, subtotal.Y, last.Y+last.Height)

	_, onFirst := findText(doc.Pages[0], "Subtotal:")
	assert.False(t, onFirst)

	// header and recipient are page 1 only
	_, ok = findText(doc.Pages[1], "TO")
	assert.False(t, ok)
}

func TestRender_RowsNeverCrossBottomMargin(t *testing.T) {
	g := layout.DefaultGeometry()
	draft := draftWithItems(business.KindInvoice, 30)
	draft.Items[4].Features = []string{"first", "second", "third", "fourth"}

	doc := render(t, draft, g)

	for _, page := range doc.Pages {
		for _, table := range page.Tables() {
			for _, row := range table.Rows {
				assert.LessOrEqual(t, row.Y+row.Height, g.BottomLimit(), "page %d", page.Number)
			}
		}
	}
}

func TestRender_RecipientSlotsAreFixed(t *testing.T) {
	full := draftWithItems(business.KindEstimate, 1)
	full.Client = business.ClientInfo{
		Name:       "Asha Rao",
		Address:    "4 Lake View",
		PostalCode: "560001",
		Phone:      "+91 98450 12345",
		Email:      "asha@example.com",
	}
	sparse := draftWithItems(business.KindEstimate, 1)
	sparse.Client = business.ClientInfo{Name: "Asha Rao", Email: "asha@example.com"}

	fullDoc := render(t, full, layout.DefaultGeometry())
	sparseDoc := render(t, sparse, layout.DefaultGeometry())

	fullEmail, ok := findText(fullDoc.Pages[0], "Email: asha@example.com")
	require.True(t, ok)
	sparseEmail, ok := findText(sparseDoc.Pages[0], "Email: asha@example.com")
	require.True(t, ok)
	assert.Equal(t, fullEmail.Y, sparseEmail.Y)
	assert.Equal(t, 105.0, sparseEmail.Y)

	_, ok = findText(sparseDoc.Pages[0], "Phone: ")
	assert.False(t, ok, "absent fields draw nothing")
	for _, run := range sparseDoc.Pages[0].Texts() {
		assert.NotContains(t, run.Text, "PIN: ")
	}

	name, ok := findText(sparseDoc.Pages[0], "Asha Rao")
	require.True(t, ok)
	assert.Equal(t, 80.0, name.Y)
	assert.Equal(t, layout.StyleBold, name.Font.Style)
}

func TestRender_TotalsBlockIsAtomic(t *testing.T) {
	g := layout.DefaultGeometry()
	// 18 rows end at 267, leaving no room for the totals block above 272
	doc := render(t, draftWithItems(business.KindEstimate, 18), g)

	require.Len(t, doc.Pages, 2)
	assert.Len(t, itemRows(doc.Pages[0].Tables()[0]), 18)
	assert.Empty(t, doc.Pages[1].Tables(), "a page holding only totals has no table header")

	_, ok := findText(doc.Pages[0], "Subtotal:")
	assert.False(t, ok)
	subtotal, ok := findText(doc.Pages[1], "Subtotal:")
	require.True(t, ok)
	total, ok := findText(doc.Pages[1], "Total:")
	require.True(t, ok)
	assert.Less(t, subtotal.Y, total.Y)
	assert.Greater(t, subtotal.Y, g.ContinuationTop)
}

func TestRender_FooterOnLastPageOnly(t *testing.T) {
	doc := render(t, draftWithItems(business.KindEstimate, 30), layout.DefaultGeometry())
	require.Greater(t, len(doc.Pages), 1)

	for i, page := range doc.Pages {
		_, ok := findText(page, "Thank you for your business!")
		assert.Equal(t, i == len(doc.Pages)-1, ok, "page %d", page.Number)
	}

	last := doc.Pages[len(doc.Pages)-1]
	footer, _ := findText(last, "Thank you for your business!")
	assert.Equal(t, 286.0, footer.Y)
	assert.Equal(t, layout.AlignCenter, footer.Align)
}

func TestRender_TotalsLines(t *testing.T) {
	draft := draftWithItems(business.KindInvoice, 1)
	draft.Items[0].Quantity = decimal.NewFromInt(3)
	draft.Items[0].UnitPrice = decimal.RequireFromString("50.25")
	draft.Items[0].DeliveryFee = decimal.NewFromInt(40)
	draft.Discount = decimal.NewFromInt(20)
	draft.AdvancePaid = decimal.NewFromInt(100)
	draft.PaymentMode = "UPI"

	doc := render(t, draft, layout.DefaultGeometry())
	require.Len(t, doc.Pages, 1)
	page := doc.Pages[0]

	var labels []string
	values := map[string]string{}
	for _, run := range page.Texts() {
		if strings.HasSuffix(run.Text, ":") && run.Align == layout.AlignRight && run.X == 160 {
			labels = append(labels, run.Text)
		}
	}
	assert.Equal(t, []string{"Subtotal:", "Delivery Fee:", "Discount:", "Round Off:", "Total:", "Advance Paid:", "Balance Due:"}, labels)

	for _, label := range labels {
		run, _ := findText(page, label)
		for _, v := range page.Texts() {
			if v.X == 196 && v.Y == run.Y {
				values[label] = v.Text
			}
		}
	}
	assert.Equal(t, "INR 150.75", values["Subtotal:"])
	assert.Equal(t, "INR 40.00", values["Delivery Fee:"])
	assert.Equal(t, "INR -20.00", values["Discount:"])
	assert.Equal(t, "INR 0.25", values["Round Off:"])
	assert.Equal(t, "INR 171", values["Total:"])
	assert.Equal(t, "INR 100.00", values["Advance Paid:"])
	assert.Equal(t, "INR 71", values["Balance Due:"])

	total, _ := findText(page, "Total:")
	assert.Equal(t, layout.StyleBold, total.Font.Style)
	mode, ok := findText(page, "Mode of Payment: UPI")
	require.True(t, ok)
	assert.Equal(t, total.Y+7, mode.Y)

	headerTotal, ok := findText(page, "INR 171")
	require.True(t, ok)
	assert.Equal(t, 62.0, headerTotal.Y, "first occurrence is the header total")
}

func TestRender_EstimateHidesInvoiceLines(t *testing.T) {
	draft := draftWithItems(business.KindEstimate, 2)
	draft.AdvancePaid = decimal.NewFromInt(5)
	draft.PaymentMode = "Cash"

	doc := render(t, draft, layout.DefaultGeometry())
	page := doc.Pages[0]

	for _, hidden := range []string{"Advance Paid:", "Balance Due:", "Delivery Fee:", "Round Off:", "Mode of Payment: Cash"} {
		_, ok := findText(page, hidden)
		assert.False(t, ok, hidden)
	}
	_, ok := findText(page, "Blessing Designers - ESTIMATE EST0001")
	assert.True(t, ok)
	_, ok = findText(page, "01/06/2024 10:30:00")
	assert.True(t, ok)
	_, ok = findText(page, "Jun 1, 2024")
	assert.True(t, ok)
}

func TestRender_OversizedRowStillProgresses(t *testing.T) {
	draft := draftWithItems(business.KindEstimate, 1)
	for i := 0; i < 100; i++ {
		draft.Items[0].Features = append(draft.Items[0].Features, fmt.Sprintf("note %d", i))
	}

	doc := render(t, draft, layout.DefaultGeometry())

	require.Len(t, doc.Pages, 3)
	assert.Empty(t, itemRows(doc.Pages[0].Tables()[0]))
	rows := itemRows(doc.Pages[1].Tables()[0])
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Cells[0].Lines, 101)
	_, ok := findText(doc.Pages[2], "Subtotal:")
	assert.True(t, ok)
}

func TestRender_FeatureLinesWrapInsideDescriptionCell(t *testing.T) {
	draft := draftWithItems(business.KindEstimate, 1)
	draft.Items[0].Description = strings.Repeat("walnut ", 20)
	draft.Items[0].Features = []string{"matte finish", " ", "soft-close hinges"}

	doc := render(t, draft, layout.DefaultGeometry())
	row := itemRows(doc.Pages[0].Tables()[0])[0]

	lines := row.Cells[0].Lines
	require.Len(t, lines, 5)
	assert.Equal(t, "- matte finish", lines[3])
	assert.Equal(t, "- soft-close hinges", lines[4])
	assert.Equal(t, 5*5+2*1.5, row.Height)
}

func TestRender_TimestampUsesIssueDateAndGenerationTime(t *testing.T) {
	draft := draftWithItems(business.KindInvoice, 1)
	draft.IssueDate = time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

	doc := render(t, draft, layout.DefaultGeometry())

	run, ok := findText(doc.Pages[0], "20/05/2024 10:30:00")
	require.True(t, ok)
	assert.Equal(t, 15.0, run.Y)

	draft.IssueDate = time.Time{}
	doc = render(t, draft, layout.DefaultGeometry())
	_, ok = findText(doc.Pages[0], "01/06/2024 10:30:00")
	assert.True(t, ok, "a draft without an issue date uses the generation date")
}

func TestRender_RequiresMoneyFormatter(t *testing.T) {
	draft := draftWithItems(business.KindEstimate, 1)
	opts := testOptions(layout.DefaultGeometry())
	opts.Money = nil

	_, err := layout.Render(draft, services.ComputeTotals(draft), opts)
	assert.ErrorIs(t, err, layout.ErrMissingFormatter)

	opts = testOptions(layout.DefaultGeometry())
	opts.Geometry.TableTop = 400
	_, err = layout.Render(draft, services.ComputeTotals(draft), opts)
	assert.ErrorIs(t, err, layout.ErrInvalidGeometry)
}
