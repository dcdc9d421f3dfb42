package layout

import (
	"errors"
	"time"

	"github.com/ledgerprint/ledgerprint-api/libs/go/constants"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/business"
)

// ErrMissingFormatter is returned when Options.Money is nil
var ErrMissingFormatter = errors.New("layout requires a money formatter")

const (
	stampDateLayout = "02/01/2006"
	stampTimeLayout = "15:04:05"
	issueDateLayout = "Jan 2, 2006"
)

// slot is a fixed-position line that is drawn only when its content is non-empty.
// Absent lines leave their position empty instead of moving the lines below.
type slot[T any] struct {
	y       float64
	style   string
	size    float64
	content func(T) string
}

var issuerSlots = []slot[IssuerProfile]{
	{y: 28, style: StyleBold, size: 14, content: func(p IssuerProfile) string { return p.Name }},
	{y: 35, size: 10, content: func(p IssuerProfile) string { return p.Address }},
	{y: 41, size: 10, content: func(p IssuerProfile) string { return p.City }},
	{y: 47, size: 10, content: func(p IssuerProfile) string { return labelled("PIN: ", p.PostalCode) }},
	{y: 53, size: 10, content: func(p IssuerProfile) string { return labelled("Phone: ", p.Phone) }},
	{y: 59, size: 10, content: func(p IssuerProfile) string { return labelled("Email: ", p.Email) }},
}

var recipientSlots = []slot[business.ClientInfo]{
	{y: 72, style: StyleBold, size: 10, content: func(business.ClientInfo) string { return "TO" }},
	{y: 80, style: StyleBold, size: 12, content: func(c business.ClientInfo) string { return c.Name }},
	{y: 87, size: 10, content: func(c business.ClientInfo) string { return c.Address }},
	{y: 93, size: 10, content: func(c business.ClientInfo) string { return labelled("PIN: ", c.PostalCode) }},
	{y: 99, size: 10, content: func(c business.ClientInfo) string { return labelled("Phone: ", c.Phone) }},
	{y: 105, size: 10, content: func(c business.ClientInfo) string { return labelled("Email: ", c.Email) }},
}

func labelled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + value
}

type renderer struct {
	g    Geometry
	opts Options
	doc  *Document
	y    float64
}

// Render lays out the draft and its totals as a paginated draw-instruction stream.
// The draft must already be validated; Render does not look at empty names or descriptions.
func Render(draft *business.DocumentDraft, totals business.TotalsBreakdown, opts Options) (*Document, error) {
	if opts.Money == nil {
		return nil, ErrMissingFormatter
	}

	g := opts.Geometry
	if g.Paper.Height == 0 {
		g = DefaultGeometry()
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	if g.FontFamily == "" {
		g.FontFamily = "Helvetica"
	}
	if opts.Measurer == nil {
		opts.Measurer = FixedWidthMeasurer{}
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	r := &renderer{g: g, opts: opts, doc: &Document{Paper: g.Paper}}
	r.newPage()
	r.header(draft, totals)
	r.recipient(draft.Client)
	r.table(draft.Items)
	r.totals(draft, totals)
	r.footer()

	return r.doc, nil
}

func (r *renderer) newPage() {
	r.doc.Pages = append(r.doc.Pages, Page{Number: len(r.doc.Pages) + 1})
	r.y = r.g.ContinuationTop
}

func (r *renderer) page() *Page {
	return &r.doc.Pages[len(r.doc.Pages)-1]
}

func (r *renderer) font(style string, size float64) Font {
	return Font{Family: r.g.FontFamily, Style: style, Size: size}
}

func (r *renderer) text(x, y float64, s string, font Font, align string, color Color) {
	p := r.page()
	p.Blocks = append(p.Blocks, Block{
		Kind: KindText,
		Text: &TextRun{X: x, Y: y, Text: s, Font: font, Align: align, Color: color},
	})
}

func (r *renderer) rule(y, width float64, color Color) {
	p := r.page()
	p.Blocks = append(p.Blocks, Block{
		Kind: KindRule,
		Rule: &Rule{X1: r.g.MarginLeft, Y1: y, X2: r.g.RightEdge(), Y2: y, Width: width, Color: color},
	})
}

func placeSlots[T any](r *renderer, x float64, align string, value T, slots []slot[T]) {
	for _, s := range slots {
		content := s.content(value)
		if content == "" {
			continue
		}
		r.text(x, s.y, content, r.font(s.style, s.size), align, Black)
	}
}

func (r *renderer) header(draft *business.DocumentDraft, totals business.TotalsBreakdown) {
	g := r.g
	generated := r.opts.GeneratedAt
	if r.opts.Location != nil {
		generated = generated.In(r.opts.Location)
	}

	title := draft.Kind.Title()
	number := draft.DisplayNumber()

	// issue date followed by the time of generation
	issued := draft.IssueDate
	if issued.IsZero() {
		issued = generated
	}
	stamp := issued.Format(stampDateLayout) + " " + generated.Format(stampTimeLayout)
	r.text(g.MarginLeft, 15, stamp, r.font(StyleRegular, 9), AlignLeft, Gray)
	heading := title + " " + number
	if r.opts.Issuer.Name != "" {
		heading = r.opts.Issuer.Name + " - " + heading
	}
	r.text(g.CenterX(), 15, heading, r.font(StyleBold, 12), AlignCenter, Black)
	r.rule(18, 0.5, Indigo)

	placeSlots(r, g.MarginLeft, AlignLeft, r.opts.Issuer, issuerSlots)

	right := g.RightEdge()
	r.text(right, 28, title, r.font(StyleBold, 12), AlignRight, Indigo)
	r.text(right, 34, number, r.font(StyleRegular, 10), AlignRight, Black)
	r.text(right, 42, "DATE", r.font(StyleBold, 10), AlignRight, Indigo)
	r.text(right, 48, draft.IssueDate.Format(issueDateLayout), r.font(StyleRegular, 10), AlignRight, Black)
	r.text(right, 56, "TOTAL", r.font(StyleBold, 10), AlignRight, Indigo)
	r.text(right, 62, r.opts.Money.FormatWhole(totals.RoundedTotal), r.font(StyleBold, 12), AlignRight, Black)
}

func (r *renderer) recipient(client business.ClientInfo) {
	placeSlots(r, r.g.MarginLeft, AlignLeft, client, recipientSlots)
}

// openTable starts a table region at y with the column header row
func (r *renderer) openTable(y float64) *TableRegion {
	g := r.g
	region := &TableRegion{
		X:          g.MarginLeft,
		Y:          y,
		Columns:    g.Columns,
		Padding:    g.CellPadding,
		LineHeight: g.LineHeight,
		Font:       r.font(StyleRegular, g.TableFontSize),
		Rows: []TableRow{{
			Y:      y,
			Height: g.HeaderRowHeight,
			Header: true,
			Cells: []TableCell{
				{Lines: []string{"Description"}, Align: AlignLeft},
				{Lines: []string{"Rate"}, Align: AlignRight},
				{Lines: []string{"Qty"}, Align: AlignRight},
				{Lines: []string{"Amount"}, Align: AlignRight},
			},
		}},
	}

	p := r.page()
	p.Blocks = append(p.Blocks, Block{Kind: KindTable, Table: region})
	r.y = y + g.HeaderRowHeight
	return region
}

func (r *renderer) itemRow(item business.LineItem) TableRow {
	g := r.g
	font := r.font(StyleRegular, g.TableFontSize)
	width := g.Columns[0] - 2*g.CellPadding

	lines := wrap(item.Description, width, font, r.opts.Measurer)
	for _, feature := range item.FeatureLines() {
		lines = append(lines, wrap("- "+feature, width, font, r.opts.Measurer)...)
	}

	height := float64(len(lines))*g.LineHeight + 2*g.CellPadding
	if height < g.MinRowHeight {
		height = g.MinRowHeight
	}

	return TableRow{
		Height: height,
		Cells: []TableCell{
			{Lines: lines, Align: AlignLeft},
			{Lines: []string{r.opts.Money.Format(item.UnitPrice)}, Align: AlignRight},
			{Lines: []string{item.Quantity.String()}, Align: AlignRight},
			{Lines: []string{r.opts.Money.Format(item.Amount())}, Align: AlignRight},
		},
	}
}

func (r *renderer) table(items []business.LineItem) {
	g := r.g
	region := r.openTable(g.TableTop)
	continuation := false
	rowsOnPage := 0

	for _, item := range items {
		row := r.itemRow(item)

		// A row taller than a fresh page is placed anyway so the loop always progresses.
		if r.y+row.Height > g.BottomLimit() && !(continuation && rowsOnPage == 0) {
			r.newPage()
			region = r.openTable(g.ContinuationTop)
			continuation = true
			rowsOnPage = 0
		}

		row.Y = r.y
		region.Rows = append(region.Rows, row)
		r.y += row.Height
		rowsOnPage++
	}
}

type totalsLine struct {
	label string
	value string
	bold  bool
}

func (r *renderer) totalsLines(draft *business.DocumentDraft, totals business.TotalsBreakdown) ([]totalsLine, int) {
	money := r.opts.Money
	lines := []totalsLine{{label: "Subtotal:", value: money.Format(totals.Subtotal)}}

	if totals.DeliveryTotal.IsPositive() {
		lines = append(lines, totalsLine{label: "Delivery Fee:", value: money.Format(totals.DeliveryTotal)})
	}
	if totals.CornerCuttingTotal.IsPositive() {
		lines = append(lines, totalsLine{label: "Corner Cutting Total:", value: money.Format(totals.CornerCuttingTotal)})
	}
	if draft.Discount.IsPositive() {
		lines = append(lines, totalsLine{label: "Discount:", value: money.Format(draft.Discount.Neg())})
	}
	if totals.RoundOff.IsPositive() {
		lines = append(lines, totalsLine{label: "Round Off:", value: money.Format(totals.RoundOff)})
	}

	totalIdx := len(lines)
	lines = append(lines, totalsLine{label: "Total:", value: money.FormatWhole(totals.RoundedTotal), bold: true})

	if draft.Kind.IsInvoice() && draft.AdvancePaid.IsPositive() {
		lines = append(lines,
			totalsLine{label: "Advance Paid:", value: money.Format(draft.AdvancePaid)},
			totalsLine{label: "Balance Due:", value: money.FormatWhole(totals.BalanceDue), bold: true},
		)
	}
	return lines, totalIdx
}

// totals places the summary block. It is atomic: when it does not fit below the table
// it moves to a new page as a whole.
func (r *renderer) totals(draft *business.DocumentDraft, totals business.TotalsBreakdown) {
	g := r.g
	lines, totalIdx := r.totalsLines(draft, totals)

	paymentMode := ""
	if draft.Kind.IsInvoice() {
		paymentMode = draft.PaymentMode
	}

	rows := len(lines)
	if paymentMode != "" && totalIdx+1 >= rows {
		rows = totalIdx + 2
	}
	height := float64(rows) * g.TotalsLineHeight

	start := r.y + g.TotalsGap
	if start+height > g.BottomLimit() {
		r.newPage()
		start = g.ContinuationTop
	}

	baseline := func(i int) float64 {
		return start + float64(i+1)*g.TotalsLineHeight
	}

	for i, line := range lines {
		style := StyleRegular
		if line.bold {
			style = StyleBold
		}
		r.text(g.TotalsLabelX, baseline(i), line.label, r.font(style, 10), AlignRight, Black)
		r.text(g.RightEdge(), baseline(i), line.value, r.font(style, 10), AlignRight, Black)
	}

	if paymentMode != "" {
		r.text(g.MarginLeft, baseline(totalIdx+1), "Mode of Payment: "+paymentMode, r.font(StyleRegular, 10), AlignLeft, Black)
	}

	r.y = start + height
}

func (r *renderer) footer() {
	g := r.g
	note := r.opts.Issuer.FooterNote
	if note == "" {
		note = constants.DefaultFooterNote
	}
	r.rule(g.Paper.Height-g.FooterRuleOffset, 0.3, Indigo)
	r.text(g.CenterX(), g.Paper.Height-g.FooterTextOffset, note, r.font(StyleRegular, 10), AlignCenter, Gray)
}
