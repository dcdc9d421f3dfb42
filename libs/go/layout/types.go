package layout

import (
	"time"

	"github.com/shopspring/decimal"
)

// Block kinds
const (
	KindText  = "text"
	KindRule  = "rule"
	KindTable = "table"
)

// Horizontal alignment of a text run relative to its X anchor
const (
	AlignLeft   = "L"
	AlignCenter = "C"
	AlignRight  = "R"
)

// Font styles understood by the encoder
const (
	StyleRegular = ""
	StyleBold    = "B"
)

// PaperSize is a page size in millimetres
type PaperSize struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var (
	A4     = PaperSize{Name: "A4", Width: 210, Height: 297}
	Letter = PaperSize{Name: "Letter", Width: 215.9, Height: 279.4}
)

// Color is an RGB triple
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	Black  = Color{0, 0, 0}
	Gray   = Color{100, 100, 100}
	Indigo = Color{79, 70, 229}
	White  = Color{255, 255, 255}
)

// Font selects a core font face
type Font struct {
	Family string  `json:"family"`
	Style  string  `json:"style"`
	Size   float64 `json:"size"`
}

// TextRun is a single line of text. Y is the baseline.
type TextRun struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Text  string  `json:"text"`
	Font  Font    `json:"font"`
	Align string  `json:"align"`
	Color Color   `json:"color"`
}

// Rule is a straight line segment
type Rule struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Width float64 `json:"width"`
	Color Color   `json:"color"`
}

// TableCell holds already wrapped lines
type TableCell struct {
	Lines []string `json:"lines"`
	Align string   `json:"align"`
}

// TableRow is one row of a table region. Y is the top edge.
type TableRow struct {
	Y      float64     `json:"y"`
	Height float64     `json:"height"`
	Header bool        `json:"header"`
	Cells  []TableCell `json:"cells"`
}

// TableRegion is the part of the line item table that lands on one page
type TableRegion struct {
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Columns    []float64  `json:"columns"`
	Padding    float64    `json:"padding"`
	LineHeight float64    `json:"line_height"`
	Font       Font       `json:"font"`
	Rows       []TableRow `json:"rows"`
}

// Height is the distance from the region's top to the bottom of its last row
func (t *TableRegion) Height() float64 {
	if len(t.Rows) == 0 {
		return 0
	}
	last := t.Rows[len(t.Rows)-1]
	return last.Y + last.Height - t.Y
}

// Block is one placed draw instruction. Exactly one of Text, Rule or Table is set, matching Kind.
type Block struct {
	Kind  string       `json:"kind"`
	Text  *TextRun     `json:"text,omitempty"`
	Rule  *Rule        `json:"rule,omitempty"`
	Table *TableRegion `json:"table,omitempty"`
}

// Page is one page of placed blocks, numbered from 1
type Page struct {
	Number int     `json:"number"`
	Blocks []Block `json:"blocks"`
}

// Document is the complete draw-instruction stream
type Document struct {
	Paper PaperSize `json:"paper"`
	Pages []Page    `json:"pages"`
}

// Texts returns every text run on the page in emission order
func (p *Page) Texts() []TextRun {
	var runs []TextRun
	for _, b := range p.Blocks {
		if b.Kind == KindText && b.Text != nil {
			runs = append(runs, *b.Text)
		}
	}
	return runs
}

// Tables returns every table region on the page
func (p *Page) Tables() []*TableRegion {
	var tables []*TableRegion
	for _, b := range p.Blocks {
		if b.Kind == KindTable && b.Table != nil {
			tables = append(tables, b.Table)
		}
	}
	return tables
}

// IssuerProfile is the identity printed in the header and footer
type IssuerProfile struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	FooterNote string `json:"footer_note"`
}

// TextMeasurer reports the rendered width of a string in millimetres
type TextMeasurer interface {
	Width(text string, font Font) float64
}

// MoneyFormatter renders currency figures
type MoneyFormatter interface {
	Format(v decimal.Decimal) string
	FormatWhole(v decimal.Decimal) string
}

// Options carries everything the renderer needs besides the draft and totals
type Options struct {
	Issuer      IssuerProfile
	Geometry    Geometry
	Money       MoneyFormatter
	Measurer    TextMeasurer
	GeneratedAt time.Time
	// Location is used for the timestamp line; nil means GeneratedAt's own zone
	Location *time.Location
}
