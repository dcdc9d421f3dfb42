package layout

import (
	"errors"
	"unicode/utf8"
)

// ErrInvalidGeometry is returned when the table cannot start above the bottom margin
var ErrInvalidGeometry = errors.New("invalid page geometry")

// Geometry holds every fixed coordinate of the page design, in millimetres
type Geometry struct {
	Paper        PaperSize
	MarginLeft   float64
	MarginRight  float64
	BottomMargin float64
	// ContinuationTop is where content resumes on pages after the first
	ContinuationTop float64

	FontFamily string

	TableTop        float64
	Columns         []float64
	HeaderRowHeight float64
	MinRowHeight    float64
	LineHeight      float64
	CellPadding     float64
	TableFontSize   float64

	TotalsGap        float64
	TotalsLineHeight float64
	TotalsLabelX     float64

	// Footer offsets are measured up from the page bottom
	FooterRuleOffset float64
	FooterTextOffset float64
}

// DefaultGeometry is the A4 design
func DefaultGeometry() Geometry {
	return Geometry{
		Paper:            A4,
		MarginLeft:       14,
		MarginRight:      14,
		BottomMargin:     25,
		ContinuationTop:  20,
		FontFamily:       "Helvetica",
		TableTop:         115,
		Columns:          []float64{100, 30, 20, 32},
		HeaderRowHeight:  8,
		MinRowHeight:     8,
		LineHeight:       5,
		CellPadding:      1.5,
		TableFontSize:    10,
		TotalsGap:        10,
		TotalsLineHeight: 7,
		TotalsLabelX:     160,
		FooterRuleOffset: 17,
		FooterTextOffset: 11,
	}
}

// RightEdge is the x coordinate of the right content margin
func (g Geometry) RightEdge() float64 {
	return g.Paper.Width - g.MarginRight
}

// CenterX is the horizontal middle of the page
func (g Geometry) CenterX() float64 {
	return g.Paper.Width / 2
}

// BottomLimit is the lowest y content may reach before a page break
func (g Geometry) BottomLimit() float64 {
	return g.Paper.Height - g.BottomMargin
}

func (g Geometry) validate() error {
	if len(g.Columns) != 4 || g.LineHeight <= 0 || g.MinRowHeight <= 0 {
		return ErrInvalidGeometry
	}
	if g.TableTop+g.HeaderRowHeight >= g.BottomLimit() || g.ContinuationTop+g.HeaderRowHeight >= g.BottomLimit() {
		return ErrInvalidGeometry
	}
	return nil
}

const ptToMM = 0.3528

// FixedWidthMeasurer approximates every glyph as half an em wide.
// It keeps layouts reproducible where font metrics are unavailable.
type FixedWidthMeasurer struct{}

// Width implements TextMeasurer
func (FixedWidthMeasurer) Width(text string, font Font) float64 {
	return float64(utf8.RuneCountInString(text)) * font.Size * 0.5 * ptToMM
}
