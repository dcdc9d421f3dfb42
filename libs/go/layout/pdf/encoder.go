// Package pdf turns a laid-out document into PDF bytes using the core PDF fonts.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/jung-kurt/gofpdf"
	"github.com/ledgerprint/ledgerprint-api/libs/go/layout"
)

// ErrEmptyDocument is returned when there is nothing to encode
var ErrEmptyDocument = errors.New("document has no pages")

// Encoder draws layout documents with gofpdf
type Encoder struct {
	title    string
	author   string
	creator  string
	compress bool
}

// EncoderOption configures an Encoder
type EncoderOption func(*Encoder)

// WithTitle sets the PDF title metadata
func WithTitle(title string) EncoderOption {
	return func(e *Encoder) {
		e.title = title
	}
}

// WithAuthor sets the PDF author metadata
func WithAuthor(author string) EncoderOption {
	return func(e *Encoder) {
		e.author = author
	}
}

// WithCompression toggles stream compression
func WithCompression(enabled bool) EncoderOption {
	return func(e *Encoder) {
		e.compress = enabled
	}
}

// NewEncoder creates a new encoder
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{creator: "ledgerprint", compress: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode renders every page of doc and returns the PDF bytes
func (e *Encoder) Encode(doc *layout.Document) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, ErrEmptyDocument
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: doc.Paper.Width, Ht: doc.Paper.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCompression(e.compress)
	pdf.SetCreator(e.creator, true)
	if e.title != "" {
		pdf.SetTitle(e.title, true)
	}
	if e.author != "" {
		pdf.SetAuthor(e.author, true)
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	c := &canvas{pdf: pdf, tr: tr}

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, block := range page.Blocks {
			switch block.Kind {
			case layout.KindText:
				c.text(block.Text)
			case layout.KindRule:
				c.rule(block.Rule)
			case layout.KindTable:
				c.table(block.Table)
			}
		}
		if pdf.Err() {
			return nil, fmt.Errorf("failed to draw page %d: %w", page.Number, pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type canvas struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (c *canvas) setFont(f layout.Font) {
	c.pdf.SetFont(f.Family, f.Style, f.Size)
}

func (c *canvas) anchored(x float64, s, align string) float64 {
	switch align {
	case layout.AlignCenter:
		return x - c.pdf.GetStringWidth(s)/2
	case layout.AlignRight:
		return x - c.pdf.GetStringWidth(s)
	default:
		return x
	}
}

func (c *canvas) text(run *layout.TextRun) {
	if run == nil {
		return
	}
	c.setFont(run.Font)
	c.pdf.SetTextColor(int(run.Color.R), int(run.Color.G), int(run.Color.B))
	s := c.tr(run.Text)
	c.pdf.Text(c.anchored(run.X, s, run.Align), run.Y, s)
}

func (c *canvas) rule(r *layout.Rule) {
	if r == nil {
		return
	}
	c.pdf.SetDrawColor(int(r.Color.R), int(r.Color.G), int(r.Color.B))
	c.pdf.SetLineWidth(r.Width)
	c.pdf.Line(r.X1, r.Y1, r.X2, r.Y2)
}

func (c *canvas) table(t *layout.TableRegion) {
	if t == nil {
		return
	}

	width := 0.0
	for _, w := range t.Columns {
		width += w
	}

	for _, row := range t.Rows {
		font := t.Font
		if row.Header {
			font.Style = layout.StyleBold
			c.pdf.SetFillColor(int(layout.Indigo.R), int(layout.Indigo.G), int(layout.Indigo.B))
			c.pdf.Rect(t.X, row.Y, width, row.Height, "F")
			c.pdf.SetTextColor(int(layout.White.R), int(layout.White.G), int(layout.White.B))
		} else {
			c.pdf.SetDrawColor(220, 220, 220)
			c.pdf.SetLineWidth(0.2)
			c.pdf.Line(t.X, row.Y+row.Height, t.X+width, row.Y+row.Height)
			c.pdf.SetTextColor(0, 0, 0)
		}
		c.setFont(font)

		x := t.X
		for i, cell := range row.Cells {
			if i >= len(t.Columns) {
				break
			}
			w := t.Columns[i]
			for n, line := range cell.Lines {
				s := c.tr(line)
				baseline := row.Y + t.Padding + float64(n+1)*t.LineHeight - 1.2
				lx := x + t.Padding
				if cell.Align == layout.AlignRight {
					lx = x + w - t.Padding - c.pdf.GetStringWidth(s)
				}
				c.pdf.Text(lx, baseline, s)
			}
			x += w
		}
	}
}

// Measurer reports string widths using the core font metrics gofpdf embeds
type Measurer struct {
	mu  sync.Mutex
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// NewMeasurer creates a measurer backed by an off-screen gofpdf instance
func NewMeasurer() *Measurer {
	pdf := gofpdf.New("P", "mm", "A4", "")
	return &Measurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// Width implements layout.TextMeasurer
func (m *Measurer) Width(text string, font layout.Font) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pdf.SetFont(font.Family, font.Style, font.Size)
	return m.pdf.GetStringWidth(m.tr(text))
}
