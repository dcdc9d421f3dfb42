package business

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerprint/ledgerprint-api/libs/go/constants"
	"github.com/shopspring/decimal"
)

var (
	// ErrLastLineItem is returned when removing the only remaining line item
	ErrLastLineItem = errors.New("a document must keep at least one line item")
	// ErrLineItemNotFound is returned for an unknown line item key
	ErrLineItemNotFound = errors.New("line item not found")
	// ErrUnknownDocumentKind is returned by ParseDocumentKind
	ErrUnknownDocumentKind = errors.New("unknown document kind")
)

// DocumentKind distinguishes estimates from invoices
type DocumentKind string

const (
	KindEstimate DocumentKind = "estimate"
	KindInvoice  DocumentKind = "invoice"
)

// ParseDocumentKind accepts "estimate", "estimation" and "invoice" in any case
func ParseDocumentKind(s string) (DocumentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "estimate", "estimation":
		return KindEstimate, nil
	case "invoice":
		return KindInvoice, nil
	}
	return "", ErrUnknownDocumentKind
}

// IsInvoice reports whether advance payments and balance due apply
func (k DocumentKind) IsInvoice() bool {
	return k == KindInvoice
}

// Title is the upper-case heading printed on the document
func (k DocumentKind) Title() string {
	if k.IsInvoice() {
		return constants.InvoiceTitle
	}
	return constants.EstimateTitle
}

func (k DocumentKind) String() string {
	return string(k)
}

// LineItem is one billable row of a draft
type LineItem struct {
	ID               string          `json:"id"`
	Description      string          `json:"description"`
	Features         []string        `json:"features,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	DeliveryFee      decimal.Decimal `json:"delivery_fee"`
	CornerCuttingFee decimal.Decimal `json:"corner_cutting_fee"`
}

// Amount is quantity times unit price. Fees are not multiplied by quantity.
func (li LineItem) Amount() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// FeatureLines returns the trimmed, non-blank feature notes in order
func (li LineItem) FeatureLines() []string {
	lines := make([]string, 0, len(li.Features))
	for _, f := range li.Features {
		for _, part := range strings.Split(f, "\n") {
			if p := strings.TrimSpace(part); p != "" {
				lines = append(lines, p)
			}
		}
	}
	return lines
}

// ClientInfo identifies the recipient of the document
type ClientInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// DocumentDraft is the in-progress description of a document before totals are computed
type DocumentDraft struct {
	Client      ClientInfo      `json:"client"`
	IssueDate   time.Time       `json:"issue_date"`
	Kind        DocumentKind    `json:"kind"`
	Number      string          `json:"number,omitempty"`
	Items       []LineItem      `json:"items"`
	Discount    decimal.Decimal `json:"discount"`
	AdvancePaid decimal.Decimal `json:"advance_paid"`
	PaymentMode string          `json:"payment_mode,omitempty"`
}

// NewDocumentDraft creates a draft holding a single blank line item
func NewDocumentDraft(kind DocumentKind, issueDate time.Time) *DocumentDraft {
	d := &DocumentDraft{Kind: kind, IssueDate: issueDate}
	d.Items = []LineItem{newLineItem("1")}
	return d
}

func newLineItem(id string) LineItem {
	return LineItem{
		ID:               id,
		Quantity:         decimal.NewFromInt(1),
		UnitPrice:        decimal.Zero,
		DeliveryFee:      decimal.Zero,
		CornerCuttingFee: decimal.Zero,
	}
}

// AddItem appends a blank line item with the next sequential key
func (d *DocumentDraft) AddItem() LineItem {
	next := 0
	for _, item := range d.Items {
		if n, err := strconv.Atoi(item.ID); err == nil && n > next {
			next = n
		}
	}
	item := newLineItem(strconv.Itoa(next + 1))
	d.Items = append(d.Items, item)
	return item
}

// UpdateItem mutates the line item with the given key in place
func (d *DocumentDraft) UpdateItem(id string, mutate func(*LineItem)) error {
	for i := range d.Items {
		if d.Items[i].ID == id {
			mutate(&d.Items[i])
			d.Items[i].ID = id
			return nil
		}
	}
	return ErrLineItemNotFound
}

// RemoveItem deletes a line item by key. The last remaining item cannot be removed.
func (d *DocumentDraft) RemoveItem(id string) error {
	idx := -1
	for i := range d.Items {
		if d.Items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrLineItemNotFound
	}
	if len(d.Items) <= 1 {
		return ErrLastLineItem
	}
	d.Items = append(d.Items[:idx], d.Items[idx+1:]...)
	return nil
}

// Reset returns the draft to a blank single-item state, keeping kind and issue date
func (d *DocumentDraft) Reset() {
	d.Client = ClientInfo{}
	d.Number = ""
	d.Items = []LineItem{newLineItem("1")}
	d.Discount = decimal.Zero
	d.AdvancePaid = decimal.Zero
	d.PaymentMode = ""
}

// Normalize coerces every negative amount to zero and trims text fields.
// It must run before the draft reaches the calculator.
func (d *DocumentDraft) Normalize() {
	d.Client.Name = strings.TrimSpace(d.Client.Name)
	d.Client.Email = strings.TrimSpace(d.Client.Email)
	d.Client.Address = strings.TrimSpace(d.Client.Address)
	d.Client.Phone = strings.TrimSpace(d.Client.Phone)
	d.Client.PostalCode = strings.TrimSpace(d.Client.PostalCode)
	d.PaymentMode = strings.TrimSpace(d.PaymentMode)
	d.Discount = nonNegative(d.Discount)
	d.AdvancePaid = nonNegative(d.AdvancePaid)
	for i := range d.Items {
		item := &d.Items[i]
		item.Description = strings.TrimSpace(item.Description)
		item.Features = item.FeatureLines()
		item.Quantity = nonNegative(item.Quantity)
		item.UnitPrice = nonNegative(item.UnitPrice)
		item.DeliveryFee = nonNegative(item.DeliveryFee)
		item.CornerCuttingFee = nonNegative(item.CornerCuttingFee)
	}
}

// DisplayNumber is the document number, falling back to a per-kind default
func (d *DocumentDraft) DisplayNumber() string {
	if n := strings.TrimSpace(d.Number); n != "" {
		return n
	}
	if d.Kind.IsInvoice() {
		return constants.DefaultInvoiceNumber
	}
	return constants.DefaultEstimateNumber
}

// ParseAmount converts operator text into a non-negative amount; anything else is zero
func ParseAmount(text string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(text, ",", "")))
	if err != nil {
		return decimal.Zero
	}
	return nonNegative(v)
}

func nonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// TotalsBreakdown is the resolved arithmetic of a draft. It is never mutated after computation.
type TotalsBreakdown struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	DeliveryTotal      decimal.Decimal `json:"delivery_total"`
	CornerCuttingTotal decimal.Decimal `json:"corner_cutting_total"`
	Discount           decimal.Decimal `json:"discount"`
	PreRoundTotal      decimal.Decimal `json:"pre_round_total"`
	RoundedTotal       decimal.Decimal `json:"rounded_total"`
	RoundOff           decimal.Decimal `json:"round_off"`
	AdvancePaid        decimal.Decimal `json:"advance_paid"`
	BalanceDue         decimal.Decimal `json:"balance_due"`
}
