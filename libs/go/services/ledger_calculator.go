package services

import (
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/business"
	"github.com/shopspring/decimal"
)

// LedgerCalculator turns a normalized draft into a totals breakdown
type LedgerCalculator struct{}

// NewLedgerCalculator creates a new ledger calculator
func NewLedgerCalculator() *LedgerCalculator {
	return &LedgerCalculator{}
}

// Compute resolves every total of the draft. It never fails; negative inputs must be
// coerced to zero by the caller (see DocumentDraft.Normalize).
func (lc *LedgerCalculator) Compute(draft *business.DocumentDraft) business.TotalsBreakdown {
	return ComputeTotals(draft)
}

// ComputeTotals is the package-level form of LedgerCalculator.Compute
func ComputeTotals(draft *business.DocumentDraft) business.TotalsBreakdown {
	subtotal := decimal.Zero
	deliveryTotal := decimal.Zero
	cornerTotal := decimal.Zero

	for _, item := range draft.Items {
		subtotal = subtotal.Add(item.Amount())
		deliveryTotal = deliveryTotal.Add(item.DeliveryFee)
		cornerTotal = cornerTotal.Add(item.CornerCuttingFee)
	}

	preRound := subtotal.Add(deliveryTotal).Add(cornerTotal).Sub(draft.Discount)

	// Ceil moves toward positive infinity, so ceil(-3.20) = -3 and the round-off stays >= 0
	rounded := preRound.Ceil()
	roundOff := rounded.Sub(preRound)

	balanceDue := rounded
	advance := decimal.Zero
	if draft.Kind.IsInvoice() {
		advance = draft.AdvancePaid
		balanceDue = rounded.Sub(advance)
	}

	return business.TotalsBreakdown{
		Subtotal:           subtotal,
		DeliveryTotal:      deliveryTotal,
		CornerCuttingTotal: cornerTotal,
		Discount:           draft.Discount,
		PreRoundTotal:      preRound,
		RoundedTotal:       rounded,
		RoundOff:           roundOff,
		AdvancePaid:        advance,
		BalanceDue:         balanceDue,
	}
}
