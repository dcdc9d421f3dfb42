package helpers

import (
	"strings"

	"github.com/ledgerprint/ledgerprint-api/libs/go/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MoneyFormatter renders amounts as a currency code followed by locale-grouped digits,
// e.g. "INR 1,23,456.50" for en-IN
type MoneyFormatter struct {
	currencyCode string
	printer      *message.Printer
	decimalSep   string
}

// maxGrouped bounds the whole part the printer groups; it must fit an int64
var maxGrouped = decimal.New(1, 18)

// NewMoneyFormatter creates a formatter for the given currency code and BCP 47 locale.
// Unknown locales fall back to en-IN.
func NewMoneyFormatter(currencyCode, locale string) *MoneyFormatter {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == "" {
		code = constants.DefaultCurrencyCode
	}

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(constants.DefaultNumberLocale)
	}

	printer := message.NewPrinter(tag)
	sample := printer.Sprintf("%v", number.Decimal(1.5, number.Scale(1)))
	sep := strings.TrimSuffix(strings.TrimPrefix(sample, "1"), "5")
	if sep == "" {
		sep = "."
	}

	return &MoneyFormatter{
		currencyCode: code,
		printer:      printer,
		decimalSep:   sep,
	}
}

// CurrencyCode returns the label printed in front of every figure
func (f *MoneyFormatter) CurrencyCode() string {
	return f.currencyCode
}

// Format renders the amount with exactly two fraction digits
func (f *MoneyFormatter) Format(v decimal.Decimal) string {
	return f.currencyCode + " " + f.Number(v, 2)
}

// FormatWhole renders the amount without fraction digits
func (f *MoneyFormatter) FormatWhole(v decimal.Decimal) string {
	return f.currencyCode + " " + f.Number(v, 0)
}

// Number renders the amount with grouping and a fixed number of fraction digits.
// Digits come from the decimal itself; the printer only supplies locale grouping for the
// whole part. Whole parts of 10^18 and above are printed without grouping.
func (f *MoneyFormatter) Number(v decimal.Decimal, digits int) string {
	if digits < 0 {
		digits = 0
	}
	rounded := v.Round(int32(digits))
	abs := rounded.Abs()
	whole := abs.Truncate(0)

	var out string
	if whole.LessThan(maxGrouped) {
		out = f.printer.Sprintf("%v", number.Decimal(whole.IntPart()))
	} else {
		out = whole.String()
	}

	if digits > 0 {
		fixed := abs.StringFixed(int32(digits))
		out += f.decimalSep + fixed[strings.IndexByte(fixed, '.')+1:]
	}

	// zero never carries a sign, avoiding "-0.00"
	if rounded.IsNegative() {
		out = "-" + out
	}
	return out
}
