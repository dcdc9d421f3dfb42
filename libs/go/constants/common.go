package constants

// Common string constants used throughout the codebase
const (
	// Log levels
	ErrorLevel = "error"

	// Environments
	ProdEnvironment = "prod"
	TestEnvironment = "test"

	// Service name attached to structured logs
	ServiceName = "ledgerprint-api"

	// Currency label printed in front of every figure. Core PDF fonts carry no rupee glyph.
	DefaultCurrencyCode = "INR"
	DefaultNumberLocale = "en-IN"

	// Export
	DefaultExportTimezone = "Asia/Kolkata"
	ItemsSheet            = "items"
	SummarySheet          = "summary"

	// Export sink kinds
	HTTPSinkKind = "http"
	SQSSinkKind  = "sqs"
)

// DefaultSheetsScriptURL is the sheet endpoint used when SHEETS_SCRIPT_URL is unset. It is
// empty unless set at build time:
//
//	go build -ldflags "-X github.com/ledgerprint/ledgerprint-api/libs/go/constants.DefaultSheetsScriptURL=https://..."
var DefaultSheetsScriptURL string
