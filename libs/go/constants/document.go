package constants

// Document titles and default numbers
const (
	EstimateTitle = "ESTIMATE"
	InvoiceTitle  = "INVOICE"

	DefaultEstimateNumber = "EST0001"
	DefaultInvoiceNumber  = "INV0001"

	DefaultFooterNote = "Thank you for your business!"

	PDFExtension = "pdf"
	PDFMimeType  = "application/pdf"
)
