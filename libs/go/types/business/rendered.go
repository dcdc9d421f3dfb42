package business

import "time"

// RenderedDocument is the encoded output of one generation run
type RenderedDocument struct {
	Filename    string          `json:"filename"`
	MimeType    string          `json:"mime_type"`
	Content     []byte          `json:"-"`
	Pages       int             `json:"pages"`
	DocumentID  string          `json:"document_id"`
	Totals      TotalsBreakdown `json:"totals"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// DocumentEmail describes a rendered document to deliver to the client
type DocumentEmail struct {
	To          string
	ClientName  string
	Kind        DocumentKind
	Number      string
	Total       string
	Filename    string
	Content     []byte
	ContentType string
}
