package business

import "time"

// ExportTimestampLayout is the ISO-8601 form sent with every export call
const ExportTimestampLayout = "2006-01-02T15:04:05.000Z"

// ExportPayload is the body delivered to a row sink
type ExportPayload struct {
	Data      [][]any `json:"data"`
	Sheet     string  `json:"sheet"`
	Timestamp string  `json:"timestamp"`
}

// NewExportPayload stamps rows for one sheet with the UTC export time
func NewExportPayload(sheet string, rows [][]any, at time.Time) ExportPayload {
	return ExportPayload{
		Data:      rows,
		Sheet:     sheet,
		Timestamp: at.UTC().Format(ExportTimestampLayout),
	}
}
