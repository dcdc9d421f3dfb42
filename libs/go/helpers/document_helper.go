package helpers

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ledgerprint/ledgerprint-api/libs/go/constants"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonAlnum      = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// DocumentFilename builds "{kind}_{client name with whitespace runs as underscores}_{epoch millis}.pdf"
func DocumentFilename(kind, clientName string, at time.Time) string {
	name := whitespaceRun.ReplaceAllString(strings.TrimSpace(clientName), "_")
	return fmt.Sprintf("%s_%s_%d.%s", kind, name, at.UnixMilli(), constants.PDFExtension)
}

// DocumentID builds the export identifier "{sanitized lower-case client name}_{epoch millis}"
func DocumentID(clientName string, at time.Time) string {
	name := strings.ToLower(nonAlnum.ReplaceAllString(strings.TrimSpace(clientName), "_"))
	return fmt.Sprintf("%s_%d", name, at.UnixMilli())
}

// LoadLocation resolves an IANA zone name, falling back to a fixed UTC+05:30 zone
// when the host has no tzdata for it
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = constants.DefaultExportTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}
