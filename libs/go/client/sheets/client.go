// Package sheets delivers exported rows to a spreadsheet web endpoint.
package sheets

import (
	"context"
	"time"

	httpclient "github.com/ledgerprint/ledgerprint-api/libs/go/client/http"
	"github.com/ledgerprint/ledgerprint-api/libs/go/constants"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/business"
	"github.com/pkg/errors"
)

// Client posts row matrices to one endpoint per sheet. Responses are not read.
type Client struct {
	http       *httpclient.HTTPClient
	defaultURL string
	sheetURLs  map[string]string
	token      string
}

// Option configures the sheets client
type Option func(*Client)

// WithSheetURL routes a sheet to its own endpoint
func WithSheetURL(sheet, url string) Option {
	return func(c *Client) {
		if url != "" {
			c.sheetURLs[sheet] = url
		}
	}
}

// WithToken sends a bearer token with every call
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the transport client
func WithHTTPClient(hc *httpclient.HTTPClient) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a sheets client posting to scriptURL unless a sheet overrides it.
// An empty scriptURL falls back to the build-time default.
func NewClient(scriptURL string, opts ...Option) *Client {
	if scriptURL == "" {
		scriptURL = constants.DefaultSheetsScriptURL
	}
	c := &Client{
		defaultURL: scriptURL,
		sheetURLs:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		// single attempt, no retry
		c.http = httpclient.NewHTTPClient(httpclient.WithTimeout(0))
	}
	return c
}

// URLFor returns the endpoint a sheet is delivered to
func (c *Client) URLFor(sheet string) string {
	if url, ok := c.sheetURLs[sheet]; ok {
		return url
	}
	return c.defaultURL
}

// Append implements interfaces.RowSink
func (c *Client) Append(ctx context.Context, sheet string, rows [][]any, timestamp time.Time) error {
	payload := business.NewExportPayload(sheet, rows, timestamp)
	if err := c.http.Send(ctx, c.URLFor(sheet), payload, httpclient.WithBearerToken(c.token)); err != nil {
		return errors.Wrapf(err, "failed to append %d rows to sheet %s", len(rows), sheet)
	}
	return nil
}
