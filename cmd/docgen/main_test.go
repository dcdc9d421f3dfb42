package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledgerprint/ledgerprint-api/libs/go/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const draftJSON = `{
	"client": {"name": "Asha Rao"},
	"kind": "invoice",
	"number": "INV0042",
	"items": [{"description": "Counter top", "quantity": 2, "unit_price": 75.375, "delivery_fee": 40}],
	"discount": 20,
	"advance_paid": 100
}`

func setupEnv(t *testing.T) {
	t.Setenv("STAGE", "local")
	t.Setenv("EXPORT_ENABLED", "false")
	t.Setenv("RESEND_API_KEY", "")
	t.Setenv("RESEND_API_KEY_SECRET_ARN", "")
	t.Setenv("SHEETS_TOKEN_SECRET_ARN", "")
	t.Setenv("CURRENCY_CODE", "INR")
	t.Setenv("NUMBER_LOCALE", "en-IN")
}

func runApp(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"docgen"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestTotalsCommand(t *testing.T) {
	setupEnv(t)

	out, _, err := runApp(t, draftJSON, "totals", "--input", "-")

	require.NoError(t, err)
	assert.Contains(t, out, "INVOICE INV0042")
	assert.Contains(t, out, "Subtotal:              INR 150.75")
	assert.Contains(t, out, "Discount:              INR -20.00")
	assert.Contains(t, out, "Total:                 INR 171")
	assert.Contains(t, out, "Balance Due:           INR 71")
}

func TestRenderCommand_WritesPDF(t *testing.T) {
	setupEnv(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "draft.json")
	require.NoError(t, os.WriteFile(input, []byte(draftJSON), 0o600))

	out, _, err := runApp(t, "", "render", "-i", input, "-o", dir)

	require.NoError(t, err)
	matches, err := filepath.Glob(filepath.Join(dir, "invoice_Asha_Rao_*.pdf"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	content, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
	assert.Contains(t, out, "(1 pages)")
}

func TestRenderCommand_DumpLayout(t *testing.T) {
	setupEnv(t)

	out, _, err := runApp(t, draftJSON, "render", "--input", "-", "--dump-layout")

	require.NoError(t, err)
	assert.Contains(t, out, "layout.Document")
	assert.Contains(t, out, "Counter top")
}

func TestRenderCommand_InvalidDraft(t *testing.T) {
	setupEnv(t)

	_, stderr, err := runApp(t, `{"kind":"estimate","items":[{"description":" "}]}`, "render", "--input", "-")

	var exit cli.ExitCoder
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 2, exit.ExitCode())
	assert.Contains(t, stderr, "client.name")
	assert.Contains(t, stderr, "items[0].description")
}

func TestRenderCommand_ExportNotConfigured(t *testing.T) {
	setupEnv(t)

	_, _, err := runApp(t, draftJSON, "render", "--input", "-", "--output", t.TempDir(), "--export")

	assert.ErrorIs(t, err, services.ErrExportNotConfigured)
}
