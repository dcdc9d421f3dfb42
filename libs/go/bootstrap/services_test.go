package bootstrap

import (
	"context"
	"testing"

	"github.com/ledgerprint/ledgerprint-api/libs/go/client/sheets"
	"github.com/ledgerprint/ledgerprint-api/libs/go/config"
	"github.com/ledgerprint/ledgerprint-api/libs/go/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func baseConfig(t *testing.T) *config.Config {
	t.Setenv("RESEND_API_KEY_SECRET_ARN", "")
	cfg := config.Load()
	cfg.Server.Stage = "local"
	cfg.Export.TokenSecretARN = ""
	cfg.Email.APIKey = ""
	return cfg
}

func TestNewServices_HTTPSink(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Export.Enabled = true
	cfg.Export.Sink = constants.HTTPSinkKind
	cfg.Export.ScriptURL = "https://sheets.example/exec"
	cfg.Export.SummaryURL = "https://sheets.example/summary"
	cfg.Export.MaxRetries = 2

	svc, err := NewServices(context.Background(), cfg, zap.NewNop())

	require.NoError(t, err)
	assert.NotNil(t, svc.Documents)
	assert.NotNil(t, svc.Exports)
	assert.Nil(t, svc.Email)
}

func TestNewServices_ExportDisabledAndEmailEnabled(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Export.Enabled = false
	cfg.Email.APIKey = "re_test"
	cfg.Email.From = "billing@ledgerprint.example"

	svc, err := NewServices(context.Background(), cfg, zap.NewNop())

	require.NoError(t, err)
	assert.Nil(t, svc.Exports)
	assert.NotNil(t, svc.Email)
}

func TestNewServices_HTTPSinkRequiresEndpoint(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Export.Enabled = true
	cfg.Export.Sink = constants.HTTPSinkKind
	cfg.Export.ScriptURL = ""

	_, err := NewServices(context.Background(), cfg, zap.NewNop())

	assert.ErrorContains(t, err, "SHEETS_SCRIPT_URL")
}

func TestNewServices_InvalidConfig(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Export.Enabled = true
	cfg.Export.Sink = "ftp"

	_, err := NewServices(context.Background(), cfg, zap.NewNop())

	assert.ErrorContains(t, err, "invalid configuration")
}

func TestNewRowSink_RoutesSummarySheet(t *testing.T) {
	cfg := baseConfig(t).Export
	cfg.Sink = constants.HTTPSinkKind
	cfg.ScriptURL = "https://sheets.example/exec"
	cfg.SummaryURL = "https://sheets.example/summary"

	sink, err := newRowSink(context.Background(), cfg, nil, zap.NewNop())

	require.NoError(t, err)
	client, ok := sink.(*sheets.Client)
	require.True(t, ok)
	assert.Equal(t, "https://sheets.example/exec", client.URLFor(constants.ItemsSheet))
	assert.Equal(t, "https://sheets.example/summary", client.URLFor(constants.SummarySheet))
}
