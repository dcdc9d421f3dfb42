// Package bootstrap builds the service graph shared by the API and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/ledgerprint/ledgerprint-api/libs/go/client/aws"
	httpclient "github.com/ledgerprint/ledgerprint-api/libs/go/client/http"
	"github.com/ledgerprint/ledgerprint-api/libs/go/client/sheets"
	"github.com/ledgerprint/ledgerprint-api/libs/go/config"
	"github.com/ledgerprint/ledgerprint-api/libs/go/constants"
	"github.com/ledgerprint/ledgerprint-api/libs/go/helpers"
	"github.com/ledgerprint/ledgerprint-api/libs/go/interfaces"
	"github.com/ledgerprint/ledgerprint-api/libs/go/layout"
	"github.com/ledgerprint/ledgerprint-api/libs/go/layout/pdf"
	"github.com/ledgerprint/ledgerprint-api/libs/go/logger"
	"github.com/ledgerprint/ledgerprint-api/libs/go/services"
	"go.uber.org/zap"
)

// Services is the wired set of application services. Exports and Email are nil when disabled.
type Services struct {
	Config    *config.Config
	Documents *services.DocumentService
	Exports   *services.ExportService
	Email     *services.EmailService
}

// NewServices wires every service from configuration
func NewServices(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Services, error) {
	if log == nil {
		log = logger.Log
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	svc := &Services{
		Config:    cfg,
		Documents: NewDocumentService(cfg, log),
	}

	var secrets *aws.SecretsManagerClient
	if cfg.Export.TokenSecretARN != "" || os.Getenv("RESEND_API_KEY_SECRET_ARN") != "" {
		client, err := aws.NewSecretsManagerClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create secrets manager client: %w", err)
		}
		secrets = client
	}

	if cfg.Export.Enabled {
		sink, err := newRowSink(ctx, cfg.Export, secrets, log)
		if err != nil {
			return nil, err
		}
		svc.Exports = services.NewExportService(sink, nil,
			services.WithExportLocation(helpers.LoadLocation(cfg.Export.Timezone)),
			services.WithExportLogger(log),
		)
		log.Info("Row export enabled", zap.String("sink", cfg.Export.Sink))
	}

	apiKey := cfg.Email.APIKey
	if secrets != nil && os.Getenv("RESEND_API_KEY_SECRET_ARN") != "" {
		if key, err := secrets.GetSecretString(ctx, "RESEND_API_KEY_SECRET_ARN", "RESEND_API_KEY"); err == nil {
			apiKey = key
		}
	}
	if apiKey != "" && cfg.Email.From != "" {
		svc.Email = services.NewEmailService(apiKey, cfg.Email.From, cfg.Email.FromName, log)
		log.Info("Document email enabled", zap.String("from", cfg.Email.From))
	}

	return svc, nil
}

// NewDocumentService builds the calculator, layout and PDF pipeline
func NewDocumentService(cfg *config.Config, log *zap.Logger) *services.DocumentService {
	opts := layout.Options{
		Issuer:   cfg.Issuer,
		Geometry: layout.DefaultGeometry(),
		Money:    helpers.NewMoneyFormatter(cfg.Money.CurrencyCode, cfg.Money.NumberLocale),
		Measurer: pdf.NewMeasurer(),
		Location: helpers.LoadLocation(cfg.Export.Timezone),
	}
	encoder := pdf.NewEncoder(pdf.WithAuthor(cfg.Issuer.Name))
	return services.NewDocumentService(encoder, opts, services.WithDocumentLogger(log))
}

func newRowSink(ctx context.Context, cfg config.ExportConfig, secrets *aws.SecretsManagerClient, log *zap.Logger) (interfaces.RowSink, error) {
	switch cfg.Sink {
	case constants.SQSSinkKind:
		sink, err := aws.NewSQSRowSink(ctx, cfg.QueueURL, map[string]string{
			constants.SummarySheet: cfg.SummaryQueueURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create SQS row sink: %w", err)
		}
		return sink, nil
	case constants.HTTPSinkKind:
		return NewSheetsSink(ctx, cfg, secrets, log)
	}
	return nil, fmt.Errorf("unknown export sink %q", cfg.Sink)
}

// NewSheetsSink builds the HTTP sink for the sheet endpoints. The bearer token is read from
// Secrets Manager when an ARN is configured and secrets is non-nil.
func NewSheetsSink(ctx context.Context, cfg config.ExportConfig, secrets *aws.SecretsManagerClient, log *zap.Logger) (*sheets.Client, error) {
	token := cfg.Token
	if secrets != nil && cfg.TokenSecretARN != "" {
		value, err := secrets.GetSecretString(ctx, "SHEETS_TOKEN_SECRET_ARN", "SHEETS_TOKEN")
		if err != nil {
			return nil, fmt.Errorf("failed to resolve sheets token: %w", err)
		}
		token = value
	}
	clientOpts := []httpclient.ClientOption{
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithLogger(log),
	}
	if cfg.MaxRetries > 0 {
		retry := httpclient.DefaultRetryConfig()
		retry.MaxRetries = cfg.MaxRetries
		clientOpts = append(clientOpts, httpclient.WithRetryConfig(retry))
	}
	return sheets.NewClient(cfg.ScriptURL,
		sheets.WithSheetURL(constants.SummarySheet, cfg.SummaryURL),
		sheets.WithToken(token),
		sheets.WithHTTPClient(httpclient.NewHTTPClient(clientOpts...)),
	), nil
}
