package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"github.com/ledgerprint/ledgerprint-api/apps/export-relay/relay"
	"github.com/ledgerprint/ledgerprint-api/libs/go/bootstrap"
	"github.com/ledgerprint/ledgerprint-api/libs/go/client/aws"
	"github.com/ledgerprint/ledgerprint-api/libs/go/config"
	"github.com/ledgerprint/ledgerprint-api/libs/go/constants"
	"github.com/ledgerprint/ledgerprint-api/libs/go/helpers"
	"github.com/ledgerprint/ledgerprint-api/libs/go/logger"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.Load()
	if !helpers.IsValidStage(cfg.Server.Stage) {
		panic(fmt.Sprintf("Invalid STAGE environment variable: '%s'. Must be one of: %s, %s, %s",
			cfg.Server.Stage, helpers.StageProd, helpers.StageDev, helpers.StageLocal))
	}

	logger.InitLogger(cfg.Server.Stage)
	logger.Info("Lambda Cold Start: Initializing export relay", zap.String("stage", cfg.Server.Stage))
	defer func() {
		_ = logger.Sync()
	}()

	if cfg.Export.ScriptURL == "" {
		logger.Fatal("SHEETS_SCRIPT_URL is required to relay exports")
	}

	ctx := context.Background()

	var secrets *aws.SecretsManagerClient
	if cfg.Export.TokenSecretARN != "" {
		client, err := aws.NewSecretsManagerClient(ctx)
		if err != nil {
			logger.Fatal("Failed to initialize AWS Secrets Manager client", zap.Error(err))
		}
		secrets = client
	}

	sink, err := bootstrap.NewSheetsSink(ctx, cfg.Export, secrets, logger.Log)
	if err != nil {
		logger.Fatal("Failed to create sheets sink", zap.Error(err))
	}
	logger.Info("Relaying exports",
		zap.String("items_url", sink.URLFor(constants.ItemsSheet)),
		zap.String("summary_url", sink.URLFor(constants.SummarySheet)))

	lambda.Start(relay.New(sink, logger.Log).HandleSQSEvent)
}
