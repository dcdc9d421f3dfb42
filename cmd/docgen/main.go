package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/joho/godotenv"
	"github.com/ledgerprint/ledgerprint-api/libs/go/bootstrap"
	"github.com/ledgerprint/ledgerprint-api/libs/go/config"
	"github.com/ledgerprint/ledgerprint-api/libs/go/helpers"
	"github.com/ledgerprint/ledgerprint-api/libs/go/logger"
	"github.com/ledgerprint/ledgerprint-api/libs/go/services"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/api/requests"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/business"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var inputFlag = &cli.StringFlag{
	Name:     "input",
	Aliases:  []string{"i"},
	Usage:    "draft JSON file, or - for stdin",
	Required: true,
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "docgen",
		Usage: "compute totals and render estimates and invoices from draft JSON",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log at debug level"},
		},
		Before: func(c *cli.Context) error {
			level := "warn"
			if c.Bool("verbose") {
				level = "debug"
			}
			logger.InitLoggerWithConfig(logger.LoggerConfig{Stage: helpers.StageLocal, Level: level})
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "totals",
				Usage:  "print the totals breakdown of a draft",
				Flags:  []cli.Flag{inputFlag},
				Action: totalsAction,
			},
			{
				Name:  "render",
				Usage: "render a draft to PDF",
				Flags: []cli.Flag{
					inputFlag,
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: ".", Usage: "directory for the generated file"},
					&cli.BoolFlag{Name: "export", Usage: "deliver rows to the configured sink and wait for both sheets"},
					&cli.BoolFlag{Name: "email", Usage: "email the document to the client address"},
					&cli.BoolFlag{Name: "dump-layout", Usage: "print the draw-instruction stream instead of writing a PDF"},
				},
				Action: renderAction,
			},
		},
	}
}

func loadServices(ctx context.Context) (*bootstrap.Services, error) {
	return bootstrap.NewServices(ctx, config.Load(), logger.Log)
}

func readDraft(c *cli.Context, cfg *config.Config) (*business.DocumentDraft, error) {
	var r io.Reader = c.App.Reader
	if path := c.String("input"); path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open draft: %w", err)
		}
		defer f.Close()
		r = f
	}

	var req requests.DocumentRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to parse draft: %w", err)
	}
	return req.ToDraft(time.Now(), helpers.LoadLocation(cfg.Export.Timezone))
}

// validationExit prints each violation and returns a non-zero exit
func validationExit(c *cli.Context, err error) error {
	if !services.IsValidationError(err) {
		return err
	}
	for _, v := range services.ValidationErrors(err) {
		fmt.Fprintf(c.App.ErrWriter, "  %s: %s\n", v.Field, v.Error())
	}
	return cli.Exit("draft is invalid", 2)
}

func totalsAction(c *cli.Context) error {
	svc, err := loadServices(c.Context)
	if err != nil {
		return err
	}
	draft, err := readDraft(c, svc.Config)
	if err != nil {
		return err
	}

	totals, err := svc.Documents.ComputeTotals(c.Context, draft)
	if err != nil {
		return validationExit(c, err)
	}

	money := helpers.NewMoneyFormatter(svc.Config.Money.CurrencyCode, svc.Config.Money.NumberLocale)
	w := c.App.Writer
	fmt.Fprintf(w, "%s %s\n", draft.Kind.Title(), draft.DisplayNumber())
	fmt.Fprintf(w, "Subtotal:              %s\n", money.Format(totals.Subtotal))
	fmt.Fprintf(w, "Delivery Fee:          %s\n", money.Format(totals.DeliveryTotal))
	fmt.Fprintf(w, "Corner Cutting Total:  %s\n", money.Format(totals.CornerCuttingTotal))
	fmt.Fprintf(w, "Discount:              %s\n", money.Format(totals.Discount.Neg()))
	fmt.Fprintf(w, "Round Off:             %s\n", money.Format(totals.RoundOff))
	fmt.Fprintf(w, "Total:                 %s\n", money.FormatWhole(totals.RoundedTotal))
	if draft.Kind.IsInvoice() && totals.AdvancePaid.IsPositive() {
		fmt.Fprintf(w, "Advance Paid:          %s\n", money.Format(totals.AdvancePaid))
		fmt.Fprintf(w, "Balance Due:           %s\n", money.FormatWhole(totals.BalanceDue))
	}
	return nil
}

func renderAction(c *cli.Context) error {
	ctx := c.Context
	svc, err := loadServices(ctx)
	if err != nil {
		return err
	}
	draft, err := readDraft(c, svc.Config)
	if err != nil {
		return err
	}

	if c.Bool("dump-layout") {
		doc, _, err := svc.Documents.Layout(ctx, draft)
		if err != nil {
			return validationExit(c, err)
		}
		spew.Fdump(c.App.Writer, doc)
		return nil
	}

	rendered, err := svc.Documents.Render(ctx, draft)
	if err != nil {
		return validationExit(c, err)
	}

	path := filepath.Join(c.String("output"), rendered.Filename)
	if err := os.WriteFile(path, rendered.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "%s (%d pages)\n", path, rendered.Pages)

	var failed bool
	if c.Bool("export") {
		if svc.Exports == nil {
			return services.ErrExportNotConfigured
		}
		if err := svc.Exports.Export(ctx, draft, rendered.Totals, rendered.GeneratedAt); err != nil {
			for _, e := range services.ExportErrors(err) {
				fmt.Fprintf(c.App.ErrWriter, "  %s: %v\n", e.Sheet, e.Err)
			}
			logger.Error("Row export failed", zap.Error(err), zap.String("document_id", rendered.DocumentID))
			failed = true
		} else {
			fmt.Fprintln(c.App.Writer, "rows exported")
		}
	}

	if c.Bool("email") {
		if svc.Email == nil {
			return services.ErrEmailNotConfigured
		}
		money := helpers.NewMoneyFormatter(svc.Config.Money.CurrencyCode, svc.Config.Money.NumberLocale)
		err := svc.Email.SendDocument(ctx, business.DocumentEmail{
			To:          draft.Client.Email,
			ClientName:  draft.Client.Name,
			Kind:        draft.Kind,
			Number:      draft.DisplayNumber(),
			Total:       money.FormatWhole(rendered.Totals.RoundedTotal),
			Filename:    rendered.Filename,
			Content:     rendered.Content,
			ContentType: rendered.MimeType,
		})
		if err != nil {
			fmt.Fprintf(c.App.ErrWriter, "  email: %v\n", err)
			failed = true
		} else {
			fmt.Fprintf(c.App.Writer, "emailed to %s\n", draft.Client.Email)
		}
	}

	if failed {
		return cli.Exit("document written, but delivery failed", 3)
	}
	return nil
}
