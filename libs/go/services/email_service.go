package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerprint/ledgerprint-api/libs/go/helpers"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/business"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// ResendEmails is the part of the resend client used to send mail
type ResendEmails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type EmailService struct {
	emails    ResendEmails
	logger    *zap.Logger
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey string, fromEmail string, fromName string, logger *zap.Logger) *EmailService {
	client := resend.NewClient(apiKey)
	return NewEmailServiceWithClient(client.Emails, fromEmail, fromName, logger)
}

// NewEmailServiceWithClient creates an email service around an existing resend emails client
func NewEmailServiceWithClient(emails ResendEmails, fromEmail string, fromName string, logger *zap.Logger) *EmailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailService{
		emails:    emails,
		logger:    logger,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

const documentEmailHTML = `<p>Dear {{.ClientName}},</p>
<p>Please find attached the {{.Title}} {{.Number}} for {{.Total}}.</p>
<p>Regards,<br>{{.From}}</p>`

type documentEmailData struct {
	ClientName string
	Title      string
	Number     string
	Total      string
	From       string
}

// SendDocument emails a rendered document to the client as a PDF attachment
func (s *EmailService) SendDocument(ctx context.Context, email business.DocumentEmail) error {
	if !helpers.IsEmailValid(email.To) {
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, email.To)
	}

	title := strings.ToLower(email.Kind.Title())
	data := documentEmailData{
		ClientName: email.ClientName,
		Title:      title,
		Number:     email.Number,
		Total:      email.Total,
		From:       s.fromName,
	}

	htmlContent, err := s.parseTemplate(documentEmailHTML, data)
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail),
		To:      []string{email.To},
		Subject: fmt.Sprintf("%s %s from %s", email.Kind.Title(), email.Number, s.fromName),
		Html:    htmlContent,
		Text:    fmt.Sprintf("Dear %s, please find attached the %s %s for %s.", email.ClientName, title, email.Number, email.Total),
		Headers: map[string]string{
			"X-Entity-Ref-ID": uuid.New().String(),
		},
		Attachments: []*resend.Attachment{{
			Content:     email.Content,
			Filename:    email.Filename,
			ContentType: email.ContentType,
		}},
		Tags: []resend.Tag{
			{Name: "category", Value: "document"},
			{Name: "kind", Value: email.Kind.String()},
		},
	}

	sent, err := s.emails.SendWithContext(ctx, params)
	if err != nil {
		s.logger.Error("failed to send document email",
			zap.Error(err),
			zap.String("to", email.To),
			zap.String("filename", email.Filename))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("document email sent successfully",
		zap.String("email_id", sent.Id),
		zap.String("to", email.To),
		zap.String("filename", email.Filename))

	return nil
}

// parseTemplate parses and executes a template with the given data
func (s *EmailService) parseTemplate(templateStr string, data any) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
