// Package mailer delivers rendered emails.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"wedding_site/internal/domain/models"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/resendlabs/resend-go"
)

var ErrNoRecipient = errors.New("email has no recipient")

type Sender interface {
	Send(ctx context.Context, msg models.EmailMessage) error
}

// ResendSender delivers email through the Resend API.
type ResendSender struct {
	client    *resend.Client
	fromEmail string
	fromName  string
}

func NewResendSender(apiKey, fromEmail, fromName string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}

	return &ResendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}, nil
}

func (s *ResendSender) Send(ctx context.Context, msg models.EmailMessage) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	text := msg.Text
	if text == "" {
		text = PlainText(msg.HTML)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail),
		To:      []string{recipient(msg)},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    text,
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	return nil
}

// LogSender only logs outgoing email. It is used when delivery is disabled.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg models.EmailMessage) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	s.log.Info("email delivery disabled, message not sent",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("html_bytes", len(msg.HTML)),
	)
	return nil
}

// PlainText renders the HTML body as markdown for the text/plain part.
func PlainText(html string) string {
	text, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return html
	}
	return text
}

func recipient(msg models.EmailMessage) string {
	if msg.ToName == "" {
		return msg.To
	}
	return fmt.Sprintf("%s <%s>", msg.ToName, msg.To)
}
