// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the provider and renders HTML bodies
// from templates embedded in the binary. A client built without an API
// key operates in disabled mode: sends are logged and dropped.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/forkpoint/forkpoint-service/internal/config"
)

//go:embed templates/*.html
var templates embed.FS

// Client wraps the Resend client with sender identity and a logger.
type Client struct {
	client      *resend.Client
	fromName    string
	fromAddress string
	logger      *zerolog.Logger
}

// NewClient creates an email Client from config. An empty API key
// yields a disabled client rather than an error, so environments
// without email credentials still boot.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	c := &Client{
		fromName:    cfg.Email.FromName,
		fromAddress: cfg.Email.FromAddress,
		logger:      logger,
	}
	if cfg.Email.ResendAPIKey != "" {
		c.client = resend.NewClient(cfg.Email.ResendAPIKey)
	}
	return c
}

// SendEmail renders the named template with data and sends it.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	if c.client == nil {
		c.logger.Info().
			Str("to", to).
			Str("template", string(templateName)).
			Msg("email disabled, dropping message")
		return nil
	}

	tmpl, err := template.ParseFS(templates, fmt.Sprintf("templates/%s.html", templateName))
	if err != nil {
		return errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromAddress),
		To:      []string{to},
		Subject: subject,
		Html:    body.String(),
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
