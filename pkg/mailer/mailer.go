// Package mailer delivers rendered digests over SMTP
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pkgz/email"
	"github.com/go-pkgz/lgr"

	"github.com/demajh/research-listener/pkg/config"
)

//go:generate moq -out mocks/sender.go -pkg mocks -skip-ensure -fmt goimports . Sender

// ErrNotConfigured is returned by Deliver when SMTP host, credentials or sender are missing
var ErrNotConfigured = errors.New("smtp is not configured")

// Sender sends a single email
type Sender interface {
	Send(text string, params email.Params) error
}

// Renderer makes an HTML page from markdown
type Renderer interface {
	HTML(title, markdown string) (string, error)
}

// Message is a digest ready for delivery
type Message struct {
	To          string
	Subject     string
	Markdown    string
	Attachments []string
}

// Mailer sends digests as HTML mail with report files attached
type Mailer struct {
	sender     Sender
	renderer   Renderer
	from       string
	configured bool
}

// New makes a mailer for the given smtp settings
func New(cfg config.SMTPConfig, renderer Renderer) *Mailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	m := &Mailer{
		renderer:   renderer,
		from:       from,
		configured: cfg.Host != "" && cfg.Username != "" && cfg.Password != "" && from != "",
	}
	if !m.configured {
		lgr.Printf("[WARN] smtp is not configured, digests will be written to disk only")
		return m
	}

	m.sender = email.NewSender(cfg.Host,
		email.Port(cfg.Port),
		email.TLS(cfg.TLS),
		email.STARTTLS(cfg.StartTLS),
		email.Auth(cfg.Username, cfg.Password),
		email.TimeOut(cfg.Timeout),
		email.ContentType("text/html"),
		email.Charset("UTF-8"),
		email.Log(lgr.Default()),
	)
	lgr.Printf("[INFO] smtp configured, %s:%d as %s", cfg.Host, cfg.Port, from)
	return m
}

// NewWithSender makes a mailer around an existing sender
func NewWithSender(sender Sender, from string, renderer Renderer) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, from: from, configured: sender != nil && from != ""}
}

// Configured reports whether Deliver can send anything
func (m *Mailer) Configured() bool {
	return m.configured
}

// Deliver renders the message markdown and sends it with attachments
func (m *Mailer) Deliver(ctx context.Context, msg Message) error {
	if !m.configured {
		return ErrNotConfigured
	}
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("empty recipient")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("deliver to %s: %w", msg.To, err)
	}

	body, err := m.renderer.HTML(msg.Subject, msg.Markdown)
	if err != nil {
		return fmt.Errorf("render mail body: %w", err)
	}

	params := email.Params{
		From:        m.from,
		To:          []string{msg.To},
		Subject:     msg.Subject,
		Attachments: msg.Attachments,
	}
	if err := m.sender.Send(body, params); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}

	lgr.Printf("[INFO] digest sent to %s, %d attachments", msg.To, len(msg.Attachments))
	return nil
}
