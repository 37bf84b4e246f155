package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"ceylon-compass-server/config"
	"ceylon-compass-server/logger"
)

// ErrMailerDisabled is returned by the mailer when SMTP is not configured.
var ErrMailerDisabled = errors.New("mailer is not configured")

type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

func (e Email) validate() error {
	if strings.TrimSpace(e.To) == "" {
		return errors.New("email recipient is empty")
	}
	if e.Text == "" && e.HTML == "" {
		return errors.New("email has no body")
	}
	return nil
}

// Mailer sends one email and returns its message id.
type Mailer interface {
	Send(ctx context.Context, email Email) (string, error)
}

// SMTPMailer delivers through a single configured SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
	log    *zap.Logger
}

// NewMailer returns an SMTP mailer, or a disabled one when cfg is incomplete.
func NewMailer(cfg config.MailConfig, log *zap.Logger) (Mailer, error) {
	log = logger.OrNop(log).Named("mailer")
	if !cfg.Enabled() {
		log.Warn("SMTP not configured, outgoing email is disabled")
		return disabledMailer{log: log}, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From, log: log}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, email Email) (string, error) {
	if err := email.validate(); err != nil {
		return "", err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return "", fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(email.To); err != nil {
		return "", fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(email.Subject)

	switch {
	case email.Text != "" && email.HTML != "":
		msg.SetBodyString(mail.TypeTextPlain, email.Text)
		msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	case email.HTML != "":
		msg.SetBodyString(mail.TypeTextHTML, email.HTML)
	default:
		msg.SetBodyString(mail.TypeTextPlain, email.Text)
	}
	msg.SetMessageID()

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}

	var messageID string
	if ids := msg.GetGenHeader(mail.HeaderMessageID); len(ids) > 0 {
		messageID = ids[0]
	}
	m.log.Info("email sent", zap.String("to", email.To), zap.String("message_id", messageID))
	return messageID, nil
}

type disabledMailer struct {
	log *zap.Logger
}

func (d disabledMailer) Send(_ context.Context, email Email) (string, error) {
	d.log.Debug("dropping email, mailer disabled", zap.String("to", email.To), zap.String("subject", email.Subject))
	return "", ErrMailerDisabled
}
