package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"ceylon-compass-server/logger"
	"ceylon-compass-server/models"
	"ceylon-compass-server/types"
)

// EmailService lets administrators send ad hoc email through the mailer.
type EmailService struct {
	mailer Mailer
	log    *zap.Logger
}

func NewEmailService(mailer Mailer, log *zap.Logger) *EmailService {
	return &EmailService{mailer: mailer, log: logger.OrNop(log).Named("email")}
}

func (s *EmailService) Send(ctx context.Context, actor *models.User, in models.EmailInput) (string, error) {
	if err := Authorize(actor, CapSendEmail, "Access denied. Admin only."); err != nil {
		return "", err
	}
	if in.Text == "" && in.HTML == "" {
		return "", types.MissingFields("text", "html")
	}

	id, err := s.mailer.Send(ctx, Email{To: in.To, Subject: in.Subject, Text: in.Text, HTML: in.HTML})
	if err != nil {
		if errors.Is(err, ErrMailerDisabled) {
			return "", types.Internal("Email service is not configured", err)
		}
		return "", types.Internal("Failed to send email", err)
	}
	s.log.Info("email sent", zap.Uint("admin_id", actor.ID), zap.String("message_id", id))
	return id, nil
}
