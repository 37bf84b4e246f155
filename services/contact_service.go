package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"ceylon-compass-server/logger"
	"ceylon-compass-server/models"
	"ceylon-compass-server/repositories"
	"ceylon-compass-server/types"
)

type ContactService struct {
	messages repositories.ContactRepository
	log      *zap.Logger
}

func NewContactService(messages repositories.ContactRepository, log *zap.Logger) *ContactService {
	return &ContactService{
		messages: messages,
		log:      logger.OrNop(log).Named("contact"),
	}
}

func (s *ContactService) Submit(ctx context.Context, in models.ContactInput) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: in.Message,
	}
	if msg.Name == "" || msg.Email == "" || msg.Subject == "" || strings.TrimSpace(msg.Message) == "" {
		return nil, types.Validation("All fields are required")
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, types.Internal("Failed to submit message", err)
	}
	s.log.Info("contact message received", zap.Uint("message_id", msg.ID))
	return msg, nil
}

func (s *ContactService) List(ctx context.Context, actor *models.User) ([]models.ContactMessage, error) {
	if err := Authorize(actor, CapReadMessages, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	msgs, err := s.messages.List(ctx)
	if err != nil {
		return nil, types.Internal("Failed to load messages", err)
	}
	return msgs, nil
}

// MarkRead sets the read flag, defaulting to true when read is nil.
func (s *ContactService) MarkRead(ctx context.Context, id uint, actor *models.User, read *bool) (*models.ContactMessage, error) {
	if err := Authorize(actor, CapReadMessages, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	value := true
	if read != nil {
		value = *read
	}
	msg, err := s.messages.SetRead(ctx, id, value)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, types.NotFound("Message not found")
		}
		return nil, types.Internal("Failed to update message", err)
	}
	return msg, nil
}

func (s *ContactService) Delete(ctx context.Context, id uint, actor *models.User) error {
	if err := Authorize(actor, CapReadMessages, "Access denied. Admin only."); err != nil {
		return err
	}
	if err := s.messages.Delete(ctx, id); err != nil {
		return deleteErr(err, "Message")
	}
	return nil
}
