package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"ceylon-compass-server/logger"
	"ceylon-compass-server/models"
	"ceylon-compass-server/repositories"
	"ceylon-compass-server/types"
	"ceylon-compass-server/utils"
)

type EventQuery struct {
	Country string
	City    string
	ShowAll bool
	// Sort is "desc" for newest first, anything else ascending.
	Sort string
}

type EventService struct {
	events repositories.EventRepository
	now    func() time.Time
	log    *zap.Logger
}

func NewEventService(events repositories.EventRepository, log *zap.Logger) *EventService {
	return &EventService{
		events: events,
		now:    time.Now,
		log:    logger.OrNop(log).Named("events"),
	}
}

// List returns approved events from the start of today onward.
func (s *EventService) List(ctx context.Context, q EventQuery) ([]models.Event, error) {
	events, err := s.events.List(ctx, repositories.EventFilter{
		Country:    q.Country,
		City:       q.City,
		ShowAll:    q.ShowAll,
		From:       utils.StartOfDay(s.now()),
		Descending: strings.EqualFold(q.Sort, "desc"),
	})
	if err != nil {
		return nil, types.Internal("Failed to load events", err)
	}
	return events, nil
}

func (s *EventService) Get(ctx context.Context, id uint) (*models.Event, error) {
	return load(ctx, s.events.FindByID, id, "Event")
}

// Create stores an event directly as pending.
func (s *EventService) Create(ctx context.Context, actor *models.User, in models.EventInput) (*models.Event, error) {
	details, err := in.Details()
	if err != nil {
		return nil, types.FieldError("date", "Invalid event date")
	}
	event := &models.Event{
		EventDetails: details,
		CreatedByID:  actor.ID,
		Status:       models.StatusPending,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, types.Internal("Failed to create event", err)
	}
	s.log.Info("event created", zap.Uint("event_id", event.ID), zap.Uint("user_id", actor.ID))
	return event, nil
}

func (s *EventService) Update(ctx context.Context, id uint, actor *models.User, patch models.EventPatch) (*models.Event, error) {
	if err := checkOwnership(actor, patch.Ownership); err != nil {
		return nil, err
	}
	event, err := loadForChange(ctx, s.events.FindByID, id, actor, "Event")
	if err != nil {
		return nil, err
	}
	if err := patch.ApplyToEvent(event); err != nil {
		return nil, types.FieldError("date", "Invalid event date")
	}
	if err := s.events.Save(ctx, event); err != nil {
		return nil, types.Internal("Failed to update event", err)
	}
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id uint, actor *models.User) error {
	if _, err := loadForChange(ctx, s.events.FindByID, id, actor, "Event"); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return deleteErr(err, "Event")
	}
	s.log.Info("event deleted", zap.Uint("event_id", id), zap.Uint("user_id", actor.ID))
	return nil
}

func (s *EventService) ListMine(ctx context.Context, actor *models.User) ([]models.Event, error) {
	events, err := s.events.ListByCreator(ctx, actor.ID)
	if err != nil {
		return nil, types.Internal("Failed to load your events", err)
	}
	return events, nil
}

func (s *EventService) ListPending(ctx context.Context, actor *models.User) ([]models.Event, error) {
	if err := Authorize(actor, CapModerate, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	events, err := s.events.ListByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, types.Internal("Failed to load pending events", err)
	}
	return events, nil
}

func (s *EventService) SetStatus(ctx context.Context, id uint, actor *models.User, status models.ContentStatus) (*models.Event, error) {
	if err := Authorize(actor, CapModerate, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	if err := validStatus(status); err != nil {
		return nil, err
	}
	if err := s.events.UpdateStatus(ctx, id, status); err != nil {
		return nil, updateErr(err, "Event")
	}
	return s.Get(ctx, id)
}
