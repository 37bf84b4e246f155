package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ceylon-compass-server/models"
)

// EventFilter selects approved events for the public listing.
type EventFilter struct {
	Country string
	City    string
	ShowAll bool
	// From excludes events dated before it.
	From       time.Time
	Descending bool
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	Save(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter EventFilter) ([]models.Event, error)
	ListByCreator(ctx context.Context, userID uint) ([]models.Event, error)
	ListByStatus(ctx context.Context, status models.ContentStatus) ([]models.Event, error)
	CountByStatus(ctx context.Context, status models.ContentStatus) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.ContentStatus) error
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type eventRepository struct {
	Store[models.Event]
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{Store: NewStore[models.Event](db), db: db}
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	order := "date ASC"
	if filter.Descending {
		order = "date DESC"
	}

	var events []models.Event
	err := r.db.WithContext(ctx).
		Scopes(scopeLocation(filter.Country, filter.City, filter.ShowAll)).
		Where("status = ? AND date >= ?", models.StatusApproved, filter.From).
		Order(order).
		Find(&events).Error
	return events, err
}

// DeleteBefore removes every event dated strictly before cutoff.
func (r *eventRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("date < ?", cutoff).Delete(&models.Event{})
	return res.RowsAffected, res.Error
}
