package repositories

import (
	"context"

	"gorm.io/gorm"

	"ceylon-compass-server/models"
)

type AccommodationFilter struct {
	Country string
	City    string
	ShowAll bool
	// PriceRange wins over MinPrice/MaxPrice when set.
	PriceRange string
	MinPrice   *float64
	MaxPrice   *float64
}

type AccommodationRepository interface {
	Create(ctx context.Context, a *models.Accommodation) error
	FindByID(ctx context.Context, id uint) (*models.Accommodation, error)
	Save(ctx context.Context, a *models.Accommodation) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter AccommodationFilter) ([]models.Accommodation, error)
	ListByCreator(ctx context.Context, userID uint) ([]models.Accommodation, error)
	ListByStatus(ctx context.Context, status models.ContentStatus) ([]models.Accommodation, error)
	CountByStatus(ctx context.Context, status models.ContentStatus) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.ContentStatus) error
}

type accommodationRepository struct {
	Store[models.Accommodation]
	db *gorm.DB
}

func NewAccommodationRepository(db *gorm.DB) AccommodationRepository {
	return &accommodationRepository{Store: NewStore[models.Accommodation](db), db: db}
}

func (r *accommodationRepository) List(ctx context.Context, filter AccommodationFilter) ([]models.Accommodation, error) {
	q := r.db.WithContext(ctx).
		Scopes(scopeLocation(filter.Country, filter.City, filter.ShowAll)).
		Where("status = ?", models.StatusApproved)

	if filter.PriceRange != "" {
		q = q.Where("price_range = ?", filter.PriceRange)
	} else {
		if filter.MinPrice != nil {
			q = q.Where("price >= ?", *filter.MinPrice)
		}
		if filter.MaxPrice != nil {
			q = q.Where("price <= ?", *filter.MaxPrice)
		}
	}

	var items []models.Accommodation
	err := q.Order("price ASC").Find(&items).Error
	return items, err
}
