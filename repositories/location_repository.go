package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"ceylon-compass-server/models"
)

type LocationRepository interface {
	ListCountries(ctx context.Context) ([]string, error)
	FindByCountry(ctx context.Context, country string) (*models.Location, error)
	ListAll(ctx context.Context) ([]models.Location, error)
	Create(ctx context.Context, loc *models.Location) error
	Save(ctx context.Context, loc *models.Location) error
	DeleteByCountry(ctx context.Context, country string) error
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) ListCountries(ctx context.Context) ([]string, error) {
	var countries []string
	err := r.db.WithContext(ctx).Model(&models.Location{}).
		Distinct("country").
		Order("country ASC").
		Pluck("country", &countries).Error
	return countries, err
}

// FindByCountry matches the country name exactly, ignoring case.
func (r *locationRepository) FindByCountry(ctx context.Context, country string) (*models.Location, error) {
	var loc models.Location
	err := r.db.WithContext(ctx).
		Where("LOWER(country) = ?", strings.ToLower(strings.TrimSpace(country))).
		First(&loc).Error
	if err != nil {
		return nil, translate(err)
	}
	return &loc, nil
}

func (r *locationRepository) ListAll(ctx context.Context) ([]models.Location, error) {
	var locs []models.Location
	err := r.db.WithContext(ctx).Order("country ASC").Find(&locs).Error
	return locs, err
}

func (r *locationRepository) Create(ctx context.Context, loc *models.Location) error {
	return r.db.WithContext(ctx).Create(loc).Error
}

func (r *locationRepository) Save(ctx context.Context, loc *models.Location) error {
	return r.db.WithContext(ctx).Save(loc).Error
}

func (r *locationRepository) DeleteByCountry(ctx context.Context, country string) error {
	res := r.db.WithContext(ctx).
		Where("LOWER(country) = ?", strings.ToLower(strings.TrimSpace(country))).
		Delete(&models.Location{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
