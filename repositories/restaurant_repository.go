package repositories

import (
	"context"

	"gorm.io/gorm"

	"ceylon-compass-server/models"
)

type RestaurantFilter struct {
	Country string
	City    string
	ShowAll bool
}

type RestaurantRepository interface {
	Create(ctx context.Context, r *models.Restaurant) error
	FindByID(ctx context.Context, id uint) (*models.Restaurant, error)
	Save(ctx context.Context, r *models.Restaurant) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter RestaurantFilter) ([]models.Restaurant, error)
	ListByCreator(ctx context.Context, userID uint) ([]models.Restaurant, error)
	ListByStatus(ctx context.Context, status models.ContentStatus) ([]models.Restaurant, error)
	CountByStatus(ctx context.Context, status models.ContentStatus) (int64, error)
	// AddReview stores the review and recomputes the restaurant's average rating.
	AddReview(ctx context.Context, review *models.Review) (*models.Restaurant, error)
}

type restaurantRepository struct {
	Store[models.Restaurant]
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{Store: NewStore[models.Restaurant](db), db: db}
}

func (r *restaurantRepository) FindByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var item models.Restaurant
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Reviews.User").
		First(&item, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *restaurantRepository) Save(ctx context.Context, item *models.Restaurant) error {
	return r.db.WithContext(ctx).Omit("CreatedBy", "Reviews").Save(item).Error
}

func (r *restaurantRepository) List(ctx context.Context, filter RestaurantFilter) ([]models.Restaurant, error) {
	var items []models.Restaurant
	err := r.db.WithContext(ctx).
		Scopes(scopeLocation(filter.Country, filter.City, filter.ShowAll)).
		Where("status = ?", models.StatusApproved).
		Order("rating DESC, name ASC").
		Find(&items).Error
	return items, err
}

func (r *restaurantRepository) AddReview(ctx context.Context, review *models.Review) (*models.Restaurant, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Restaurant{}).Where("id = ?", review.RestaurantID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return ErrNotFound
		}
		if err := tx.Omit("User").Create(review).Error; err != nil {
			return err
		}

		var avg float64
		if err := tx.Model(&models.Review{}).
			Where("restaurant_id = ?", review.RestaurantID).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&avg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Restaurant{}).
			Where("id = ?", review.RestaurantID).
			Update("rating", avg).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, review.RestaurantID)
}
