package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"ceylon-compass-server/logger"
	"ceylon-compass-server/models"
	"ceylon-compass-server/repositories"
	"ceylon-compass-server/types"
)

type RestaurantQuery struct {
	Country string
	City    string
	ShowAll bool
}

type RestaurantService struct {
	restaurants repositories.RestaurantRepository
	log         *zap.Logger
}

func NewRestaurantService(restaurants repositories.RestaurantRepository, log *zap.Logger) *RestaurantService {
	return &RestaurantService{
		restaurants: restaurants,
		log:         logger.OrNop(log).Named("restaurants"),
	}
}

func (s *RestaurantService) List(ctx context.Context, q RestaurantQuery) ([]models.Restaurant, error) {
	items, err := s.restaurants.List(ctx, repositories.RestaurantFilter{
		Country: q.Country,
		City:    q.City,
		ShowAll: q.ShowAll,
	})
	if err != nil {
		return nil, types.Internal("Failed to load restaurants", err)
	}
	return items, nil
}

func (s *RestaurantService) Get(ctx context.Context, id uint) (*models.Restaurant, error) {
	return load(ctx, s.restaurants.FindByID, id, "Restaurant")
}

// Create publishes directly for content managers; anyone else lands in pending.
func (s *RestaurantService) Create(ctx context.Context, actor *models.User, in models.RestaurantInput) (*models.Restaurant, error) {
	status := models.StatusPending
	if Can(actor, CapManageContent) {
		status = models.StatusApproved
	}
	item := &models.Restaurant{
		RestaurantDetails: in.Details(),
		Image:             models.CoverImage(in.Images),
		CreatedByID:       actor.ID,
		Status:            status,
	}
	if err := s.restaurants.Create(ctx, item); err != nil {
		return nil, types.Internal("Failed to create restaurant", err)
	}
	s.log.Info("restaurant created", zap.Uint("restaurant_id", item.ID), zap.String("status", string(status)))
	return item, nil
}

func (s *RestaurantService) Update(ctx context.Context, id uint, actor *models.User, patch models.RestaurantPatch) (*models.Restaurant, error) {
	if err := checkOwnership(actor, patch.Ownership); err != nil {
		return nil, err
	}
	item, err := loadForChange(ctx, s.restaurants.FindByID, id, actor, "Restaurant")
	if err != nil {
		return nil, err
	}
	if err := patch.ApplyToRestaurant(item); err != nil {
		return nil, types.Validation(err.Error())
	}
	if err := s.restaurants.Save(ctx, item); err != nil {
		return nil, types.Internal("Failed to update restaurant", err)
	}
	return item, nil
}

func (s *RestaurantService) Delete(ctx context.Context, id uint, actor *models.User) error {
	if _, err := loadForChange(ctx, s.restaurants.FindByID, id, actor, "Restaurant"); err != nil {
		return err
	}
	if err := s.restaurants.Delete(ctx, id); err != nil {
		return deleteErr(err, "Restaurant")
	}
	s.log.Info("restaurant deleted", zap.Uint("restaurant_id", id), zap.Uint("user_id", actor.ID))
	return nil
}

func (s *RestaurantService) ListMine(ctx context.Context, actor *models.User) ([]models.Restaurant, error) {
	items, err := s.restaurants.ListByCreator(ctx, actor.ID)
	if err != nil {
		return nil, types.Internal("Failed to load your restaurants", err)
	}
	return items, nil
}

func (s *RestaurantService) ListPending(ctx context.Context, actor *models.User) ([]models.Restaurant, error) {
	if err := Authorize(actor, CapModerate, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	items, err := s.restaurants.ListByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, types.Internal("Failed to load pending restaurants", err)
	}
	return items, nil
}

// AddReview records a rating and returns the restaurant with its new average.
func (s *RestaurantService) AddReview(ctx context.Context, id uint, actor *models.User, in models.ReviewInput) (*models.Restaurant, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, types.FieldError("rating", "Rating must be between 1 and 5")
	}
	review := &models.Review{
		RestaurantID: id,
		UserID:       actor.ID,
		Rating:       in.Rating,
		Comment:      in.Comment,
	}
	restaurant, err := s.restaurants.AddReview(ctx, review)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, types.NotFound("Restaurant not found")
		}
		return nil, types.Internal("Failed to add review", err)
	}
	return restaurant, nil
}
