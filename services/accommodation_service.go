package services

import (
	"context"

	"go.uber.org/zap"

	"ceylon-compass-server/logger"
	"ceylon-compass-server/models"
	"ceylon-compass-server/repositories"
	"ceylon-compass-server/types"
)

type AccommodationQuery struct {
	Country    string
	City       string
	ShowAll    bool
	PriceRange string
	MinPrice   *float64
	MaxPrice   *float64
}

type AccommodationService struct {
	accommodations repositories.AccommodationRepository
	log            *zap.Logger
}

func NewAccommodationService(accommodations repositories.AccommodationRepository, log *zap.Logger) *AccommodationService {
	return &AccommodationService{
		accommodations: accommodations,
		log:            logger.OrNop(log).Named("accommodations"),
	}
}

// List returns approved listings sorted by price, cheapest first.
func (s *AccommodationService) List(ctx context.Context, q AccommodationQuery) ([]models.Accommodation, error) {
	items, err := s.accommodations.List(ctx, repositories.AccommodationFilter{
		Country:    q.Country,
		City:       q.City,
		ShowAll:    q.ShowAll,
		PriceRange: q.PriceRange,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
	})
	if err != nil {
		return nil, types.Internal("Failed to load accommodations", err)
	}
	return items, nil
}

func (s *AccommodationService) Get(ctx context.Context, id uint) (*models.Accommodation, error) {
	return load(ctx, s.accommodations.FindByID, id, "Accommodation")
}

// Create stores a listing directly as pending, deriving its type and price range.
func (s *AccommodationService) Create(ctx context.Context, actor *models.User, in models.AccommodationInput) (*models.Accommodation, error) {
	email := actor.Email
	if email == "" {
		email = models.NoEmailPlaceholder
	}
	item := &models.Accommodation{
		AccommodationDetails: in.Details(),
		PriceRange:           PriceRange(in.Price),
		Type:                 NormalizeAccommodationType(in.Type),
		Email:                email,
		Website:              in.Website,
		CreatedByID:          actor.ID,
		Status:               models.StatusPending,
	}
	if err := s.accommodations.Create(ctx, item); err != nil {
		return nil, types.Internal("Failed to create accommodation", err)
	}
	s.log.Info("accommodation created", zap.Uint("accommodation_id", item.ID), zap.Uint("user_id", actor.ID))
	return item, nil
}

func (s *AccommodationService) Update(ctx context.Context, id uint, actor *models.User, patch models.AccommodationPatch) (*models.Accommodation, error) {
	if err := checkOwnership(actor, patch.Ownership); err != nil {
		return nil, err
	}
	item, err := loadForChange(ctx, s.accommodations.FindByID, id, actor, "Accommodation")
	if err != nil {
		return nil, err
	}
	if err := patch.ApplyToAccommodation(item); err != nil {
		return nil, types.Validation(err.Error())
	}
	if patch.Price != nil {
		item.PriceRange = PriceRange(item.Price)
	}
	if patch.Type != nil {
		item.Type = NormalizeAccommodationType(*patch.Type)
	}
	if err := s.accommodations.Save(ctx, item); err != nil {
		return nil, types.Internal("Failed to update accommodation", err)
	}
	return item, nil
}

func (s *AccommodationService) Delete(ctx context.Context, id uint, actor *models.User) error {
	if _, err := loadForChange(ctx, s.accommodations.FindByID, id, actor, "Accommodation"); err != nil {
		return err
	}
	if err := s.accommodations.Delete(ctx, id); err != nil {
		return deleteErr(err, "Accommodation")
	}
	s.log.Info("accommodation deleted", zap.Uint("accommodation_id", id), zap.Uint("user_id", actor.ID))
	return nil
}

func (s *AccommodationService) ListMine(ctx context.Context, actor *models.User) ([]models.Accommodation, error) {
	items, err := s.accommodations.ListByCreator(ctx, actor.ID)
	if err != nil {
		return nil, types.Internal("Failed to load your accommodations", err)
	}
	return items, nil
}

func (s *AccommodationService) ListPending(ctx context.Context, actor *models.User) ([]models.Accommodation, error) {
	if err := Authorize(actor, CapModerate, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	items, err := s.accommodations.ListByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, types.Internal("Failed to load pending accommodations", err)
	}
	return items, nil
}

func (s *AccommodationService) SetStatus(ctx context.Context, id uint, actor *models.User, status models.ContentStatus) (*models.Accommodation, error) {
	if err := Authorize(actor, CapModerate, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	if err := validStatus(status); err != nil {
		return nil, err
	}
	if err := s.accommodations.UpdateStatus(ctx, id, status); err != nil {
		return nil, updateErr(err, "Accommodation")
	}
	return s.Get(ctx, id)
}
