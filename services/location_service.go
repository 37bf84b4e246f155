package services

import (
	"context"
	"errors"
	"slices"
	"strings"

	"go.uber.org/zap"

	"ceylon-compass-server/logger"
	"ceylon-compass-server/models"
	"ceylon-compass-server/repositories"
	"ceylon-compass-server/types"
)

type LocationService struct {
	locations repositories.LocationRepository
	log       *zap.Logger
}

func NewLocationService(locations repositories.LocationRepository, log *zap.Logger) *LocationService {
	return &LocationService{
		locations: locations,
		log:       logger.OrNop(log).Named("locations"),
	}
}

func (s *LocationService) Countries(ctx context.Context) ([]string, error) {
	countries, err := s.locations.ListCountries(ctx)
	if err != nil {
		return nil, types.Internal("Failed to load countries", err)
	}
	if countries == nil {
		countries = []string{}
	}
	return countries, nil
}

// Cities looks the country up case-insensitively.
func (s *LocationService) Cities(ctx context.Context, country string) ([]string, error) {
	loc, err := s.find(ctx, country)
	if err != nil {
		return nil, err
	}
	cities := []string(loc.Cities)
	if cities == nil {
		cities = []string{}
	}
	return cities, nil
}

func (s *LocationService) All(ctx context.Context, actor *models.User) ([]models.Location, error) {
	if err := Authorize(actor, CapManageLocations, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	locs, err := s.locations.ListAll(ctx)
	if err != nil {
		return nil, types.Internal("Failed to load locations", err)
	}
	return locs, nil
}

func (s *LocationService) AddCountry(ctx context.Context, actor *models.User, in models.CountryInput) (*models.Location, error) {
	if err := Authorize(actor, CapManageLocations, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Country)
	if name == "" {
		return nil, types.FieldError("country", "Country name is required")
	}
	if _, err := s.locations.FindByCountry(ctx, name); err == nil {
		return nil, types.FieldError("country", "Country already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, types.Internal("Failed to add country", err)
	}

	loc := &models.Location{Country: name, Cities: uniqueCities(in.Cities)}
	if err := s.locations.Create(ctx, loc); err != nil {
		return nil, types.Internal("Failed to add country", err)
	}
	s.log.Info("country added", zap.String("country", name))
	return loc, nil
}

func (s *LocationService) AddCity(ctx context.Context, actor *models.User, country, city string) (*models.Location, error) {
	if err := Authorize(actor, CapManageLocations, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, types.FieldError("city", "City name is required")
	}
	loc, err := s.find(ctx, country)
	if err != nil {
		return nil, err
	}
	if slices.Contains(loc.Cities, city) {
		return nil, types.FieldError("city", "City already exists in this country")
	}
	loc.Cities = append(loc.Cities, city)
	if err := s.locations.Save(ctx, loc); err != nil {
		return nil, types.Internal("Failed to add city", err)
	}
	return loc, nil
}

// DeleteCountry removes the country and returns it as it was.
func (s *LocationService) DeleteCountry(ctx context.Context, actor *models.User, country string) (*models.Location, error) {
	if err := Authorize(actor, CapManageLocations, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	loc, err := s.find(ctx, country)
	if err != nil {
		return nil, err
	}
	if err := s.locations.DeleteByCountry(ctx, loc.Country); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, types.NotFound("Country not found")
		}
		return nil, types.Internal("Failed to delete country", err)
	}
	s.log.Info("country deleted", zap.String("country", loc.Country))
	return loc, nil
}

func (s *LocationService) DeleteCity(ctx context.Context, actor *models.User, country, city string) (*models.Location, error) {
	if err := Authorize(actor, CapManageLocations, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	loc, err := s.find(ctx, country)
	if err != nil {
		return nil, err
	}
	idx := slices.Index(loc.Cities, city)
	if idx < 0 {
		return nil, types.NotFound("City not found in this country")
	}
	loc.Cities = slices.Delete(loc.Cities, idx, idx+1)
	if err := s.locations.Save(ctx, loc); err != nil {
		return nil, types.Internal("Failed to delete city", err)
	}
	return loc, nil
}

func (s *LocationService) find(ctx context.Context, country string) (*models.Location, error) {
	loc, err := s.locations.FindByCountry(ctx, country)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, types.NotFound("Country not found")
		}
		return nil, types.Internal("Failed to load country", err)
	}
	return loc, nil
}

func uniqueCities(cities []string) []string {
	out := make([]string, 0, len(cities))
	for _, c := range cities {
		c = strings.TrimSpace(c)
		if c != "" && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
