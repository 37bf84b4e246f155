package services

import (
	"strings"

	"ceylon-compass-server/models"
)

// PriceRange buckets a nightly price into the listing's dollar-sign range.
func PriceRange(price float64) string {
	switch {
	case price <= 50:
		return "$"
	case price <= 100:
		return "$$"
	case price <= 200:
		return "$$$"
	default:
		return "$$$$"
	}
}

// NormalizeAccommodationType maps a submitted type onto the listing types.
// Matching ignores case; anything unrecognized becomes Other.
func NormalizeAccommodationType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "hotel":
		return models.ListingTypeHotel
	case "hostel":
		return models.ListingTypeHostel
	case "apartment":
		return models.ListingTypeApartment
	case "guesthouse", "guest house":
		return models.ListingTypeGuestHouse
	default:
		return models.ListingTypeOther
	}
}

// MapEventRequest publishes an event request as an approved event.
func MapEventRequest(req *models.EventRequest) *models.Event {
	return &models.Event{
		EventDetails: req.EventDetails,
		CreatedByID:  req.CreatedByID,
		Status:       models.StatusApproved,
	}
}

// MapAccommodationRequest publishes an accommodation request as an approved listing.
func MapAccommodationRequest(req *models.AccommodationRequest) *models.Accommodation {
	email := models.NoEmailPlaceholder
	if req.CreatedBy != nil && req.CreatedBy.Email != "" {
		email = req.CreatedBy.Email
	}
	return &models.Accommodation{
		AccommodationDetails: req.AccommodationDetails,
		PriceRange:           PriceRange(req.Price),
		Type:                 NormalizeAccommodationType(req.Type),
		Email:                email,
		CreatedByID:          req.CreatedByID,
		Status:               models.StatusApproved,
	}
}

// MapRestaurantRequest publishes a restaurant request as an approved restaurant.
func MapRestaurantRequest(req *models.RestaurantRequest) *models.Restaurant {
	return &models.Restaurant{
		RestaurantDetails: req.RestaurantDetails,
		Image:             models.CoverImage(req.Images),
		CreatedByID:       req.CreatedByID,
		Status:            models.StatusApproved,
	}
}
