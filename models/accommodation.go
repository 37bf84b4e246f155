package models

import (
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Accommodation types as submitted.
const (
	AccommodationTypeHotel      = "hotel"
	AccommodationTypeApartment  = "apartment"
	AccommodationTypeResort     = "resort"
	AccommodationTypeHostel     = "hostel"
	AccommodationTypeGuesthouse = "guesthouse"
)

// AccommodationDetails holds the content shared by requests and listings.
type AccommodationDetails struct {
	Name          string         `json:"name" gorm:"size:255;not null"`
	Description   string         `json:"description" gorm:"type:text;not null"`
	Country       string         `json:"country" gorm:"size:100;not null;index"`
	City          string         `json:"city" gorm:"size:100;not null;index"`
	Address       string         `json:"address" gorm:"size:255;not null"`
	Price         float64        `json:"price" gorm:"not null;index"`
	Capacity      int            `json:"capacity" gorm:"not null"`
	Amenities     pq.StringArray `json:"amenities" gorm:"type:text[]"`
	Images        pq.StringArray `json:"images" gorm:"type:text[];not null"`
	ContactNumber string         `json:"contact_number" gorm:"size:50;not null"`
}

type AccommodationRequest struct {
	ID uint `json:"id" gorm:"primaryKey"`
	AccommodationDetails
	Type        string        `json:"type" gorm:"size:30;not null"`
	CreatedByID uint          `json:"created_by_id" gorm:"not null;index"`
	CreatedBy   *User         `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Status      ContentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (AccommodationRequest) TableName() string {
	return "accommodation_requests"
}

func (r AccommodationRequest) SubmissionID() uint  { return r.ID }
func (r AccommodationRequest) OwnerID() uint       { return r.CreatedByID }
func (r AccommodationRequest) Submitter() *User    { return r.CreatedBy }
func (r AccommodationRequest) DisplayName() string { return r.Name }

// Listing types after normalization.
const (
	ListingTypeHotel      = "Hotel"
	ListingTypeHostel     = "Hostel"
	ListingTypeApartment  = "Apartment"
	ListingTypeGuestHouse = "Guest House"
	ListingTypeOther      = "Other"
)

// NoEmailPlaceholder is stored when the submitter has no email on file.
const NoEmailPlaceholder = "no-email@example.com"

type Accommodation struct {
	ID uint `json:"id" gorm:"primaryKey"`
	AccommodationDetails
	PriceRange  string        `json:"price_range" gorm:"size:4;not null;index"`
	Type        string        `json:"type" gorm:"size:30;not null"`
	Email       string        `json:"email" gorm:"size:255;not null"`
	Website     string        `json:"website" gorm:"size:512"`
	CreatedByID uint          `json:"created_by_id" gorm:"not null;index"`
	CreatedBy   *User         `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Status      ContentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Accommodation) TableName() string {
	return "accommodations"
}

func (a Accommodation) OwnerID() uint { return a.CreatedByID }

func (a Accommodation) Summary() []Detail {
	return []Detail{
		{Label: "Name", Value: a.Name},
		{Label: "Type", Value: a.Type},
		{Label: "Location", Value: location(a.City, a.Country)},
		{Label: "Price", Value: formatPrice(a.Price)},
	}
}

// IsAccommodationType reports whether t is one of the submittable types, ignoring case.
var ErrAccommodationType = errors.New("Type must be one of hotel, apartment, resort, hostel, guesthouse")

func IsAccommodationType(t string) bool {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case AccommodationTypeHotel, AccommodationTypeApartment, AccommodationTypeResort,
		AccommodationTypeHostel, AccommodationTypeGuesthouse:
		return true
	default:
		return false
	}
}
