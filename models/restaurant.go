package models

import (
	"time"

	"github.com/lib/pq"
)

// DefaultRestaurantImage is the cover used when a restaurant has no images.
const DefaultRestaurantImage = "default-restaurant.jpg"

type RestaurantDetails struct {
	Name          string         `json:"name" gorm:"size:255;not null"`
	Cuisine       string         `json:"cuisine" gorm:"size:100;not null"`
	Country       string         `json:"country" gorm:"size:100;not null;index"`
	City          string         `json:"city" gorm:"size:100;not null;index"`
	Address       string         `json:"address" gorm:"size:255;not null"`
	Description   string         `json:"description" gorm:"type:text;not null"`
	Website       string         `json:"website" gorm:"size:512"`
	ContactNumber string         `json:"contact_number" gorm:"size:50;not null"`
	OpeningHours  string         `json:"opening_hours" gorm:"size:255;not null"`
	Images        pq.StringArray `json:"images" gorm:"type:text[]"`
}

type RestaurantRequest struct {
	ID uint `json:"id" gorm:"primaryKey"`
	RestaurantDetails
	CreatedByID uint          `json:"created_by_id" gorm:"not null;index"`
	CreatedBy   *User         `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Status      ContentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (RestaurantRequest) TableName() string {
	return "restaurant_requests"
}

func (r RestaurantRequest) SubmissionID() uint  { return r.ID }
func (r RestaurantRequest) OwnerID() uint       { return r.CreatedByID }
func (r RestaurantRequest) Submitter() *User    { return r.CreatedBy }
func (r RestaurantRequest) DisplayName() string { return r.Name }

type Restaurant struct {
	ID uint `json:"id" gorm:"primaryKey"`
	RestaurantDetails
	Image       string        `json:"image" gorm:"size:512"`
	Rating      float64       `json:"rating" gorm:"not null;default:0;check:rating >= 0 AND rating <= 5"`
	Reviews     []Review      `json:"reviews,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	CreatedByID uint          `json:"created_by_id" gorm:"not null;index"`
	CreatedBy   *User         `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Status      ContentStatus `json:"status" gorm:"type:varchar(20);not null;default:'approved';index"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}

func (r Restaurant) OwnerID() uint { return r.CreatedByID }

func (r Restaurant) Summary() []Detail {
	return []Detail{
		{Label: "Name", Value: r.Name},
		{Label: "Cuisine", Value: r.Cuisine},
		{Label: "Location", Value: location(r.City, r.Country)},
	}
}

// CoverImage picks the first image or the default placeholder.
func CoverImage(images []string) string {
	for _, img := range images {
		if img != "" {
			return img
		}
	}
	return DefaultRestaurantImage
}

type Review struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	User         *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Rating       int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment      string    `json:"comment" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Review) TableName() string {
	return "restaurant_reviews"
}
