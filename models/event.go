package models

import (
	"fmt"
	"time"
)

type Organizer struct {
	Name          string `json:"name" gorm:"size:255"`
	ContactNumber string `json:"contact_number" gorm:"size:50"`
	Email         string `json:"email" gorm:"size:255"`
}

// EventDetails holds the content shared by event requests and events.
type EventDetails struct {
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Country     string    `json:"country" gorm:"size:100;not null;index"`
	City        string    `json:"city" gorm:"size:100;not null;index"`
	Address     string    `json:"address" gorm:"size:255;not null"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	Time        string    `json:"time" gorm:"size:20;not null"`
	Organizer   Organizer `json:"organizer" gorm:"embedded;embeddedPrefix:organizer_"`
	Image       string    `json:"image" gorm:"size:512;not null"`
	Category    string    `json:"category" gorm:"size:100;not null"`
	Price       float64   `json:"price" gorm:"not null;default:0"`
	Capacity    int       `json:"capacity" gorm:"not null"`
}

type EventRequest struct {
	ID uint `json:"id" gorm:"primaryKey"`
	EventDetails
	CreatedByID uint          `json:"created_by_id" gorm:"not null;index"`
	CreatedBy   *User         `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Status      ContentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (EventRequest) TableName() string {
	return "event_requests"
}

func (r EventRequest) SubmissionID() uint  { return r.ID }
func (r EventRequest) OwnerID() uint       { return r.CreatedByID }
func (r EventRequest) Submitter() *User    { return r.CreatedBy }
func (r EventRequest) DisplayName() string { return r.Title }

type Event struct {
	ID uint `json:"id" gorm:"primaryKey"`
	EventDetails
	CreatedByID uint          `json:"created_by_id" gorm:"not null;index"`
	CreatedBy   *User         `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Status      ContentStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

func (e Event) OwnerID() uint { return e.CreatedByID }

func (e Event) Summary() []Detail {
	return []Detail{
		{Label: "Title", Value: e.Title},
		{Label: "Date", Value: e.Date.Format("2006-01-02")},
		{Label: "Time", Value: e.Time},
		{Label: "Location", Value: location(e.City, e.Country)},
		{Label: "Organizer", Value: e.Organizer.Name},
		{Label: "Category", Value: e.Category},
	}
}

// Price formatting shared by the summaries.
func formatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}
