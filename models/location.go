package models

import (
	"time"

	"github.com/lib/pq"
)

type Location struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Country   string         `json:"country" gorm:"size:100;uniqueIndex;not null"`
	Cities    pq.StringArray `json:"cities" gorm:"type:text[]"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Location) TableName() string {
	return "locations"
}

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;not null"`
	Subject   string    `json:"subject" gorm:"size:255;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Read      bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
