package models

import "time"

type NotificationType string

const (
	NotificationEventAccepted         NotificationType = "event_accepted"
	NotificationEventRejected         NotificationType = "event_rejected"
	NotificationAccommodationAccepted NotificationType = "accommodation_accepted"
	NotificationAccommodationRejected NotificationType = "accommodation_rejected"
	NotificationRestaurantAccepted    NotificationType = "restaurant_accepted"
	NotificationRestaurantRejected    NotificationType = "restaurant_rejected"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationEventAccepted, NotificationEventRejected,
		NotificationAccommodationAccepted, NotificationAccommodationRejected,
		NotificationRestaurantAccepted, NotificationRestaurantRejected:
		return true
	default:
		return false
	}
}

type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"user_id" gorm:"not null;index"`
	Title     string           `json:"title" gorm:"not null"`
	Message   string           `json:"message" gorm:"type:text;not null"`
	Type      NotificationType `json:"type" gorm:"type:varchar(40);not null"`
	Read      bool             `json:"read" gorm:"not null;default:false"`
	CreatedAt time.Time        `json:"created_at" gorm:"index"`
	UpdatedAt time.Time        `json:"updated_at"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Notification) TableName() string {
	return "notifications"
}
