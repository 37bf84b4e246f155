package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID                   uint       `json:"id" gorm:"primaryKey"`
	Username             string     `json:"username" gorm:"size:100;uniqueIndex;not null"`
	Email                string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash         string     `json:"-" gorm:"size:255;not null"`
	Role                 UserRole   `json:"role" gorm:"type:varchar(20);not null;default:'user';check:role IN ('user','admin')"`
	Country              string     `json:"country" gorm:"size:100"`
	City                 string     `json:"city" gorm:"size:100"`
	ResetPasswordToken   *string    `json:"-" gorm:"size:64;index"`
	ResetPasswordExpires *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt            time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Public is the shape returned by the auth endpoints.
func (u *User) Public() UserView {
	return UserView{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Country:  u.Country,
		City:     u.City,
		Role:     u.Role,
	}
}

type UserView struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Country  string   `json:"country"`
	City     string   `json:"city"`
	Role     UserRole `json:"role"`
}
