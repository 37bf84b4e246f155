package database

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ceylon-compass-server/config"
	"ceylon-compass-server/models"
	"ceylon-compass-server/utils"
)

var defaultLocations = []models.Location{
	{
		Country: "Sri Lanka",
		Cities:  []string{"Colombo", "Kandy", "Galle", "Ella", "Nuwara Eliya", "Jaffna", "Trincomalee", "Anuradhapura", "Sigiriya", "Mirissa"},
	},
	{
		Country: "Maldives",
		Cities:  []string{"Malé", "Addu City", "Fuvahmulah"},
	},
	{
		Country: "India",
		Cities:  []string{"Chennai", "Kochi", "Bengaluru", "Mumbai"},
	},
}

// SeedLocations inserts the default countries. Existing countries are left untouched.
func SeedLocations(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	for _, loc := range defaultLocations {
		loc := loc
		res := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "country"}}, DoNothing: true}).
			Create(&loc)
		if res.Error != nil {
			return fmt.Errorf("seed location %s: %w", loc.Country, res.Error)
		}
		if res.RowsAffected > 0 {
			log.Info("seeded location", zap.String("country", loc.Country), zap.Int("cities", len(loc.Cities)))
		}
	}
	return nil
}

// SeedAdmin creates the configured administrator if no user holds that email yet.
func SeedAdmin(ctx context.Context, db *gorm.DB, cfg config.AdminConfig, log *zap.Logger) error {
	if cfg.Email == "" || cfg.Password == "" || cfg.Username == "" {
		return nil
	}

	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", cfg.Email).First(&existing).Error
	if err == nil {
		if existing.Role != models.RoleAdmin {
			log.Warn("configured admin email belongs to a non-admin user", zap.Uint("user_id", existing.ID))
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := models.User{
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Info("seeded admin user", zap.Uint("user_id", admin.ID))
	return nil
}
