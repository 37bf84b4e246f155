package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ceylon-compass-server/models"
)

// ErrNotFound is returned when a lookup or a targeted write matches no row.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Store implements the operations every owned content table shares.
// T must have id, created_by_id, status and created_at columns.
type Store[T any] struct {
	db *gorm.DB
}

func NewStore[T any](db *gorm.DB) Store[T] {
	return Store[T]{db: db}
}

func (s Store[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := s.db.WithContext(ctx).Preload("CreatedBy").First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s Store[T]) Create(ctx context.Context, item *T) error {
	return s.db.WithContext(ctx).Omit("CreatedBy").Create(item).Error
}

func (s Store[T]) Save(ctx context.Context, item *T) error {
	return s.db.WithContext(ctx).Omit("CreatedBy").Save(item).Error
}

func (s Store[T]) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByCreator returns the items created by userID, newest first.
func (s Store[T]) ListByCreator(ctx context.Context, userID uint) ([]T, error) {
	var items []T
	err := s.db.WithContext(ctx).
		Where("created_by_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// ListByStatus returns the items in status with their creator, newest first.
func (s Store[T]) ListByStatus(ctx context.Context, status models.ContentStatus) ([]T, error) {
	var items []T
	err := s.db.WithContext(ctx).
		Preload("CreatedBy").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (s Store[T]) CountByStatus(ctx context.Context, status models.ContentStatus) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(new(T)).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (s Store[T]) UpdateStatus(ctx context.Context, id uint, status models.ContentStatus) error {
	res := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// scopeLocation narrows a listing to a country and city unless showAll is set.
func scopeLocation(country, city string, showAll bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if showAll {
			return db
		}
		if country != "" {
			db = db.Where("country = ?", country)
		}
		if city != "" {
			db = db.Where("city = ?", city)
		}
		return db
	}
}
