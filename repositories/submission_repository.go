package repositories

import (
	"context"

	"gorm.io/gorm"

	"ceylon-compass-server/models"
)

// SubmissionRepository stores pending requests of type R that publish into P.
type SubmissionRepository[R any, P any] interface {
	Create(ctx context.Context, req *R) error
	FindByID(ctx context.Context, id uint) (*R, error)
	List(ctx context.Context) ([]R, error)
	ListByCreator(ctx context.Context, userID uint) ([]R, error)
	ListByStatus(ctx context.Context, status models.ContentStatus) ([]R, error)
	Save(ctx context.Context, req *R) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)

	// Publish deletes the request and creates item in one transaction. It returns
	// ErrNotFound when the request is already gone, so a request publishes at most once.
	Publish(ctx context.Context, id uint, item *P) error
}

type submissionRepository[R any, P any] struct {
	Store[R]
	db *gorm.DB
}

func NewSubmissionRepository[R any, P any](db *gorm.DB) SubmissionRepository[R, P] {
	return &submissionRepository[R, P]{Store: NewStore[R](db), db: db}
}

func (r *submissionRepository[R, P]) List(ctx context.Context) ([]R, error) {
	var items []R
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *submissionRepository[R, P]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(new(R)).Count(&n).Error
	return n, err
}

func (r *submissionRepository[R, P]) Publish(ctx context.Context, id uint, item *P) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(new(R), id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Omit("CreatedBy").Create(item).Error
	})
}
