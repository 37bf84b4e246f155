package services

import (
	"context"
	"errors"
	"strings"

	"ceylon-compass-server/models"
	"ceylon-compass-server/repositories"
	"ceylon-compass-server/types"
)

// load fetches an item and maps a missing row onto NotFound("<label> not found").
func load[T any](ctx context.Context, find func(context.Context, uint) (*T, error), id uint, label string) (*T, error) {
	item, err := find(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, types.NotFound(label + " not found")
		}
		return nil, types.Internal("Failed to load "+strings.ToLower(label), err)
	}
	return item, nil
}

// loadForChange is load plus the owner-or-admin check.
func loadForChange[T models.Owned](ctx context.Context, find func(context.Context, uint) (*T, error), id uint, actor *models.User, label string) (*T, error) {
	item, err := load(ctx, find, id, label)
	if err != nil {
		return nil, err
	}
	if !CanModify(actor, (*item).OwnerID()) {
		return nil, types.Forbidden("Not authorized to modify this " + strings.ToLower(label))
	}
	return item, nil
}

func checkOwnership(actor *models.User, o models.Ownership) error {
	if o.Restricted() && !Can(actor, CapManageContent) {
		return types.Forbidden("Only administrators can change the owner or status")
	}
	return nil
}

func validStatus(status models.ContentStatus) error {
	if !status.Valid() {
		return types.FieldError("status", "Status must be pending, approved or rejected")
	}
	return nil
}

func deleteErr(err error, label string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return types.NotFound(label + " not found")
	}
	return types.Internal("Failed to delete "+strings.ToLower(label), err)
}

func updateErr(err error, label string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return types.NotFound(label + " not found")
	}
	return types.Internal("Failed to update "+strings.ToLower(label), err)
}
