package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"ceylon-compass-server/logger"
	"ceylon-compass-server/models"
	"ceylon-compass-server/repositories"
	"ceylon-compass-server/types"
)

// RequestCounter counts the open requests of one content kind.
type RequestCounter interface {
	Count(ctx context.Context) (int64, error)
}

// PastEventCleaner deletes events dated before today.
type PastEventCleaner interface {
	RunOnce(ctx context.Context) (int64, error)
}

type Dashboard struct {
	TotalUsers            int64 `json:"totalUsers"`
	TotalEvents           int64 `json:"totalEvents"`
	TotalAccommodations   int64 `json:"totalAccommodations"`
	TotalRestaurants      int64 `json:"totalRestaurants"`
	PendingEvents         int64 `json:"pendingEvents"`
	PendingAccommodations int64 `json:"pendingAccommodations"`
	PendingRestaurants    int64 `json:"pendingRestaurants"`
}

type PendingOverview struct {
	Events         []models.Event         `json:"events"`
	Accommodations []models.Accommodation `json:"accommodations"`
	Restaurants    []models.Restaurant    `json:"restaurants"`
}

type AdminDeps struct {
	Users                 repositories.UserRepository
	Events                repositories.EventRepository
	Accommodations        repositories.AccommodationRepository
	Restaurants           repositories.RestaurantRepository
	EventRequests         RequestCounter
	AccommodationRequests RequestCounter
	RestaurantRequests    RequestCounter
	Cleaner               PastEventCleaner
}

type AdminService struct {
	deps AdminDeps
	log  *zap.Logger
}

func NewAdminService(deps AdminDeps, log *zap.Logger) *AdminService {
	return &AdminService{deps: deps, log: logger.OrNop(log).Named("admin")}
}

// Dashboard counts approved content and everything awaiting review, both
// pending published items and open requests.
func (s *AdminService) Dashboard(ctx context.Context, actor *models.User) (*Dashboard, error) {
	if err := Authorize(actor, CapModerate, "Access denied. Admin only."); err != nil {
		return nil, err
	}

	var d Dashboard
	counts := []struct {
		dst   *int64
		count func(context.Context) (int64, error)
	}{
		{&d.TotalUsers, s.deps.Users.Count},
		{&d.TotalEvents, statusCount(s.deps.Events.CountByStatus, models.StatusApproved)},
		{&d.TotalAccommodations, statusCount(s.deps.Accommodations.CountByStatus, models.StatusApproved)},
		{&d.TotalRestaurants, statusCount(s.deps.Restaurants.CountByStatus, models.StatusApproved)},
		{&d.PendingEvents, statusCount(s.deps.Events.CountByStatus, models.StatusPending)},
		{&d.PendingAccommodations, statusCount(s.deps.Accommodations.CountByStatus, models.StatusPending)},
		{&d.PendingRestaurants, statusCount(s.deps.Restaurants.CountByStatus, models.StatusPending)},
		{&d.PendingEvents, s.deps.EventRequests.Count},
		{&d.PendingAccommodations, s.deps.AccommodationRequests.Count},
		{&d.PendingRestaurants, s.deps.RestaurantRequests.Count},
	}
	for _, c := range counts {
		n, err := c.count(ctx)
		if err != nil {
			return nil, types.Internal("Failed to load dashboard", err)
		}
		*c.dst += n
	}
	return &d, nil
}

func statusCount(count func(context.Context, models.ContentStatus) (int64, error), status models.ContentStatus) func(context.Context) (int64, error) {
	return func(ctx context.Context) (int64, error) {
		return count(ctx, status)
	}
}

func (s *AdminService) Pending(ctx context.Context, actor *models.User) (*PendingOverview, error) {
	if err := Authorize(actor, CapModerate, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	var (
		out PendingOverview
		err error
	)
	if out.Events, err = s.deps.Events.ListByStatus(ctx, models.StatusPending); err != nil {
		return nil, types.Internal("Failed to load pending content", err)
	}
	if out.Accommodations, err = s.deps.Accommodations.ListByStatus(ctx, models.StatusPending); err != nil {
		return nil, types.Internal("Failed to load pending content", err)
	}
	if out.Restaurants, err = s.deps.Restaurants.ListByStatus(ctx, models.StatusPending); err != nil {
		return nil, types.Internal("Failed to load pending content", err)
	}
	return &out, nil
}

func (s *AdminService) Users(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := Authorize(actor, CapManageUsers, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	users, err := s.deps.Users.List(ctx)
	if err != nil {
		return nil, types.Internal("Failed to load users", err)
	}
	return users, nil
}

func (s *AdminService) User(ctx context.Context, actor *models.User, id uint) (*models.User, error) {
	if err := Authorize(actor, CapManageUsers, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	return load(ctx, s.deps.Users.FindByID, id, "User")
}

// DeleteUser removes the user together with everything they submitted.
func (s *AdminService) DeleteUser(ctx context.Context, actor *models.User, id uint) error {
	if err := Authorize(actor, CapManageUsers, "Access denied. Admin only."); err != nil {
		return err
	}
	if actor.ID == id {
		return types.Validation("You cannot delete your own account")
	}
	if err := s.deps.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return types.NotFound("User not found")
		}
		return types.Internal("Failed to delete user", err)
	}
	s.log.Info("user deleted", zap.Uint("user_id", id), zap.Uint("admin_id", actor.ID))
	return nil
}

// CleanupPastEvents runs the past event sweep now and returns the number removed.
func (s *AdminService) CleanupPastEvents(ctx context.Context, actor *models.User) (int64, error) {
	if err := Authorize(actor, CapManageContent, "Access denied. Admin only."); err != nil {
		return 0, err
	}
	n, err := s.deps.Cleaner.RunOnce(ctx)
	if err != nil {
		return 0, types.Internal("Error cleaning up past events", err)
	}
	return n, nil
}
