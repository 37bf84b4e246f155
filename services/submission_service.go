package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"ceylon-compass-server/logger"
	"ceylon-compass-server/models"
	"ceylon-compass-server/repositories"
	"ceylon-compass-server/types"
)

// RequestStore is the submission repository surface used outside moderation.
type RequestStore[R any] interface {
	Create(ctx context.Context, req *R) error
	FindByID(ctx context.Context, id uint) (*R, error)
	List(ctx context.Context) ([]R, error)
	ListByCreator(ctx context.Context, userID uint) ([]R, error)
	ListByStatus(ctx context.Context, status models.ContentStatus) ([]R, error)
	Save(ctx context.Context, req *R) error
	Delete(ctx context.Context, id uint) error
}

// SubmissionService manages the pending requests of one content kind.
type SubmissionService[R models.Submission] struct {
	kind  models.ContentKind
	store RequestStore[R]
	log   *zap.Logger
}

func NewSubmissionService[R models.Submission](kind models.ContentKind, store RequestStore[R], log *zap.Logger) *SubmissionService[R] {
	return &SubmissionService[R]{
		kind:  kind,
		store: store,
		log:   logger.OrNop(log).Named("submissions").With(zap.String("kind", string(kind))),
	}
}

// Submit stores a new request built by one of the New*Request constructors.
func (s *SubmissionService[R]) Submit(ctx context.Context, req *R) error {
	if err := s.store.Create(ctx, req); err != nil {
		return types.Internal("Failed to submit "+string(s.kind)+" request", err)
	}
	s.log.Info("request submitted", zap.Uint("request_id", (*req).SubmissionID()), zap.Uint("user_id", (*req).OwnerID()))
	return nil
}

func (s *SubmissionService[R]) List(ctx context.Context, actor *models.User) ([]R, error) {
	if err := Authorize(actor, CapModerate, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, types.Internal("Failed to load "+string(s.kind)+" requests", err)
	}
	return items, nil
}

func (s *SubmissionService[R]) ListPending(ctx context.Context, actor *models.User) ([]R, error) {
	if err := Authorize(actor, CapModerate, "Access denied. Admin only."); err != nil {
		return nil, err
	}
	items, err := s.store.ListByStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, types.Internal("Failed to load pending "+string(s.kind)+" requests", err)
	}
	return items, nil
}

func (s *SubmissionService[R]) ListMine(ctx context.Context, actor *models.User) ([]R, error) {
	items, err := s.store.ListByCreator(ctx, actor.ID)
	if err != nil {
		return nil, types.Internal("Failed to load your "+string(s.kind)+" requests", err)
	}
	return items, nil
}

// Get returns the request to an administrator or to its submitter.
func (s *SubmissionService[R]) Get(ctx context.Context, id uint, actor *models.User) (*R, error) {
	return s.owned(ctx, id, actor)
}

// Update applies a change to a request. Only an administrator may reassign it.
func (s *SubmissionService[R]) Update(ctx context.Context, id uint, actor *models.User, patch models.Ownership, apply func(*R) error) (*R, error) {
	if patch.Status != nil {
		return nil, types.FieldError("status", "Request status changes through accept or reject")
	}
	if patch.Restricted() && !Can(actor, CapModerate) {
		return nil, types.Forbidden("Not authorized to change the owner of this request")
	}

	req, err := s.owned(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if err := apply(req); err != nil {
		return nil, patchErr(err)
	}
	if err := s.store.Save(ctx, req); err != nil {
		return nil, types.Internal("Failed to update "+string(s.kind)+" request", err)
	}
	return req, nil
}

func patchErr(err error) error {
	switch {
	case errors.Is(err, models.ErrAccommodationType):
		return types.FieldError("type", err.Error())
	case errors.Is(err, models.ErrInvalidDate):
		return types.FieldError("date", err.Error())
	default:
		return types.Validation(err.Error())
	}
}

func (s *SubmissionService[R]) Delete(ctx context.Context, id uint, actor *models.User) error {
	if _, err := s.owned(ctx, id, actor); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return s.notFound()
		}
		return types.Internal("Failed to delete "+string(s.kind)+" request", err)
	}
	s.log.Info("request withdrawn", zap.Uint("request_id", id), zap.Uint("user_id", actor.ID))
	return nil
}

func (s *SubmissionService[R]) owned(ctx context.Context, id uint, actor *models.User) (*R, error) {
	req, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, s.notFound()
		}
		return nil, types.Internal("Failed to load "+string(s.kind)+" request", err)
	}
	if !CanModify(actor, (*req).OwnerID()) {
		return nil, types.Forbidden("Access denied")
	}
	return req, nil
}

func (s *SubmissionService[R]) notFound() error {
	return types.NotFound(s.kind.Title() + " request not found")
}

// NewEventRequest builds a pending event request owned by actor.
func NewEventRequest(in models.EventInput, actor *models.User) (*models.EventRequest, error) {
	details, err := in.Details()
	if err != nil {
		return nil, types.FieldError("date", "Invalid event date")
	}
	return &models.EventRequest{
		EventDetails: details,
		CreatedByID:  actor.ID,
		Status:       models.StatusPending,
	}, nil
}

func NewAccommodationRequest(in models.AccommodationInput, actor *models.User) (*models.AccommodationRequest, error) {
	if !models.IsAccommodationType(in.Type) {
		return nil, types.FieldError("type", models.ErrAccommodationType.Error())
	}
	return &models.AccommodationRequest{
		AccommodationDetails: in.Details(),
		Type:                 strings.ToLower(strings.TrimSpace(in.Type)),
		CreatedByID:          actor.ID,
		Status:               models.StatusPending,
	}, nil
}

func NewRestaurantRequest(in models.RestaurantInput, actor *models.User) *models.RestaurantRequest {
	return &models.RestaurantRequest{
		RestaurantDetails: in.Details(),
		CreatedByID:       actor.ID,
		Status:            models.StatusPending,
	}
}
