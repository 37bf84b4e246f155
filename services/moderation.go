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

// SubmissionStore is the part of a submission repository moderation needs.
type SubmissionStore[R any, P any] interface {
	FindByID(ctx context.Context, id uint) (*R, error)
	Publish(ctx context.Context, id uint, item *P) error
	Delete(ctx context.Context, id uint) error
}

// Deliverer announces a decision to the submitter.
type Deliverer interface {
	Deliver(ctx context.Context, d Delivery) DeliveryReport
}

// Mapper turns an accepted request into its published form with status approved.
type Mapper[R any, P any] func(req *R) *P

// ModerationService accepts or rejects requests of one content kind.
type ModerationService[R models.Submission, P models.Summarizer] struct {
	kind     models.ContentKind
	store    SubmissionStore[R, P]
	mapper   Mapper[R, P]
	notifier Deliverer
	log      *zap.Logger
}

func NewModerationService[R models.Submission, P models.Summarizer](
	kind models.ContentKind,
	store SubmissionStore[R, P],
	mapper func(req *R) *P,
	notifier Deliverer,
	log *zap.Logger,
) *ModerationService[R, P] {
	return &ModerationService[R, P]{
		kind:     kind,
		store:    store,
		mapper:   mapper,
		notifier: notifier,
		log:      logger.OrNop(log).Named("moderation").With(zap.String("kind", string(kind))),
	}
}

func (s *ModerationService[R, P]) Kind() models.ContentKind {
	return s.kind
}

// Accept publishes the request and deletes it, then notifies the submitter.
// Notification and email failures are logged in the report only.
func (s *ModerationService[R, P]) Accept(ctx context.Context, id uint, actor *models.User) (*P, DeliveryReport, error) {
	if err := Authorize(actor, CapModerate, "Not authorized to accept requests"); err != nil {
		return nil, DeliveryReport{}, err
	}

	req, err := s.find(ctx, id)
	if err != nil {
		return nil, DeliveryReport{}, err
	}

	item := s.mapper(req)
	if err := s.store.Publish(ctx, id, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, DeliveryReport{}, s.notFound()
		}
		return nil, DeliveryReport{}, types.Internal("Failed to accept "+string(s.kind)+" request", err)
	}
	s.log.Info("request accepted", zap.Uint("request_id", id), zap.Uint("admin_id", actor.ID))

	report := s.notifier.Deliver(ctx, Delivery{
		Kind:      s.kind,
		Accepted:  true,
		Submitter: (*req).Submitter(),
		Name:      (*req).DisplayName(),
		Details:   (*item).Summary(),
	})
	return item, report, nil
}

// Reject deletes the request, then notifies the submitter. It returns the
// request as it was before deletion.
func (s *ModerationService[R, P]) Reject(ctx context.Context, id uint, actor *models.User) (*R, DeliveryReport, error) {
	if err := Authorize(actor, CapModerate, "Not authorized to reject requests"); err != nil {
		return nil, DeliveryReport{}, err
	}

	req, err := s.find(ctx, id)
	if err != nil {
		return nil, DeliveryReport{}, err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, DeliveryReport{}, s.notFound()
		}
		return nil, DeliveryReport{}, types.Internal("Failed to reject "+string(s.kind)+" request", err)
	}
	s.log.Info("request rejected", zap.Uint("request_id", id), zap.Uint("admin_id", actor.ID))

	report := s.notifier.Deliver(ctx, Delivery{
		Kind:      s.kind,
		Accepted:  false,
		Submitter: (*req).Submitter(),
		Name:      (*req).DisplayName(),
	})
	return req, report, nil
}

func (s *ModerationService[R, P]) find(ctx context.Context, id uint) (*R, error) {
	req, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, s.notFound()
		}
		return nil, types.Internal("Failed to load "+string(s.kind)+" request", err)
	}
	return req, nil
}

func (s *ModerationService[R, P]) notFound() error {
	return types.NotFound(s.kind.Title() + " request not found")
}
