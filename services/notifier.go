package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ceylon-compass-server/logger"
	"ceylon-compass-server/models"
)

// Outcome of one best-effort side effect.
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

// Result records what happened to one side effect. It is logged and never
// returned as an error.
type Result struct {
	Step    string
	Outcome Outcome
	Reason  string
	Err     error
}

func delivered(step string) Result {
	return Result{Step: step, Outcome: OutcomeDelivered}
}

func skipped(step, reason string) Result {
	return Result{Step: step, Outcome: OutcomeSkipped, Reason: reason}
}

func failed(step string, err error) Result {
	return Result{Step: step, Outcome: OutcomeFailed, Reason: err.Error(), Err: err}
}

func (r Result) Log(log *zap.Logger, fields ...zap.Field) {
	fields = append(fields, zap.String("step", r.Step), zap.String("outcome", string(r.Outcome)))
	switch r.Outcome {
	case OutcomeFailed:
		log.Warn("side effect failed", append(fields, zap.Error(r.Err))...)
	case OutcomeSkipped:
		log.Info("side effect skipped", append(fields, zap.String("reason", r.Reason))...)
	default:
		log.Info("side effect delivered", fields...)
	}
}

// NotificationWriter persists in-app notifications.
type NotificationWriter interface {
	Create(ctx context.Context, n *models.Notification) error
}

// Pusher forwards a stored notification to the user's live connections.
type Pusher interface {
	PushNotification(userID uint, n *models.Notification)
}

// Delivery describes a moderation decision to announce to the submitter.
type Delivery struct {
	Kind      models.ContentKind
	Accepted  bool
	Submitter *models.User
	Name      string
	Details   []models.Detail
}

type DeliveryReport struct {
	Notification Result
	Email        Result
}

// Notifier records the in-app notification and sends the email for a decision.
// The two steps are independent.
type Notifier struct {
	notifications NotificationWriter
	mailer        Mailer
	pusher        Pusher
	log           *zap.Logger
}

func NewNotifier(notifications NotificationWriter, mailer Mailer, pusher Pusher, log *zap.Logger) *Notifier {
	return &Notifier{
		notifications: notifications,
		mailer:        mailer,
		pusher:        pusher,
		log:           logger.OrNop(log).Named("notifier"),
	}
}

func (n *Notifier) Deliver(ctx context.Context, d Delivery) DeliveryReport {
	report := DeliveryReport{
		Notification: n.notify(ctx, d),
		Email:        n.email(ctx, d),
	}

	fields := []zap.Field{
		zap.String("kind", string(d.Kind)),
		zap.Bool("accepted", d.Accepted),
		zap.String("name", d.Name),
	}
	if d.Submitter != nil {
		fields = append(fields, zap.Uint("user_id", d.Submitter.ID))
	}
	report.Notification.Log(n.log, fields...)
	report.Email.Log(n.log, fields...)
	return report
}

func (n *Notifier) notify(ctx context.Context, d Delivery) Result {
	const step = "notification"
	if d.Submitter == nil || d.Submitter.ID == 0 {
		return skipped(step, "submitter unknown")
	}

	title := fmt.Sprintf("%s Request Rejected", d.Kind.Title())
	message := fmt.Sprintf("Your %s \"%s\" has been rejected.", d.Kind, d.Name)
	if d.Accepted {
		title = fmt.Sprintf("%s Request Accepted", d.Kind.Title())
		message = fmt.Sprintf("Your %s \"%s\" has been accepted!", d.Kind, d.Name)
	}

	notification := &models.Notification{
		UserID:  d.Submitter.ID,
		Title:   title,
		Message: message,
		Type:    d.Kind.NotificationType(d.Accepted),
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		return failed(step, err)
	}
	if n.pusher != nil {
		n.pusher.PushNotification(notification.UserID, notification)
	}
	return delivered(step)
}

func (n *Notifier) email(ctx context.Context, d Delivery) Result {
	const step = "email"
	if d.Submitter == nil {
		return skipped(step, "submitter unknown")
	}
	if d.Submitter.Email == "" {
		return skipped(step, "submitter has no email")
	}

	email, err := decisionEmail(d.Submitter.Email, d.Kind, d.Name, d.Accepted, d.Details)
	if err != nil {
		return failed(step, err)
	}
	if _, err := n.mailer.Send(ctx, email); err != nil {
		if errors.Is(err, ErrMailerDisabled) {
			return skipped(step, "mailer disabled")
		}
		return failed(step, err)
	}
	return delivered(step)
}
