package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ceylon-compass-server/config"
	"ceylon-compass-server/models"
)

func TestDeliverWithDisabledMailer(t *testing.T) {
	mailer, err := NewMailer(config.MailConfig{}, nil)
	require.NoError(t, err)
	notifications := &fakeNotifications{}
	n := NewNotifier(notifications, mailer, nil, nil)

	report := n.Deliver(context.Background(), Delivery{
		Kind:      models.KindRestaurant,
		Accepted:  false,
		Submitter: member,
		Name:      "Ministry of Crab",
	})

	assert.Equal(t, OutcomeDelivered, report.Notification.Outcome)
	assert.Equal(t, OutcomeSkipped, report.Email.Outcome)
	assert.Equal(t, "mailer disabled", report.Email.Reason)
	require.Len(t, notifications.created, 1)
	assert.Equal(t, `Your restaurant "Ministry of Crab" has been rejected.`, notifications.created[0].Message)
}

func TestDeliverWithoutSubmitter(t *testing.T) {
	notifications := &fakeNotifications{}
	mailer := &fakeMailer{}
	report := NewNotifier(notifications, mailer, nil, nil).Deliver(context.Background(), Delivery{
		Kind:     models.KindEvent,
		Accepted: true,
		Name:     "Orphaned",
	})

	assert.Equal(t, OutcomeSkipped, report.Notification.Outcome)
	assert.Equal(t, OutcomeSkipped, report.Email.Outcome)
	assert.Empty(t, notifications.created)
	assert.Empty(t, mailer.sent)
}

func TestDecisionEmailListsDetails(t *testing.T) {
	email, err := decisionEmail("nimal@example.com", models.KindAccommodation, "Sea View", true, []models.Detail{
		{Label: "Price", Value: "$75.00"},
		{Label: "Location", Value: "Galle, Sri Lanka"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Accommodation Request Accepted", email.Subject)
	assert.Contains(t, email.HTML, "<strong>Price:</strong> $75.00")
	assert.Contains(t, email.HTML, "Galle, Sri Lanka")
	assert.Contains(t, email.Text, "accepted")
}
