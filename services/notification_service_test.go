package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ceylon-compass-server/models"
	"ceylon-compass-server/repositories"
	"ceylon-compass-server/types"
)

type fakeNotificationRepo struct {
	items     map[uint]*models.Notification
	markCalls int
	lastLimit int
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	f.items[n.ID] = n
	return nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID uint, limit int) ([]models.Notification, error) {
	f.lastLimit = limit
	var out []models.Notification
	for _, n := range f.items {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) FindForUser(_ context.Context, id, userID uint) (*models.Notification, error) {
	n, ok := f.items[id]
	if !ok || n.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	return n, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id uint) error {
	f.markCalls++
	f.items[id].Read = true
	return nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID uint) (int64, error) {
	var n int64
	for _, item := range f.items {
		if item.UserID == userID && !item.Read {
			n++
		}
	}
	return n, nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uint) (int64, error) {
	var n int64
	for _, item := range f.items {
		if item.UserID == userID && !item.Read {
			item.Read = true
			n++
		}
	}
	return n, nil
}

func newNotificationFixture() (*NotificationService, *fakeNotificationRepo) {
	repo := &fakeNotificationRepo{items: map[uint]*models.Notification{
		1: {ID: 1, UserID: member.ID, Title: "Event Request Accepted", Type: models.NotificationEventAccepted},
		2: {ID: 2, UserID: member.ID, Title: "Restaurant Request Rejected", Type: models.NotificationRestaurantRejected},
		3: {ID: 3, UserID: admin.ID, Title: "Accommodation Request Accepted", Type: models.NotificationAccommodationAccepted},
	}}
	return NewNotificationService(repo, nil), repo
}

func TestMarkReadIsIdempotent(t *testing.T) {
	svc, repo := newNotificationFixture()

	n, err := svc.MarkRead(context.Background(), 1, member)
	require.NoError(t, err)
	assert.True(t, n.Read)

	n, err = svc.MarkRead(context.Background(), 1, member)
	require.NoError(t, err)
	assert.True(t, n.Read)
	assert.Equal(t, 1, repo.markCalls)
}

func TestMarkReadOtherUsersNotification(t *testing.T) {
	svc, _ := newNotificationFixture()

	_, err := svc.MarkRead(context.Background(), 3, member)
	assert.Equal(t, types.KindNotFound, types.KindOf(err))
	assert.EqualError(t, err, "Notification not found")
}

func TestUnreadCountAndMarkAll(t *testing.T) {
	svc, repo := newNotificationFixture()
	ctx := context.Background()

	count, err := svc.UnreadCount(ctx, member)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	updated, err := svc.MarkAllRead(ctx, member)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	count, err = svc.UnreadCount(ctx, member)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.False(t, repo.items[3].Read)

	items, err := svc.List(ctx, member)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 50, repo.lastLimit)
}
