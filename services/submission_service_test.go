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

type fakeEventRequests struct {
	items  map[uint]*models.EventRequest
	nextID uint
}

func (f *fakeEventRequests) Create(_ context.Context, r *models.EventRequest) error {
	f.nextID++
	r.ID = f.nextID
	f.items[r.ID] = r
	return nil
}

func (f *fakeEventRequests) FindByID(_ context.Context, id uint) (*models.EventRequest, error) {
	if r, ok := f.items[id]; ok {
		return r, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeEventRequests) List(_ context.Context) ([]models.EventRequest, error) {
	var out []models.EventRequest
	for _, r := range f.items {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeEventRequests) ListByCreator(_ context.Context, userID uint) ([]models.EventRequest, error) {
	var out []models.EventRequest
	for _, r := range f.items {
		if r.CreatedByID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeEventRequests) ListByStatus(ctx context.Context, _ models.ContentStatus) ([]models.EventRequest, error) {
	return f.List(ctx)
}

func (f *fakeEventRequests) Save(_ context.Context, r *models.EventRequest) error {
	f.items[r.ID] = r
	return nil
}

func (f *fakeEventRequests) Delete(_ context.Context, id uint) error {
	if _, ok := f.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func newSubmissionFixture() (*SubmissionService[models.EventRequest], *fakeEventRequests) {
	store := &fakeEventRequests{items: map[uint]*models.EventRequest{}}
	return NewSubmissionService[models.EventRequest](models.KindEvent, store, nil), store
}

func submitEvent(t *testing.T, svc *SubmissionService[models.EventRequest], actor *models.User) *models.EventRequest {
	t.Helper()
	req, err := NewEventRequest(models.EventInput{Title: "Galle Literary Festival", Date: "2025-01-23", Time: "09:00", Capacity: 300}, actor)
	require.NoError(t, err)
	require.NoError(t, svc.Submit(context.Background(), req))
	return req
}

func TestSubmitIsPendingAndOwned(t *testing.T) {
	svc, store := newSubmissionFixture()
	req := submitEvent(t, svc, member)

	assert.Equal(t, models.StatusPending, req.Status)
	assert.Equal(t, member.ID, req.CreatedByID)
	assert.Len(t, store.items, 1)

	mine, err := svc.ListMine(context.Background(), member)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestListingAllNeedsModerator(t *testing.T) {
	svc, _ := newSubmissionFixture()
	submitEvent(t, svc, member)

	_, err := svc.List(context.Background(), member)
	assert.Equal(t, types.KindForbidden, types.KindOf(err))

	all, err := svc.List(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRequestOwnership(t *testing.T) {
	svc, _ := newSubmissionFixture()
	req := submitEvent(t, svc, member)
	stranger := &models.User{ID: 55, Role: models.RoleUser}
	ctx := context.Background()

	_, err := svc.Get(ctx, req.ID, stranger)
	assert.Equal(t, types.KindForbidden, types.KindOf(err))

	err = svc.Delete(ctx, req.ID, stranger)
	assert.Equal(t, types.KindForbidden, types.KindOf(err))

	got, err := svc.Get(ctx, req.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, req.ID, got.ID)

	require.NoError(t, svc.Delete(ctx, req.ID, member))
	_, err = svc.Get(ctx, req.ID, member)
	assert.EqualError(t, err, "Event request not found")
}

func TestRequestUpdate(t *testing.T) {
	svc, _ := newSubmissionFixture()
	req := submitEvent(t, svc, member)
	ctx := context.Background()

	title := "Galle Literary Festival 2025"
	patch := models.EventPatch{Title: &title}
	updated, err := svc.Update(ctx, req.ID, member, patch.Ownership, patch.ApplyToRequest)
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	status := models.StatusApproved
	patch = models.EventPatch{Ownership: models.Ownership{Status: &status}}
	_, err = svc.Update(ctx, req.ID, admin, patch.Ownership, patch.ApplyToRequest)
	assert.Equal(t, "status", appErr(t, err).Field)

	owner := uint(99)
	patch = models.EventPatch{Ownership: models.Ownership{CreatedByID: &owner}}
	_, err = svc.Update(ctx, req.ID, member, patch.Ownership, patch.ApplyToRequest)
	assert.Equal(t, types.KindForbidden, types.KindOf(err))

	updated, err = svc.Update(ctx, req.ID, admin, patch.Ownership, patch.ApplyToRequest)
	require.NoError(t, err)
	assert.Equal(t, owner, updated.CreatedByID)
}

func TestNewAccommodationRequestType(t *testing.T) {
	req, err := NewAccommodationRequest(models.AccommodationInput{Name: "Ella Rock Villa", Type: " Resort "}, member)
	require.NoError(t, err)
	assert.Equal(t, "resort", req.Type)

	_, err = NewAccommodationRequest(models.AccommodationInput{Name: "Tent", Type: "camping"}, member)
	assert.Equal(t, "type", appErr(t, err).Field)
}

type fakeAccommodationRequests struct {
	items map[uint]*models.AccommodationRequest
}

func (f *fakeAccommodationRequests) Create(_ context.Context, r *models.AccommodationRequest) error {
	r.ID = uint(len(f.items) + 1)
	f.items[r.ID] = r
	return nil
}

func (f *fakeAccommodationRequests) FindByID(_ context.Context, id uint) (*models.AccommodationRequest, error) {
	if r, ok := f.items[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAccommodationRequests) List(context.Context) ([]models.AccommodationRequest, error) {
	return nil, nil
}

func (f *fakeAccommodationRequests) ListByCreator(context.Context, uint) ([]models.AccommodationRequest, error) {
	return nil, nil
}

func (f *fakeAccommodationRequests) ListByStatus(context.Context, models.ContentStatus) ([]models.AccommodationRequest, error) {
	return nil, nil
}

func (f *fakeAccommodationRequests) Save(_ context.Context, r *models.AccommodationRequest) error {
	cp := *r
	f.items[r.ID] = &cp
	return nil
}

func (f *fakeAccommodationRequests) Delete(_ context.Context, id uint) error {
	delete(f.items, id)
	return nil
}

func TestAccommodationRequestUpdateType(t *testing.T) {
	store := &fakeAccommodationRequests{items: map[uint]*models.AccommodationRequest{}}
	svc := NewSubmissionService[models.AccommodationRequest](models.KindAccommodation, store, nil)
	ctx := context.Background()

	req, err := NewAccommodationRequest(models.AccommodationInput{Name: "Ella Rock Villa", Type: "resort", Price: 120}, member)
	require.NoError(t, err)
	require.NoError(t, svc.Submit(ctx, req))

	castle := "Castle"
	patch := models.AccommodationPatch{Type: &castle}
	_, err = svc.Update(ctx, req.ID, member, patch.Ownership, patch.ApplyToRequest)
	assert.Equal(t, "type", appErr(t, err).Field)
	assert.Equal(t, "resort", store.items[req.ID].Type)

	hostel := " Hostel "
	price := 40.0
	patch = models.AccommodationPatch{Type: &hostel, Price: &price}
	updated, err := svc.Update(ctx, req.ID, member, patch.Ownership, patch.ApplyToRequest)
	require.NoError(t, err)
	assert.Equal(t, "hostel", updated.Type)
	assert.Equal(t, "hostel", store.items[req.ID].Type)
	assert.Equal(t, 40.0, store.items[req.ID].Price)
}

func TestRequestUpdateBadDate(t *testing.T) {
	svc, _ := newSubmissionFixture()
	req := submitEvent(t, svc, member)

	date := "next tuesday"
	patch := models.EventPatch{Date: &date}
	_, err := svc.Update(context.Background(), req.ID, member, patch.Ownership, patch.ApplyToRequest)
	assert.Equal(t, "date", appErr(t, err).Field)
}
