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

type fakeAccommodationRepo struct {
	repositories.AccommodationRepository
	items      map[uint]*models.Accommodation
	lastFilter repositories.AccommodationFilter
}

func (f *fakeAccommodationRepo) FindByID(_ context.Context, id uint) (*models.Accommodation, error) {
	if a, ok := f.items[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAccommodationRepo) Save(_ context.Context, a *models.Accommodation) error {
	cp := *a
	f.items[a.ID] = &cp
	return nil
}

func (f *fakeAccommodationRepo) List(_ context.Context, filter repositories.AccommodationFilter) ([]models.Accommodation, error) {
	f.lastFilter = filter
	return nil, nil
}

func newAccommodationFixture() (*AccommodationService, *fakeAccommodationRepo) {
	repo := &fakeAccommodationRepo{items: map[uint]*models.Accommodation{
		3: {
			ID:                   3,
			AccommodationDetails: models.AccommodationDetails{Name: "Sea View", Price: 75},
			PriceRange:           "$$",
			Type:                 models.ListingTypeHotel,
			CreatedByID:          member.ID,
			Status:               models.StatusApproved,
		},
	}}
	return NewAccommodationService(repo, nil), repo
}

func TestAccommodationUpdateRebucketsPrice(t *testing.T) {
	svc, repo := newAccommodationFixture()
	ctx := context.Background()

	price := 240.0
	updated, err := svc.Update(ctx, 3, member, models.AccommodationPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "$$$$", updated.PriceRange)
	assert.Equal(t, "$$$$", repo.items[3].PriceRange)

	name := "Sea View Deluxe"
	updated, err = svc.Update(ctx, 3, member, models.AccommodationPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "$$$$", updated.PriceRange)

	price = 50
	kind := "guesthouse"
	updated, err = svc.Update(ctx, 3, member, models.AccommodationPatch{Price: &price, Type: &kind})
	require.NoError(t, err)
	assert.Equal(t, "$", updated.PriceRange)
	assert.Equal(t, models.ListingTypeGuestHouse, updated.Type)
}

func TestAccommodationUpdateNeedsOwner(t *testing.T) {
	svc, _ := newAccommodationFixture()
	stranger := &models.User{ID: 55, Role: models.RoleUser}

	price := 10.0
	_, err := svc.Update(context.Background(), 3, stranger, models.AccommodationPatch{Price: &price})
	assert.Equal(t, types.KindForbidden, types.KindOf(err))
}

func TestAccommodationListPassesPriceFilter(t *testing.T) {
	svc, repo := newAccommodationFixture()
	floor := 20.0

	_, err := svc.List(context.Background(), AccommodationQuery{Country: "Sri Lanka", PriceRange: "$$", MinPrice: &floor})
	require.NoError(t, err)
	assert.Equal(t, "Sri Lanka", repo.lastFilter.Country)
	assert.Equal(t, "$$", repo.lastFilter.PriceRange)
	assert.Equal(t, &floor, repo.lastFilter.MinPrice)
}
