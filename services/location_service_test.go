package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ceylon-compass-server/models"
	"ceylon-compass-server/repositories"
	"ceylon-compass-server/types"
)

type fakeLocationRepo struct {
	locs map[string]*models.Location
}

func (f *fakeLocationRepo) ListCountries(_ context.Context) ([]string, error) {
	var out []string
	for _, l := range f.locs {
		out = append(out, l.Country)
	}
	return out, nil
}

func (f *fakeLocationRepo) FindByCountry(_ context.Context, country string) (*models.Location, error) {
	if l, ok := f.locs[strings.ToLower(country)]; ok {
		return l, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeLocationRepo) ListAll(_ context.Context) ([]models.Location, error) {
	var out []models.Location
	for _, l := range f.locs {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeLocationRepo) Create(_ context.Context, loc *models.Location) error {
	f.locs[strings.ToLower(loc.Country)] = loc
	return nil
}

func (f *fakeLocationRepo) Save(_ context.Context, loc *models.Location) error {
	f.locs[strings.ToLower(loc.Country)] = loc
	return nil
}

func (f *fakeLocationRepo) DeleteByCountry(_ context.Context, country string) error {
	key := strings.ToLower(country)
	if _, ok := f.locs[key]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.locs, key)
	return nil
}

func newLocationFixture() (*LocationService, *fakeLocationRepo) {
	repo := &fakeLocationRepo{locs: map[string]*models.Location{
		"sri lanka": {ID: 1, Country: "Sri Lanka", Cities: []string{"Colombo", "Kandy", "Galle"}},
	}}
	return NewLocationService(repo, nil), repo
}

func TestCities(t *testing.T) {
	svc, _ := newLocationFixture()

	cities, err := svc.Cities(context.Background(), "SRI LANKA")
	require.NoError(t, err)
	assert.Equal(t, []string{"Colombo", "Kandy", "Galle"}, cities)

	_, err = svc.Cities(context.Background(), "Atlantis")
	assert.EqualError(t, err, "Country not found")
}

func TestCountriesNeverNil(t *testing.T) {
	svc := NewLocationService(&fakeLocationRepo{locs: map[string]*models.Location{}}, nil)
	countries, err := svc.Countries(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, countries)
	assert.Empty(t, countries)
}

func TestAddCountry(t *testing.T) {
	svc, repo := newLocationFixture()
	ctx := context.Background()

	loc, err := svc.AddCountry(ctx, admin, models.CountryInput{Country: " Maldives ", Cities: []string{"Male", " Male", "", "Addu"}})
	require.NoError(t, err)
	assert.Equal(t, "Maldives", loc.Country)
	assert.Equal(t, []string{"Male", "Addu"}, []string(loc.Cities))
	assert.Contains(t, repo.locs, "maldives")

	_, err = svc.AddCountry(ctx, admin, models.CountryInput{Country: "sri lanka"})
	assert.EqualError(t, err, "Country already exists")

	_, err = svc.AddCountry(ctx, admin, models.CountryInput{Country: "  "})
	assert.EqualError(t, err, "Country name is required")

	_, err = svc.AddCountry(ctx, member, models.CountryInput{Country: "India"})
	assert.Equal(t, types.KindForbidden, types.KindOf(err))
}

func TestAddAndDeleteCity(t *testing.T) {
	svc, _ := newLocationFixture()
	ctx := context.Background()

	loc, err := svc.AddCity(ctx, admin, "Sri Lanka", "Jaffna")
	require.NoError(t, err)
	assert.Contains(t, loc.Cities, "Jaffna")

	_, err = svc.AddCity(ctx, admin, "Sri Lanka", "Kandy")
	assert.EqualError(t, err, "City already exists in this country")

	loc, err = svc.DeleteCity(ctx, admin, "Sri Lanka", "Kandy")
	require.NoError(t, err)
	assert.Equal(t, []string{"Colombo", "Galle", "Jaffna"}, []string(loc.Cities))

	_, err = svc.DeleteCity(ctx, admin, "Sri Lanka", "Kandy")
	assert.EqualError(t, err, "City not found in this country")
}

func TestDeleteCountryReturnsDeleted(t *testing.T) {
	svc, repo := newLocationFixture()

	loc, err := svc.DeleteCountry(context.Background(), admin, "Sri Lanka")
	require.NoError(t, err)
	assert.Equal(t, "Sri Lanka", loc.Country)
	assert.Empty(t, repo.locs)

	_, err = svc.DeleteCountry(context.Background(), admin, "Sri Lanka")
	assert.Equal(t, types.KindNotFound, types.KindOf(err))
}
