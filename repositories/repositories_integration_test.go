//go:build integration

package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ceylon-compass-server/config"
	"ceylon-compass-server/database"
	"ceylon-compass-server/models"
	"ceylon-compass-server/repositories"
	"ceylon-compass-server/services"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("ceylon"),
		postgres.WithUsername("ceylon"),
		postgres.WithPassword("ceylon"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(ctx, config.DatabaseConfig{
		URL:             dsn,
		MaxIdleConns:    2,
		MaxOpenConns:    4,
		ConnMaxLifetime: time.Minute,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, users repositories.UserRepository, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestRepositories(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	users := repositories.NewUserRepository(db)

	t.Run("publish moves a request exactly once", func(t *testing.T) {
		owner := createUser(t, users, "publisher")
		reqs := repositories.NewSubmissionRepository[models.AccommodationRequest, models.Accommodation](db)

		req := &models.AccommodationRequest{
			AccommodationDetails: models.AccommodationDetails{
				Name: "Sea View", Description: "d", Country: "Sri Lanka", City: "Galle", Address: "a",
				Price: 75, Capacity: 2, Images: []string{"https://img.example.com/1.jpg"}, ContactNumber: "1",
			},
			Type:        "hotel",
			CreatedByID: owner.ID,
			Status:      models.StatusPending,
		}
		require.NoError(t, reqs.Create(ctx, req))

		loaded, err := reqs.FindByID(ctx, req.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded.CreatedBy)
		assert.Equal(t, owner.Email, loaded.CreatedBy.Email)

		item := &models.Accommodation{
			AccommodationDetails: req.AccommodationDetails,
			PriceRange:           "$$",
			Type:                 models.ListingTypeHotel,
			Email:                owner.Email,
			CreatedByID:          owner.ID,
			Status:               models.StatusApproved,
		}
		require.NoError(t, reqs.Publish(ctx, req.ID, item))
		assert.NotZero(t, item.ID)

		again := *item
		again.ID = 0
		assert.ErrorIs(t, reqs.Publish(ctx, req.ID, &again), repositories.ErrNotFound)

		n, err := reqs.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)

		accommodations := repositories.NewAccommodationRepository(db)
		approved, err := accommodations.CountByStatus(ctx, models.StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, int64(1), approved)
	})

	t.Run("reviews update the average rating", func(t *testing.T) {
		owner := createUser(t, users, "chef")
		reviewer := createUser(t, users, "critic")
		restaurants := repositories.NewRestaurantRepository(db)

		r := &models.Restaurant{
			RestaurantDetails: models.RestaurantDetails{
				Name: "Ministry of Crab", Cuisine: "Seafood", Country: "Sri Lanka", City: "Colombo",
				Address: "Old Dutch Hospital", Description: "d", ContactNumber: "1", OpeningHours: "12-23",
			},
			CreatedByID: owner.ID,
			Status:      models.StatusApproved,
		}
		require.NoError(t, restaurants.Create(ctx, r))

		_, err := restaurants.AddReview(ctx, &models.Review{RestaurantID: r.ID, UserID: reviewer.ID, Rating: 5})
		require.NoError(t, err)
		updated, err := restaurants.AddReview(ctx, &models.Review{RestaurantID: r.ID, UserID: owner.ID, Rating: 2})
		require.NoError(t, err)
		assert.InDelta(t, 3.5, updated.Rating, 0.001)
		assert.Len(t, updated.Reviews, 2)

		_, err = restaurants.AddReview(ctx, &models.Review{RestaurantID: 9999, UserID: owner.ID, Rating: 4})
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("past events are removed before the cutoff", func(t *testing.T) {
		owner := createUser(t, users, "organizer")
		events := repositories.NewEventRepository(db)
		today := time.Date(2024, 8, 14, 0, 0, 0, 0, time.UTC)

		for i, date := range []time.Time{today.AddDate(0, 0, -1), today, today.AddDate(0, 0, 3)} {
			require.NoError(t, events.Create(ctx, &models.Event{
				EventDetails: models.EventDetails{
					Title: "Event", Description: "d", Country: "Sri Lanka", City: "Kandy", Address: "a",
					Date: date, Time: "18:00", Image: "i", Category: "Culture", Capacity: i + 1,
				},
				CreatedByID: owner.ID,
				Status:      models.StatusApproved,
			}))
		}

		upcoming, err := events.List(ctx, repositories.EventFilter{ShowAll: true, From: today})
		require.NoError(t, err)
		assert.Len(t, upcoming, 2)

		n, err := events.DeleteBefore(ctx, today)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("accommodation listing filters approved stays by price", func(t *testing.T) {
		owner := createUser(t, users, "host")
		accommodations := repositories.NewAccommodationRepository(db)

		seed := []struct {
			name   string
			price  float64
			status models.ContentStatus
		}{
			{"Lagoon Villa", 250, models.StatusApproved},
			{"Beach Hut", 30, models.StatusApproved},
			{"Reef Lodge", 90, models.StatusApproved},
			{"Coral Suites", 60, models.StatusApproved},
			{"Unreviewed Inn", 40, models.StatusPending},
		}
		for _, s := range seed {
			require.NoError(t, accommodations.Create(ctx, &models.Accommodation{
				AccommodationDetails: models.AccommodationDetails{
					Name: s.name, Description: "d", Country: "Maldives", City: "Male", Address: "a",
					Price: s.price, Capacity: 2, Images: []string{"i"}, ContactNumber: "1",
				},
				PriceRange:  services.PriceRange(s.price),
				Type:        models.ListingTypeHotel,
				Email:       owner.Email,
				CreatedByID: owner.ID,
				Status:      s.status,
			}))
		}

		names := func(items []models.Accommodation) []string {
			out := make([]string, 0, len(items))
			for _, a := range items {
				out = append(out, a.Name)
			}
			return out
		}

		all, err := accommodations.List(ctx, repositories.AccommodationFilter{Country: "Maldives"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Beach Hut", "Coral Suites", "Reef Lodge", "Lagoon Villa"}, names(all))

		low, high := 50.0, 100.0
		ranged, err := accommodations.List(ctx, repositories.AccommodationFilter{Country: "Maldives", MinPrice: &low, MaxPrice: &high})
		require.NoError(t, err)
		assert.Equal(t, []string{"Coral Suites", "Reef Lodge"}, names(ranged))

		bucket, err := accommodations.List(ctx, repositories.AccommodationFilter{Country: "Maldives", PriceRange: "$", MinPrice: &low, MaxPrice: &high})
		require.NoError(t, err)
		assert.Equal(t, []string{"Beach Hut"}, names(bucket))
	})

	t.Run("restaurant listing shows approved places only", func(t *testing.T) {
		owner := createUser(t, users, "restaurateur")
		restaurants := repositories.NewRestaurantRepository(db)

		for _, r := range []struct {
			name   string
			status models.ContentStatus
		}{
			{"Upali's", models.StatusApproved},
			{"Nuga Gama", models.StatusPending},
			{"Barefoot Cafe", models.StatusApproved},
		} {
			require.NoError(t, restaurants.Create(ctx, &models.Restaurant{
				RestaurantDetails: models.RestaurantDetails{
					Name: r.name, Cuisine: "Sri Lankan", Country: "Sri Lanka", City: "Negombo",
					Address: "a", Description: "d", ContactNumber: "1", OpeningHours: "10-22",
				},
				CreatedByID: owner.ID,
				Status:      r.status,
			}))
		}

		items, err := restaurants.List(ctx, repositories.RestaurantFilter{Country: "Sri Lanka", City: "Negombo"})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Barefoot Cafe", items[0].Name)
		assert.Equal(t, "Upali's", items[1].Name)
	})

	t.Run("locations match country case-insensitively", func(t *testing.T) {
		locations := repositories.NewLocationRepository(db)
		require.NoError(t, locations.Create(ctx, &models.Location{Country: "Sri Lanka", Cities: []string{"Colombo", "Kandy"}}))

		loc, err := locations.FindByCountry(ctx, "sri lanka")
		require.NoError(t, err)
		assert.Equal(t, []string{"Colombo", "Kandy"}, []string(loc.Cities))

		require.NoError(t, locations.DeleteByCountry(ctx, "SRI LANKA"))
		_, err = locations.FindByCountry(ctx, "Sri Lanka")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("deleting a user removes their content", func(t *testing.T) {
		victim := createUser(t, users, "leaving")
		reqs := repositories.NewSubmissionRepository[models.EventRequest, models.Event](db)
		require.NoError(t, reqs.Create(ctx, &models.EventRequest{
			EventDetails: models.EventDetails{Title: "t", Description: "d", Country: "c", City: "c", Address: "a", Date: time.Now(), Time: "1", Image: "i", Category: "c", Capacity: 1},
			CreatedByID:  victim.ID,
			Status:       models.StatusPending,
		}))
		notifications := repositories.NewNotificationRepository(db)
		require.NoError(t, notifications.Create(ctx, &models.Notification{UserID: victim.ID, Title: "t", Message: "m", Type: models.NotificationEventRejected}))

		require.NoError(t, users.Delete(ctx, victim.ID))

		mine, err := reqs.ListByCreator(ctx, victim.ID)
		require.NoError(t, err)
		assert.Empty(t, mine)
		_, err = users.FindByID(ctx, victim.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.ErrorIs(t, users.Delete(ctx, victim.ID), repositories.ErrNotFound)

		var left int64
		require.NoError(t, db.Raw("SELECT COUNT(*) FROM notifications WHERE user_id = ?", victim.ID).Scan(&left).Error)
		assert.Zero(t, left)
	})
}
