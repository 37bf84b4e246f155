package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"ceylon-compass-server/config"
	"ceylon-compass-server/database"
	"ceylon-compass-server/jobs"
	"ceylon-compass-server/logger"
	"ceylon-compass-server/middleware"
	"ceylon-compass-server/models"
	"ceylon-compass-server/repositories"
	"ceylon-compass-server/routes"
	"ceylon-compass-server/services"
	"ceylon-compass-server/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.IsProduction())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database, zlog)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			zlog.Warn("failed to close database", zap.Error(err))
		}
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}
	if err := database.SeedLocations(ctx, db, zlog); err != nil {
		return err
	}
	if err := database.SeedAdmin(ctx, db, cfg.Admin, zlog); err != nil {
		return err
	}

	mailer, err := services.NewMailer(cfg.Mail, zlog)
	if err != nil {
		return err
	}
	uploader, err := services.NewImageUploader(cfg.Cloudinary)
	if err != nil {
		return err
	}

	hub := websocket.NewHub(zlog)
	go hub.Run()
	defer hub.Stop()

	if cfg.Server.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router, cleanup, limiter := buildApp(cfg, db, mailer, uploader, hub, zlog)

	cleanup.Start(ctx)
	defer cleanup.Stop()
	go limiter.RunCleanup(ctx, 10*time.Minute)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// buildApp wires repositories, services and handlers into the router.
func buildApp(cfg *config.Config, db *gorm.DB, mailer services.Mailer, uploader services.ImageUploader, hub *websocket.Hub, zlog *zap.Logger) (*gin.Engine, *jobs.EventCleanupJob, *middleware.RateLimiter) {
	users := repositories.NewUserRepository(db)
	events := repositories.NewEventRepository(db)
	accommodations := repositories.NewAccommodationRepository(db)
	restaurants := repositories.NewRestaurantRepository(db)
	notifications := repositories.NewNotificationRepository(db)
	locations := repositories.NewLocationRepository(db)
	contacts := repositories.NewContactRepository(db)
	eventReqs := repositories.NewSubmissionRepository[models.EventRequest, models.Event](db)
	accommodationReqs := repositories.NewSubmissionRepository[models.AccommodationRequest, models.Accommodation](db)
	restaurantReqs := repositories.NewSubmissionRepository[models.RestaurantRequest, models.Restaurant](db)

	tokens := services.NewTokenService(cfg.JWT)
	notifier := services.NewNotifier(notifications, mailer, hub, zlog)
	eventService := services.NewEventService(events, zlog)
	accommodationService := services.NewAccommodationService(accommodations, zlog)
	restaurantService := services.NewRestaurantService(restaurants, zlog)
	cleanup := jobs.NewEventCleanupJob(events, cfg.Cleanup.Interval, zlog)

	admin := services.NewAdminService(services.AdminDeps{
		Users:                 users,
		Events:                events,
		Accommodations:        accommodations,
		Restaurants:           restaurants,
		EventRequests:         eventReqs,
		AccommodationRequests: accommodationReqs,
		RestaurantRequests:    restaurantReqs,
		Cleaner:               cleanup,
	}, zlog)

	resp := routes.NewResponder(cfg.IsProduction(), zlog)
	handlers := routes.Handlers{
		Auth:    routes.NewAuthHandler(services.NewAuthService(users, tokens, mailer, cfg.App.FrontendURL, zlog), resp),
		Content: routes.NewContentHandler(eventService, accommodationService, restaurantService, resp),
		EventRequests: routes.NewEventRequestHandler(
			services.NewSubmissionService[models.EventRequest](models.KindEvent, eventReqs, zlog),
			services.NewModerationService[models.EventRequest, models.Event](models.KindEvent, eventReqs, services.MapEventRequest, notifier, zlog),
			resp,
		),
		AccommodationRequests: routes.NewAccommodationRequestHandler(
			services.NewSubmissionService[models.AccommodationRequest](models.KindAccommodation, accommodationReqs, zlog),
			services.NewModerationService[models.AccommodationRequest, models.Accommodation](models.KindAccommodation, accommodationReqs, services.MapAccommodationRequest, notifier, zlog),
			resp,
		),
		RestaurantRequests: routes.NewRestaurantRequestHandler(
			services.NewSubmissionService[models.RestaurantRequest](models.KindRestaurant, restaurantReqs, zlog),
			services.NewModerationService[models.RestaurantRequest, models.Restaurant](models.KindRestaurant, restaurantReqs, services.MapRestaurantRequest, notifier, zlog),
			resp,
		),
		Locations:     routes.NewLocationHandler(services.NewLocationService(locations, zlog), resp),
		Notifications: routes.NewNotificationHandler(services.NewNotificationService(notifications, zlog), hub, cfg.CORS.AllowedOrigins, resp),
		Contact:       routes.NewContactHandler(services.NewContactService(contacts, zlog), resp),
		Admin:         routes.NewAdminHandler(admin, eventService, accommodationService, resp),
		Email:         routes.NewEmailHandler(services.NewEmailService(mailer, zlog), resp),
		Media:         routes.NewMediaHandler(services.NewMediaService(uploader, cfg.Cloudinary.Folder, zlog), resp),
	}

	// 10 requests per minute per IP on credential and contact endpoints.
	limiter := middleware.NewRateLimiter(rate.Every(6*time.Second), 10, zlog)

	router := routes.NewRouter(routes.RouterConfig{
		Production:     cfg.IsProduction(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Auth:           middleware.NewAuthenticator(tokens, users, zlog),
		Limiter:        limiter,
		Log:            zlog,
	}, handlers)
	return router, cleanup, limiter
}
