package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ceylon-compass-server/middleware"
	"ceylon-compass-server/models"
)

const maxBodyBytes = 12 << 20

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth                  *AuthHandler
	Content               *ContentHandler
	EventRequests         *RequestHandler[models.EventRequest, models.Event]
	AccommodationRequests *RequestHandler[models.AccommodationRequest, models.Accommodation]
	RestaurantRequests    *RequestHandler[models.RestaurantRequest, models.Restaurant]
	Locations             *LocationHandler
	Notifications         *NotificationHandler
	Contact               *ContactHandler
	Admin                 *AdminHandler
	Email                 *EmailHandler
	Media                 *MediaHandler
}

type RouterConfig struct {
	Production     bool
	AllowedOrigins []string
	Auth           *middleware.Authenticator
	Limiter        *middleware.RateLimiter
	Log            *zap.Logger
}

// NewRouter builds the engine with the global middleware stack and every /api route.
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	setupValidation()

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.Recovery(cfg.Log))
	router.Use(middleware.SecurityHeaders(cfg.Production))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.BodyLimit(maxBodyBytes))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Ceylon Compass server is running",
			"time":    time.Now().UTC(),
		})
	})

	requireAuth := cfg.Auth.RequireAuth()
	limiter := cfg.Limiter.Middleware()

	api := router.Group("/api")
	{
		h.Auth.RegisterAuthRoutes(api, requireAuth, limiter)
		h.Content.RegisterContentRoutes(api, requireAuth)
		h.EventRequests.RegisterRoutes(api, "/eventreq", requireAuth)
		h.AccommodationRequests.RegisterRoutes(api, "/accommodationreq", requireAuth)
		h.RestaurantRequests.RegisterRoutes(api, "/restaurantreq", requireAuth)
		h.Locations.RegisterLocationRoutes(api, requireAuth)
		h.Notifications.RegisterNotificationRoutes(api, requireAuth, cfg.Auth.WebSocketAuth())
		h.Contact.RegisterContactRoutes(api, requireAuth, limiter)
		h.Admin.RegisterAdminRoutes(api, requireAuth)
		h.Email.RegisterEmailRoutes(api, requireAuth)
		h.Media.RegisterMediaRoutes(api, requireAuth)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
	return router
}
