package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ceylon-compass-server/middleware"
	"ceylon-compass-server/models"
	"ceylon-compass-server/services"
	"ceylon-compass-server/types"
)

// ContentHandler serves the published events, accommodations and restaurants.
type ContentHandler struct {
	events         *services.EventService
	accommodations *services.AccommodationService
	restaurants    *services.RestaurantService
	Responder
}

func NewContentHandler(events *services.EventService, accommodations *services.AccommodationService, restaurants *services.RestaurantService, r Responder) *ContentHandler {
	return &ContentHandler{events: events, accommodations: accommodations, restaurants: restaurants, Responder: r}
}

func (h *ContentHandler) RegisterContentRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	moderate := middleware.RequireCapability(services.CapModerate)

	events := rg.Group("/events")
	{
		events.GET("", h.listEvents)
		events.GET("/user/submissions", requireAuth, h.myEvents)
		events.GET("/admin/pending", requireAuth, moderate, h.pendingEvents)
		events.GET("/:id", h.getEvent)
		events.POST("", requireAuth, h.createEvent)
		events.PUT("/:id", requireAuth, h.updateEvent)
		events.DELETE("/:id", requireAuth, h.deleteEvent)
	}

	accommodations := rg.Group("/accommodations")
	{
		accommodations.GET("", h.listAccommodations)
		accommodations.GET("/user/submissions", requireAuth, h.myAccommodations)
		accommodations.GET("/admin/pending", requireAuth, moderate, h.pendingAccommodations)
		accommodations.GET("/:id", h.getAccommodation)
		accommodations.POST("", requireAuth, h.createAccommodation)
		accommodations.PUT("/:id", requireAuth, h.updateAccommodation)
		accommodations.DELETE("/:id", requireAuth, h.deleteAccommodation)
	}

	restaurants := rg.Group("/restaurants")
	{
		restaurants.GET("", h.listRestaurants)
		restaurants.GET("/user/submissions", requireAuth, h.myRestaurants)
		restaurants.GET("/admin/pending", requireAuth, moderate, h.pendingRestaurants)
		restaurants.GET("/:id", h.getRestaurant)
		restaurants.POST("", requireAuth, h.createRestaurant)
		restaurants.PUT("/:id", requireAuth, h.updateRestaurant)
		restaurants.DELETE("/:id", requireAuth, h.deleteRestaurant)
		restaurants.POST("/:id/reviews", requireAuth, h.addReview)
	}
}

func showAll(c *gin.Context) bool {
	v, _ := strconv.ParseBool(c.Query("showAll"))
	return v
}

func queryFloat(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, types.FieldError(name, "Invalid "+name)
	}
	return &v, nil
}

// respond writes v on success or the error otherwise.
func (h *ContentHandler) respond(c *gin.Context, status int, v any, err error) {
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(status, v)
}

// Events

func (h *ContentHandler) listEvents(c *gin.Context) {
	items, err := h.events.List(c.Request.Context(), services.EventQuery{
		Country: c.Query("country"),
		City:    c.Query("city"),
		ShowAll: showAll(c),
		Sort:    c.Query("sort"),
	})
	h.respond(c, http.StatusOK, nonNil(items), err)
}

func (h *ContentHandler) getEvent(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	item, err := h.events.Get(c.Request.Context(), id)
	h.respond(c, http.StatusOK, item, err)
}

func (h *ContentHandler) createEvent(c *gin.Context) {
	var in models.EventInput
	if err := bindJSON(c, &in); err != nil {
		h.Error(c, err)
		return
	}
	item, err := h.events.Create(c.Request.Context(), middleware.CurrentUser(c), in)
	h.respond(c, http.StatusCreated, item, err)
}

func (h *ContentHandler) updateEvent(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	var patch models.EventPatch
	if err := bindJSON(c, &patch); err != nil {
		h.Error(c, err)
		return
	}
	item, err := h.events.Update(c.Request.Context(), id, middleware.CurrentUser(c), patch)
	h.respond(c, http.StatusOK, item, err)
}

func (h *ContentHandler) deleteEvent(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.events.Delete(c.Request.Context(), id, middleware.CurrentUser(c)); err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusOK, "Event deleted successfully", nil)
}

func (h *ContentHandler) myEvents(c *gin.Context) {
	items, err := h.events.ListMine(c.Request.Context(), middleware.CurrentUser(c))
	h.respond(c, http.StatusOK, nonNil(items), err)
}

func (h *ContentHandler) pendingEvents(c *gin.Context) {
	items, err := h.events.ListPending(c.Request.Context(), middleware.CurrentUser(c))
	h.respond(c, http.StatusOK, nonNil(items), err)
}

// Accommodations

func (h *ContentHandler) listAccommodations(c *gin.Context) {
	minPrice, err := queryFloat(c, "minPrice")
	if err != nil {
		h.Error(c, err)
		return
	}
	maxPrice, err := queryFloat(c, "maxPrice")
	if err != nil {
		h.Error(c, err)
		return
	}
	items, err := h.accommodations.List(c.Request.Context(), services.AccommodationQuery{
		Country:    c.Query("country"),
		City:       c.Query("city"),
		ShowAll:    showAll(c),
		PriceRange: c.Query("priceRange"),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
	})
	h.respond(c, http.StatusOK, nonNil(items), err)
}

func (h *ContentHandler) getAccommodation(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	item, err := h.accommodations.Get(c.Request.Context(), id)
	h.respond(c, http.StatusOK, item, err)
}

func (h *ContentHandler) createAccommodation(c *gin.Context) {
	var in models.AccommodationInput
	if err := bindJSON(c, &in); err != nil {
		h.Error(c, err)
		return
	}
	item, err := h.accommodations.Create(c.Request.Context(), middleware.CurrentUser(c), in)
	h.respond(c, http.StatusCreated, item, err)
}

func (h *ContentHandler) updateAccommodation(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	var patch models.AccommodationPatch
	if err := bindJSON(c, &patch); err != nil {
		h.Error(c, err)
		return
	}
	item, err := h.accommodations.Update(c.Request.Context(), id, middleware.CurrentUser(c), patch)
	h.respond(c, http.StatusOK, item, err)
}

func (h *ContentHandler) deleteAccommodation(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.accommodations.Delete(c.Request.Context(), id, middleware.CurrentUser(c)); err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusOK, "Accommodation deleted successfully", nil)
}

func (h *ContentHandler) myAccommodations(c *gin.Context) {
	items, err := h.accommodations.ListMine(c.Request.Context(), middleware.CurrentUser(c))
	h.respond(c, http.StatusOK, nonNil(items), err)
}

func (h *ContentHandler) pendingAccommodations(c *gin.Context) {
	items, err := h.accommodations.ListPending(c.Request.Context(), middleware.CurrentUser(c))
	h.respond(c, http.StatusOK, nonNil(items), err)
}

// Restaurants

func (h *ContentHandler) listRestaurants(c *gin.Context) {
	items, err := h.restaurants.List(c.Request.Context(), services.RestaurantQuery{
		Country: c.Query("country"),
		City:    c.Query("city"),
		ShowAll: showAll(c),
	})
	h.respond(c, http.StatusOK, nonNil(items), err)
}

func (h *ContentHandler) getRestaurant(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	item, err := h.restaurants.Get(c.Request.Context(), id)
	h.respond(c, http.StatusOK, item, err)
}

func (h *ContentHandler) createRestaurant(c *gin.Context) {
	var in models.RestaurantInput
	if err := bindJSON(c, &in); err != nil {
		h.Error(c, err)
		return
	}
	item, err := h.restaurants.Create(c.Request.Context(), middleware.CurrentUser(c), in)
	h.respond(c, http.StatusCreated, item, err)
}

func (h *ContentHandler) updateRestaurant(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	var patch models.RestaurantPatch
	if err := bindJSON(c, &patch); err != nil {
		h.Error(c, err)
		return
	}
	item, err := h.restaurants.Update(c.Request.Context(), id, middleware.CurrentUser(c), patch)
	h.respond(c, http.StatusOK, item, err)
}

func (h *ContentHandler) deleteRestaurant(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.restaurants.Delete(c.Request.Context(), id, middleware.CurrentUser(c)); err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusOK, "Restaurant deleted successfully", nil)
}

func (h *ContentHandler) myRestaurants(c *gin.Context) {
	items, err := h.restaurants.ListMine(c.Request.Context(), middleware.CurrentUser(c))
	h.respond(c, http.StatusOK, nonNil(items), err)
}

func (h *ContentHandler) pendingRestaurants(c *gin.Context) {
	items, err := h.restaurants.ListPending(c.Request.Context(), middleware.CurrentUser(c))
	h.respond(c, http.StatusOK, nonNil(items), err)
}

func (h *ContentHandler) addReview(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	var in models.ReviewInput
	if err := bindJSON(c, &in); err != nil {
		h.Error(c, err)
		return
	}
	item, err := h.restaurants.AddReview(c.Request.Context(), id, middleware.CurrentUser(c), in)
	h.respond(c, http.StatusCreated, item, err)
}
