package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ceylon-compass-server/middleware"
	"ceylon-compass-server/models"
	"ceylon-compass-server/services"
)

type AdminHandler struct {
	admin          *services.AdminService
	events         *services.EventService
	accommodations *services.AccommodationService
	Responder
}

func NewAdminHandler(admin *services.AdminService, events *services.EventService, accommodations *services.AccommodationService, r Responder) *AdminHandler {
	return &AdminHandler{admin: admin, events: events, accommodations: accommodations, Responder: r}
}

func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	admin := rg.Group("/admin", requireAuth, middleware.RequireCapability(services.CapModerate))
	{
		admin.GET("/dashboard", h.dashboard)
		admin.GET("/pending", h.pending)
		admin.PUT("/events/:id/status", h.setEventStatus)
		admin.PUT("/accommodations/:id/status", h.setAccommodationStatus)
		admin.POST("/cleanup-past-events", h.cleanupPastEvents)

		users := admin.Group("/users", middleware.RequireCapability(services.CapManageUsers))
		users.GET("", h.users)
		users.GET("/:id", h.user)
		users.DELETE("/:id", h.deleteUser)
	}
}

func (h *AdminHandler) dashboard(c *gin.Context) {
	d, err := h.admin.Dashboard(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *AdminHandler) pending(c *gin.Context) {
	p, err := h.admin.Pending(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	p.Events = nonNil(p.Events)
	p.Accommodations = nonNil(p.Accommodations)
	p.Restaurants = nonNil(p.Restaurants)
	c.JSON(http.StatusOK, p)
}

func (h *AdminHandler) setEventStatus(c *gin.Context) {
	id, in, ok := h.statusRequest(c)
	if !ok {
		return
	}
	event, err := h.events.SetStatus(c.Request.Context(), id, middleware.CurrentUser(c), in.Status)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *AdminHandler) setAccommodationStatus(c *gin.Context) {
	id, in, ok := h.statusRequest(c)
	if !ok {
		return
	}
	acc, err := h.accommodations.SetStatus(c.Request.Context(), id, middleware.CurrentUser(c), in.Status)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

func (h *AdminHandler) statusRequest(c *gin.Context) (uint, models.StatusInput, bool) {
	var in models.StatusInput
	id, err := paramID(c, "id")
	if err == nil {
		err = bindJSON(c, &in)
	}
	if err != nil {
		h.Error(c, err)
		return 0, in, false
	}
	return id, in, true
}

func (h *AdminHandler) users(c *gin.Context) {
	users, err := h.admin.Users(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	views := make([]models.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].Public())
	}
	c.JSON(http.StatusOK, views)
}

func (h *AdminHandler) user(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	user, err := h.admin.User(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

func (h *AdminHandler) deleteUser(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.admin.DeleteUser(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusOK, "User and all their submissions deleted successfully", nil)
}

func (h *AdminHandler) cleanupPastEvents(c *gin.Context) {
	n, err := h.admin.CleanupPastEvents(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusOK, "Past events cleanup completed successfully", gin.H{"deletedCount": n})
}
