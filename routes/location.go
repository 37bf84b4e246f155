package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ceylon-compass-server/middleware"
	"ceylon-compass-server/models"
	"ceylon-compass-server/services"
)

type LocationHandler struct {
	locations *services.LocationService
	Responder
}

func NewLocationHandler(locations *services.LocationService, r Responder) *LocationHandler {
	return &LocationHandler{locations: locations, Responder: r}
}

func (h *LocationHandler) RegisterLocationRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	locations := rg.Group("/locations")
	{
		locations.GET("/countries", h.countries)
		locations.GET("/cities/:country", h.cities)

		admin := locations.Group("", requireAuth, middleware.RequireCapability(services.CapManageLocations))
		admin.GET("/all", h.all)
		admin.POST("/country", h.addCountry)
		admin.POST("/city/:country", h.addCity)
		admin.DELETE("/country/:country", h.deleteCountry)
		admin.DELETE("/city/:country/:city", h.deleteCity)
	}
}

func (h *LocationHandler) countries(c *gin.Context) {
	countries, err := h.locations.Countries(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, countries)
}

func (h *LocationHandler) cities(c *gin.Context) {
	cities, err := h.locations.Cities(c.Request.Context(), c.Param("country"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}

func (h *LocationHandler) all(c *gin.Context) {
	locs, err := h.locations.All(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(locs))
}

func (h *LocationHandler) addCountry(c *gin.Context) {
	var in models.CountryInput
	if err := bindJSON(c, &in); err != nil {
		h.Error(c, err)
		return
	}
	loc, err := h.locations.AddCountry(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, loc)
}

func (h *LocationHandler) addCity(c *gin.Context) {
	var in models.CityInput
	if err := bindJSON(c, &in); err != nil {
		h.Error(c, err)
		return
	}
	loc, err := h.locations.AddCity(c.Request.Context(), middleware.CurrentUser(c), c.Param("country"), in.City)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

func (h *LocationHandler) deleteCountry(c *gin.Context) {
	loc, err := h.locations.DeleteCountry(c.Request.Context(), middleware.CurrentUser(c), c.Param("country"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusOK, "Country deleted successfully", gin.H{"deletedLocation": loc})
}

func (h *LocationHandler) deleteCity(c *gin.Context) {
	loc, err := h.locations.DeleteCity(c.Request.Context(), middleware.CurrentUser(c), c.Param("country"), c.Param("city"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusOK, "City deleted successfully", gin.H{"location": loc})
}
