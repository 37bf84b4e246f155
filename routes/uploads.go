package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ceylon-compass-server/middleware"
	"ceylon-compass-server/services"
	"ceylon-compass-server/types"
)

const maxUploadForm = 10 << 20

type MediaHandler struct {
	media *services.MediaService
	Responder
}

func NewMediaHandler(media *services.MediaService, r Responder) *MediaHandler {
	return &MediaHandler{media: media, Responder: r}
}

// RegisterMediaRoutes adds image upload under the protected group.
func (h *MediaHandler) RegisterMediaRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.POST("/uploads", requireAuth, h.upload)
}

func (h *MediaHandler) upload(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadForm); err != nil {
		h.Error(c, types.Validation("Invalid form data"))
		return
	}
	header, err := c.FormFile("image")
	if err != nil {
		h.Error(c, types.FieldError("image", "Image file is required"))
		return
	}
	url, err := h.media.Upload(c.Request.Context(), middleware.CurrentUser(c), header)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
