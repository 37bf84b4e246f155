package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ceylon-compass-server/middleware"
	"ceylon-compass-server/models"
	"ceylon-compass-server/services"
)

type ContactHandler struct {
	messages *services.ContactService
	Responder
}

func NewContactHandler(messages *services.ContactService, r Responder) *ContactHandler {
	return &ContactHandler{messages: messages, Responder: r}
}

// RegisterContactRoutes exposes public submission and the admin inbox.
func (h *ContactHandler) RegisterContactRoutes(rg *gin.RouterGroup, requireAuth, limiter gin.HandlerFunc) {
	contact := rg.Group("/contact")
	{
		contact.POST("", limiter, h.submit)

		admin := contact.Group("", requireAuth, middleware.RequireCapability(services.CapReadMessages))
		admin.GET("", h.list)
		admin.PATCH("/:id/read", h.markRead)
		admin.DELETE("/:id", h.delete)
	}
}

func (h *ContactHandler) submit(c *gin.Context) {
	var in models.ContactInput
	if err := bindJSON(c, &in); err != nil {
		h.Error(c, err)
		return
	}
	msg, err := h.messages.Submit(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusCreated, "Message submitted successfully", gin.H{"success": true, "data": msg})
}

func (h *ContactHandler) list(c *gin.Context) {
	msgs, err := h.messages.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(msgs))
}

func (h *ContactHandler) markRead(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	var in models.MarkReadInput
	// An empty body marks the message read.
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &in); err != nil {
			h.Error(c, err)
			return
		}
	}
	msg, err := h.messages.MarkRead(c.Request.Context(), id, middleware.CurrentUser(c), in.Read)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *ContactHandler) delete(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.messages.Delete(c.Request.Context(), id, middleware.CurrentUser(c)); err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusOK, "Message deleted successfully", nil)
}
