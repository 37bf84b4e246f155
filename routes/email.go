package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ceylon-compass-server/middleware"
	"ceylon-compass-server/models"
	"ceylon-compass-server/services"
)

type EmailHandler struct {
	email *services.EmailService
	Responder
}

func NewEmailHandler(email *services.EmailService, r Responder) *EmailHandler {
	return &EmailHandler{email: email, Responder: r}
}

func (h *EmailHandler) RegisterEmailRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.POST("/email/send", requireAuth, middleware.RequireCapability(services.CapSendEmail), h.send)
}

func (h *EmailHandler) send(c *gin.Context) {
	var in models.EmailInput
	if err := bindJSON(c, &in); err != nil {
		h.Error(c, err)
		return
	}
	id, err := h.email.Send(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusOK, "Email sent successfully", gin.H{"messageId": id})
}
