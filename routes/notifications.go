package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"ceylon-compass-server/middleware"
	"ceylon-compass-server/services"
	"ceylon-compass-server/websocket"
)

type NotificationHandler struct {
	notifications *services.NotificationService
	hub           *websocket.Hub
	upgrader      gorillaws.Upgrader
	Responder
}

func NewNotificationHandler(notifications *services.NotificationService, hub *websocket.Hub, allowedOrigins []string, r Responder) *NotificationHandler {
	return &NotificationHandler{
		notifications: notifications,
		hub:           hub,
		upgrader:      websocket.Upgrader(allowedOrigins),
		Responder:     r,
	}
}

func (h *NotificationHandler) RegisterNotificationRoutes(rg *gin.RouterGroup, requireAuth, wsAuth gin.HandlerFunc) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("/ws", wsAuth, h.serveWS)
		notifications.GET("/user", requireAuth, h.list)
		notifications.GET("/unread-count", requireAuth, h.unreadCount)
		notifications.PUT("/read-all", requireAuth, h.markAllRead)
		notifications.PUT("/:id/read", requireAuth, h.markRead)
	}
}

func (h *NotificationHandler) list(c *gin.Context) {
	items, err := h.notifications.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(items))
}

func (h *NotificationHandler) unreadCount(c *gin.Context) {
	n, err := h.notifications.UnreadCount(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (h *NotificationHandler) markRead(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	n, err := h.notifications.MarkRead(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) markAllRead(c *gin.Context) {
	n, err := h.notifications.MarkAllRead(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusOK, "All notifications marked as read", gin.H{"updated": n})
}

func (h *NotificationHandler) serveWS(c *gin.Context) {
	websocket.ServeWebSocket(h.hub, h.upgrader, c.Writer, c.Request, middleware.CurrentUser(c).ID)
}
