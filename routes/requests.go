package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ceylon-compass-server/middleware"
	"ceylon-compass-server/models"
	"ceylon-compass-server/services"
)

// RequestBinder decodes a new request from the body on behalf of actor.
type RequestBinder[R any] func(c *gin.Context, actor *models.User) (*R, error)

// PatchBinder decodes an update and returns the admin-only part separately.
type PatchBinder[R any] func(c *gin.Context) (models.Ownership, func(*R) error, error)

// RequestHandler serves the pending requests of one content kind, including
// the accept and reject decisions.
type RequestHandler[R models.Submission, P models.Summarizer] struct {
	kind        models.ContentKind
	submissions *services.SubmissionService[R]
	moderation  *services.ModerationService[R, P]
	bindNew     RequestBinder[R]
	bindPatch   PatchBinder[R]
	Responder
}

func NewRequestHandler[R models.Submission, P models.Summarizer](
	submissions *services.SubmissionService[R],
	moderation *services.ModerationService[R, P],
	bindNew RequestBinder[R],
	bindPatch PatchBinder[R],
	r Responder,
) *RequestHandler[R, P] {
	return &RequestHandler[R, P]{
		kind:        moderation.Kind(),
		submissions: submissions,
		moderation:  moderation,
		bindNew:     bindNew,
		bindPatch:   bindPatch,
		Responder:   r,
	}
}

// RegisterRoutes mounts the request collection at path. Every route needs a
// signed in user; listing everything and deciding need moderation rights.
func (h *RequestHandler[R, P]) RegisterRoutes(rg *gin.RouterGroup, path string, requireAuth gin.HandlerFunc) {
	moderate := middleware.RequireCapability(services.CapModerate)

	reqs := rg.Group(path, requireAuth)
	{
		reqs.POST("", h.submit)
		reqs.GET("", moderate, h.list)
		reqs.GET("/user", h.listMine)
		reqs.GET("/pending", moderate, h.listPending)
		reqs.GET("/:id", h.get)
		reqs.PUT("/:id", h.update)
		reqs.DELETE("/:id", h.delete)
		reqs.POST("/:id/accept", moderate, h.accept)
		reqs.POST("/:id/reject", moderate, h.reject)
	}
}

func (h *RequestHandler[R, P]) submit(c *gin.Context) {
	req, err := h.bindNew(c, middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.submissions.Submit(c.Request.Context(), req); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

func (h *RequestHandler[R, P]) list(c *gin.Context) {
	items, err := h.submissions.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(items))
}

func (h *RequestHandler[R, P]) listMine(c *gin.Context) {
	items, err := h.submissions.ListMine(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(items))
}

func (h *RequestHandler[R, P]) listPending(c *gin.Context) {
	items, err := h.submissions.ListPending(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(items))
}

func (h *RequestHandler[R, P]) get(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	req, err := h.submissions.Get(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *RequestHandler[R, P]) update(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	ownership, apply, err := h.bindPatch(c)
	if err != nil {
		h.Error(c, err)
		return
	}
	req, err := h.submissions.Update(c.Request.Context(), id, middleware.CurrentUser(c), ownership, apply)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *RequestHandler[R, P]) delete(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.submissions.Delete(c.Request.Context(), id, middleware.CurrentUser(c)); err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusOK, h.kind.Title()+" request deleted successfully", nil)
}

func (h *RequestHandler[R, P]) accept(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	item, _, err := h.moderation.Accept(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusOK,
		h.kind.Title()+" request accepted and moved to "+h.kind.Plural(),
		gin.H{string(h.kind): item},
	)
}

func (h *RequestHandler[R, P]) reject(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	req, _, err := h.moderation.Reject(c.Request.Context(), id, middleware.CurrentUser(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, http.StatusOK,
		h.kind.Title()+" request rejected and removed",
		gin.H{string(h.kind) + "Request": req},
	)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// Binders for the three request kinds.

func bindEventRequest(c *gin.Context, actor *models.User) (*models.EventRequest, error) {
	var in models.EventInput
	if err := bindJSON(c, &in); err != nil {
		return nil, err
	}
	return services.NewEventRequest(in, actor)
}

func bindEventRequestPatch(c *gin.Context) (models.Ownership, func(*models.EventRequest) error, error) {
	var p models.EventPatch
	if err := bindJSON(c, &p); err != nil {
		return models.Ownership{}, nil, err
	}
	return p.Ownership, p.ApplyToRequest, nil
}

func bindAccommodationRequest(c *gin.Context, actor *models.User) (*models.AccommodationRequest, error) {
	var in models.AccommodationInput
	if err := bindJSON(c, &in); err != nil {
		return nil, err
	}
	return services.NewAccommodationRequest(in, actor)
}

func bindAccommodationRequestPatch(c *gin.Context) (models.Ownership, func(*models.AccommodationRequest) error, error) {
	var p models.AccommodationPatch
	if err := bindJSON(c, &p); err != nil {
		return models.Ownership{}, nil, err
	}
	return p.Ownership, p.ApplyToRequest, nil
}

func bindRestaurantRequest(c *gin.Context, actor *models.User) (*models.RestaurantRequest, error) {
	var in models.RestaurantInput
	if err := bindJSON(c, &in); err != nil {
		return nil, err
	}
	return services.NewRestaurantRequest(in, actor), nil
}

func bindRestaurantRequestPatch(c *gin.Context) (models.Ownership, func(*models.RestaurantRequest) error, error) {
	var p models.RestaurantPatch
	if err := bindJSON(c, &p); err != nil {
		return models.Ownership{}, nil, err
	}
	return p.Ownership, p.ApplyToRequest, nil
}

func NewEventRequestHandler(s *services.SubmissionService[models.EventRequest], m *services.ModerationService[models.EventRequest, models.Event], r Responder) *RequestHandler[models.EventRequest, models.Event] {
	return NewRequestHandler(s, m, bindEventRequest, bindEventRequestPatch, r)
}

func NewAccommodationRequestHandler(s *services.SubmissionService[models.AccommodationRequest], m *services.ModerationService[models.AccommodationRequest, models.Accommodation], r Responder) *RequestHandler[models.AccommodationRequest, models.Accommodation] {
	return NewRequestHandler(s, m, bindAccommodationRequest, bindAccommodationRequestPatch, r)
}

func NewRestaurantRequestHandler(s *services.SubmissionService[models.RestaurantRequest], m *services.ModerationService[models.RestaurantRequest, models.Restaurant], r Responder) *RequestHandler[models.RestaurantRequest, models.Restaurant] {
	return NewRequestHandler(s, m, bindRestaurantRequest, bindRestaurantRequestPatch, r)
}
