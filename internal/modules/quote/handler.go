package quote

import (
	"errors"

	"github.com/cite-space/core/internal/middleware"
	"github.com/cite-space/core/internal/pkg/pagination"
	"github.com/cite-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const topListSize = 10

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/quotes")
	g.GET("", h.list)
	g.GET("/random", h.random)
	g.GET("/top", h.top)
	g.GET("/:id", h.get)
	g.POST("/:id/react", h.react)

	a := g.Group("", authMW)
	a.POST("", h.create)
}

// GET /quotes/random — the home-page draw; registers a view on the pick.
func (h *Handler) random(c *gin.Context) {
	item, err := h.svc.PickRandom()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.OK(c, gin.H{"data": nil})
		return
	}
	response.OK(c, gin.H{"data": toResponse(item)})
}

// GET /quotes/top?tag=<id>
func (h *Handler) top(c *gin.Context) {
	items, err := h.svc.Top(topListSize, c.Query("tag"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]quoteResponse, len(items))
	for i, q := range items {
		out[i] = toResponse(&q)
	}
	response.OK(c, out)
}

// GET /quotes
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]quoteResponse, len(items))
	for i, item := range items {
		out[i] = toResponse(&item)
	}
	response.Paged(c, out, pag)
}

// GET /quotes/:id — serves the eligible set only; anything else is a 404.
func (h *Handler) get(c *gin.Context) {
	item, err := h.svc.GetVisible(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if item == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toResponse(item))
}

// POST /quotes — submit a draft for moderation.
func (h *Handler) create(c *gin.Context) {
	var dto CreateQuoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.Submit(middleware.CurrentUserID(c), &dto)
	if err != nil {
		switch {
		case errors.Is(err, errDuplicateQuote):
			response.Conflict(c, err.Error())
		case errors.Is(err, errEmptyText), errors.Is(err, errWeightOutOfRange):
			response.UnprocessableEntity(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, gin.H{
		"data":    toResponse(item),
		"message": "quote submitted for moderation",
	})
}

// POST /quotes/:id/react {action: like|dislike}
func (h *Handler) react(c *gin.Context) {
	var dto ReactDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.React(c.Param("id"), dto.Action); err != nil {
		if errors.Is(err, errInvalidAction) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
