package moderation

import (
	"errors"

	"github.com/cite-space/core/internal/middleware"
	"github.com/cite-space/core/internal/modules/tag"
	"github.com/cite-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, moderatorMW gin.HandlerFunc) {
	g := rg.Group("/moderation", authMW, moderatorMW)

	g.GET("/queue", h.queue)
	g.GET("/users", h.users)

	g.POST("/quotes/:id/approve", h.approveQuote)
	g.POST("/quotes/:id/reject", h.rejectQuote)

	g.POST("/sources/:id/approve", h.approveSource)
	g.POST("/sources/:id/reject", h.rejectSource)
	g.POST("/sources/:id/merge", h.mergeSource)

	g.POST("/tags", h.addTag)
}

// GET /moderation/queue — draft quotes plus pending sources.
func (h *Handler) queue(c *gin.Context) {
	drafts, err := h.svc.DraftQuotes()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	pending, err := h.svc.PendingSources()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	approvedNames, err := h.svc.ApprovedSourceNames()
	if err != nil {
		response.InternalError(c, err)
		return
	}

	out := queueResponse{
		Quotes:          make([]queueQuoteResponse, len(drafts)),
		Sources:         make([]sourceResponse, len(pending)),
		ApprovedSources: approvedNames,
	}
	for i, q := range drafts {
		out.Quotes[i] = toQueueQuoteResponse(&q)
	}
	for i, s := range pending {
		out.Sources[i] = toSourceResponse(&s)
	}
	response.OK(c, out)
}

// GET /moderation/users
func (h *Handler) users(c *gin.Context) {
	out, err := h.svc.Users()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, out)
}

// POST /moderation/quotes/:id/approve {weight, tag_ids}
func (h *Handler) approveQuote(c *gin.Context) {
	var dto ApproveQuoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	q, err := h.svc.ApproveQuote(c.Param("id"), middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.renderModerationError(c, err)
		return
	}
	response.OK(c, toQueueQuoteResponse(q))
}

// POST /moderation/quotes/:id/reject {reason}
func (h *Handler) rejectQuote(c *gin.Context) {
	var dto RejectQuoteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	q, err := h.svc.RejectQuote(c.Param("id"), middleware.CurrentUserID(c), dto.Reason)
	if err != nil {
		h.renderModerationError(c, err)
		return
	}
	response.OK(c, gin.H{"id": q.ID, "status": q.Status})
}

// POST /moderation/sources/:id/approve
func (h *Handler) approveSource(c *gin.Context) {
	src, err := h.svc.ApproveSource(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if src == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toSourceResponse(src))
}

// POST /moderation/sources/:id/reject
func (h *Handler) rejectSource(c *gin.Context) {
	src, err := h.svc.RejectSource(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if src == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, toSourceResponse(src))
}

// POST /moderation/sources/:id/merge {target_name}
func (h *Handler) mergeSource(c *gin.Context) {
	var dto MergeSourceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	target, err := h.svc.MergeSource(c.Param("id"), dto.TargetName, middleware.CurrentUserID(c))
	if err != nil {
		h.renderModerationError(c, err)
		return
	}
	response.OK(c, gin.H{
		"target":  toSourceResponse(target),
		"message": "source merged",
	})
}

// POST /moderation/tags {name}
func (h *Handler) addTag(c *gin.Context) {
	var dto AddTagDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	t, err := h.svc.AddTag(dto.Name)
	if err != nil {
		if tag.IsEmptyName(err) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, gin.H{"id": t.ID, "name": t.Name})
}

// renderModerationError maps workflow errors onto the response taxonomy:
// business-rule violations are reportable user errors, uniqueness conflicts
// read as duplicates, and unknown ids are plain 404s.
func (h *Handler) renderModerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(c)
	case errors.Is(err, errDuplicateQuote):
		response.Conflict(c, err.Error())
	case tag.IsUnknownTag(err):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, errTagRequired),
		errors.Is(err, errWeightOutOfRange),
		errors.Is(err, errSourceNotApproved),
		errors.Is(err, errQuotaExceeded),
		errors.Is(err, errMergeQuota),
		errors.Is(err, errSelfMerge),
		errors.Is(err, errTargetNameRequired):
		response.UnprocessableEntity(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
