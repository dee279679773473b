package moderation

import (
	"time"

	"github.com/cite-space/core/internal/models"
)

type ApproveQuoteDTO struct {
	// Weight left nil keeps the quote's submitted weight.
	Weight *int     `json:"weight"`
	TagIDs []string `json:"tag_ids"`
}

type RejectQuoteDTO struct {
	Reason string `json:"reason"`
}

type MergeSourceDTO struct {
	TargetName string `json:"target_name" binding:"required"`
}

type AddTagDTO struct {
	Name string `json:"name" binding:"required"`
}

type sourceResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Status     models.SourceStatus `json:"status"`
	CreatedBy  string              `json:"created_by,omitempty"`
	ApprovedAt *time.Time          `json:"approved_at,omitempty"`
	MergedInto string              `json:"merged_into,omitempty"`
	Created    time.Time           `json:"created"`
}

func toSourceResponse(s *models.SourceModel) sourceResponse {
	out := sourceResponse{
		ID:         s.ID,
		Name:       s.Name,
		Status:     s.Status,
		ApprovedAt: s.ApprovedAt,
		Created:    s.CreatedAt,
	}
	if s.CreatedByID != nil {
		out.CreatedBy = *s.CreatedByID
	}
	if s.MergedIntoID != nil {
		out.MergedInto = *s.MergedIntoID
	}
	return out
}

type queueQuoteResponse struct {
	ID      string             `json:"id"`
	Text    string             `json:"text"`
	Source  sourceResponse     `json:"source"`
	Weight  int                `json:"weight"`
	Status  models.QuoteStatus `json:"status"`
	Author  string             `json:"author"`
	Created time.Time          `json:"created"`
}

func toQueueQuoteResponse(q *models.QuoteModel) queueQuoteResponse {
	return queueQuoteResponse{
		ID:      q.ID,
		Text:    q.Text,
		Source:  toSourceResponse(&q.Source),
		Weight:  q.Weight,
		Status:  q.Status,
		Author:  q.Author.Username,
		Created: q.CreatedAt,
	}
}

type queueResponse struct {
	Quotes          []queueQuoteResponse `json:"quotes"`
	Sources         []sourceResponse     `json:"sources"`
	ApprovedSources []string             `json:"approved_sources"`
}

type userBrief struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	IsStaff  bool      `json:"is_staff"`
	Created  time.Time `json:"created"`
}

type userQuoteBrief struct {
	ID      string             `json:"id"`
	Text    string             `json:"text"`
	Status  models.QuoteStatus `json:"status"`
	Source  string             `json:"source"`
	Created time.Time          `json:"created"`
}

type userWithQuotes struct {
	User   userBrief        `json:"user"`
	Quotes []userQuoteBrief `json:"quotes"`
}
