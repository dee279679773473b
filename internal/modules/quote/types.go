package quote

import (
	"time"

	"github.com/cite-space/core/internal/models"
)

type CreateQuoteDTO struct {
	Text       string `json:"text"        binding:"required"`
	SourceName string `json:"source_name" binding:"required"`
	Weight     int    `json:"weight"`
}

type ReactDTO struct {
	Action string `json:"action" binding:"required"`
}

const (
	actionLike    = "like"
	actionDislike = "dislike"
)

type sourceBrief struct {
	ID     string              `json:"id"`
	Name   string              `json:"name"`
	Status models.SourceStatus `json:"status"`
}

type tagBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type quoteResponse struct {
	ID       string             `json:"id"`
	Text     string             `json:"text"`
	Source   sourceBrief        `json:"source"`
	Weight   int                `json:"weight"`
	Views    uint               `json:"views"`
	Likes    uint               `json:"likes"`
	Dislikes uint               `json:"dislikes"`
	Status   models.QuoteStatus `json:"status"`
	Tags     []tagBrief         `json:"tags"`
	Author   string             `json:"author"`
	Created  time.Time          `json:"created"`
}

func toResponse(q *models.QuoteModel) quoteResponse {
	tags := make([]tagBrief, len(q.Tags))
	for i, t := range q.Tags {
		tags[i] = tagBrief{ID: t.ID, Name: t.Name}
	}
	return quoteResponse{
		ID:   q.ID,
		Text: q.Text,
		Source: sourceBrief{
			ID:     q.Source.ID,
			Name:   q.Source.Name,
			Status: q.Source.Status,
		},
		Weight:   q.Weight,
		Views:    q.Views,
		Likes:    q.Likes,
		Dislikes: q.Dislikes,
		Status:   q.Status,
		Tags:     tags,
		Author:   q.Author.Username,
		Created:  q.CreatedAt,
	}
}
