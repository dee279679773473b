package models

import (
	"github.com/cite-space/core/internal/pkg/normalize"
	"gorm.io/gorm"
)

// QuoteStatus is the moderation state of a quote.
type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "draft"
	QuoteApproved QuoteStatus = "approved"
	QuoteRejected QuoteStatus = "rejected"
)

// Quote weight bounds. Weight biases the weighted-random home-page pick.
const (
	MinWeight = 1
	MaxWeight = 10
)

// MaxApprovedPerSource caps approved quotes per source.
const MaxApprovedPerSource = 3

// QuoteModel is a user-submitted quote bound to exactly one source.
// TextNormalized is unique across all statuses so a rejected duplicate cannot
// be resubmitted verbatim.
type QuoteModel struct {
	Base
	Text           string      `json:"text"            gorm:"type:text;not null"`
	TextNormalized string      `json:"-"               gorm:"type:varchar(768);uniqueIndex;not null"`
	SourceID       string      `json:"source_id"       gorm:"not null;index:idx_quotes_source_status,priority:1"`
	Source         SourceModel `json:"source,omitempty" gorm:"foreignKey:SourceID"`
	Weight         int         `json:"weight"          gorm:"default:1;not null"`
	Views          uint        `json:"views"           gorm:"default:0;index"`
	Likes          uint        `json:"likes"           gorm:"default:0;index"`
	Dislikes       uint        `json:"dislikes"        gorm:"default:0"`
	Status         QuoteStatus `json:"status"          gorm:"type:varchar(10);default:'draft';index;index:idx_quotes_source_status,priority:2"`
	Tags           []TagModel  `json:"tags,omitempty"  gorm:"many2many:quote_tags;joinForeignKey:QuoteID;joinReferences:TagID"`
	AuthorID       string      `json:"author_id"       gorm:"not null;index"`
	Author         UserModel   `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (QuoteModel) TableName() string { return "quotes" }

// BeforeSave re-derives the normalized text on every write so the uniqueness
// index never drifts from the display text.
func (q *QuoteModel) BeforeSave(tx *gorm.DB) error {
	q.Text = normalize.QuoteText(q.Text)
	q.TextNormalized = normalize.QuoteText(q.Text)
	return nil
}
