package models

// TagModel is a free-form vocabulary entry attached to approved quotes.
type TagModel struct {
	Base
	Name   string       `json:"name" gorm:"uniqueIndex;not null"`
	Quotes []QuoteModel `json:"-"    gorm:"many2many:quote_tags;joinForeignKey:TagID;joinReferences:QuoteID"`
}

func (TagModel) TableName() string { return "tags" }
