package models

import (
	"time"

	"github.com/cite-space/core/internal/pkg/normalize"
	"gorm.io/gorm"
)

// SourceStatus is the approval state of a source.
type SourceStatus string

const (
	SourcePending  SourceStatus = "pending"
	SourceApproved SourceStatus = "approved"
	SourceRejected SourceStatus = "rejected"
)

// SourceModel is the attributed origin of a quote (film, book, author).
// NameNormalized is unique across all statuses and is the only duplicate
// arbiter; Name keeps the submitter's casing for display.
type SourceModel struct {
	Base
	Name           string       `json:"name"            gorm:"not null"`
	NameNormalized string       `json:"-"               gorm:"uniqueIndex;not null"`
	Status         SourceStatus `json:"status"          gorm:"type:varchar(10);default:'pending';index"`
	CreatedByID    *string      `json:"created_by_id"   gorm:"index"`
	CreatedBy      *UserModel   `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	ApprovedByID   *string      `json:"approved_by_id"`
	ApprovedAt     *time.Time   `json:"approved_at"`
	// MergedIntoID points at the surviving source after a merge. Chains are
	// path-compressed on merge, so this is never more than one hop deep.
	MergedIntoID *string      `json:"merged_into_id" gorm:"index"`
	MergedInto   *SourceModel `json:"-"              gorm:"foreignKey:MergedIntoID"`
}

func (SourceModel) TableName() string { return "sources" }

// BeforeSave re-derives the normalized name on every write and stamps
// ApprovedAt exactly once, at the first transition into Approved.
func (s *SourceModel) BeforeSave(tx *gorm.DB) error {
	s.Name = normalize.CollapseSpaces(s.Name)
	s.NameNormalized = normalize.SourceName(s.Name)
	if s.Status == SourceApproved && s.ApprovedAt == nil {
		now := time.Now()
		s.ApprovedAt = &now
	}
	return nil
}
