package models

// ModerationAction is the kind of decision recorded in the audit trail.
type ModerationAction string

const (
	ActionApprove ModerationAction = "approve"
	ActionReject  ModerationAction = "reject"
)

// ModerationLogModel is the append-only audit trail of moderation decisions.
// Rows are written once per decision and never mutated. ModeratorID is
// nullable so the record survives moderator account removal.
type ModerationLogModel struct {
	Base
	QuoteID     string           `json:"quote_id"     gorm:"not null;index"`
	Quote       QuoteModel       `json:"-"            gorm:"foreignKey:QuoteID"`
	ModeratorID *string          `json:"moderator_id"`
	Moderator   *UserModel       `json:"moderator,omitempty" gorm:"foreignKey:ModeratorID"`
	Action      ModerationAction `json:"action"       gorm:"type:varchar(10);not null;index"`
	Reason      string           `json:"reason"       gorm:"type:text"`
}

func (ModerationLogModel) TableName() string { return "moderation_logs" }
