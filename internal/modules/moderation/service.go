package moderation

import (
	"errors"

	"github.com/cite-space/core/internal/models"
	"github.com/cite-space/core/internal/modules/source"
	"github.com/cite-space/core/internal/modules/tag"
	"github.com/cite-space/core/internal/pkg/normalize"
	"gorm.io/gorm"
)

// Service implements the moderation workflow: the quote and source approval
// state machines, source merging, and the append-only decision log. Every
// operation takes the acting moderator explicitly — there is no ambient
// "current user".
type Service struct {
	db      *gorm.DB
	sources *source.Service
	tags    *tag.Service
}

func NewService(db *gorm.DB, sources *source.Service, tags *tag.Service) *Service {
	return &Service{db: db, sources: sources, tags: tags}
}

// DraftQuotes returns quotes awaiting moderation, oldest first.
func (s *Service) DraftQuotes() ([]models.QuoteModel, error) {
	var items []models.QuoteModel
	err := s.db.Preload("Source").Preload("Author").Preload("Tags").
		Where("status = ?", models.QuoteDraft).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// PendingSources returns sources awaiting moderation.
func (s *Service) PendingSources() ([]models.SourceModel, error) {
	return s.sources.ListPending()
}

// ApprovedSourceNames returns candidate merge targets.
func (s *Service) ApprovedSourceNames() ([]string, error) {
	return s.sources.ListApprovedNames()
}

// GetQuote returns a quote or nil when absent.
func (s *Service) GetQuote(id string) (*models.QuoteModel, error) {
	var q models.QuoteModel
	if err := s.db.Preload("Source").First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

// ApproveQuote transitions a draft (or re-saves an approved quote) into
// Approved with the given weight and tag set, re-asserting every invariant:
// the source must be approved, the source keeps at most three approved
// quotes, and the normalized text stays unique. The whole operation is one
// transaction; the log entry is written only when the approval sticks.
func (s *Service) ApproveQuote(quoteID, moderatorID string, dto *ApproveQuoteDTO) (*models.QuoteModel, error) {
	if len(dto.TagIDs) == 0 {
		return nil, errTagRequired
	}
	if dto.Weight != nil && (*dto.Weight < models.MinWeight || *dto.Weight > models.MaxWeight) {
		return nil, errWeightOutOfRange
	}

	var out models.QuoteModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var q models.QuoteModel
		if err := tx.Preload("Source").First(&q, "id = ?", quoteID).Error; err != nil {
			return err
		}

		tags, err := s.tags.GetByIDsTx(tx, dto.TagIDs)
		if err != nil {
			return err
		}

		if q.Source.Status != models.SourceApproved {
			return errSourceNotApproved
		}

		// Quota check excludes the quote itself so re-approving is a no-op.
		var approved int64
		if err := tx.Model(&models.QuoteModel{}).
			Where("source_id = ? AND status = ? AND id <> ?", q.SourceID, models.QuoteApproved, q.ID).
			Count(&approved).Error; err != nil {
			return err
		}
		if approved >= models.MaxApprovedPerSource {
			return errQuotaExceeded
		}

		// Text uniqueness was enforced at submission; re-checked here so a
		// historical violation can never be promoted into the eligible set.
		var dup int64
		if err := tx.Model(&models.QuoteModel{}).
			Where("text_normalized = ? AND id <> ?", normalize.QuoteText(q.Text), q.ID).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return errDuplicateQuote
		}

		if dto.Weight != nil {
			q.Weight = *dto.Weight
		}
		q.Status = models.QuoteApproved
		if err := tx.Save(&q).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicateQuote
			}
			return err
		}
		if err := tx.Model(&q).Association("Tags").Replace(tags); err != nil {
			return err
		}

		if err := s.appendLog(tx, q.ID, moderatorID, models.ActionApprove, ""); err != nil {
			return err
		}

		q.Tags = tags
		out = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectQuote transitions a quote into Rejected and records the reason. There
// is deliberately no state guard: even a currently-approved quote can be
// rejected, freeing a quota slot.
func (s *Service) RejectQuote(quoteID, moderatorID, reason string) (*models.QuoteModel, error) {
	var out models.QuoteModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var q models.QuoteModel
		if err := tx.First(&q, "id = ?", quoteID).Error; err != nil {
			return err
		}
		q.Status = models.QuoteRejected
		if err := tx.Save(&q).Error; err != nil {
			return err
		}
		if err := s.appendLog(tx, q.ID, moderatorID, models.ActionReject, reason); err != nil {
			return err
		}
		out = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveSource approves a source. Idempotent in effect — ApprovedAt is never
// overwritten on re-approval.
func (s *Service) ApproveSource(id, moderatorID string) (*models.SourceModel, error) {
	src, err := s.sources.GetByID(id)
	if err != nil || src == nil {
		return src, err
	}
	return src, s.sources.Approve(src, moderatorID)
}

// RejectSource rejects a source.
func (s *Service) RejectSource(id, moderatorID string) (*models.SourceModel, error) {
	src, err := s.sources.GetByID(id)
	if err != nil || src == nil {
		return src, err
	}
	return src, s.sources.Reject(src, moderatorID)
}

// MergeSource consolidates a source into the one named targetName. A fresh
// target is born Approved — merging always implies the destination is
// authoritative. The quota is checked before anything moves, every quote is
// reassigned, stale merged_into pointers are compressed onto the target, and
// the merged source ends up Rejected. One transaction, all or nothing.
func (s *Service) MergeSource(id, targetName, moderatorID string) (*models.SourceModel, error) {
	if normalize.CollapseSpaces(targetName) == "" {
		return nil, errTargetNameRequired
	}

	var out models.SourceModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var src models.SourceModel
		if err := tx.First(&src, "id = ?", id).Error; err != nil {
			return err
		}

		target, _, err := s.sources.GetOrCreateTx(tx, targetName, func(t *models.SourceModel) {
			t.Status = models.SourceApproved
			t.ApprovedByID = &moderatorID
		})
		if err != nil {
			return err
		}
		if target.ID == src.ID {
			return errSelfMerge
		}

		var inTarget, toMove int64
		if err := tx.Model(&models.QuoteModel{}).
			Where("source_id = ? AND status = ?", target.ID, models.QuoteApproved).
			Count(&inTarget).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.QuoteModel{}).
			Where("source_id = ? AND status = ?", src.ID, models.QuoteApproved).
			Count(&toMove).Error; err != nil {
			return err
		}
		if inTarget+toMove > models.MaxApprovedPerSource {
			return errMergeQuota
		}

		// Reassign every quote, not just approved ones.
		if err := tx.Model(&models.QuoteModel{}).
			Where("source_id = ?", src.ID).
			Update("source_id", target.ID).Error; err != nil {
			return err
		}

		// Path compression: anything already merged into src now points
		// straight at the target, so lookups never chain.
		if err := tx.Model(&models.SourceModel{}).
			Where("merged_into_id = ?", src.ID).
			Update("merged_into_id", target.ID).Error; err != nil {
			return err
		}

		src.MergedIntoID = &target.ID
		src.Status = models.SourceRejected
		src.ApprovedByID = &moderatorID
		if err := tx.Save(&src).Error; err != nil {
			return err
		}

		out = *target
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AddTag get-or-creates a vocabulary entry.
func (s *Service) AddTag(name string) (*models.TagModel, error) {
	return s.tags.GetOrCreate(name)
}

// Users lists every account newest first, with their quotes attached.
func (s *Service) Users() ([]userWithQuotes, error) {
	var users []models.UserModel
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	var quotes []models.QuoteModel
	if err := s.db.Preload("Source").Order("created_at DESC").Find(&quotes).Error; err != nil {
		return nil, err
	}

	byAuthor := make(map[string][]userQuoteBrief, len(users))
	for _, q := range quotes {
		byAuthor[q.AuthorID] = append(byAuthor[q.AuthorID], userQuoteBrief{
			ID:      q.ID,
			Text:    q.Text,
			Status:  q.Status,
			Source:  q.Source.Name,
			Created: q.CreatedAt,
		})
	}

	out := make([]userWithQuotes, len(users))
	for i, u := range users {
		out[i] = userWithQuotes{
			User: userBrief{
				ID:       u.ID,
				Username: u.Username,
				Name:     u.Name,
				IsStaff:  u.IsStaff,
				Created:  u.CreatedAt,
			},
			Quotes: byAuthor[u.ID],
		}
	}
	return out, nil
}

// appendLog writes one immutable audit row per moderation decision.
func (s *Service) appendLog(tx *gorm.DB, quoteID, moderatorID string, action models.ModerationAction, reason string) error {
	entry := models.ModerationLogModel{
		QuoteID: quoteID,
		Action:  action,
		Reason:  reason,
	}
	if moderatorID != "" {
		entry.ModeratorID = &moderatorID
	}
	return tx.Create(&entry).Error
}
