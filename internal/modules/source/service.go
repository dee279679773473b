package source

import (
	"errors"

	"github.com/cite-space/core/internal/models"
	"github.com/cite-space/core/internal/pkg/normalize"
	"gorm.io/gorm"
)

// Service is the source registry: get-or-create keyed by normalized name,
// plus the source approval state machine.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// GetByID returns a source or nil when absent.
func (s *Service) GetByID(id string) (*models.SourceModel, error) {
	var src models.SourceModel
	if err := s.db.First(&src, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &src, nil
}

// GetOrCreateByName resolves a raw source name to the source with the same
// normalized name, in any status, creating a pending one when absent. The
// creator is recorded only on creation.
func (s *Service) GetOrCreateByName(name, creatorID string) (*models.SourceModel, bool, error) {
	return s.getOrCreate(s.db, name, func(src *models.SourceModel) {
		if creatorID != "" {
			src.CreatedByID = &creatorID
		}
	})
}

// GetOrCreateTx is GetOrCreateByName running inside the caller's transaction,
// with a seed hook applied to freshly created sources.
func (s *Service) GetOrCreateTx(tx *gorm.DB, name string, seed func(*models.SourceModel)) (*models.SourceModel, bool, error) {
	return s.getOrCreate(tx, name, seed)
}

// getOrCreate races are settled by the unique index on name_normalized: the
// losing writer re-reads instead of surfacing the conflict.
func (s *Service) getOrCreate(tx *gorm.DB, name string, seed func(*models.SourceModel)) (*models.SourceModel, bool, error) {
	norm := normalize.SourceName(name)

	var existing models.SourceModel
	err := tx.First(&existing, "name_normalized = ?", norm).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	src := models.SourceModel{
		Name:   normalize.CollapseSpaces(name),
		Status: models.SourcePending,
	}
	if seed != nil {
		seed(&src)
	}
	if err := tx.Create(&src).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var winner models.SourceModel
			if ferr := tx.First(&winner, "name_normalized = ?", norm).Error; ferr != nil {
				return nil, false, ferr
			}
			return &winner, false, nil
		}
		return nil, false, err
	}
	return &src, true, nil
}

// Approve transitions a source into Approved. Re-approval is a no-op in
// effect: ApprovedAt is stamped only on the first transition.
func (s *Service) Approve(src *models.SourceModel, moderatorID string) error {
	src.Status = models.SourceApproved
	src.ApprovedByID = &moderatorID
	return s.db.Save(src).Error
}

// Reject transitions a source into Rejected.
func (s *Service) Reject(src *models.SourceModel, moderatorID string) error {
	src.Status = models.SourceRejected
	src.ApprovedByID = &moderatorID
	return s.db.Save(src).Error
}

// ListPending returns sources awaiting moderation, oldest first.
func (s *Service) ListPending() ([]models.SourceModel, error) {
	var items []models.SourceModel
	err := s.db.Where("status = ?", models.SourcePending).Order("created_at ASC").Find(&items).Error
	return items, err
}

// ListApprovedNames returns the names of approved sources for merge targets.
func (s *Service) ListApprovedNames() ([]string, error) {
	var names []string
	err := s.db.Model(&models.SourceModel{}).
		Where("status = ?", models.SourceApproved).
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}
